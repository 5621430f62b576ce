// Package renderer turns portfolio reports into markdown strings.
package renderer

import (
	"bytes"

	"github.com/bhig/portfolio"
	md "github.com/nao1215/markdown"
)

// Transactions renders a transaction list to a markdown bullet list.
func Transactions(txs []portfolio.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	items := make([]string, 0, len(txs))
	for _, tx := range txs {
		items = append(items, tx.String())
	}
	doc.BulletList(items...)

	return doc.String()
}
