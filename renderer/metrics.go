package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
)

// A Metric is a named statistic already formatted for display.
type Metric struct {
	Name  string
	Value string
}

// Metrics renders a list of named statistics as a two column table.
func Metrics(title string, metrics []Metric) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	table := md.TableSet{Header: []string{"Metric", "Value"}}
	for _, m := range metrics {
		table.Rows = append(table.Rows, []string{m.Name, m.Value})
	}
	doc.Table(table)

	return doc.String()
}
