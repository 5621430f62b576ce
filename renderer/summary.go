package renderer

import (
	"bytes"
	"fmt"

	"github.com/bhig/portfolio"
	md "github.com/nao1215/markdown"
)

// Summary renders the holdings of a portfolio valued against a price map.
// Tickers absent from the map are shown with a "-" price and valued at zero.
func Summary(p *portfolio.Portfolio, prices portfolio.PriceMap, on portfolio.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", on))

	table := md.TableSet{
		Header: []string{"Ticker", "Quantity", "Avg Cost", "Price", "Value", "Unrealized", "Realized"},
	}
	for _, ticker := range p.Tickers() {
		pos := p.Position(ticker)
		price, priced := prices.Lookup(ticker)
		quote := "-"
		if priced {
			quote = price.String()
		}
		table.Rows = append(table.Rows, []string{
			ticker,
			pos.Quantity().String(),
			pos.AverageCost().String(),
			quote,
			pos.CurrentValue(price).String(),
			pos.UnrealizedPnL(price).SignedString(),
			pos.RealizedPnL().SignedString(),
		})
	}
	doc.Table(table)

	doc.H2("Totals")
	doc.BulletList(
		fmt.Sprintf("Cash: %s", p.Cash()),
		fmt.Sprintf("Total Value: %s", p.TotalValue(prices)),
		fmt.Sprintf("Unrealized P&L: %s", p.TotalUnrealizedPnL(prices).SignedString()),
		fmt.Sprintf("Realized P&L: %s", p.TotalRealizedPnL().SignedString()),
	)

	return doc.String()
}

// Allocation renders an allocation breakdown as percentage weights.
func Allocation(g portfolio.Grouping, weights map[string]float64, keys []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Allocation by %s", g))

	table := md.TableSet{Header: []string{g.String(), "Weight"}}
	for _, key := range keys {
		table.Rows = append(table.Rows, []string{key, portfolio.Fraction(weights[key]).String()})
	}
	doc.Table(table)

	return doc.String()
}
