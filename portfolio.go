// Package portfolio implements the accounting core of a portfolio manager:
// it turns a stream of buy and sell transactions into position state, FIFO
// cost basis, realized and unrealized gains, and portfolio-level valuation
// and allocation.
//
// All ledger arithmetic is exact decimal through the Money and Quantity
// types. The aggregate is single-threaded: callers needing concurrent access
// must serialize mutation themselves.
package portfolio

import (
	"iter"
	"maps"
	"slices"
)

// Portfolio is the aggregate root: a cash balance plus one Position per
// ticker. It is mutated only by Apply; valuation and allocation are
// read-only queries against a caller-supplied PriceMap.
type Portfolio struct {
	baseCurrency string
	cash         Money
	positions    map[string]*Position
}

// NewPortfolio creates a portfolio holding the given starting cash. An empty
// cash currency defaults to USD; the cash currency becomes the reporting
// currency tag (no conversion is ever performed internally).
func NewPortfolio(cash Money) *Portfolio {
	currency := cash.Currency()
	if currency == "" {
		currency = "USD"
	}
	return &Portfolio{
		baseCurrency: currency,
		cash:         M(cash.Decimal(), currency),
		positions:    make(map[string]*Position),
	}
}

// BaseCurrency is the display currency tag for cash and reporting.
func (p *Portfolio) BaseCurrency() string { return p.baseCurrency }

// Cash returns the current uninvested cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Position returns the position for a ticker, or nil if none exists.
func (p *Portfolio) Position(ticker string) *Position {
	return p.positions[ticker]
}

// Tickers returns the tickers of all held positions, sorted.
func (p *Portfolio) Tickers() []string {
	return slices.Sorted(maps.Keys(p.positions))
}

// Positions yields every position in ticker order.
func (p *Portfolio) Positions() iter.Seq2[string, *Position] {
	return func(yield func(string, *Position) bool) {
		for _, ticker := range p.Tickers() {
			if !yield(ticker, p.positions[ticker]) {
				return
			}
		}
	}
}

// Apply records a transaction: the position for its ticker is created lazily
// from the transaction's classification fields, the transaction is applied to
// it, and the cash balance is debited by its total cost. Either every effect
// happens or none does.
func (p *Portfolio) Apply(t Transaction) error {
	pos, ok := p.positions[t.Ticker]
	if !ok {
		pos = newPosition(t)
	}
	if err := pos.Apply(t); err != nil {
		return err
	}
	p.positions[t.Ticker] = pos
	p.cash = p.cash.Sub(M(t.TotalCost().Decimal(), p.baseCurrency))
	return nil
}

// TotalValue is the market value of all positions at the given prices, plus
// cash. A position with no price in the map is valued at zero; valuation
// never fails on a stale or missing quote.
func (p *Portfolio) TotalValue(prices PriceMap) Money {
	total := p.cash
	for _, ticker := range p.Tickers() {
		pos := p.positions[ticker]
		value := pos.CurrentValue(prices.Get(ticker))
		total = total.Add(M(value.Decimal(), p.baseCurrency))
	}
	return total
}

// TotalUnrealizedPnL sums the unrealized gain of every position at the given
// prices, with the same degrade-to-zero for missing quotes.
func (p *Portfolio) TotalUnrealizedPnL(prices PriceMap) Money {
	total := M(0, p.baseCurrency)
	for _, ticker := range p.Tickers() {
		pos := p.positions[ticker]
		pnl := pos.UnrealizedPnL(prices.Get(ticker))
		total = total.Add(M(pnl.Decimal(), p.baseCurrency))
	}
	return total
}

// TotalRealizedPnL sums the FIFO realized gain of every position.
func (p *Portfolio) TotalRealizedPnL() Money {
	total := M(0, p.baseCurrency)
	for _, ticker := range p.Tickers() {
		pnl := p.positions[ticker].RealizedPnL()
		total = total.Add(M(pnl.Decimal(), p.baseCurrency))
	}
	return total
}

// AllocationBy breaks the portfolio down by a position attribute, each group
// weighted by its share of TotalValue. Cash is part of the denominator but
// not of any group, so the fractions sum to 1 minus the cash fraction. A
// worthless portfolio returns an empty map rather than dividing by zero.
func (p *Portfolio) AllocationBy(g Grouping, prices PriceMap) map[string]float64 {
	total := p.TotalValue(prices)
	if total.IsZero() {
		return map[string]float64{}
	}

	groups := make(map[string]Money)
	for _, ticker := range p.Tickers() {
		pos := p.positions[ticker]
		value := pos.CurrentValue(prices.Get(ticker))
		key := g.key(pos)
		groups[key] = groups[key].Add(M(value.Decimal(), p.baseCurrency))
	}

	allocation := make(map[string]float64, len(groups))
	for key, value := range groups {
		allocation[key] = value.Decimal().Div(total.Decimal()).InexactFloat64()
	}
	return allocation
}
