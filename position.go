package portfolio

import (
	"fmt"
	"iter"
)

// Position is the per-instrument ledger: every transaction ever applied for
// one ticker, in insertion order, together with the running cost and
// quantity. A Position is created lazily by the Portfolio on the first
// transaction for its ticker and lives as long as the owning Portfolio.
//
// Position is not safe for concurrent mutation.
type Position struct {
	// identity and classification, copied from the first transaction seen
	ticker     string
	assetName  string
	assetClass string
	exchange   string
	currency   string
	sector     string

	cost     Money    // running sum of every transaction's TotalCost
	quantity Quantity // running signed sum of quantities, positive=long
	history  []Transaction
}

// newPosition seeds a position with the classification fields of the first
// transaction for its ticker. The transaction itself is not applied.
func newPosition(t Transaction) *Position {
	return &Position{
		ticker:     t.Ticker,
		assetName:  t.AssetName,
		assetClass: t.AssetClass,
		exchange:   t.Exchange,
		currency:   t.Currency,
		sector:     t.Sector,
		cost:       M(0, t.Currency),
	}
}

func (p *Position) Ticker() string     { return p.ticker }
func (p *Position) AssetName() string  { return p.assetName }
func (p *Position) AssetClass() string { return p.assetClass }
func (p *Position) Exchange() string   { return p.exchange }
func (p *Position) Currency() string   { return p.currency }
func (p *Position) Sector() string     { return p.sector }

// Cost is the running sum of all applied transactions' total cost, fees
// included. It is not a cost basis of the open lots, see AverageCost.
func (p *Position) Cost() Money { return p.cost }

// Quantity is the current net holding, positive for long, negative for short.
func (p *Position) Quantity() Quantity { return p.quantity }

// Apply records a transaction: cost and quantity accumulate and the
// transaction is appended to the history. A transaction for another ticker is
// rejected with ErrTickerMismatch and leaves the position untouched.
func (p *Position) Apply(t Transaction) error {
	if t.Ticker != p.ticker {
		return fmt.Errorf("%w: cannot apply %s transaction to %s position", ErrTickerMismatch, t.Ticker, p.ticker)
	}
	p.cost = p.cost.Add(t.TotalCost())
	p.quantity = p.quantity.Add(t.Quantity)
	p.history = append(p.history, t)
	return nil
}

// History yields every applied transaction in insertion order.
func (p *Position) History() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, t := range p.history {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Len returns the number of transactions applied to the position.
func (p *Position) Len() int { return len(p.history) }

// AverageCost returns cost/quantity, or exactly zero for a flat position.
// Callers must treat zero as "no position", not as a free cost basis.
//
// This is a running-total average over all transactions ever applied,
// realized closes included. After partial sells it can diverge from a
// FIFO-consistent basis of the open lots; the behavior is kept deliberately.
func (p *Position) AverageCost() Money {
	if p.quantity.IsZero() {
		return M(0, p.currency)
	}
	return p.cost.Div(p.quantity)
}

// RealizedPnL recomputes the realized gain from the full history on every
// call, a pure FIFO fold with no state carried between calls.
func (p *Position) RealizedPnL() Money {
	realized, _ := realizedFIFO(p.history)
	return M(realized.Decimal(), p.currency)
}

// RealizedPnLDetail is RealizedPnL plus the oversold quantity that never
// matched an open lot. A non-zero unmatched quantity means the position went
// short through an oversell and the realized figure excludes that remainder;
// callers wanting strictness check it, the default behavior stays a degrade.
func (p *Position) RealizedPnLDetail() (realized Money, unmatched Quantity) {
	realized, unmatched = realizedFIFO(p.history)
	return M(realized.Decimal(), p.currency), unmatched
}

// CurrentValue is the market value quantity*price.
func (p *Position) CurrentValue(price Money) Money {
	return price.Mul(p.quantity)
}

// UnrealizedPnL is (price - AverageCost()) * quantity.
func (p *Position) UnrealizedPnL(price Money) Money {
	return price.Sub(p.AverageCost()).Mul(p.quantity)
}

func (p *Position) String() string {
	return fmt.Sprintf("%s: %s units @ avg cost %s", p.ticker, p.quantity, p.AverageCost())
}
