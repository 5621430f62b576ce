package portfolio

import "fmt"

// Grouping selects the position attribute used to break down a portfolio
// allocation. It is a closed enumeration: every grouping maps to an explicit
// accessor, there is no reflection on field names.
type Grouping int

const (
	// ByTicker groups each position under its own ticker.
	ByTicker Grouping = iota
	// BySector groups positions by industry sector.
	BySector
	// ByAssetClass groups positions by asset class (Equity, Bond, ETF, ...).
	ByAssetClass
	// ByExchange groups positions by listing exchange.
	ByExchange
	// ByCurrency groups positions by quote currency.
	ByCurrency
)

func (g Grouping) String() string {
	switch g {
	case ByTicker:
		return "ticker"
	case BySector:
		return "sector"
	case ByAssetClass:
		return "asset-class"
	case ByExchange:
		return "exchange"
	case ByCurrency:
		return "currency"
	default:
		return "unknown"
	}
}

// ParseGrouping parses a string into a Grouping.
func ParseGrouping(s string) (Grouping, error) {
	switch s {
	case "ticker":
		return ByTicker, nil
	case "sector":
		return BySector, nil
	case "asset-class":
		return ByAssetClass, nil
	case "exchange":
		return ByExchange, nil
	case "currency":
		return ByCurrency, nil
	default:
		return 0, fmt.Errorf("unknown grouping: %q", s)
	}
}

// key returns the group a position belongs to. Positions with an empty
// attribute fall into the "Unknown" group instead of vanishing from the
// breakdown.
func (g Grouping) key(p *Position) string {
	var k string
	switch g {
	case ByTicker:
		k = p.Ticker()
	case BySector:
		k = p.Sector()
	case ByAssetClass:
		k = p.AssetClass()
	case ByExchange:
		k = p.Exchange()
	case ByCurrency:
		k = p.Currency()
	}
	if k == "" {
		return "Unknown"
	}
	return k
}
