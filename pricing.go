package portfolio

import (
	"context"

	"github.com/rs/zerolog/log"
)

// PriceMap maps tickers to their current market price. A price map is a
// point-in-time snapshot produced by a PriceLookup; it may omit tickers the
// lookup could not price.
type PriceMap map[string]Money

// Get returns the price for a ticker, degrading to zero when the ticker is
// absent. The degrade is logged so that a position valued at zero because of
// a missing quote stays distinguishable from a true zero price.
func (m PriceMap) Get(ticker string) Money {
	price, ok := m[ticker]
	if !ok {
		log.Debug().Str("ticker", ticker).Msg("no price available, valuing at zero")
		return Money{}
	}
	return price
}

// Lookup returns the price for a ticker and whether one is present.
func (m PriceMap) Lookup(ticker string) (Money, bool) {
	price, ok := m[ticker]
	return price, ok
}

// PriceLookup supplies current prices for a set of tickers. Implementations
// may omit tickers they cannot price; the accounting core degrades instead of
// failing. Timeout and retry policy belong to implementations, typically via
// the context.
type PriceLookup interface {
	Prices(ctx context.Context, tickers []string) (PriceMap, error)
}

// StaticPrices is a fixed PriceLookup, handy for tests and manual valuation.
type StaticPrices PriceMap

func (s StaticPrices) Prices(_ context.Context, tickers []string) (PriceMap, error) {
	prices := make(PriceMap, len(tickers))
	for _, ticker := range tickers {
		if price, ok := s[ticker]; ok {
			prices[ticker] = price
		}
	}
	return prices, nil
}
