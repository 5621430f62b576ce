// Package quote implements a live PriceLookup on top of the Yahoo Finance
// chart endpoint. A lookup is best-effort by design: tickers that cannot be
// priced are omitted from the result and the accounting core values them at
// zero.
package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"

	"github.com/bhig/portfolio"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Client fetches current market prices. The zero value is not usable, use
// NewClient.
type Client struct {
	http *http.Client
	base string
}

// NewClient returns a Client using a daily-expiring disk cache, so repeated
// runs on the same day do not hammer the quote service.
func NewClient() *Client {
	return &Client{http: daily(), base: defaultBaseURL}
}

// NewClientWith returns a Client with a custom HTTP client and base URL,
// mostly for tests.
func NewClientWith(httpClient *http.Client, base string) *Client {
	return &Client{http: httpClient, base: base}
}

// Prices fetches the latest quote for each ticker. Tickers that fail are
// logged and omitted; the joined errors are returned alongside the prices so
// the caller can report them without losing the successful quotes.
func (c *Client) Prices(ctx context.Context, tickers []string) (portfolio.PriceMap, error) {
	prices := make(portfolio.PriceMap, len(tickers))
	var errs error
	for _, ticker := range tickers {
		price, currency, err := c.latest(ctx, ticker)
		if err != nil {
			log.Warn().Str("ticker", ticker).Err(err).Msg("could not fetch quote")
			errs = errors.Join(errs, fmt.Errorf("could not fetch quote for %s: %w", ticker, err))
			continue
		}
		prices[ticker] = portfolio.M(price, currency)
	}
	return prices, errs
}

/*
	{
	  "chart": {
	    "result": [
	      {
	        "meta": {
	          "currency": "USD",
	          "symbol": "AAPL",
	          "regularMarketPrice": 189.44,
	          ...
*/
func (c *Client) latest(ctx context.Context, ticker string) (float64, string, error) {
	var jobj any
	if err := jwget(ctx, c.http, c.base+ticker, &jobj); err != nil {
		return 0, "", err
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return 0, "", err
	}

	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		// a missing currency is not worth losing the quote for
		log.Debug().Str("ticker", ticker).Msg("quote carries no currency, assuming USD")
		currency = "USD"
	}
	return price, currency, nil
}

// jsonFloat plucks a float64 from a decoded JSON document.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error plucking %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
	return val, nil
}

// jsonString plucks a string from a decoded JSON document.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error plucking %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is not a string: %v", path, jval)
	}
	return val, nil
}

var _ portfolio.PriceLookup = (*Client)(nil)
