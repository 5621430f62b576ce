package portfolio

// USD is a helper for tests to create dollar money from a const.
func USD(v float64) Money { return M(v, "USD") }

// testBuy builds a valid purchase transaction, panicking on invalid input.
func testBuy(day, ticker string, qty, price float64) Transaction {
	return testBuyFees(day, ticker, qty, price, 0)
}

func testBuyFees(day, ticker string, qty, price, fees float64) Transaction {
	tx, err := NewTransaction(ticker, ticker, "Equity", Q(qty), USD(price), MustParse(day), "", "", USD(fees), "")
	if err != nil {
		panic(err)
	}
	return tx
}

// testSell builds a valid sale transaction, panicking on invalid input.
func testSell(day, ticker string, qty, price float64) Transaction {
	tx, err := NewTransaction(ticker, ticker, "Equity", Q(-qty), USD(price), MustParse(day), "", "", USD(0), "")
	if err != nil {
		panic(err)
	}
	return tx
}
