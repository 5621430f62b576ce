package portfolio

import (
	"bytes"
	"strings"
	"testing"
)

func TestJournalRoundTrip(t *testing.T) {
	journal := []Transaction{
		testBuy("2025-01-10", "AAPL", 100, 50),
		testBuyFees("2025-02-10", "GOOG", 10, 200, 4.95),
		testSell("2025-03-10", "AAPL", 25, 60),
	}

	var buf bytes.Buffer
	if err := EncodeJournal(&buf, journal); err != nil {
		t.Fatalf("EncodeJournal() error = %v", err)
	}

	got, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	if len(got) != len(journal) {
		t.Fatalf("DecodeJournal() returned %d transactions, want %d", len(got), len(journal))
	}
	for i := range journal {
		if !got[i].Equal(journal[i]) {
			t.Errorf("transaction %d mismatch:\n got %+v\nwant %+v", i, got[i], journal[i])
		}
	}
}

func TestDecodeJournalSkipsEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, testBuy("2025-01-10", "AAPL", 10, 50)); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	buf.WriteString("\n")
	if err := EncodeTransaction(&buf, testSell("2025-02-10", "AAPL", 5, 60)); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}

	got, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("DecodeJournal() returned %d transactions, want 2", len(got))
	}
}

func TestEncodeTransactionKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransaction(&buf, testBuy("2025-01-10", "AAPL", 100, 50)); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	line := buf.String()

	// keys must keep a stable order so journal diffs stay readable
	order := []string{`"ticker"`, `"asset_name"`, `"asset_class"`, `"quantity"`, `"price"`, `"date"`, `"currency"`, `"fees"`}
	last := -1
	for _, key := range order {
		i := strings.Index(line, key)
		if i < 0 {
			t.Fatalf("EncodeTransaction() output missing key %s: %s", key, line)
		}
		if i < last {
			t.Errorf("key %s out of order in %s", key, line)
		}
		last = i
	}
}

func TestPortfolioRoundTrip(t *testing.T) {
	p := NewPortfolio(USD(10000))
	for _, tx := range []Transaction{
		testBuy("2025-01-10", "AAPL", 10, 10),
		testBuy("2025-02-10", "AAPL", 10, 20),
		testSell("2025-03-10", "AAPL", 15, 30),
		testBuyFees("2025-01-15", "GOOG", 5, 200, 4.95),
	} {
		if err := p.Apply(tx); err != nil {
			t.Fatalf("Apply(%s) error = %v", tx, err)
		}
	}

	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}

	got, err := DecodePortfolio(&buf)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}

	if !got.Cash().Equal(p.Cash()) {
		t.Errorf("Cash() = %s, want %s", got.Cash(), p.Cash())
	}
	if got.BaseCurrency() != p.BaseCurrency() {
		t.Errorf("BaseCurrency() = %s, want %s", got.BaseCurrency(), p.BaseCurrency())
	}
	for _, ticker := range p.Tickers() {
		want, restored := p.Position(ticker), got.Position(ticker)
		if restored == nil {
			t.Fatalf("Position(%s) lost in round trip", ticker)
		}
		if !restored.Quantity().Equal(want.Quantity()) {
			t.Errorf("%s Quantity() = %s, want %s", ticker, restored.Quantity(), want.Quantity())
		}
		if !restored.Cost().Equal(want.Cost()) {
			t.Errorf("%s Cost() = %s, want %s", ticker, restored.Cost(), want.Cost())
		}
		if !restored.RealizedPnL().Equal(want.RealizedPnL()) {
			t.Errorf("%s RealizedPnL() = %s, want %s", ticker, restored.RealizedPnL(), want.RealizedPnL())
		}
	}
}

func TestDecodePortfolioRejectsDrift(t *testing.T) {
	state := `{"base_currency":"USD","cash_position":5000,"positions":{"AAPL":{"ticker":"AAPL","asset_name":"AAPL","asset_class":"Equity","currency":"USD","cost":9999,"quantity":100,"transactions":[{"ticker":"AAPL","asset_name":"AAPL","asset_class":"Equity","quantity":100,"price":50,"date":"2025-01-10","currency":"USD","fees":0}]}}}`

	if _, err := DecodePortfolio(strings.NewReader(state)); err == nil {
		t.Error("DecodePortfolio() accepted a stored cost that does not match the history")
	}
}
