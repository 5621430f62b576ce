package portfolio

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewTransaction(t *testing.T) {
	testCases := []struct {
		name    string
		price   Money
		fees    Money
		wantCur string
		wantErr bool
	}{
		{name: "plain buy", price: USD(50), fees: USD(0), wantCur: "USD"},
		{name: "euro buy", price: M(50, "EUR"), fees: M(1, "EUR"), wantCur: "EUR"},
		{name: "empty currency defaults to USD", price: M(50, ""), fees: M(0, ""), wantCur: "USD"},
		{name: "fees currency follows the price", price: M(50, "EUR"), fees: M(1, ""), wantCur: "EUR"},
		{name: "negative price", price: USD(-50), fees: USD(0), wantErr: true},
		{name: "negative fees", price: USD(50), fees: USD(-1), wantErr: true},
		{name: "mismatched currencies", price: USD(50), fees: M(1, "EUR"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := NewTransaction("AAPL", "Apple Inc.", "Equity", Q(100), tc.price,
				MustParse("2025-01-10"), "", "", tc.fees, "")
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransaction) {
					t.Fatalf("NewTransaction() error = %v, want ErrInvalidTransaction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTransaction() error = %v", err)
			}
			if tx.Currency != tc.wantCur {
				t.Errorf("Currency = %q, want %q", tx.Currency, tc.wantCur)
			}
			if tx.Price.Currency() != tc.wantCur || tx.Fees.Currency() != tc.wantCur {
				t.Errorf("price/fees currency = %q/%q, want %q", tx.Price.Currency(), tx.Fees.Currency(), tc.wantCur)
			}
		})
	}
}

func TestTransactionTotalCost(t *testing.T) {
	buy := testBuyFees("2025-01-10", "AAPL", 100, 50, 9.99)
	if want := USD(5009.99); !buy.TotalCost().Equal(want) {
		t.Errorf("TotalCost() = %s, want %s", buy.TotalCost(), want)
	}

	// a sale has a negative cash impact, fees reduce the proceeds
	sell, err := NewTransaction("AAPL", "AAPL", "Equity", Q(-100), USD(50),
		MustParse("2025-02-10"), "", "", USD(9.99), "")
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	if want := USD(-4990.01); !sell.TotalCost().Equal(want) {
		t.Errorf("TotalCost() = %s, want %s", sell.TotalCost(), want)
	}
}

func TestTransactionString(t *testing.T) {
	if got, want := testBuy("2025-06-02", "AAPL", 100, 50).String(), "2025-06-02 buy 100 AAPL @ $50.00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := testSell("2025-06-03", "AAPL", 25, 60).String(), "2025-06-03 sell 25 AAPL @ $60.00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	tx, err := NewTransaction("AAPL", "Apple Inc.", "Equity", Q(100), USD(50.25),
		MustParse("2025-01-10"), "NASDAQ", "Technology", USD(9.99), "initial buy")
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(tx) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tx)
	}
}

func TestTransactionUnmarshalRejectsInvalid(t *testing.T) {
	line := `{"ticker":"AAPL","asset_name":"AAPL","asset_class":"Equity","quantity":10,"price":-50,"date":"2025-01-10","currency":"USD","fees":0}`
	var tx Transaction
	if err := tx.UnmarshalJSON([]byte(line)); !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("UnmarshalJSON() error = %v, want ErrInvalidTransaction", err)
	}
}
