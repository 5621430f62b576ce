package portfolio

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a single trade. Direction is carried
// entirely by the sign of Quantity: positive increases a long position (a
// buy), negative decreases it (a sell). Price and Fees are magnitudes.
//
// Transactions are passed and stored by value; once created a transaction is
// never modified.
type Transaction struct {
	Ticker     string
	AssetName  string
	AssetClass string
	Quantity   Quantity
	Price      Money // execution price per unit, never negative
	Date       Date
	Currency   string
	Exchange   string
	Sector     string
	Fees       Money // always added to the cost impact, never negative
	Note       string
}

// NewTransaction builds a validated transaction. It rejects a negative price
// or negative fees with ErrInvalidTransaction; an empty currency defaults to
// USD.
func NewTransaction(ticker, assetName, assetClass string, quantity Quantity, price Money, on Date, exchange, sector string, fees Money, note string) (Transaction, error) {
	if price.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: negative price %s for %s", ErrInvalidTransaction, price.Decimal(), ticker)
	}
	if fees.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: negative fees %s for %s", ErrInvalidTransaction, fees.Decimal(), ticker)
	}
	currency := price.Currency()
	if currency == "" {
		currency = fees.Currency()
	}
	if f := fees.Currency(); f != "" && f != currency {
		return Transaction{}, fmt.Errorf("%w: fees currency %s does not match price currency %s", ErrInvalidTransaction, f, currency)
	}
	if currency == "" {
		currency = "USD"
	}
	price = M(price.Decimal(), currency)
	fees = M(fees.Decimal(), currency)
	return Transaction{
		Ticker:     ticker,
		AssetName:  assetName,
		AssetClass: assetClass,
		Quantity:   quantity,
		Price:      price,
		Date:       on,
		Currency:   currency,
		Exchange:   exchange,
		Sector:     sector,
		Fees:       fees,
		Note:       note,
	}, nil
}

// TotalCost is the signed cash impact of the transaction:
// quantity*price + fees. Positive reduces cash (a buy), negative increases
// cash (a sell, net of fees).
func (t Transaction) TotalCost() Money {
	return t.Price.Mul(t.Quantity).Add(t.Fees)
}

func (t Transaction) Equal(o Transaction) bool {
	return t.Ticker == o.Ticker &&
		t.AssetName == o.AssetName &&
		t.AssetClass == o.AssetClass &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Date == o.Date &&
		t.Currency == o.Currency &&
		t.Exchange == o.Exchange &&
		t.Sector == o.Sector &&
		t.Fees.Equal(o.Fees) &&
		t.Note == o.Note
}

func (t Transaction) String() string {
	verb := "buy"
	if t.Quantity.IsNegative() {
		verb = "sell"
	}
	return fmt.Sprintf("%s %s %s %s @ %s", t.Date, verb, t.Quantity.Abs(), t.Ticker, t.Price)
}

// MarshalJSON writes the transaction with a stable key order and the date as
// an ISO-8601 string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", t.Ticker)
	w.Append("asset_name", t.AssetName)
	w.Append("asset_class", t.AssetClass)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("date", t.Date)
	w.Append("currency", t.Currency)
	w.Optional("exchange", t.Exchange)
	w.Optional("sector", t.Sector)
	w.Append("fees", t.Fees)
	w.Optional("notes", t.Note)
	return w.MarshalJSON()
}

// txRecord mirrors the serialized form of a Transaction with plain decimal
// amounts, the currency being a separate field.
type txRecord struct {
	Ticker     string          `json:"ticker"`
	AssetName  string          `json:"asset_name"`
	AssetClass string          `json:"asset_class"`
	Quantity   Quantity        `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Date       Date            `json:"date"`
	Currency   string          `json:"currency"`
	Exchange   string          `json:"exchange,omitempty"`
	Sector     string          `json:"sector,omitempty"`
	Fees       decimal.Decimal `json:"fees"`
	Note       string          `json:"notes,omitempty"`
}

func (r txRecord) transaction() (Transaction, error) {
	return NewTransaction(r.Ticker, r.AssetName, r.AssetClass, r.Quantity,
		M(r.Price, r.Currency), r.Date, r.Exchange, r.Sector, M(r.Fees, r.Currency), r.Note)
}

// UnmarshalJSON revalidates on read: a persisted transaction with a negative
// price or fees is rejected, it is never silently accepted into a ledger.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var r txRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	tx, err := r.transaction()
	if err != nil {
		return err
	}
	*t = tx
	return nil
}
