package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeJournal writes transactions to an io.Writer in JSONL format, one
// transaction per line, preserving their order.
func EncodeJournal(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJournal reads a stream of JSONL transaction data and returns the
// transactions in file order. Order is preserved as read: the journal is the
// FIFO insertion order.
func DecodeJournal(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(line), err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}
	return txs, nil
}

// positionRecord mirrors the serialized form of a Position.
type positionRecord struct {
	Ticker       string          `json:"ticker"`
	AssetName    string          `json:"asset_name"`
	AssetClass   string          `json:"asset_class"`
	Exchange     string          `json:"exchange,omitempty"`
	Currency     string          `json:"currency"`
	Sector       string          `json:"sector,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     Quantity        `json:"quantity"`
	Transactions []Transaction   `json:"transactions"`
}

// portfolioRecord mirrors the serialized form of a Portfolio.
type portfolioRecord struct {
	BaseCurrency string                    `json:"base_currency"`
	CashPosition decimal.Decimal           `json:"cash_position"`
	Positions    map[string]positionRecord `json:"positions"`
}

// MarshalJSON serializes the full portfolio state for audit and export:
// base currency, cash, and every position with its running cost, running
// quantity, and complete transaction history.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("base_currency", p.baseCurrency)
	w.Append("cash_position", p.cash)

	var positions jsonObjectWriter
	for ticker, pos := range p.Positions() {
		var pw jsonObjectWriter
		pw.Append("ticker", pos.ticker)
		pw.Append("asset_name", pos.assetName)
		pw.Append("asset_class", pos.assetClass)
		pw.Optional("exchange", pos.exchange)
		pw.Append("currency", pos.currency)
		pw.Optional("sector", pos.sector)
		pw.Append("cost", pos.cost)
		pw.Append("quantity", pos.quantity)
		pw.Append("transactions", pos.history)
		positions.Append(ticker, &pw)
	}
	w.Append("positions", &positions)
	return w.MarshalJSON()
}

// EncodePortfolio persists the full portfolio state as a single JSON object.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write portfolio: %w", err)
	}
	return nil
}

// DecodePortfolio restores a portfolio persisted by EncodePortfolio. Each
// position is rebuilt by replaying its transaction history, so the running
// cost and quantity invariants hold by construction; the persisted running
// totals are checked against the replay and a drift is an error, not a
// silent fixup.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var record portfolioRecord
	if err := json.NewDecoder(r).Decode(&record); err != nil {
		return nil, fmt.Errorf("could not decode portfolio state: %w", err)
	}

	p := NewPortfolio(M(record.CashPosition, record.BaseCurrency))
	for ticker, pr := range record.Positions {
		if len(pr.Transactions) == 0 {
			continue
		}
		pos := newPosition(pr.Transactions[0])
		for _, tx := range pr.Transactions {
			if err := pos.Apply(tx); err != nil {
				return nil, fmt.Errorf("could not replay history of %s: %w", ticker, err)
			}
		}
		if !pos.quantity.Equal(pr.Quantity) {
			return nil, fmt.Errorf("position %s: stored quantity %s does not match history sum %s", ticker, pr.Quantity, pos.quantity)
		}
		if !pos.cost.Decimal().Equal(pr.Cost) {
			return nil, fmt.Errorf("position %s: stored cost %s does not match history sum %s", ticker, pr.Cost, pos.cost.Decimal())
		}
		p.positions[ticker] = pos
	}
	return p, nil
}
