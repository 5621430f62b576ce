package portfolio

import (
	"fmt"
	"os"
)

// TransactionSource yields an ordered, finite sequence of transactions to
// apply, produced once per update cycle. The origin does not matter: file,
// feed, or manual entry.
type TransactionSource interface {
	Transactions() ([]Transaction, error)
}

// JournalFile is a TransactionSource reading a JSONL journal file, one
// transaction per line in insertion order. A missing file is an empty
// journal, not an error: a fresh portfolio simply has nothing to ingest yet.
type JournalFile string

func (f JournalFile) Transactions() ([]Transaction, error) {
	file, err := os.Open(string(f))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal %q: %w", string(f), err)
	}
	defer file.Close()

	txs, err := DecodeJournal(file)
	if err != nil {
		return nil, fmt.Errorf("could not read journal %q: %w", string(f), err)
	}
	return txs, nil
}

// Append appends transactions to the journal file, creating it if needed.
func (f JournalFile) Append(txs ...Transaction) error {
	file, err := os.OpenFile(string(f), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open journal %q: %w", string(f), err)
	}
	defer file.Close()

	if err := EncodeJournal(file, txs); err != nil {
		return fmt.Errorf("could not append to journal %q: %w", string(f), err)
	}
	return nil
}

var _ TransactionSource = JournalFile("")
