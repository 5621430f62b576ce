package portfolio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store loads and saves portfolio state between update cycles.
type Store interface {
	Load() (*Portfolio, error)
	Save(*Portfolio) error
}

// FileStore persists the portfolio state as a JSON file. Saves are atomic:
// the state is written to a temporary file first and renamed over the old
// one, so a crash mid-save never leaves a truncated state behind.
type FileStore struct {
	Path string
}

// Load reads the persisted state. When no state file exists yet it returns a
// fresh empty portfolio, logging the fact, so a first run needs no setup.
func (s FileStore) Load() (*Portfolio, error) {
	file, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		log.Warn().Str("path", s.Path).Msg("no portfolio state found, starting empty")
		return NewPortfolio(M(0, "USD")), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open portfolio state %q: %w", s.Path, err)
	}
	defer file.Close()

	p, err := DecodePortfolio(file)
	if err != nil {
		return nil, fmt.Errorf("could not load portfolio state %q: %w", s.Path, err)
	}
	return p, nil
}

// Save persists the full portfolio state.
func (s FileStore) Save(p *Portfolio) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("could not replace portfolio state %q: %w", s.Path, err)
	}
	return nil
}

var _ Store = FileStore{}
