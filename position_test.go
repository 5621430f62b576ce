package portfolio

import (
	"errors"
	"testing"
)

func newTestPosition(t *testing.T, history ...Transaction) *Position {
	t.Helper()
	if len(history) == 0 {
		t.Fatal("newTestPosition needs at least one transaction")
	}
	p := newPosition(history[0])
	for _, tx := range history {
		if err := p.Apply(tx); err != nil {
			t.Fatalf("Apply(%s) error = %v", tx, err)
		}
	}
	return p
}

func TestPositionApply(t *testing.T) {
	p := newTestPosition(t,
		testBuy("2025-01-10", "AAPL", 100, 50),
		testBuy("2025-02-10", "AAPL", 50, 60),
	)

	if got := p.Quantity().InexactFloat64(); got != 150 {
		t.Errorf("Quantity() = %v, want 150", got)
	}
	if want := USD(8000); !p.Cost().Equal(want) {
		t.Errorf("Cost() = %s, want %s", p.Cost(), want)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestPositionApplyTickerMismatch(t *testing.T) {
	p := newTestPosition(t, testBuy("2025-01-10", "AAPL", 100, 50))

	err := p.Apply(testBuy("2025-02-10", "GOOG", 10, 100))
	if !errors.Is(err, ErrTickerMismatch) {
		t.Errorf("Apply() error = %v, want ErrTickerMismatch", err)
	}
	// a rejected transaction must not alter the position
	if got := p.Quantity().InexactFloat64(); got != 100 {
		t.Errorf("Quantity() = %v, want 100", got)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPositionAverageCost(t *testing.T) {
	testCases := []struct {
		name    string
		history []Transaction
		want    float64
	}{
		{
			name:    "single buy",
			history: []Transaction{testBuy("2025-01-10", "AAPL", 100, 50)},
			want:    50,
		},
		{
			name:    "fees are part of the cost basis",
			history: []Transaction{testBuyFees("2025-01-10", "AAPL", 10, 10, 10)},
			want:    11,
		},
		{
			name: "two buys average by cost",
			history: []Transaction{
				testBuy("2025-01-10", "AAPL", 10, 10),
				testBuy("2025-02-10", "AAPL", 10, 20),
			},
			want: 15,
		},
		{
			name: "running total includes sale proceeds",
			history: []Transaction{
				testBuy("2025-01-10", "AAPL", 10, 10),
				testSell("2025-02-10", "AAPL", 5, 20),
			},
			// cost 100 - proceeds 100 leaves a zero basis on 5 shares
			want: 0,
		},
		{
			name: "flat position has no average cost",
			history: []Transaction{
				testBuy("2025-01-10", "AAPL", 10, 10),
				testSell("2025-02-10", "AAPL", 10, 20),
			},
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPosition(t, tc.history...)
			if got := p.AverageCost().InexactFloat64(); got != tc.want {
				t.Errorf("AverageCost() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPositionRealizedPnL(t *testing.T) {
	p := newTestPosition(t,
		testBuy("2025-01-10", "AAPL", 10, 10),
		testBuy("2025-02-10", "AAPL", 10, 20),
		testSell("2025-03-10", "AAPL", 15, 30),
	)

	if want := USD(250); !p.RealizedPnL().Equal(want) {
		t.Errorf("RealizedPnL() = %s, want %s", p.RealizedPnL(), want)
	}
	// recomputing over the same history must not change the result
	if want := USD(250); !p.RealizedPnL().Equal(want) {
		t.Errorf("RealizedPnL() second call = %s, want %s", p.RealizedPnL(), want)
	}
}

func TestPositionRealizedPnLOversell(t *testing.T) {
	p := newTestPosition(t,
		testBuy("2025-01-10", "AAPL", 10, 10),
		testSell("2025-03-10", "AAPL", 15, 30),
	)

	realized, unmatched := p.RealizedPnLDetail()
	if want := USD(200); !realized.Equal(want) {
		t.Errorf("RealizedPnLDetail() realized = %s, want %s", realized, want)
	}
	if got := unmatched.InexactFloat64(); got != 5 {
		t.Errorf("RealizedPnLDetail() unmatched = %v, want 5", got)
	}
}

func TestPositionValuation(t *testing.T) {
	p := newTestPosition(t, testBuy("2025-01-10", "AAPL", 100, 50))

	if want := USD(6000); !p.CurrentValue(USD(60)).Equal(want) {
		t.Errorf("CurrentValue(60) = %s, want %s", p.CurrentValue(USD(60)), want)
	}
	if want := USD(1000); !p.UnrealizedPnL(USD(60)).Equal(want) {
		t.Errorf("UnrealizedPnL(60) = %s, want %s", p.UnrealizedPnL(USD(60)), want)
	}
}
