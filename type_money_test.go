package portfolio

import "testing"

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		money Money
		want  string
	}{
		{USD(5000), "$5,000.00"},
		{USD(50.25), "$50.25"},
		{USD(-50.25), "-$50.25"},
		{M(1000, "EUR"), "€1,000.00"},
		{M(1000, "JPY"), "¥1,000"},
	}
	for _, tc := range testCases {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	if got, want := USD(50).SignedString(), "+$50.00"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got, want := USD(-50).SignedString(), "-$50.00"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got, want := USD(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// the zero Money adopts the currency of the first tagged operand
	var zero Money
	got := zero.Add(USD(10))
	if got.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD", got.Currency())
	}
	if !got.Equal(USD(10)) {
		t.Errorf("Add() = %s, want %s", got, USD(10))
	}
}

func TestMoneyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add() with mismatched currencies did not panic")
		}
	}()
	USD(10).Add(M(10, "EUR"))
}

func TestMoneyArithmetic(t *testing.T) {
	if got := USD(50).Mul(Q(100)); !got.Equal(USD(5000)) {
		t.Errorf("Mul() = %s, want %s", got, USD(5000))
	}
	if got := USD(5000).Div(Q(100)); !got.Equal(USD(50)) {
		t.Errorf("Div() = %s, want %s", got, USD(50))
	}
	// binary-float classics stay exact on the decimal path
	if got := USD(0.1).Add(USD(0.2)); !got.Equal(USD(0.3)) {
		t.Errorf("Add() = %s, want %s", got, USD(0.3))
	}
}

func TestPercent(t *testing.T) {
	if got, want := Fraction(0.05).String(), "5.00%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Fraction(0.05).SignedString(), "+5.00%"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if !Fraction(0.05).Equal(Percent(5.00001)) {
		t.Error("Equal() = false for values inside the display precision")
	}
}
