package money

import (
	"fmt"
	"math"
)

// SupportedCurrencies lists the ISO 4217 codes accepted by New.
var SupportedCurrencies = []string{"PLN", "EUR", "USD"}

// Money is an amount in minor units (cents, grosze) of one currency.
// Amounts are never negative.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func New(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, fmt.Errorf("money amount cannot be negative: %d", amount)
	}
	if !isSupported(currency) {
		return Money{}, fmt.Errorf("unsupported currency %q", currency)
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func isSupported(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Multiply scales the amount and rounds half-away-from-zero to the nearest
// minor unit.
func (m Money) Multiply(factor float64) (Money, error) {
	amount := int64(math.Round(float64(m.Amount) * factor))
	if amount < 0 {
		return Money{}, fmt.Errorf("money amount cannot be negative after multiply by %v", factor)
	}
	return Money{Amount: amount, Currency: m.Currency}, nil
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) LessThanOrEqual(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.Amount <= other.Amount, nil
}

func (m Money) Equals(other Money) bool {
	return m.Amount == other.Amount && m.Currency == other.Currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

func (m Money) assertSameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("cannot operate on different currencies: %q and %q", m.Currency, other.Currency)
	}
	return nil
}
