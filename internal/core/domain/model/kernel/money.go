package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a Money instance was not created through
// one of the constructor functions. The zero value of Money is intentionally invalid
// so that an uninitialized amount can never be mistaken for zero currency units.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney, MoneyFromString, or ZeroMoney",
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to guarantee exact decimal arithmetic:
// adding and multiplying amounts never accumulates binary floating-point drift,
// which is essential for order totals that must equal the exact sum of their parts.
//
// Money is immutable; arithmetic methods return new instances.
//
// Example usage:
//
//	price, err := kernel.MoneyFromString("29.99")
//	if err != nil {
//	    // handle error
//	}
//	subtotal := price.MulQuantity(2) // 59.98, exactly
type Money struct {
	amount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected: prices, subtotals and totals in the ordering
// domain are never below zero.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a Money value from its decimal string representation,
// e.g. "29.99". Returns an error if the string is not a valid decimal number
// or represents a negative amount.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	return NewMoney(amount)
}

// ZeroMoney returns a properly constructed Money value of zero.
// Useful as the starting point for summations.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the exact sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  guard.NewConstructorGuard(),
	}
}

// MulQuantity returns the amount multiplied by an integer quantity, exactly.
func (m Money) MulQuantity(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))),
		guard:  guard.NewConstructorGuard(),
	}
}

// IsEqual compares two Money values by their numeric amount.
// "29.99" and "29.990" are considered equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with two decimal places, e.g. "1059.97".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Validate checks that the Money value was created through a constructor.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
