package order

import (
	"fmt"
	"regexp"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrNumberIsNotConstructed is returned when a Number instance was not created
// through one of the constructor functions.
var ErrNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"Number must be created via NewNumber or NumberFromString",
)

// numberPattern matches the canonical order number layout: an ORD prefix,
// an eight-digit creation date and a sequence of at least three digits.
var numberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{3,}$`)

// Number is a value object for the human-readable order identifier in the
// form ORD-YYYYMMDD-NNN. The date part is the calendar day the order was
// created; the sequence part is zero-padded to three digits and widens
// naturally once a day's sequence exceeds 999 (ORD-20240115-1000).
//
// A Number is only a candidate until the order carrying it is durably
// inserted: global uniqueness is arbitrated by the storage layer's unique
// constraint, never by this type. Once an insert succeeds the number is
// permanently bound to that order and never reused, even after cancellation.
type Number struct {
	value string

	guard guard.ConstructorGuard
}

// NewNumber builds an order number candidate from a creation date and a
// 1-based sequence position within that date.
//
// Example:
//
//	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
//	n, _ := order.NewNumber(date, 1) // ORD-20240115-001
func NewNumber(date time.Time, sequence int64) (Number, error) {
	if sequence < 1 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}

	return Number{
		value: fmt.Sprintf("ORD-%s-%03d", date.Format("20060102"), sequence),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NumberFromString parses an order number from its string representation,
// typically when reconstructing an order from persistence or resolving a
// lookup by number. Returns an error if the string does not match the
// ORD-YYYYMMDD-NNN layout.
func NumberFromString(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("%q does not match ORD-YYYYMMDD-NNN", s),
		)
	}

	return Number{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the order number text, e.g. "ORD-20240115-001".
// This method implements the fmt.Stringer interface.
func (n Number) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}

// Validate checks that the Number was created through a constructor.
// Returns ErrNumberIsNotConstructed for zero-value instances.
func (n Number) Validate() error {
	return n.guard.Validate(ErrNumberIsNotConstructed)
}
