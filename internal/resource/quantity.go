// Package resource parses and aggregates declared VM resource quantities.
//
// Multipass accepts human-readable sizes such as "4G" or "512M" for memory
// and disk. Quantities are normalized to mebibytes for arithmetic and
// rendered back to the largest unit that keeps an integer magnitude.
// Parsing is strict: a malformed quantity is an error, never a silent zero.
package resource

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a recognized quantity suffix.
type Unit string

const (
	// UnitMiB is the mebibyte suffix ("M").
	UnitMiB Unit = "M"
	// UnitGiB is the gibibyte suffix ("G").
	UnitGiB Unit = "G"
	// UnitCount marks a dimensionless count with no suffix. It is valid
	// only in count contexts such as CPU allocations.
	UnitCount Unit = ""
)

// mibPerGib converts between the two byte-scaled units.
const mibPerGib = 1024

// Quantity is a parsed resource magnitude with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// InvalidQuantityError reports a quantity string that could not be parsed.
// Callers must treat it as fatal for the field it came from.
type InvalidQuantityError struct {
	Input  string
	Reason string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q: %s", e.Input, e.Reason)
}

// IsInvalidQuantity reports whether err is an InvalidQuantityError.
func IsInvalidQuantity(err error) bool {
	var iqErr *InvalidQuantityError
	return errors.As(err, &iqErr)
}

// Parse parses a byte-scaled quantity such as "4G" or "512M".
//
// The magnitude may be decimal ("1.5G"). The unit suffix is required and
// case-sensitive; an unknown or missing suffix fails with
// InvalidQuantityError rather than defaulting to zero.
func Parse(s string) (Quantity, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Quantity{}, &InvalidQuantityError{Input: s, Reason: "empty value"}
	}

	last := trimmed[len(trimmed)-1]
	if last >= '0' && last <= '9' {
		return Quantity{}, &InvalidQuantityError{Input: s, Reason: "missing unit suffix (expected M or G)"}
	}

	unit := Unit(trimmed[len(trimmed)-1:])
	switch unit {
	case UnitMiB, UnitGiB:
	default:
		return Quantity{}, &InvalidQuantityError{Input: s, Reason: fmt.Sprintf("unknown unit suffix %q", string(unit))}
	}

	magnitude := trimmed[:len(trimmed)-1]
	if magnitude == "" {
		return Quantity{}, &InvalidQuantityError{Input: s, Reason: "missing magnitude"}
	}

	value, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return Quantity{}, &InvalidQuantityError{Input: s, Reason: fmt.Sprintf("non-numeric magnitude %q", magnitude)}
	}

	return Quantity{Value: value, Unit: unit}, nil
}

// ParseCount parses a dimensionless count such as a CPU allocation.
// Only suffixless positive integers are accepted.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &InvalidQuantityError{Input: s, Reason: "not an integer count"}
	}
	if n <= 0 {
		return 0, &InvalidQuantityError{Input: s, Reason: "count must be positive"}
	}
	return n, nil
}

// MiB returns the magnitude converted to mebibytes, the common base unit
// for aggregation. Dimensionless counts are returned unscaled.
func (q Quantity) MiB() float64 {
	if q.Unit == UnitGiB {
		return q.Value * mibPerGib
	}
	return q.Value
}

// GiB returns the magnitude converted to gibibytes.
func (q Quantity) GiB() float64 {
	return q.MiB() / mibPerGib
}

// FromMiB builds a Quantity from a mebibyte magnitude, choosing the largest
// unit that keeps the magnitude an integer. Non-integer magnitudes stay in
// mebibytes.
func FromMiB(mib float64) Quantity {
	if mib != math.Trunc(mib) {
		return Quantity{Value: mib, Unit: UnitMiB}
	}
	if math.Mod(mib, mibPerGib) == 0 {
		return Quantity{Value: mib / mibPerGib, Unit: UnitGiB}
	}
	return Quantity{Value: mib, Unit: UnitMiB}
}

// Add returns the sum of q and other, normalized per FromMiB.
func (q Quantity) Add(other Quantity) Quantity {
	return FromMiB(q.MiB() + other.MiB())
}

// Sum totals quantities into one normalized Quantity.
func Sum(quantities ...Quantity) Quantity {
	total := 0.0
	for _, q := range quantities {
		total += q.MiB()
	}
	return FromMiB(total)
}

// String renders the quantity with its suffix, e.g. "4G" or "512M".
// The rendered form round-trips through Parse for byte-scaled units.
func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + string(q.Unit)
}
