package derived

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// NotApplicable is displayed for values that have no meaning for the
// selection, such as a change in the first year of the range.
const NotApplicable = "N/A"

// Number is a float64 that may be undefined (NaN). Non-finite values marshal
// to JSON null.
type Number float64

// Undefined returns a NaN Number.
func Undefined() Number {
	return Number(math.NaN())
}

// Valid reports whether n is finite.
func (n Number) Valid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) Float64() float64 {
	return float64(n)
}

func (n Number) String() string {
	return FormatMagnitude(float64(n))
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'f', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// ChangeStatus says whether a Change carries a percentage.
type ChangeStatus string

const (
	ChangeDefined       ChangeStatus = "defined"
	ChangeNotApplicable ChangeStatus = "not_applicable"
	ChangeUndefined     ChangeStatus = "undefined"
)

// Change is a year-over-year percentage change of the cross-country mean.
// Percent is only meaningful when Status is ChangeDefined.
type Change struct {
	Status  ChangeStatus `json:"status"`
	Percent Number       `json:"percent"`
}

func definedChange(percent float64) Change {
	return Change{Status: ChangeDefined, Percent: Number(percent)}
}

func notApplicableChange() Change {
	return Change{Status: ChangeNotApplicable, Percent: Undefined()}
}

func undefinedChange() Change {
	return Change{Status: ChangeUndefined, Percent: Undefined()}
}

// String renders "12.34%", "N/A" or "undefined".
func (c Change) String() string {
	switch c.Status {
	case ChangeDefined:
		return strconv.FormatFloat(round2(float64(c.Percent)), 'f', 2, 64) + "%"
	case ChangeNotApplicable:
		return NotApplicable
	default:
		return string(ChangeUndefined)
	}
}

// FormatMagnitude abbreviates billions and millions with one decimal and
// otherwise prints the value rounded to two decimals in shortest form.
func FormatMagnitude(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return NotApplicable
	case v >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 1, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	default:
		return strconv.FormatFloat(round2(v), 'f', -1, 64)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
