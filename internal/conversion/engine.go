package conversion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fixed physical constants shared by every conversion.
const (
	ImperialGallonLiters = 4.54609188
	USGallonLiters       = 3.78541178
	MileKm               = 1.609344
)

// Precision is the number of decimals in formatted results.
const Precision = 2

// Measurement is a fuel-economy value expressed in a unit.
type Measurement struct {
	Value float64
	Unit  Unit
}

// Result holds one formatted value per supported unit.
type Result struct {
	ImperialMPG         string `json:"impmpg" msgpack:"impmpg"`
	USMPG               string `json:"usmpg" msgpack:"usmpg"`
	KmPerLiter          string `json:"kpl" msgpack:"kpl"`
	LitersPer100Km      string `json:"lper100km" msgpack:"lper100km"`
	MilesPerLiter       string `json:"mpl" msgpack:"mpl"`
	KmPerImperialGallon string `json:"kmpig" msgpack:"kmpig"`
	KmPerUSGallon       string `json:"kmpusg" msgpack:"kmpusg"`
}

// Zero returns the result shown for empty or unusable input.
func Zero() Result {
	zero := Format(0)
	return Result{
		ImperialMPG:         zero,
		USMPG:               zero,
		KmPerLiter:          zero,
		LitersPer100Km:      zero,
		MilesPerLiter:       zero,
		KmPerImperialGallon: zero,
		KmPerUSGallon:       zero,
	}
}

// Get returns the formatted value for u, or "" for an unknown unit.
func (r Result) Get(u Unit) string {
	switch u {
	case ImperialMPG:
		return r.ImperialMPG
	case USMPG:
		return r.USMPG
	case KmPerLiter:
		return r.KmPerLiter
	case LitersPer100Km:
		return r.LitersPer100Km
	case MilesPerLiter:
		return r.MilesPerLiter
	case KmPerImperialGallon:
		return r.KmPerImperialGallon
	case KmPerUSGallon:
		return r.KmPerUSGallon
	}
	return ""
}

func (r *Result) set(u Unit, v string) {
	switch u {
	case ImperialMPG:
		r.ImperialMPG = v
	case USMPG:
		r.USMPG = v
	case KmPerLiter:
		r.KmPerLiter = v
	case LitersPer100Km:
		r.LitersPer100Km = v
	case MilesPerLiter:
		r.MilesPerLiter = v
	case KmPerImperialGallon:
		r.KmPerImperialGallon = v
	case KmPerUSGallon:
		r.KmPerUSGallon = v
	}
}

// Map returns the result keyed by unit.
func (r Result) Map() map[Unit]string {
	m := make(map[Unit]string, len(catalog))
	for _, u := range Units() {
		m[u] = r.Get(u)
	}
	return m
}

// Format renders v with Precision decimals.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

// ParseInput parses free-text form input into a number.
// Empty, non-numeric and non-finite input all yield ErrInvalidInput.
func ParseInput(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	if !finite(v) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidInput, s)
	}
	return v, nil
}

// ToKPL converts m to kilometers per liter.
// Values must be positive: zero has no defined L/100km counterpart.
func ToKPL(m Measurement) (float64, error) {
	if !finite(m.Value) || m.Value <= 0 {
		return 0, fmt.Errorf("%w: value must be positive, got %v", ErrInvalidInput, m.Value)
	}

	var kpl float64
	switch m.Unit {
	case ImperialMPG:
		kpl = m.Value * MileKm / ImperialGallonLiters
	case USMPG:
		kpl = m.Value * MileKm / USGallonLiters
	case KmPerLiter:
		kpl = m.Value
	case LitersPer100Km:
		kpl = 100 / m.Value
	case MilesPerLiter:
		kpl = m.Value * MileKm
	case KmPerImperialGallon:
		kpl = m.Value / ImperialGallonLiters
	case KmPerUSGallon:
		kpl = m.Value / USGallonLiters
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(m.Unit))
	}

	if !finite(kpl) || kpl <= 0 {
		return 0, fmt.Errorf("%w: %v %s is out of range", ErrInvalidInput, m.Value, m.Unit)
	}
	return kpl, nil
}

// FromKPL converts a kilometers-per-liter figure to u.
func FromKPL(kpl float64, u Unit) (float64, error) {
	if !finite(kpl) || kpl <= 0 {
		return 0, fmt.Errorf("%w: kpl must be positive, got %v", ErrInvalidInput, kpl)
	}

	var v float64
	switch u {
	case ImperialMPG:
		v = kpl * ImperialGallonLiters / MileKm
	case USMPG:
		v = kpl * USGallonLiters / MileKm
	case KmPerLiter:
		v = kpl
	case LitersPer100Km:
		v = 100 / kpl
	case MilesPerLiter:
		v = kpl / MileKm
	case KmPerImperialGallon:
		v = kpl * ImperialGallonLiters
	case KmPerUSGallon:
		v = kpl * USGallonLiters
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}

	if !finite(v) {
		return 0, fmt.Errorf("%w: %v kpl overflows %s", ErrInvalidInput, kpl, u)
	}
	return v, nil
}

// ConvertValue converts m to every supported unit.
func ConvertValue(m Measurement) (Result, error) {
	kpl, err := ToKPL(m)
	if err != nil {
		return Zero(), err
	}

	var r Result
	for _, u := range Units() {
		v, err := FromKPL(kpl, u)
		if err != nil {
			return Zero(), err
		}
		r.set(u, Format(v))
	}
	return r, nil
}

// Convert converts free-text input in unit from to every supported unit.
// It never fails: unusable input produces Zero().
func Convert(input string, from Unit) Result {
	r, _ := Evaluate(input, from)
	return r
}

// Evaluate is Convert that also reports why the result was zeroed.
// The returned Result is always well formed.
func Evaluate(input string, from Unit) (Result, error) {
	v, err := ParseInput(input)
	if err != nil {
		return Zero(), err
	}
	return ConvertValue(Measurement{Value: v, Unit: from})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
