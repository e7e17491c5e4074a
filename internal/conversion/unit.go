// Package conversion converts fuel-economy figures between units.
//
// Every conversion goes through kilometers per liter (KPL): the source value
// is turned into KPL, and every output unit is derived from that one number.
package conversion

import (
	"errors"
	"fmt"
	"strings"
)

// Unit identifies a fuel-economy unit by its form slug.
type Unit string

// Supported units.
const (
	ImperialMPG         Unit = "impmpg"
	USMPG               Unit = "usmpg"
	KmPerLiter          Unit = "kpl"
	LitersPer100Km      Unit = "lper100km"
	MilesPerLiter       Unit = "mpl"
	KmPerImperialGallon Unit = "kmpig"
	KmPerUSGallon       Unit = "kmpusg"
)

// Common errors returned by conversion operations
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownUnit  = errors.New("unknown unit")
)

// UnitInfo describes a unit for display.
type UnitInfo struct {
	Unit    Unit   `json:"unit" msgpack:"unit"`
	Label   string `json:"label" msgpack:"label"`
	Tooltip string `json:"tooltip" msgpack:"tooltip"`
	Input   bool   `json:"input" msgpack:"input"`
}

// catalog is ordered the way results are displayed.
var catalog = []UnitInfo{
	{ImperialMPG, "Imperial MPG", "Miles per Imperial Gallon (UK standard)", true},
	{USMPG, "US MPG", "Miles per US Gallon (US standard)", true},
	{KmPerLiter, "Kilometers per Liter", "Kilometers traveled per liter of fuel", true},
	{LitersPer100Km, "L/100KM", "Liters of fuel per 100 kilometers (European standard)", true},
	{MilesPerLiter, "Miles per Liter", "Miles traveled per liter of fuel", true},
	{KmPerImperialGallon, "KM per Imperial Gallon", "Kilometers traveled per Imperial gallon", false},
	{KmPerUSGallon, "KM per US Gallon", "Kilometers traveled per US gallon", false},
}

// Units returns every supported unit in display order.
func Units() []Unit {
	units := make([]Unit, len(catalog))
	for i, info := range catalog {
		units[i] = info.Unit
	}
	return units
}

// InputUnits returns the units offered as a source on the converter form.
func InputUnits() []Unit {
	var units []Unit
	for _, info := range catalog {
		if info.Input {
			units = append(units, info.Unit)
		}
	}
	return units
}

// Catalog returns display metadata for every unit.
func Catalog() []UnitInfo {
	out := make([]UnitInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Info returns display metadata for u.
func (u Unit) Info() (UnitInfo, bool) {
	for _, info := range catalog {
		if info.Unit == u {
			return info, true
		}
	}
	return UnitInfo{}, false
}

// Label returns the display label, or the slug for unknown units.
func (u Unit) Label() string {
	if info, ok := u.Info(); ok {
		return info.Label
	}
	return string(u)
}

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	_, ok := u.Info()
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// ParseUnit resolves a unit slug such as "impmpg" or "lper100km", ignoring case.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}
