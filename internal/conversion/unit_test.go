package conversion

import (
	"errors"
	"testing"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Unit
		wantErr bool
	}{
		{"imperial slug", "impmpg", ImperialMPG, false},
		{"upper case", "KPL", KmPerLiter, false},
		{"padded", "  lper100km ", LitersPer100Km, false},
		{"output-only unit", "kmpusg", KmPerUSGallon, false},
		{"empty", "", "", true},
		{"unknown", "mph", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUnit(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownUnit) {
				t.Errorf("expected ErrUnknownUnit, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	units := Units()
	if len(units) != 7 {
		t.Fatalf("expected 7 units, got %d", len(units))
	}
	if units[0] != ImperialMPG || units[6] != KmPerUSGallon {
		t.Errorf("unexpected order: %v", units)
	}

	inputs := InputUnits()
	want := []Unit{ImperialMPG, USMPG, KmPerLiter, LitersPer100Km, MilesPerLiter}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d input units, got %d", len(want), len(inputs))
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input unit %d = %s, want %s", i, inputs[i], want[i])
		}
	}
}

func TestCatalogIsACopy(t *testing.T) {
	c := Catalog()
	c[0].Label = "changed"
	if ImperialMPG.Label() != "Imperial MPG" {
		t.Error("Catalog() exposed internal state")
	}
}

func TestUnitLabel(t *testing.T) {
	if got := LitersPer100Km.Label(); got != "L/100KM" {
		t.Errorf("expected L/100KM, got %s", got)
	}
	if got := Unit("bogus").Label(); got != "bogus" {
		t.Errorf("expected slug fallback, got %s", got)
	}
}
