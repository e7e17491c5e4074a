package conversion

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestConvert_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		from  Unit
		want  Result
	}{
		{
			name:  "10 imperial mpg",
			input: "10",
			from:  ImperialMPG,
			want: Result{
				ImperialMPG:         "10.00",
				USMPG:               "8.33",
				KmPerLiter:          "3.54",
				LitersPer100Km:      "28.25",
				MilesPerLiter:       "2.20",
				KmPerImperialGallon: "16.09",
				KmPerUSGallon:       "13.40",
			},
		},
		{
			name:  "8 liters per 100km",
			input: "8",
			from:  LitersPer100Km,
			want: Result{
				ImperialMPG:         "35.31",
				USMPG:               "29.40",
				KmPerLiter:          "12.50",
				LitersPer100Km:      "8.00",
				MilesPerLiter:       "7.77",
				KmPerImperialGallon: "56.83",
				KmPerUSGallon:       "47.32",
			},
		},
		{
			name:  "30 us mpg",
			input: "30",
			from:  USMPG,
			want: Result{
				ImperialMPG:         "36.03",
				USMPG:               "30.00",
				KmPerLiter:          "12.75",
				LitersPer100Km:      "7.84",
				MilesPerLiter:       "7.93",
				KmPerImperialGallon: "57.98",
				KmPerUSGallon:       "48.28",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.input, tt.from)
			if got != tt.want {
				t.Errorf("Convert(%q, %s) = %+v, want %+v", tt.input, tt.from, got, tt.want)
			}
		})
	}
}

func TestConvert_KPLBackToImperial(t *testing.T) {
	got := Convert("3.54", KmPerLiter).Get(ImperialMPG)
	if got != "10.00" {
		t.Errorf("expected 10.00 imperial mpg, got %s", got)
	}
}

func TestConvert_InvalidInputYieldsZero(t *testing.T) {
	inputs := []string{"", "   ", "abc", "12abc", "1,5", "NaN", "Inf", "-Inf", "1e400", "0", "0.0", "-5"}

	for _, in := range Units() {
		for _, input := range inputs {
			t.Run(string(in)+"/"+input, func(t *testing.T) {
				got := Convert(input, in)
				if got != Zero() {
					t.Errorf("Convert(%q, %s) = %+v, want all zeros", input, in, got)
				}
			})
		}
	}
}

func TestZero_EveryFieldFormatted(t *testing.T) {
	for u, v := range Zero().Map() {
		if v != "0.00" {
			t.Errorf("Zero()[%s] = %q, want 0.00", u, v)
		}
	}
}

func TestConvert_LitersPer100KmZero(t *testing.T) {
	r, err := Evaluate("0", LitersPer100Km)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if r != Zero() {
		t.Errorf("expected zero result, got %+v", r)
	}
}

func TestConvert_UnknownUnit(t *testing.T) {
	r, err := Evaluate("10", Unit("furlongs"))
	if !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if r != Zero() {
		t.Errorf("expected zero result, got %+v", r)
	}
}

func TestConvert_TrimsWhitespace(t *testing.T) {
	got := Convert(" 8 ", LitersPer100Km).KmPerLiter
	if got != "12.50" {
		t.Errorf("expected 12.50, got %s", got)
	}
}

func TestRoundTripThroughKPL(t *testing.T) {
	values := []float64{0.01, 0.5, 1, 3.54, 8, 10, 42.195, 100, 250, 1234.56}

	for _, u := range Units() {
		for _, v := range values {
			kpl, err := ToKPL(Measurement{Value: v, Unit: u})
			if err != nil {
				t.Fatalf("ToKPL(%v %s) error: %v", v, u, err)
			}
			back, err := FromKPL(kpl, u)
			if err != nil {
				t.Fatalf("FromKPL(%v, %s) error: %v", kpl, u, err)
			}
			if math.Abs(back-v) > 0.01 {
				t.Errorf("%s: %v -> %v kpl -> %v", u, v, kpl, back)
			}
		}
	}
}

func TestRoundTripThroughFormattedResult(t *testing.T) {
	values := []string{"0.25", "3.54", "10", "27.5", "99.99", "500"}

	for _, u := range Units() {
		for _, input := range values {
			got := Convert(input, u).Get(u)
			gotF, err := strconv.ParseFloat(got, 64)
			if err != nil {
				t.Fatalf("result %q is not a number: %v", got, err)
			}
			want, _ := strconv.ParseFloat(input, 64)
			if math.Abs(gotF-want) > 0.01 {
				t.Errorf("%s: Convert(%q).Get = %q", u, input, got)
			}
		}
	}
}

func TestFromKPL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kpl     float64
		unit    Unit
		wantErr error
	}{
		{"zero kpl", 0, ImperialMPG, ErrInvalidInput},
		{"negative kpl", -1, KmPerLiter, ErrInvalidInput},
		{"infinite kpl", math.Inf(1), LitersPer100Km, ErrInvalidInput},
		{"nan kpl", math.NaN(), MilesPerLiter, ErrInvalidInput},
		{"overflow", math.MaxFloat64, KmPerImperialGallon, ErrInvalidInput},
		{"unknown unit", 10, Unit("x"), ErrUnknownUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromKPL(tt.kpl, tt.unit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FromKPL() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"10", 10, false},
		{" 3.54\n", 3.54, false},
		{"1e2", 100, false},
		{".5", 0.5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestResultMapCoversEveryUnit(t *testing.T) {
	m := Convert("10", ImperialMPG).Map()
	if len(m) != len(Units()) {
		t.Fatalf("expected %d entries, got %d", len(Units()), len(m))
	}
	if m[KmPerLiter] != "3.54" {
		t.Errorf("expected kpl 3.54, got %s", m[KmPerLiter])
	}
}
