package fuel

import (
	"errors"
	"testing"
)

func TestCleanPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"13,49", 13.49},
		{"13.49", 13.49},
		{" 13,49 ", 13.49},
		{"Pris inkl. moms: 12,345 kr.", 12.35},
		{"14,99 kr.", 14.99},
		{"10,995", 11.00},
		{"10,994", 10.99},
		{"1.234", 1.23},
		{"15", 15.00},
	}
	for _, tc := range cases {
		got, err := CleanPrice(tc.raw)
		if err != nil {
			t.Fatalf("CleanPrice(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("CleanPrice(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCleanPriceInvalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "12,34,56", "kr."} {
		_, err := CleanPrice(raw)
		if err == nil {
			t.Fatalf("CleanPrice(%q): expected error", raw)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("CleanPrice(%q): error %T, want *ParseError", raw, err)
		}
	}
}

func TestCleanProductName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Beskrivelse: Blyfri 95", "Blyfri 95"},
		{"  miles95.  ", "miles95."},
		{"Diesel", "Diesel"},
	}
	for _, tc := range cases {
		if got := CleanProductName(tc.raw); got != tc.want {
			t.Errorf("CleanProductName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRoundPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.995, 11.00},
		{10.994, 10.99},
		{13.49, 13.49},
		{15, 15},
	}
	for _, tc := range cases {
		if got := RoundPrice(tc.in); got != tc.want {
			t.Errorf("RoundPrice(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{11, "11.00"},
		{13.49, "13.49"},
		{10.9, "10.90"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.in); got != tc.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
