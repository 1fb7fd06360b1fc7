package dates

import (
	"testing"
	"time"
)

func TestYear_UTCRegardlessOfLocalZone(t *testing.T) {
	old := time.Local
	t.Cleanup(func() { time.Local = old })
	for _, zone := range []*time.Location{time.FixedZone("west", -11*3600), time.FixedZone("east", 14*3600)} {
		time.Local = zone
		if y, ok := Year("2020-03-15T00:00:00Z"); !ok || y != 2020 {
			t.Fatalf("Year in %s: got %d %v", zone, y, ok)
		}
		if y, ok := Year("2020-01-01"); !ok || y != 2020 {
			t.Fatalf("Year date-only in %s: got %d %v", zone, y, ok)
		}
	}
}

func TestYear_OffsetConvertedToUTC(t *testing.T) {
	if y, ok := Year("2020-12-31T23:00:00-05:00"); !ok || y != 2021 {
		t.Fatalf("want 2021 in UTC, got %d %v", y, ok)
	}
}

func TestYear_Malformed(t *testing.T) {
	for _, s := range []string{"", "  ", "soon", "2020-13-45", "31/31/31"} {
		if y, ok := Year(s); ok {
			t.Fatalf("Year(%q) should be absent, got %d", s, y)
		}
	}
}

func TestParse_Precision(t *testing.T) {
	cases := []struct {
		in   string
		prec Precision
		apa  string
	}{
		{"2021", PrecisionYear, "2021"},
		{"2021-03", PrecisionMonth, "2021, March"},
		{"2021-03-15", PrecisionDay, "2021, March 15"},
		{"2021-03-15T10:00:00Z", PrecisionDay, "2021, March 15"},
		{"March 15, 2021", PrecisionDay, "2021, March 15"},
		{"Mon, 15 Mar 2021 10:00:00 GMT", PrecisionDay, "2021, March 15"},
	}
	for _, c := range cases {
		d, ok := Parse(c.in)
		if !ok {
			t.Fatalf("Parse(%q) failed", c.in)
		}
		if d.Precision != c.prec {
			t.Fatalf("Parse(%q) precision %d want %d", c.in, d.Precision, c.prec)
		}
		if got := APA(d); got != c.apa {
			t.Fatalf("APA(%q)=%q want %q", c.in, got, c.apa)
		}
	}
}

func TestExtractYear(t *testing.T) {
	if y := ExtractYear("Published in 1987 by X"); y != 1987 {
		t.Fatalf("ExtractYear: want 1987, got %d", y)
	}
	if y := ExtractYear("March 1999"); y != 1999 {
		t.Fatalf("ExtractYear: want 1999, got %d", y)
	}
	if y := ExtractYear("year 9999"); y != 0 {
		t.Fatalf("ExtractYear invalid: want 0, got %d", y)
	}
}

func TestExtractYear_FixedCeiling(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"Reprinted 2100", 2100},
		{"Vol. 2101 of 1950", 1950},
		{"no year here", 0},
		{"0999", 0},
	}
	for _, c := range cases {
		if got := ExtractYear(c.in); got != c.want {
			t.Fatalf("ExtractYear(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
