package repository

import "testing"

func TestNormalizePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
	}{
		{"", PYTD},
		{"1d", P1D},
		{"5y", P5Y},
		{"max", PMax},
		{"bogus", PYTD},
		{"1D", PYTD}, // case sensitive, falls back
	}
	for _, c := range cases {
		if got := NormalizePeriod(c.in); got != c.want {
			t.Errorf("NormalizePeriod(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPeriodInterval(t *testing.T) {
	cases := []struct {
		p    Period
		want string
	}{
		{P1D, "1m"},
		{P5D, "1h"},
		{P1Mo, "1d"},
		{PYTD, "1d"},
		{PMax, "1d"},
	}
	for _, c := range cases {
		if got := c.p.Interval(); got != c.want {
			t.Errorf("%s.Interval() = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	if got := PYTD.Range(); got != "max" {
		t.Errorf("ytd range = %q, want max (trimmed client-side)", got)
	}
	if got := P1Y.Range(); got != "1y" {
		t.Errorf("1y range = %q, want 1y", got)
	}
}

func TestPeriodIntraday(t *testing.T) {
	for _, p := range AllPeriods() {
		want := p == P1D || p == P5D
		if got := p.Intraday(); got != want {
			t.Errorf("%s.Intraday() = %v, want %v", p, got, want)
		}
	}
}
