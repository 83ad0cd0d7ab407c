package namelist

import (
	"errors"
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	nl := &Namelist{Label: "OBST"}
	if err := nl.Parse("ID='Test' PROP=2.34, 1.23, 3.44"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 2 {
		t.Fatalf("got %d params, want 2", len(ps))
	}
	if ps[0].Label != "ID" || ps[0].Values[0].Str() != "Test" {
		t.Errorf("param 0 = %+v", ps[0])
	}
	if ps[1].Label != "PROP" || len(ps[1].Values) != 3 || ps[1].Values[2].Float() != 3.44 {
		t.Errorf("param 1 = %+v", ps[1])
	}
}

func TestParseJoinsWrappedLines(t *testing.T) {
	body := "ID='Long'\n      XB=0.0,1.0,\n        2.0,3.0 COLOR='RED'"
	nl := &Namelist{Label: "OBST"}
	if err := nl.Parse(body); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 3 {
		t.Fatalf("got %d params, want 3: %+v", len(ps), ps)
	}
	if len(ps[1].Values) != 4 || ps[1].Values[3].Float() != 3.0 {
		t.Errorf("XB = %+v", ps[1])
	}
}

func TestParseQuotedValueWithEquals(t *testing.T) {
	nl := &Namelist{Label: "HEAD"}
	if err := nl.Parse("CHID='a=b' TITLE='x, y'"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 2 {
		t.Fatalf("got %d params, want 2", len(ps))
	}
	if ps[0].Values[0].Str() != "a=b" {
		t.Errorf("CHID = %q, want a=b", ps[0].Values[0].Str())
	}
	if ps[1].Values[0].Str() != "x, y" {
		t.Errorf("TITLE = %q, want x, y", ps[1].Values[0].Str())
	}
}

func TestParseCommaSeparatedParams(t *testing.T) {
	nl := &Namelist{Label: "TIME"}
	if err := nl.Parse("T_BEGIN=0.0, T_END=3600.0"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 2 {
		t.Fatalf("got %d params, want 2: %+v", len(ps), ps)
	}
	if ps[0].Values[0].Float() != 0 || ps[1].Values[0].Float() != 3600 {
		t.Errorf("values = %+v %+v", ps[0].Values, ps[1].Values)
	}
}

func TestParseLenientSkipsMalformed(t *testing.T) {
	// "5BAD" cannot start a label; the scanner resyncs and still finds
	// the valid parameter after it.
	nl := &Namelist{Label: "OBST"}
	if err := nl.Parse("5BAD ID='ok'"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 1 || ps[0].Label != "ID" {
		t.Fatalf("got %+v, want single ID param", ps)
	}
}

func TestParseStrictRejectsMalformed(t *testing.T) {
	nl := &Namelist{Label: "OBST"}
	err := nl.ParseStrict("5BAD ID='ok'")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseStrict = %v, want *ParseError", err)
	}
}

func TestParseStrictUnterminatedQuote(t *testing.T) {
	nl := &Namelist{Label: "OBST"}
	err := nl.ParseStrict("ID='oops")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseStrict = %v, want *ParseError", err)
	}

	// Lenient mode drops the segment instead.
	nl = &Namelist{Label: "OBST"}
	if err := nl.Parse("ID='oops"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nl.Params()) != 0 {
		t.Errorf("got %+v, want no params", nl.Params())
	}
}

func TestParseSpaceSeparatedValues(t *testing.T) {
	nl := &Namelist{Label: "MESH"}
	if err := nl.Parse("IJK=10 20 30 XB=0.0,1.0,0.0,1.0,0.0,1.0"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps := nl.Params()
	if len(ps) != 2 {
		t.Fatalf("got %d params, want 2: %+v", len(ps), ps)
	}
	if got := ps[0].Values; len(got) != 1 || got[0].Str() != "10 20 30" {
		// Space-separated integers stay one raw fragment and fall back
		// to a string; top-level splitting is on commas only.
		t.Errorf("IJK = %+v", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	nl := New("OBST",
		NewParam("ID", Str("O'Brien")),
		&Param{Label: "XB", Values: Floats(0, 1, 0, 1, 0, 1), Precision: 3},
		NewParam("SURF_ID", Str("INERT")),
		&Param{Label: "RGB", Values: Ints(200, 100, 50)},
	)
	text, err := nl.Format()
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	body := strings.TrimSuffix(strings.TrimPrefix(text, "&OBST "), " /")
	parsed := &Namelist{Label: "OBST"}
	if err := parsed.Parse(body); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := nl.Params()
	got := parsed.Params()
	if len(got) != len(want) {
		t.Fatalf("got %d params, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Label != want[i].Label {
			t.Errorf("param %d label = %q, want %q", i, got[i].Label, want[i].Label)
			continue
		}
		if len(got[i].Values) != len(want[i].Values) {
			t.Errorf("param %s: %d values, want %d", got[i].Label, len(got[i].Values), len(want[i].Values))
			continue
		}
		for j, v := range got[i].Values {
			if v != want[i].Values[j] {
				t.Errorf("param %s value %d = %+v, want %+v", got[i].Label, j, v, want[i].Values[j])
			}
		}
	}
}

func TestScanValueBoundary(t *testing.T) {
	tests := []struct {
		in   string
		want []span
	}{
		{
			"A=1 B=2",
			[]span{{"A", "1"}, {"B", "2"}},
		},
		{
			"A='x y' B=2",
			[]span{{"A", "'x y'"}, {"B", "2"}},
		},
		{
			"A=1,2, 3 B=2",
			[]span{{"A", "1,2, 3"}, {"B", "2"}},
		},
		{
			// No separator before the second "=", so the rest of the
			// input is one raw value.
			"A= B=1",
			[]span{{"A", "B=1"}},
		},
		{
			"A=",
			[]span{{"A", ""}},
		},
	}
	for _, tt := range tests {
		got, err := scanParams(tt.in, false)
		if err != nil {
			t.Errorf("scanParams(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("scanParams(%q) = %+v, want %+v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("scanParams(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
