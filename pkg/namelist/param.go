package namelist

import (
	"strconv"
	"strings"
)

// Param is a single namelist parameter: a label plus zero or more
// scalar values. A Param without values is a bare flag and is emitted
// as the label alone. The label is set at construction and must match
// the FDS identifier grammar: an ASCII letter followed by letters,
// digits, '_', '(', ')', ':' or ','.
type Param struct {
	Label string

	// Values is the ordered value list. Multiple values are emitted
	// comma-joined with no surrounding brackets.
	Values []Value

	// Precision is the number of decimal digits used for float values.
	// Zero selects the shortest fixed-point form that round-trips.
	Precision int

	// Kind, when not KindAny, is the scalar kind ParseValues coerces
	// every fragment to.
	Kind Kind

	// Msgs are comment lines attached to this parameter. They are
	// merged into the owning namelist's comment output.
	Msgs []string
}

func (p *Param) entry() {}

// NewParam returns a Param with the given label and values.
func NewParam(label string, values ...Value) *Param {
	return &Param{Label: label, Values: values}
}

// Token renders the full parameter token: "LABEL=v1,v2,..." for a
// valued parameter, or "LABEL" for a bare flag.
func (p *Param) Token() string {
	vs := p.formattedValues()
	if len(vs) == 0 {
		return p.Label
	}
	return p.Label + "=" + strings.Join(vs, ",")
}

// formattedValues renders each value to its FDS literal form.
func (p *Param) formattedValues() []string {
	if len(p.Values) == 0 {
		return nil
	}
	out := make([]string, len(p.Values))
	for i, v := range p.Values {
		out[i] = v.format(p.Precision)
	}
	return out
}

// ParseValues fills p.Values from raw FDS value text, e.g.
// "2.34, 1.23, 3.44" or "'a','b'". The text is split on top-level
// commas (commas inside quoted strings do not split). Each fragment is
// coerced to p.Kind when set, otherwise the first of bool, int, float,
// string that accepts it wins.
func (p *Param) ParseValues(raw string) error {
	frags, err := splitValues(raw)
	if err != nil {
		return err
	}
	values := make([]Value, 0, len(frags))
	for _, frag := range frags {
		v, err := coerce(frag, p.Kind)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	p.Values = values
	return nil
}

// splitValues splits raw value text on commas outside quoted strings.
// Fragments are trimmed of surrounding whitespace; empty fragments are
// dropped. An unterminated quote is a ParseError.
func splitValues(raw string) ([]string, error) {
	var frags []string
	var quoteCh byte
	start := 0
	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case quoteCh != 0:
			if ch == quoteCh {
				// A doubled quote inside a single-quoted string is an
				// escaped quote, not a terminator.
				if ch == '\'' && i+1 < len(raw) && raw[i+1] == '\'' {
					i++
				} else {
					quoteCh = 0
				}
			}
		case ch == '\'' || ch == '"':
			quoteCh = ch
		case ch == ',':
			frags = append(frags, raw[start:i])
			start = i + 1
		}
		i++
	}
	if quoteCh != 0 {
		return nil, parseErrorf("unterminated %q quote in value %q", string(quoteCh), raw)
	}
	frags = append(frags, raw[start:])

	out := frags[:0]
	for _, f := range frags {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

// coerce converts one trimmed value fragment to a typed Value. With
// kind == KindAny the accepted interpretations are tried in the order
// bool, int, float, string; quoted fragments are always strings.
func coerce(frag string, kind Kind) (Value, error) {
	quoted := len(frag) > 0 && (frag[0] == '\'' || frag[0] == '"')

	switch kind {
	case KindBool:
		if v, ok := parseBool(frag); ok {
			return Bool(v), nil
		}
		return Value{}, parseErrorf("cannot parse %q as bool", frag)
	case KindInt:
		if v, err := strconv.ParseInt(frag, 10, 64); err == nil {
			return Int(v), nil
		}
		return Value{}, parseErrorf("cannot parse %q as int", frag)
	case KindFloat:
		if v, ok := parseFloat(frag); ok {
			return Float(v), nil
		}
		return Value{}, parseErrorf("cannot parse %q as float", frag)
	case KindString:
		s, err := unquote(frag)
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	}

	if !quoted {
		if v, ok := parseBool(frag); ok {
			return Bool(v), nil
		}
		if v, err := strconv.ParseInt(frag, 10, 64); err == nil {
			return Int(v), nil
		}
		if v, ok := parseFloat(frag); ok {
			return Float(v), nil
		}
	}
	s, err := unquote(frag)
	if err != nil {
		return Value{}, err
	}
	return Str(s), nil
}

// parseBool recognizes the FDS boolean literal forms.
func parseBool(frag string) (bool, bool) {
	switch strings.ToUpper(frag) {
	case ".TRUE.", "T":
		return true, true
	case ".FALSE.", "F":
		return false, true
	}
	return false, false
}

// parseFloat accepts Go float syntax plus the Fortran "D" exponent
// marker (1.5D-3).
func parseFloat(frag string) (float64, bool) {
	s := frag
	if i := strings.IndexAny(s, "dD"); i >= 0 {
		s = s[:i] + "E" + s[i+1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// unquote strips a surrounding quote pair and undoubles internal
// single quotes. A bare fragment is returned as-is.
func unquote(frag string) (string, error) {
	if len(frag) == 0 {
		return "", nil
	}
	q := frag[0]
	if q != '\'' && q != '"' {
		return frag, nil
	}
	if len(frag) < 2 || frag[len(frag)-1] != q {
		return "", parseErrorf("unterminated string literal %q", frag)
	}
	body := frag[1 : len(frag)-1]
	if q == '\'' {
		body = strings.ReplaceAll(body, "''", "'")
	}
	return body, nil
}

// validLabel reports whether s matches the parameter label grammar.
func validLabel(s string) bool {
	if len(s) == 0 || !isLabelStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isLabelChar(s[i]) {
			return false
		}
	}
	return true
}

func isLabelStart(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}

func isLabelChar(ch byte) bool {
	return isLabelStart(ch) ||
		ch >= '0' && ch <= '9' ||
		ch == '_' || ch == '(' || ch == ')' || ch == ':' || ch == ','
}
