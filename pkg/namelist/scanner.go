package namelist

import "strings"

// Parse scans body, the raw parameter text of one record (group label
// and the trailing "/" already removed by the caller), and appends one
// Param per label=value match in encountered order. Line breaks inside
// the body are joined with single spaces before scanning, so wrapped
// records parse the same as single-line ones.
//
// Segments that do not match the grammar (a label with no "=", stray
// characters) are silently skipped, matching the behavior existing
// case files depend on. Use ParseStrict to reject them instead.
// Value text that matches the grammar but cannot be coerced to any
// scalar kind returns a *ParseError in both modes.
func (nl *Namelist) Parse(body string) error {
	return nl.parse(body, false)
}

// ParseStrict is Parse with malformed segments reported as a
// *ParseError instead of skipped.
func (nl *Namelist) ParseStrict(body string) error {
	return nl.parse(body, true)
}

func (nl *Namelist) parse(body string, strict bool) error {
	spans, err := scanParams(joinLines(body), strict)
	if err != nil {
		return err
	}
	for _, sp := range spans {
		p := &Param{Label: sp.label}
		if sp.value != "" {
			if err := p.ParseValues(sp.value); err != nil {
				return err
			}
		}
		nl.Entries = append(nl.Entries, p)
	}
	return nil
}

// joinLines collapses a possibly wrapped record body onto one line.
func joinLines(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Join(strings.Split(strings.TrimSpace(body), "\n"), " ")
}

// span is one label/value match produced by scanParams.
type span struct {
	label string
	value string
}

// scanParams splits s into label/value spans with a single linear
// pass. A value run extends to the next "LABEL=" occurrence or end of
// input; quoted substrings are atomic, so neither "=" nor separators
// inside them end a value.
func scanParams(s string, strict bool) ([]span, error) {
	var spans []span
	i := 0
	for i < len(s) {
		for i < len(s) && isSep(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		if !isLabelStart(s[i]) {
			if strict {
				return nil, parseErrorf("unexpected character %q at offset %d", string(s[i]), i)
			}
			i++
			continue
		}

		start := i
		for i < len(s) && isLabelChar(s[i]) {
			i++
		}
		// Trailing commas on a label are separators, not label text.
		label := strings.TrimRight(s[start:i], ",")
		i = start + len(label)

		j := i
		for j < len(s) && isSep(s[j]) {
			j++
		}
		if j >= len(s) || s[j] != '=' {
			if strict {
				return nil, parseErrorf("segment %q has no '='", label)
			}
			// Resync one byte past the label start so embedded
			// matches are still found.
			i = start + 1
			continue
		}
		j++
		for j < len(s) && isSep(s[j]) {
			j++
		}

		end, ok := scanValue(s, j)
		if !ok {
			if strict {
				return nil, parseErrorf("unterminated quote in value of %q", label)
			}
			// An unterminated quote defeats any further match.
			break
		}
		spans = append(spans, span{
			label: label,
			value: strings.TrimRight(s[j:end], " \t,"),
		})
		i = end
	}
	return spans, nil
}

// scanValue returns the end of the value run starting at j: the first
// position where a separator run is followed by "LABEL=", or the end
// of input. ok is false when a quote opened inside the value is never
// closed.
func scanValue(s string, j int) (end int, ok bool) {
	k := j
	for k < len(s) {
		ch := s[k]
		if ch == '\'' || ch == '"' {
			close := strings.IndexByte(s[k+1:], ch)
			if close < 0 {
				return len(s), false
			}
			k += close + 2
			continue
		}
		if isSep(ch) {
			m := k
			for m < len(s) && isSep(s[m]) {
				m++
			}
			if labelBoundary(s, m) {
				return k, true
			}
			k = m
			continue
		}
		k++
	}
	return k, true
}

// labelBoundary reports whether a "LABEL=" occurrence starts at m.
func labelBoundary(s string, m int) bool {
	if m >= len(s) || !isLabelStart(s[m]) {
		return false
	}
	for m < len(s) && isLabelChar(s[m]) {
		m++
	}
	// Commas trailing the label are separators before the '='.
	for m < len(s) && isSep(s[m]) {
		m++
	}
	return m < len(s) && s[m] == '='
}

func isSep(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == ','
}
