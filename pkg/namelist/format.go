package namelist

import "strings"

// maxLineLen is the column budget for formatted record lines.
const maxLineLen = 80

// Format renders the namelist as FDS text. Comment lines come first,
// then the blocks of nested namelists, then the record lines of this
// namelist (one record per Multi sub-group, or a single record).
// Output is deterministic: the same tree always yields the same bytes.
func (nl *Namelist) Format() (string, error) {
	if nl.Label != "" && !validLabel(nl.Label) {
		return "", constructionErrorf("invalid group label %q", nl.Label)
	}
	c, err := classify(nl)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, m := range c.msgs {
		if m != "" {
			lines = append(lines, "! "+m)
		}
	}
	for _, sub := range c.additional {
		block, err := sub.Format()
		if err != nil {
			return "", err
		}
		lines = append(lines, block)
	}
	if nl.Label != "" {
		for _, rec := range c.records() {
			lines = append(lines, formatRecord(nl.Label, rec)...)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// formatRecord renders one "&LABEL ... /" record, greedily packing
// parameter tokens left to right. A token that does not fit moves to a
// 6-space-indented continuation line; a value list too long for a line
// of its own is split at comma boundaries onto 8-space-indented lines,
// with the last fragment's trailing comma removed.
func formatRecord(label string, rec []*Param) []string {
	var lines []string
	newline := false
	line := "&" + label
	for _, p := range rec {
		if p.Label == "" {
			continue
		}
		vs := p.formattedValues()
		if len(vs) == 0 {
			// Bare flag.
			if !newline && len(line)+1+len(p.Label) <= maxLineLen {
				line += " " + p.Label
			} else {
				lines = append(lines, line)
				line = "      " + p.Label
			}
			continue
		}
		v := strings.Join(vs, ",")
		if !newline && len(line)+1+len(p.Label)+1+len(v) <= maxLineLen {
			line += " " + p.Label + "=" + v
			continue
		}
		lines = append(lines, line)
		line = "      " + p.Label + "="
		if len(line)+len(v) <= maxLineLen {
			line += v
			continue
		}
		// Value list does not fit on a line of its own: split it.
		// Every following parameter starts a fresh line.
		newline = true
		for _, fv := range vs {
			if len(line)+len(fv)+1 <= maxLineLen {
				line += fv + ","
			} else {
				lines = append(lines, line)
				line = "        " + fv + ","
			}
		}
		line = line[:len(line)-1]
	}
	line += " /"
	lines = append(lines, line)
	return lines
}
