// Package casefile splits whole FDS case documents into namelist
// records and renders namelist sequences back to documents. It owns
// record boundary detection only; record bodies are decoded by
// pkg/namelist.
package casefile

import (
	"fmt"
	"strings"

	"github.com/openfds/fdskit/pkg/namelist"
)

// Record is one "&LABEL ... /" occurrence in a document.
type Record struct {
	// Label is the group label following the '&'.
	Label string

	// Body is the raw parameter text between the label and the
	// terminating '/', exactly as found (may span lines).
	Body string

	// Line is the 1-based line number of the '&'.
	Line int

	// Comments are the non-empty free-text lines found between the
	// previous record and this one. FDS treats everything outside
	// records as commentary.
	Comments []string
}

// Document is an ordered sequence of records plus any trailing
// free text after the last record.
type Document struct {
	Records  []*Record
	Trailing []string
}

// Split scans src into a Document. A record starts at an '&' outside
// any record and ends at the first '/' outside quoted strings; quotes
// protect both '&' and '/'. A record with no terminating '/' is an
// error.
func Split(src string) (*Document, error) {
	doc := &Document{}
	var free []string
	line := 1
	i := 0
	freeStart := 0

	flushFree := func(end int) {
		for _, l := range strings.Split(src[freeStart:end], "\n") {
			l = strings.TrimSpace(l)
			if l != "" {
				free = append(free, l)
			}
		}
	}

	for i < len(src) {
		ch := src[i]
		if ch == '\n' {
			line++
			i++
			continue
		}
		if ch != '&' {
			i++
			continue
		}

		flushFree(i)
		recLine := line
		i++

		start := i
		for i < len(src) && isGroupChar(src[i]) {
			i++
		}
		label := src[start:i]
		if label == "" {
			return nil, fmt.Errorf("line %d: '&' without a group label", recLine)
		}

		bodyStart := i
		var quoteCh byte
		terminated := false
		for i < len(src) {
			ch := src[i]
			switch {
			case quoteCh != 0:
				if ch == quoteCh {
					quoteCh = 0
				}
			case ch == '\'' || ch == '"':
				quoteCh = ch
			case ch == '/':
				terminated = true
			}
			if ch == '\n' {
				line++
			}
			i++
			if terminated {
				break
			}
		}
		if !terminated {
			return nil, fmt.Errorf("line %d: record &%s has no terminating '/'", recLine, label)
		}

		doc.Records = append(doc.Records, &Record{
			Label:    label,
			Body:     strings.TrimSpace(src[bodyStart : i-1]),
			Line:     recLine,
			Comments: free,
		})
		free = nil
		freeStart = i
	}

	flushFree(len(src))
	doc.Trailing = free
	return doc, nil
}

// Decode parses every record body into a Namelist. Record comments
// become the namelist's messages, with any leading "!" stripped.
func (d *Document) Decode(strict bool) ([]*namelist.Namelist, error) {
	nls := make([]*namelist.Namelist, 0, len(d.Records))
	for _, rec := range d.Records {
		nl := &namelist.Namelist{Label: rec.Label}
		for _, c := range rec.Comments {
			nl.Msgs = append(nl.Msgs, strings.TrimSpace(strings.TrimPrefix(c, "!")))
		}
		var err error
		if strict {
			err = nl.ParseStrict(rec.Body)
		} else {
			err = nl.Parse(rec.Body)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: record &%s: %w", rec.Line, rec.Label, err)
		}
		nls = append(nls, nl)
	}
	return nls, nil
}

// Render serializes namelists into one document, one block per
// namelist, ending with a newline.
func Render(nls []*namelist.Namelist) (string, error) {
	var b strings.Builder
	for _, nl := range nls {
		block, err := nl.Format()
		if err != nil {
			return "", err
		}
		if block == "" {
			continue
		}
		b.WriteString(block)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// isGroupChar reports whether ch may appear in a record group label.
func isGroupChar(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' ||
		ch >= '0' && ch <= '9' || ch == '_'
}
