// Package canon applies a formatting policy to whole FDS case
// documents: parse, normalize and re-render in the canonical wrapped
// form, optionally steered by a YAML options file.
package canon

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/openfds/fdskit/pkg/casefile"
	"github.com/openfds/fdskit/pkg/namelist"
)

// Options is the formatting policy. The zero value is usable: lenient
// parsing, no precision overrides, no header.
type Options struct {
	// Precision maps parameter labels to the decimal digit count used
	// when re-rendering their float values (e.g. XB: 3, T_END: 1).
	Precision map[string]int `yaml:"precision"`

	// Strict rejects malformed parameter segments instead of
	// skipping them.
	Strict bool `yaml:"strict"`

	// Header lines are emitted as "! text" comments at the top of the
	// canonical output.
	Header []string `yaml:"header"`
}

// LoadOptions reads an Options YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	return &opts, nil
}

// Result is the outcome of one Canonicalize call.
type Result struct {
	// Text is the canonical document.
	Text string

	// Records is the number of records rendered.
	Records int

	// Warnings lists group labels not known to the solver. They do
	// not fail canonicalization.
	Warnings []string
}

// Canonicalize parses src and re-renders it in canonical form. Float
// parameters named in opts.Precision keep that many decimal digits;
// other values take their shortest form.
func Canonicalize(src string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	doc, err := casefile.Split(src)
	if err != nil {
		return nil, err
	}
	nls, err := doc.Decode(opts.Strict)
	if err != nil {
		return nil, err
	}

	var warnings []string
	seen := make(map[string]bool)
	for _, nl := range nls {
		if _, ok := namelist.KnownGroups[nl.Label]; !ok && !seen[nl.Label] {
			seen[nl.Label] = true
			warnings = append(warnings, fmt.Sprintf("unknown namelist group &%s", nl.Label))
		}
		applyPrecision(nl, opts.Precision)
	}

	if len(opts.Header) > 0 {
		head := &namelist.Namelist{Msgs: opts.Header}
		nls = append([]*namelist.Namelist{head}, nls...)
	}

	text, err := casefile.Render(nls)
	if err != nil {
		return nil, err
	}
	return &Result{Text: text, Records: len(doc.Records), Warnings: warnings}, nil
}

// applyPrecision sets the precision of float parameters whose label
// has an override. Parsed integer literals under an overridden label
// are promoted to floats so they render with the decimals too.
func applyPrecision(nl *namelist.Namelist, precision map[string]int) {
	if len(precision) == 0 {
		return
	}
	for _, p := range nl.Params() {
		digits, ok := precision[p.Label]
		if !ok {
			continue
		}
		p.Precision = digits
		for i, v := range p.Values {
			if v.Kind() == namelist.KindInt {
				p.Values[i] = namelist.Float(float64(v.Int()))
			}
		}
	}
}
