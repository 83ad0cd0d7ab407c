// Package namelist implements the FDS namelist text codec: formatting
// an in-memory parameter tree to byte-exact `&LABEL key=value ... /`
// records and parsing raw record bodies back into typed parameters.
package namelist

// Entry is one element of a namelist's entry list. The concrete types
// are Param, Namelist, Many and Multi; the set is closed.
type Entry interface {
	entry()
}

// Namelist is one logical group of parameters. It may expand to
// several physical records when it contains a Multi.
type Namelist struct {
	// Label is the record group label ("OBST", "TIME", ...). A
	// namelist without a label produces only its comment lines and
	// nested namelist blocks.
	Label string

	// Entries is the ordered entry list: parameters, nested
	// namelists, Many and at most one Multi.
	Entries []Entry

	// Msgs are comment lines emitted as "! text" before the records.
	Msgs []string
}

func (nl *Namelist) entry() {}

// New returns a Namelist with the given group label and entries.
func New(label string, entries ...Entry) *Namelist {
	return &Namelist{Label: label, Entries: entries}
}

// Add appends entries to the namelist.
func (nl *Namelist) Add(entries ...Entry) {
	nl.Entries = append(nl.Entries, entries...)
}

// Get returns the first Param entry with the given label, or nil.
func (nl *Namelist) Get(label string) *Param {
	for _, e := range nl.Entries {
		if p, ok := e.(*Param); ok && p.Label == label {
			return p
		}
	}
	return nil
}

// Take removes and returns the first Param entry with the given label,
// preserving the relative order of the remaining entries. It returns
// nil when no Param matches.
func (nl *Namelist) Take(label string) *Param {
	for i, e := range nl.Entries {
		if p, ok := e.(*Param); ok && p.Label == label {
			nl.Entries = append(nl.Entries[:i], nl.Entries[i+1:]...)
			return p
		}
	}
	return nil
}

// Params returns the Param entries in order, skipping other entry
// kinds.
func (nl *Namelist) Params() []*Param {
	var out []*Param
	for _, e := range nl.Entries {
		if p, ok := e.(*Param); ok {
			out = append(out, p)
		}
	}
	return out
}

// classified holds the working state of one Format call. It is local
// to the call; nothing is stored back on the Namelist.
type classified struct {
	invariant  []*Param
	additional []*Namelist
	multi      *Multi
	msgs       []string
}

// classify walks the entry list once, splitting it into invariant
// parameters, nested namelists and the optional Multi. Many entries
// are spliced recursively in place. Comment lines of parameters and
// groups are merged into the namelist's own.
func classify(nl *Namelist) (*classified, error) {
	c := &classified{msgs: append([]string(nil), nl.Msgs...)}
	if err := c.addEntries(nl.Entries); err != nil {
		return nil, err
	}
	if c.multi != nil && len(c.multi.Groups) == 0 {
		return nil, constructionErrorf("namelist %s: multi group has no sub-groups", nl.Label)
	}
	for _, p := range c.invariant {
		if !validLabel(p.Label) {
			return nil, constructionErrorf("namelist %s: invalid parameter label %q", nl.Label, p.Label)
		}
	}
	if c.multi != nil {
		for _, group := range c.multi.Groups {
			for _, p := range group {
				if !validLabel(p.Label) {
					return nil, constructionErrorf("namelist %s: invalid parameter label %q", nl.Label, p.Label)
				}
			}
		}
	}
	return c, nil
}

func (c *classified) addEntries(entries []Entry) error {
	for _, e := range entries {
		switch e := e.(type) {
		case nil:
			continue
		case *Param:
			if e == nil {
				continue
			}
			c.invariant = append(c.invariant, e)
			c.addMsgs(e.Msgs)
		case *Namelist:
			if e == nil {
				continue
			}
			c.additional = append(c.additional, e)
		case *Many:
			if e == nil {
				continue
			}
			if err := c.addEntries(e.Entries); err != nil {
				return err
			}
			c.addMsgs(e.Msgs)
		case *Multi:
			if e == nil {
				continue
			}
			if c.multi != nil {
				return constructionErrorf("more than one multi group in a namelist")
			}
			c.multi = e
			c.addMsgs(e.Msgs)
		}
	}
	return nil
}

func (c *classified) addMsgs(msgs []string) {
	c.msgs = append(c.msgs, msgs...)
}

// records synthesizes the physical record list. With a Multi, the
// label set of its first group shadows matching invariant parameters
// and each group becomes one record; otherwise the invariant
// parameters form a single record.
func (c *classified) records() [][]*Param {
	if c.multi == nil {
		return [][]*Param{c.invariant}
	}

	shadowed := make(map[string]bool, len(c.multi.Groups[0]))
	for _, p := range c.multi.Groups[0] {
		shadowed[p.Label] = true
	}
	invariant := make([]*Param, 0, len(c.invariant))
	for _, p := range c.invariant {
		if !shadowed[p.Label] {
			invariant = append(invariant, p)
		}
	}

	recs := make([][]*Param, 0, len(c.multi.Groups))
	for _, group := range c.multi.Groups {
		rec := make([]*Param, 0, len(invariant)+len(group))
		rec = append(rec, invariant...)
		rec = append(rec, group...)
		recs = append(recs, rec)
	}
	return recs
}
