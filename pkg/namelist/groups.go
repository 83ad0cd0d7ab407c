package namelist

// Many is a transparent wrapper around an ordered sequence of entries.
// During classification its entries are spliced, recursively, into the
// owning namelist's entry list as if they had been declared inline;
// Many itself never produces output.
type Many struct {
	Entries []Entry
	Msgs    []string
}

func (m *Many) entry() {}

// Multi holds N structurally identical parameter groups. A namelist
// containing a Multi expands to one record per group: the namelist's
// invariant parameters followed by that group's parameters. The label
// set of the first group decides which invariant parameters are
// shadowed (the groups supply per-record values for those labels).
//
// A namelist may hold at most one Multi, and a Multi must hold at
// least one group; both are checked during classification.
type Multi struct {
	Groups [][]*Param
	Msgs   []string
}

func (m *Multi) entry() {}
