// Package args holds the option set parsed from the rip command line and the
// rules that decide whether a combination of flags names a single operation.
package args

import "slices"

// UnburyKind distinguishes the three states of the --unbury flag.
type UnburyKind int

const (
	// UnburyNotRequested means --unbury was not given.
	UnburyNotRequested UnburyKind = iota
	// UnburyMostRecent means --unbury was given without paths.
	UnburyMostRecent
	// UnburySpecific means --unbury was given with one or more paths.
	UnburySpecific
)

// Unbury is the restore request carried by an option set.
type Unbury struct {
	kind  UnburyKind
	paths []string
}

// NoUnbury returns a request that restores nothing.
func NoUnbury() Unbury {
	return Unbury{kind: UnburyNotRequested}
}

// RestoreMostRecent returns a request for the last buried item.
func RestoreMostRecent() Unbury {
	return Unbury{kind: UnburyMostRecent}
}

// RestoreSpecific returns a request for the given paths. With no paths it is
// the same as RestoreMostRecent.
func RestoreSpecific(paths ...string) Unbury {
	if len(paths) == 0 {
		return RestoreMostRecent()
	}
	return Unbury{kind: UnburySpecific, paths: slices.Clone(paths)}
}

// Kind returns which restore was asked for.
func (u Unbury) Kind() UnburyKind { return u.kind }

// Requested reports whether a restore was asked for at all.
func (u Unbury) Requested() bool { return u.kind != UnburyNotRequested }

// Paths returns a copy of the requested paths.
func (u Unbury) Paths() []string { return slices.Clone(u.paths) }

// Equal compares kind and, for specific requests, the ordered path list.
func (u Unbury) Equal(other Unbury) bool {
	return u.kind == other.kind && slices.Equal(u.paths, other.paths)
}

// Options is every flag exactly as supplied on the command line. Optional
// values are nil when the flag was absent.
type Options struct {
	Targets     []string
	Graveyard   *string
	Decompose   bool
	Force       bool
	Seance      bool
	Unbury      Unbury
	Inspect     bool
	Completions *string
}

// Default returns the option set produced when no flag is supplied.
func Default() Options {
	return Options{Unbury: NoUnbury()}
}

// StringPtr is a convenience for building optional values.
func StringPtr(s string) *string {
	return &s
}

// isDefault records, per flag, whether the option set left it untouched.
type isDefault struct {
	graveyard   bool
	decompose   bool
	force       bool
	seance      bool
	unbury      bool
	inspect     bool
	completions bool
}

func newIsDefault(opts Options) isDefault {
	defaults := Default()
	return isDefault{
		graveyard:   optionalEqual(opts.Graveyard, defaults.Graveyard),
		decompose:   opts.Decompose == defaults.Decompose,
		force:       opts.Force == defaults.Force,
		seance:      opts.Seance == defaults.Seance,
		unbury:      opts.Unbury.Equal(defaults.Unbury),
		inspect:     opts.Inspect == defaults.Inspect,
		completions: optionalEqual(opts.Completions, defaults.Completions),
	}
}

// allButCompletions reports whether every flag except completions is untouched.
func (d isDefault) allButCompletions() bool {
	return d.graveyard && d.decompose && d.force && d.seance && d.unbury && d.inspect
}

// modes reports whether seance, unbury and inspect are all untouched.
func (d isDefault) modes() bool {
	return d.seance && d.unbury && d.inspect
}

func optionalEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
