package args

// Mode is the single operation an accepted option set asks for.
type Mode int

const (
	ModeHelp Mode = iota
	ModeBury
	ModeInspect
	ModeUnbury
	ModeSeance
	ModeDecompose
	ModeCompletions
)

func (m Mode) String() string {
	switch m {
	case ModeHelp:
		return "help"
	case ModeBury:
		return "bury"
	case ModeInspect:
		return "inspect"
	case ModeUnbury:
		return "unbury"
	case ModeSeance:
		return "seance"
	case ModeDecompose:
		return "decompose"
	case ModeCompletions:
		return "completions"
	default:
		return "unknown"
	}
}

// Resolve validates opts and returns the operation it selects.
//
// Unbury wins over seance; the two together restore every grave that
// originated in the working directory. Inspect only changes how targets are
// buried.
func Resolve(opts Options) (Mode, error) {
	if err := Validate(opts); err != nil {
		return ModeHelp, err
	}

	switch {
	case opts.Completions != nil:
		return ModeCompletions, nil
	case opts.Decompose:
		return ModeDecompose, nil
	case opts.Unbury.Requested():
		return ModeUnbury, nil
	case opts.Seance:
		return ModeSeance, nil
	case len(opts.Targets) == 0:
		return ModeHelp, nil
	case opts.Inspect:
		return ModeInspect, nil
	default:
		return ModeBury, nil
	}
}
