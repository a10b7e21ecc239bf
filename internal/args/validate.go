package args

import "errors"

// ErrConflictingMode matches every rejection returned by Validate.
var ErrConflictingMode = errors.New("conflicting mode")

// ConflictingModeError explains which flags cannot be combined.
type ConflictingModeError struct {
	Reason string
}

func (e *ConflictingModeError) Error() string {
	return e.Reason
}

// Is lets callers match with errors.Is(err, ErrConflictingMode).
func (e *ConflictingModeError) Is(target error) bool {
	return target == ErrConflictingMode
}

const (
	completionsConflict = "--completions can only be used by itself"
	forceConflict       = "-f,--force can only be used with -d,--decompose and --graveyard"
	decomposeConflict   = "-d,--decompose can only be used with -f,--force and --graveyard"
)

// Validate rejects flag combinations that do not name exactly one operation.
// It never touches the filesystem or the environment.
func Validate(opts Options) error {
	defaults := newIsDefault(opts)

	// completions runs on its own, targets included
	if !defaults.completions && !(defaults.allButCompletions() && len(opts.Targets) == 0) {
		return &ConflictingModeError{Reason: completionsConflict}
	}

	// force and decompose only make sense with each other and --graveyard
	if !defaults.force && !defaults.modes() {
		return &ConflictingModeError{Reason: forceConflict}
	}
	if !defaults.decompose && !defaults.modes() {
		return &ConflictingModeError{Reason: decomposeConflict}
	}

	return nil
}
