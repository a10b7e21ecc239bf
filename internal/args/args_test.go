package args

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    func() Options
		wantErr string
	}{
		{
			name: "defaults",
			opts: Default,
		},
		{
			name: "plain bury",
			opts: func() Options {
				o := Default()
				o.Targets = []string{"a.txt"}
				return o
			},
		},
		{
			name: "completions alone",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("bash")
				return o
			},
		},
		{
			name: "completions with target",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("bash")
				o.Targets = []string{"a.txt"}
				return o
			},
			wantErr: completionsConflict,
		},
		{
			name: "completions with graveyard",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("zsh")
				o.Graveyard = StringPtr("/tmp/g")
				return o
			},
			wantErr: completionsConflict,
		},
		{
			name: "completions with force and seance",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("fish")
				o.Force = true
				o.Seance = true
				return o
			},
			wantErr: completionsConflict,
		},
		{
			name: "completions with unbury most recent",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("bash")
				o.Unbury = RestoreMostRecent()
				return o
			},
			wantErr: completionsConflict,
		},
		{
			name: "force and decompose",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Decompose = true
				return o
			},
		},
		{
			name: "force decompose graveyard",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Decompose = true
				o.Graveyard = StringPtr("/tmp/g")
				return o
			},
		},
		{
			name: "force alone",
			opts: func() Options {
				o := Default()
				o.Force = true
				return o
			},
		},
		{
			name: "decompose alone",
			opts: func() Options {
				o := Default()
				o.Decompose = true
				return o
			},
		},
		{
			name: "force with seance",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Seance = true
				return o
			},
			wantErr: forceConflict,
		},
		{
			name: "force with unbury",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Unbury = RestoreSpecific("a.txt")
				return o
			},
			wantErr: forceConflict,
		},
		{
			name: "force with inspect",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Inspect = true
				o.Targets = []string{"a.txt"}
				return o
			},
			wantErr: forceConflict,
		},
		{
			name: "force and decompose with seance reports force",
			opts: func() Options {
				o := Default()
				o.Force = true
				o.Decompose = true
				o.Seance = true
				return o
			},
			wantErr: forceConflict,
		},
		{
			name: "decompose with seance",
			opts: func() Options {
				o := Default()
				o.Decompose = true
				o.Seance = true
				return o
			},
			wantErr: decomposeConflict,
		},
		{
			name: "decompose with unbury most recent",
			opts: func() Options {
				o := Default()
				o.Decompose = true
				o.Unbury = RestoreMostRecent()
				return o
			},
			wantErr: decomposeConflict,
		},
		{
			name: "decompose with inspect",
			opts: func() Options {
				o := Default()
				o.Decompose = true
				o.Inspect = true
				return o
			},
			wantErr: decomposeConflict,
		},
		{
			name: "unbury most recent",
			opts: func() Options {
				o := Default()
				o.Unbury = RestoreMostRecent()
				return o
			},
		},
		{
			name: "unbury with seance",
			opts: func() Options {
				o := Default()
				o.Unbury = RestoreMostRecent()
				o.Seance = true
				return o
			},
		},
		{
			name: "inspect with targets",
			opts: func() Options {
				o := Default()
				o.Inspect = true
				o.Targets = []string{"a.txt", "b"}
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.opts())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tt.wantErr)
			}
			if !errors.Is(err, ErrConflictingMode) {
				t.Fatalf("expected ErrConflictingMode, got %T", err)
			}
			var conflict *ConflictingModeError
			if !errors.As(err, &conflict) {
				t.Fatalf("expected *ConflictingModeError, got %T", err)
			}
			if conflict.Reason != tt.wantErr {
				t.Fatalf("expected %q, got %q", tt.wantErr, conflict.Reason)
			}
		})
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	build := func() Options {
		o := Default()
		o.Force = true
		o.Unbury = RestoreSpecific("x", "y")
		return o
	}

	first := Validate(build())
	second := Validate(build())
	if first == nil || second == nil {
		t.Fatalf("expected both calls to fail, got %v and %v", first, second)
	}
	if first.Error() != second.Error() {
		t.Fatalf("expected identical errors, got %q and %q", first, second)
	}

	if err := Validate(Default()); err != nil {
		t.Fatalf("first default validation failed: %v", err)
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("second default validation failed: %v", err)
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	opts := Default()
	opts.Targets = []string{"a", "b"}
	opts.Unbury = RestoreSpecific("c")
	opts.Graveyard = StringPtr("/g")

	_ = Validate(opts)

	if len(opts.Targets) != 2 || opts.Targets[0] != "a" || opts.Targets[1] != "b" {
		t.Fatalf("targets changed: %v", opts.Targets)
	}
	if got := opts.Unbury.Paths(); len(got) != 1 || got[0] != "c" {
		t.Fatalf("unbury paths changed: %v", got)
	}
	if *opts.Graveyard != "/g" {
		t.Fatalf("graveyard changed: %q", *opts.Graveyard)
	}
}

func TestUnburyStates(t *testing.T) {
	if NoUnbury().Requested() {
		t.Fatalf("NoUnbury should not be requested")
	}
	if !RestoreMostRecent().Requested() {
		t.Fatalf("RestoreMostRecent should be requested")
	}
	if got := RestoreSpecific().Kind(); got != UnburyMostRecent {
		t.Fatalf("RestoreSpecific() with no paths should be most recent, got %v", got)
	}
	if RestoreMostRecent().Equal(NoUnbury()) {
		t.Fatalf("present-empty must differ from absent")
	}
	if !RestoreSpecific("a", "b").Equal(RestoreSpecific("a", "b")) {
		t.Fatalf("identical specific requests should be equal")
	}
	if RestoreSpecific("a", "b").Equal(RestoreSpecific("b", "a")) {
		t.Fatalf("order must matter for specific requests")
	}

	paths := []string{"a"}
	u := RestoreSpecific(paths...)
	paths[0] = "changed"
	if got := u.Paths(); got[0] != "a" {
		t.Fatalf("RestoreSpecific should copy its input, got %v", got)
	}
}

func TestIsDefaultComparesOptionalValues(t *testing.T) {
	opts := Default()
	opts.Graveyard = StringPtr("/g")
	if newIsDefault(opts).graveyard {
		t.Fatalf("graveyard set should not be default")
	}

	same := Default()
	same.Completions = nil
	if !newIsDefault(same).completions {
		t.Fatalf("nil completions should be default")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		opts func() Options
		want Mode
	}{
		{name: "nothing", opts: Default, want: ModeHelp},
		{
			name: "bury",
			opts: func() Options {
				o := Default()
				o.Targets = []string{"a"}
				return o
			},
			want: ModeBury,
		},
		{
			name: "bury with force",
			opts: func() Options {
				o := Default()
				o.Targets = []string{"a"}
				o.Force = true
				return o
			},
			want: ModeBury,
		},
		{
			name: "inspect",
			opts: func() Options {
				o := Default()
				o.Targets = []string{"a"}
				o.Inspect = true
				return o
			},
			want: ModeInspect,
		},
		{
			name: "unbury",
			opts: func() Options {
				o := Default()
				o.Unbury = RestoreMostRecent()
				return o
			},
			want: ModeUnbury,
		},
		{
			name: "unbury with seance",
			opts: func() Options {
				o := Default()
				o.Unbury = RestoreMostRecent()
				o.Seance = true
				return o
			},
			want: ModeUnbury,
		},
		{
			name: "seance",
			opts: func() Options {
				o := Default()
				o.Seance = true
				return o
			},
			want: ModeSeance,
		},
		{
			name: "decompose",
			opts: func() Options {
				o := Default()
				o.Decompose = true
				o.Force = true
				return o
			},
			want: ModeDecompose,
		},
		{
			name: "completions",
			opts: func() Options {
				o := Default()
				o.Completions = StringPtr("bash")
				return o
			},
			want: ModeCompletions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.opts())
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveRejectsConflicts(t *testing.T) {
	o := Default()
	o.Force = true
	o.Seance = true

	if _, err := Resolve(o); !errors.Is(err, ErrConflictingMode) {
		t.Fatalf("expected conflicting mode error, got %v", err)
	}
}
