package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "missing dependency",
			err:  MissingDependency("webidl", "url"),
			want: []string{"[compose]", "missing_dependency", "webidl", `"url"`},
		},
		{
			name: "self dependency",
			err:  SelfDependency("console"),
			want: []string{"[compose]", "self_dependency", "console"},
		},
		{
			name: "invalid specifier carries original string",
			err:  InvalidSpecifier(PhaseBuildLib, "asset:///lib.unknown.d.ts"),
			want: []string{"[buildlib]", "invalid_specifier", "asset:///lib.unknown.d.ts"},
		},
		{
			name: "cause chain",
			err:  Compression(PhaseSnapshot, stderrors.New("short write")),
			want: []string{"[snapshot]", "compression", "caused by: short write"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := MissingDependency("web", "webidl")

	if !stderrors.Is(err, &Error{Phase: PhaseCompose, Kind: KindMissingDependency}) {
		t.Fatal("Is should match on phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseCompose, Kind: KindSelfDependency}) {
		t.Fatal("Is should not match a different kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := IO(PhaseSnapshot, "write artifact", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("Unwrap should expose the cause")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseInit, KindDoubleInit).
		Extension("tsc").
		Detail("init called %d times", 2).
		Build()

	if err.Extension != "tsc" {
		t.Fatalf("Expected extension 'tsc', got %q", err.Extension)
	}
	if !strings.Contains(err.Error(), "init called 2 times") {
		t.Fatalf("Detail formatting lost: %q", err.Error())
	}
}

func TestViolate(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Violate must panic")
		}
		v, ok := r.(ContractViolation)
		if !ok {
			t.Fatalf("Expected ContractViolation, got %T", r)
		}
		if v.Err.Kind != KindDoubleInit {
			t.Fatalf("Expected double_init, got %s", v.Err.Kind)
		}
		if !strings.Contains(v.Error(), "contract violation") {
			t.Fatalf("Unexpected message: %q", v.Error())
		}
	}()
	Violate(DoubleInit("tsc"))
}
