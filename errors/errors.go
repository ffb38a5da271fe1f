package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the lifecycle the error occurred
type Phase string

const (
	PhaseCompose  Phase = "compose"  // dependency validation, middleware
	PhaseInit     Phase = "init"     // ops/state/event-loop initialization
	PhaseExecute  Phase = "execute"  // script execution
	PhaseSnapshot Phase = "snapshot" // snapshot capture and persist
	PhaseLoad     Phase = "load"     // snapshot artifact loading
	PhaseBuildLib Phase = "buildlib" // build-time library loading
)

// Kind categorizes the error
type Kind string

const (
	KindMissingDependency Kind = "missing_dependency"
	KindSelfDependency    Kind = "self_dependency"
	KindDoubleInit        Kind = "double_init"
	KindHookConsumed      Kind = "hook_consumed"
	KindPoisoned          Kind = "poisoned"
	KindOpDisabled        Kind = "op_disabled"
	KindInvalidSpecifier  Kind = "invalid_specifier"
	KindNotFound          Kind = "not_found"
	KindChecksumMismatch  Kind = "checksum_mismatch"
	KindAlgorithmMismatch Kind = "algorithm_mismatch"
	KindBadArtifact       Kind = "bad_artifact"
	KindCompression       Kind = "compression"
	KindIO                Kind = "io"
	KindScriptFailed      Kind = "script_failed"
	KindStateInit         Kind = "state_init"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Extension string
	Specifier string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Extension != "" {
		b.WriteString(" in extension ")
		b.WriteString(e.Extension)
	}

	if e.Specifier != "" {
		b.WriteString(" for ")
		b.WriteString(e.Specifier)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Extension sets the extension name
func (b *Builder) Extension(name string) *Builder {
	b.err.Extension = name
	return b
}

// Specifier sets the offending specifier
func (b *Builder) Specifier(s string) *Builder {
	b.err.Specifier = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// ContractViolation is the panic payload for integration-time defects.
// It is never returned as an error value; a violated composition contract
// aborts the process.
type ContractViolation struct {
	Err *Error
}

func (v ContractViolation) Error() string {
	return "contract violation: " + v.Err.Error()
}

// Violate panics with a ContractViolation wrapping err.
func Violate(err *Error) {
	panic(ContractViolation{Err: err})
}

// Convenience constructors for common error patterns

// MissingDependency reports a dependency that is not loaded before ext.
func MissingDependency(ext, dep string) *Error {
	return &Error{
		Phase:     PhaseCompose,
		Kind:      KindMissingDependency,
		Extension: ext,
		Detail:    fmt.Sprintf("missing dependency %q", dep),
	}
}

// SelfDependency reports an extension depending on itself, or on another
// extension carrying the same name.
func SelfDependency(ext string) *Error {
	return &Error{
		Phase:     PhaseCompose,
		Kind:      KindSelfDependency,
		Extension: ext,
		Detail:    "extension is either depending on itself or there is another extension with the same name",
	}
}

// DoubleInit reports a second ops-initialization of the same extension.
func DoubleInit(ext string) *Error {
	return &Error{
		Phase:     PhaseInit,
		Kind:      KindDoubleInit,
		Extension: ext,
		Detail:    "init called twice: not idempotent or correct",
	}
}

// HookConsumed reports a second take of a single-use hook.
func HookConsumed(ext, hook string) *Error {
	return &Error{
		Phase:     PhaseInit,
		Kind:      KindHookConsumed,
		Extension: ext,
		Detail:    fmt.Sprintf("%s hook already consumed", hook),
	}
}

// Poisoned reports an operation attempted on a poisoned composition.
func Poisoned(op string) *Error {
	return &Error{
		Phase:  PhaseCompose,
		Kind:   KindPoisoned,
		Detail: fmt.Sprintf("%s attempted on poisoned composition", op),
	}
}

// OpDisabled reports a call to an op whose effective enabled flag is false.
func OpDisabled(name string) *Error {
	return &Error{
		Phase:  PhaseExecute,
		Kind:   KindOpDisabled,
		Detail: fmt.Sprintf("op %q is disabled", name),
	}
}

// InvalidSpecifier reports a specifier that matches no resolution rule.
// The offending specifier string is carried on the error.
func InvalidSpecifier(phase Phase, specifier string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindInvalidSpecifier,
		Specifier: specifier,
		Detail:    "an invalid specifier was requested",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Compression reports a failed compression or decompression step.
func Compression(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCompression,
		Detail: "snapshot compression failed",
		Cause:  cause,
	}
}

// ChecksumMismatch reports a snapshot artifact whose payload checksum does
// not match its header.
func ChecksumMismatch(want, got uint64) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindChecksumMismatch,
		Detail: fmt.Sprintf("checksum %016x does not match header %016x", got, want),
	}
}

// AlgorithmMismatch reports a snapshot artifact compressed with a different
// algorithm than the loader was configured with.
func AlgorithmMismatch(want, got string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindAlgorithmMismatch,
		Detail: fmt.Sprintf("artifact compressed with %q, loader configured for %q", got, want),
	}
}

// BadArtifact reports a malformed snapshot artifact.
func BadArtifact(detail string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindBadArtifact,
		Detail: detail,
	}
}

// IO wraps a filesystem error.
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// ScriptFailed wraps a script-thrown or engine-raised execution error.
func ScriptFailed(specifier string, cause error) *Error {
	return &Error{
		Phase:     PhaseExecute,
		Kind:      KindScriptFailed,
		Specifier: specifier,
		Detail:    "script execution failed",
		Cause:     cause,
	}
}

// StateInit wraps a failed state-initialization hook.
func StateInit(ext string, cause error) *Error {
	return &Error{
		Phase:     PhaseInit,
		Kind:      KindStateInit,
		Extension: ext,
		Detail:    "state hook failed",
		Cause:     cause,
	}
}
