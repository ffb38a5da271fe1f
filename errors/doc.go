// Package errors provides structured error types for the runtime substrate.
//
// Errors are categorized by Phase (where in the extension/snapshot lifecycle
// the error occurred) and Kind (error category). The Error type includes the
// extension and specifier involved, a detail message, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompose, errors.KindMissingDependency).
//		Extension("webidl").
//		Detail("dependency %q not loaded", "url").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingDependency("webidl", "url")
//	err := errors.InvalidSpecifier(errors.PhaseBuildLib, specifier)
//
// Two tiers exist. Script-facing failures are plain *Error values, delivered
// through the script-visible error channel and matchable with errors.Is.
// Integration-time defects (double initialization, a missing or
// self-referential dependency, re-taking a consumed hook) are fatal: they are
// raised by panicking with a ContractViolation wrapping the underlying
// *Error, because they indicate a misconfigured composition rather than a
// recoverable runtime condition.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
