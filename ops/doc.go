// Package ops defines the native operation contract of the runtime.
//
// # Main Types
//
//   - OpDecl: the declaration of one native-callable function (name, entry,
//     dispatch flags, argument-count hint, optional fast-path entry)
//   - OpState: the shared mutable state container threaded through op
//     execution and extension initialization hooks
//
// An OpDecl describes an op; it does not execute it. The engine binds the
// effective-enabled set of declarations into the script environment after
// composition, and the op set compiled into a given engine instance is
// immutable thereafter. Name uniqueness within an instance is the caller's
// responsibility; the framework does not deduplicate.
//
// # Thread Safety
//
// OpState is safe for concurrent use under an exclusive-or-shared discipline:
// a single op invocation or initialization hook holds access only for the
// duration of its own non-suspending execution. An op that suspends across a
// turn boundary must re-acquire access on resumption.
package ops
