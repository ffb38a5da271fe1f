// Package extension implements the capability-module composition framework.
//
// # Main Types
//
//   - FileSource: a namespaced, immutable script source record
//   - Extension: an immutable bundle of bootstrap/module sources, op
//     declarations, lifecycle hooks, and declared dependencies
//   - Builder: mutable accumulator that produces Extensions
//   - Composer: drives an ordered list of Extensions through the phased
//     initialization protocol
//
// # Lifecycle
//
// A Builder accumulates sources, ops, and hooks across repeated calls;
// Build drains the accumulators into a fresh Extension, so a reused builder
// produces only what was added since the previous Build. File specifiers are
// rewritten to "internal:<extension-name>/<original-specifier>" on the way
// in, which makes collisions between same-named files contributed by
// different extensions structurally impossible.
//
// The Composer walks the caller-supplied order through a strict phase
// sequence: dependency validation, middleware application, op
// initialization (where the effective enabled flag becomes
// extension.enabled && op.Enabled), state initialization, and event-loop
// hook registration. The order is validated, never computed: initialization
// has observable side effects, so determinism is caller-owned.
//
// # Contract Violations
//
// Double initialization, a missing or self-referential dependency, and
// re-taking a consumed single-use hook are integration-time defects. They
// poison the composition and panic with an errors.ContractViolation; a
// poisoned Composer refuses all further work. Script-facing failures are
// ordinary error returns.
package extension
