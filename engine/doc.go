// Package engine hosts the embedded script engine.
//
// This package wraps goja to provide the capability-host side of the
// extension framework: composed op declarations are bound into the script
// environment under Deno.core.ops, bootstrap and module sources execute in
// composition order under their internal: specifiers, and event-loop hooks
// participate in the turn loop's idle detection.
//
// # Startup Flow
//
//  1. New() creates an empty engine with a fresh script VM and OpState
//  2. Install() composes the extension list (validation, middleware, op
//     init, state init, event-loop hooks) and executes every source
//  3. Execute() runs additional scripts against the warmed engine
//  4. Run() drives the cooperative turn loop until idle or cancellation
//
// # Turn Loop
//
// The engine is single-threaded: script code and op completions never run
// concurrently inside one instance. Async ops offload to a goroutine and
// deliver their completion back through a channel that only the turn loop
// drains. Each turn polls every event-loop hook once; the loop exits
// naturally only when no hook reports pending work and no async op is in
// flight. Cancelling the Run context tears the loop down; no separate
// cancellation signal reaches the hooks.
//
// # Heap Images
//
// CaptureHeap freezes the warmed engine to an opaque byte image: the
// executed source registry, the bound op table, and the installed library
// list. NewFromSnapshot restores an image into a fresh engine by re-binding
// the loading configuration's ops and replaying the baked sources. Baked
// bootstrap code that must not run twice guards on the globals it installs
// (see js/00_core.js).
package engine
