// Package deno is a sandboxed script-execution runtime substrate: it embeds
// a general-purpose script engine, exposes native capabilities to scripts
// through a controlled boundary, and can freeze a fully warmed engine to a
// compressed byte image for fast process startup.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	deno/              Root package (this documentation)
//	├── ops/           OpDecl declarations and the shared OpState container
//	├── extension/     Extension bundles, Builder, phased Composer
//	├── engine/        goja-backed engine host and cooperative turn loop
//	├── snapshot/      Snapshot capture, compression boundary, artifacts
//	├── buildlib/      Build-time library-loading op surface
//	├── errors/        Structured error types
//	└── cmd/deno/      Multi-command CLI boundary
//
// # Quick Start
//
// Declare a capability module and compose it into an engine:
//
//	ext := extension.NewBuilder("greeter").
//	    Ops(ops.Sync("op_greet", 1, greet)).
//	    JS(extension.FileSource{Specifier: "01_greet.js", Code: src}).
//	    Build()
//
//	eng := engine.New()
//	if err := eng.Install(engine.CoreExtension(), ext); err != nil {
//	    log.Fatal(err)
//	}
//	eng.Execute("main.js", `Deno.core.ops.op_greet("world")`)
//	eng.Run(ctx)
//
// # Composition Contract
//
// An ordered list of Extensions is validated and initialized in exactly the
// caller's order: dependencies must appear earlier in the list, middleware
// hooks run exactly once over the whole composition, each op's effective
// enabled flag becomes extension.enabled && op.Enabled, and ops
// initialization is strictly one-shot. Violations are fatal: they poison
// the composition and panic, because they indicate a misconfigured process,
// not a recoverable condition.
//
// # Snapshots
//
// snapshot.Create executes designated bootstrap scripts against a freshly
// composed engine, captures its heap, compresses it through a
// caller-supplied Compressor, and persists the artifact atomically. Two
// flavors are produced by the build: a compiler-flavored artifact and a
// runtime-flavored one, differing only in the baked extension set and the
// compression strategy.
//
// # Thread Safety
//
// Composition and initialization run single-threaded, strictly before the
// engine executes arbitrary script code. Once running, one engine instance
// is a single-threaded cooperative turn loop; async ops offload work to
// goroutines but deliver completions back into the loop.
package deno
