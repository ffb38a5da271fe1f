package extension

import (
	"context"
	"testing"

	"github.com/ExProbitasFiducia/deno/ops"
)

func nopOp(name string) ops.OpDecl {
	return ops.Sync(name, 0, func(context.Context, *ops.OpState, []any) (any, error) {
		return nil, nil
	})
}

func TestBuilder_NamespacesSpecifiers(t *testing.T) {
	ext := NewBuilder("foo").
		JS(FileSource{Specifier: "bar.js", Code: "1"}).
		ESM(FileSource{Specifier: "mod.js", Code: "2"}).
		Build()

	js := ext.JSSources()
	if len(js) != 1 || js[0].Specifier != "internal:foo/bar.js" {
		t.Fatalf("Expected internal:foo/bar.js, got %v", js)
	}
	esm := ext.ESMSources()
	if len(esm) != 1 || esm[0].Specifier != "internal:foo/mod.js" {
		t.Fatalf("Expected internal:foo/mod.js, got %v", esm)
	}
}

func TestBuilder_SameFileNameNeverCollides(t *testing.T) {
	a := NewBuilder("foo").JS(FileSource{Specifier: "bar.js", Code: "a"}).Build()
	b := NewBuilder("baz").JS(FileSource{Specifier: "bar.js", Code: "b"}).Build()

	specA := a.JSSources()[0].Specifier
	specB := b.JSSources()[0].Specifier
	if specA == specB {
		t.Fatalf("Specifiers collide: %q", specA)
	}
	if specA != "internal:foo/bar.js" || specB != "internal:baz/bar.js" {
		t.Fatalf("Unexpected specifiers: %q, %q", specA, specB)
	}
}

func TestBuilder_CallsAppend(t *testing.T) {
	b := NewBuilder("acc")
	b.JS(FileSource{Specifier: "01.js", Code: "1"})
	b.JS(FileSource{Specifier: "02.js", Code: "2"})
	b.Ops(nopOp("op_a"))
	b.Ops(nopOp("op_b"), nopOp("op_c"))
	b.Dependencies("core")
	b.Dependencies("web")

	ext := b.Build()
	if len(ext.JSSources()) != 2 {
		t.Fatalf("Expected 2 js sources, got %d", len(ext.JSSources()))
	}
	if ext.OpCount() != 3 {
		t.Fatalf("Expected 3 ops, got %d", ext.OpCount())
	}
	if deps := ext.Deps(); len(deps) != 2 || deps[0] != "core" || deps[1] != "web" {
		t.Fatalf("Unexpected deps: %v", deps)
	}
}

func TestBuilder_HookSlotsOverwrite(t *testing.T) {
	calls := make([]string, 0, 1)
	b := NewBuilder("hooks")
	b.State(func(*ops.OpState) error {
		calls = append(calls, "first")
		return nil
	})
	b.State(func(*ops.OpState) error {
		calls = append(calls, "second")
		return nil
	})

	ext := b.Build()
	if err := ext.InitState(ops.NewState()); err != nil {
		t.Fatalf("InitState failed: %v", err)
	}
	if len(calls) != 1 || calls[0] != "second" {
		t.Fatalf("Later State call must overwrite, got %v", calls)
	}
}

func TestBuilder_BuildDrains(t *testing.T) {
	b := NewBuilder("reused")
	b.JS(FileSource{Specifier: "01.js", Code: "1"})
	b.Ops(nopOp("op_one"))
	b.Middleware(func(d ops.OpDecl) ops.OpDecl { return d })

	first := b.Build()
	if len(first.JSSources()) != 1 || first.OpCount() != 1 {
		t.Fatal("First build missing accumulated content")
	}
	if first.TakeMiddleware() == nil {
		t.Fatal("First build should carry the middleware hook")
	}

	// The accumulators were moved, not copied: a second build holds only
	// what was added since.
	b.JS(FileSource{Specifier: "02.js", Code: "2"})
	second := b.Build()
	if len(second.JSSources()) != 1 {
		t.Fatalf("Expected only the new source, got %d", len(second.JSSources()))
	}
	if second.JSSources()[0].Specifier != "internal:reused/02.js" {
		t.Fatalf("Unexpected specifier %q", second.JSSources()[0].Specifier)
	}
	if second.OpCount() != 0 {
		t.Fatal("Ops were drained by the first build")
	}
	if second.TakeMiddleware() != nil {
		t.Fatal("Hook slot was drained by the first build")
	}
}

func TestBuilder_BuildDefaults(t *testing.T) {
	ext := NewBuilder("fresh").Build()
	if !ext.Enabled() {
		t.Fatal("Built extensions start enabled")
	}
	if ext.Initialized() {
		t.Fatal("Built extensions start uninitialized")
	}
	if ext.Name() != "fresh" {
		t.Fatalf("Expected name 'fresh', got %q", ext.Name())
	}
}
