package buildlib

import (
	"context"
	_ "embed"

	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/extension"
	"github.com/ExProbitasFiducia/deno/ops"
)

//go:embed js/01_buildlib.js
var buildlibJS string

// Extension assembles the build-time op surface and its bootstrap script.
// The state hook seeds the configuration and loader into the shared state
// before any script runs.
func Extension(cfg Config) *extension.Extension {
	return extension.NewBuilder("tsc").
		Ops(
			ops.Sync("op_build_info", 0, opBuildInfo),
			ops.Sync("op_cwd", 0, opCwd),
			ops.Sync("op_exists", 1, opExists),
			ops.Sync("op_is_node_file", 1, opIsNodeFile),
			ops.Sync("op_load", 1, opLoad),
			ops.Sync("op_script_version", 1, opScriptVersion),
		).
		JS(extension.FileSource{Specifier: "01_buildlib.js", Code: buildlibJS}).
		State(func(state *ops.OpState) error {
			ops.Put(state, cfg)
			ops.Put(state, NewLoader(cfg))
			return nil
		}).
		Build()
}

func opBuildInfo(_ context.Context, state *ops.OpState, _ []any) (any, error) {
	cfg := ops.Borrow[Config](state)
	return map[string]any{
		"buildSpecifier":         BuildSpecifier,
		"libs":                   cfg.Libs,
		"nodeBuiltInModuleNames": cfg.BuiltinModules,
	}, nil
}

// The cwd and file-kind queries answer from fixed synthetic values: the
// machine the snapshot is built on is not the machine it will run on.

func opCwd(_ context.Context, _ *ops.OpState, _ []any) (any, error) {
	return "cache:///", nil
}

func opExists(_ context.Context, _ *ops.OpState, _ []any) (any, error) {
	return false, nil
}

func opIsNodeFile(_ context.Context, _ *ops.OpState, _ []any) (any, error) {
	return false, nil
}

func opScriptVersion(_ context.Context, _ *ops.OpState, _ []any) (any, error) {
	return scriptVersion, nil
}

func opLoad(_ context.Context, state *ops.OpState, args []any) (any, error) {
	specifier, ok := loadSpecifier(args)
	if !ok {
		return nil, errors.InvalidSpecifier(errors.PhaseBuildLib, "")
	}
	loader := ops.Borrow[*Loader](state)
	return loader.Load(specifier)
}

// loadSpecifier accepts either {specifier: "..."} or a bare string argument.
func loadSpecifier(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	switch v := args[0].(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v["specifier"].(string)
		return s, ok
	}
	return "", false
}
