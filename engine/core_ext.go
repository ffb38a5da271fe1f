package engine

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/ExProbitasFiducia/deno/extension"
	"github.com/ExProbitasFiducia/deno/ops"
)

//go:embed js/00_core.js
var coreJS string

// CoreExtension returns the engine's built-in extension: the op bridge
// helpers and a console backed by op_print. Every runtime-flavored
// composition starts with it.
func CoreExtension() *extension.Extension {
	return NewCoreBuilder().Build()
}

// NewCoreBuilder returns the core extension's builder, so callers that need
// to layer additional ops or middleware onto the core can do so before
// building.
func NewCoreBuilder() *extension.Builder {
	return extension.NewBuilder("core").
		Ops(ops.Sync("op_print", 2, opPrint)).
		JS(extension.FileSource{Specifier: "00_core.js", Code: coreJS})
}

func opPrint(_ context.Context, _ *ops.OpState, args []any) (any, error) {
	var msg string
	if len(args) > 0 {
		msg = fmt.Sprint(args[0])
	}
	out := io.Writer(os.Stdout)
	if len(args) > 1 {
		if isErr, ok := args[1].(bool); ok && isErr {
			out = os.Stderr
		}
	}
	_, err := io.WriteString(out, msg)
	return nil, err
}
