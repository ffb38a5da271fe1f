package buildlib

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/ExProbitasFiducia/deno/errors"
)

// BuildSpecifier is the fixed entry specifier that seeds the bootstrap.
const BuildSpecifier = "asset:///bootstrap.ts"

// warmupSource is the basic file handed to the compiler to warm it up.
const warmupSource = `Deno.writeTextFile("hello.txt", "hello deno!");`

// scriptKindTypeScript corresponds to ts.ScriptKind.TypeScript.
const scriptKindTypeScript = 3

// scriptVersion is the fixed version tag for everything loaded at build time.
const scriptVersion = "1"

var assetRe = regexp.MustCompile(`^asset:///lib\.(\S+)\.d\.ts$`)

// Config describes the library set baked into a compiler snapshot.
type Config struct {
	// LibPaths maps a library name to an externally supplied file path,
	// taking precedence over the DTSDir convention.
	LibPaths map[string]string

	// DTSDir is the conventional on-disk location of lib.<name>.d.ts files.
	DTSDir string

	// Libs are the library names to load into the engine before
	// snapshotting, in load order.
	Libs []string

	// BuiltinModules are the built-in module names reported by
	// op_build_info.
	BuiltinModules []string
}

// Loader resolves build-time specifiers to library text.
type Loader struct {
	cfg Config
}

// NewLoader creates a loader over the given configuration.
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load resolves a specifier per the build-time grammar and returns the
// {data, version, scriptKind} response shape.
func (l *Loader) Load(specifier string) (map[string]any, error) {
	if specifier == BuildSpecifier {
		return response(warmupSource), nil
	}

	caps := assetRe.FindStringSubmatch(specifier)
	if caps == nil {
		return nil, errors.InvalidSpecifier(errors.PhaseBuildLib, specifier)
	}
	name := caps[1]

	path, supplied := l.cfg.LibPaths[name]
	if !supplied {
		path = filepath.Join(l.cfg.DTSDir, "lib."+name+".d.ts")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InvalidSpecifier(errors.PhaseBuildLib, specifier)
		}
		return nil, errors.IO(errors.PhaseBuildLib, "read library "+name, err)
	}
	return response(string(data)), nil
}

func response(data string) map[string]any {
	return map[string]any{
		"data":       data,
		"version":    scriptVersion,
		"scriptKind": scriptKindTypeScript,
	}
}
