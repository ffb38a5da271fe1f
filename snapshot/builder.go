package snapshot

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ExProbitasFiducia/deno/engine"
	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/extension"
)

// CreateOptions configures one snapshot build.
type CreateOptions struct {
	// Path is where the artifact lands. Empty means build in memory only.
	Path string

	// Extensions is the ordered composition baked into the snapshot.
	Extensions []*extension.Extension

	// BootstrapEntries are the designated entry scripts executed to
	// completion after composition, before capture. They install library
	// declarations and runtime globals and exercise the warm-up paths
	// worth baking in.
	BootstrapEntries []extension.FileSource

	// Compressor is the caller-supplied compression boundary. Required.
	Compressor Compressor

	// LoadCB, when set, observes each bootstrap entry specifier as it is
	// about to execute.
	LoadCB func(specifier string)

	// EngineOptions configure the throwaway engine the snapshot is built
	// from.
	EngineOptions []engine.Option
}

// Create composes a fresh engine, executes the bootstrap entries, captures
// the heap, compresses it, and persists the artifact. Any compression
// failure is fatal to the build; the file is written atomically so a
// partial or corrupt artifact is never left at Path.
func Create(opts CreateOptions) (*Artifact, error) {
	if opts.Compressor == nil {
		return nil, errors.New(errors.PhaseSnapshot, errors.KindCompression).
			Detail("no compressor configured").Build()
	}

	eng := engine.New(opts.EngineOptions...)
	if err := eng.Install(opts.Extensions...); err != nil {
		return nil, err
	}

	for _, entry := range opts.BootstrapEntries {
		if opts.LoadCB != nil {
			opts.LoadCB(entry.Specifier)
		}
		if err := eng.ExecuteBootstrap(entry); err != nil {
			return nil, err
		}
	}

	heap, err := eng.CaptureHeap()
	if err != nil {
		return nil, err
	}

	payload, err := opts.Compressor.Compress(heap)
	if err != nil {
		return nil, errors.Compression(errors.PhaseSnapshot, err)
	}

	art := &Artifact{
		BuildID:   uuid.New(),
		Algorithm: opts.Compressor.Tag(),
		Payload:   payload,
	}

	if opts.Path != "" {
		if err := writeAtomic(opts.Path, art.Encode()); err != nil {
			return nil, err
		}
	}

	engine.Logger().Info("snapshot created",
		zap.String("build_id", art.BuildID.String()),
		zap.String("algorithm", art.Algorithm),
		zap.Int("heap_bytes", len(heap)),
		zap.Int("compressed_bytes", len(payload)),
		zap.String("path", opts.Path))

	return art, nil
}

// writeAtomic writes through a temp file and rename so the target path
// either holds the complete artifact or its previous content.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return errors.IO(errors.PhaseSnapshot, "create temp artifact", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.IO(errors.PhaseSnapshot, "write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.IO(errors.PhaseSnapshot, "close artifact", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.IO(errors.PhaseSnapshot, "rename artifact", err)
	}
	return nil
}
