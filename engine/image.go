package engine

import (
	"bytes"
	"encoding/gob"

	"github.com/ExProbitasFiducia/deno/errors"
	"github.com/ExProbitasFiducia/deno/extension"
)

// Image is the engine's heap state, frozen at capture time: the executed
// source registry in execution order, the bound op table, and the installed
// library list. Callers treat the encoded form as an opaque byte blob.
type Image struct {
	Sources []extension.FileSource
	Ops     []OpRecord
	Libs    []string
}

// OpRecord is the serialized shape of a bound op. The native entry cannot
// cross the serialization boundary; the loading configuration re-supplies it.
type OpRecord struct {
	Name    string
	Enabled bool
	IsAsync bool
	Argc    int
}

// CaptureHeap freezes the fully bootstrapped engine to an opaque byte blob.
func (e *Engine) CaptureHeap() ([]byte, error) {
	img := Image{
		Sources: e.sources,
		Libs:    e.InstalledLibs(),
	}
	for _, decl := range e.opTable {
		img.Ops = append(img.Ops, OpRecord{
			Name:    decl.Name,
			Enabled: decl.Enabled,
			IsAsync: decl.IsAsync,
			Argc:    decl.Argc,
		})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(img); err != nil {
		return nil, errors.IO(errors.PhaseSnapshot, "encode heap image", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes a captured heap blob.
func DecodeImage(data []byte) (*Image, error) {
	var img Image
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&img); err != nil {
		return nil, errors.BadArtifact("heap image does not decode: " + err.Error())
	}
	return &img, nil
}

// NewFromSnapshot restores a heap image into a fresh engine. The extensions
// supply the native op entries; they must match the configuration that
// produced the image, which this framework does not verify in-band. Their
// sources are ignored: the baked sources in the image are replayed instead,
// after the image's installed-library list is restored, so bootstrap code
// guarded on its own globals runs in snapshot mode.
func NewFromSnapshot(data []byte, exts []*extension.Extension, opts ...Option) (*Engine, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	e := New(opts...)
	comp, err := extension.NewComposer(exts...).Compose(e.state)
	if err != nil {
		return nil, err
	}
	for _, decl := range comp.Ops {
		e.bindOp(decl)
	}
	e.opTable = comp.Ops
	e.hooks = comp.EventLoopHooks
	e.installed = true

	if len(img.Libs) > 0 {
		if err := e.vm.Set("__installedLibs", img.Libs); err != nil {
			return nil, errors.IO(errors.PhaseLoad, "restore installed libs", err)
		}
	}

	for _, src := range img.Sources {
		if _, err := e.Execute(src.Specifier, src.Code); err != nil {
			return nil, err
		}
		e.sources = append(e.sources, src)
	}

	return e, nil
}
