package snapshot

import (
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// Compressor is the compression boundary a snapshot passes through. The
// builder treats it as opaque: any failure is a build failure.
type Compressor interface {
	// Tag names the algorithm; it is stamped into the artifact header and
	// checked at load.
	Tag() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// Zstd compresses with zstd. The zero value uses the best-compression
// level, matching the compiler-flavored artifact.
type Zstd struct {
	Level zstd.EncoderLevel
}

func (z Zstd) Tag() string { return "zstd" }

func (z Zstd) level() zstd.EncoderLevel {
	if z.Level == 0 {
		return zstd.SpeedBestCompression
	}
	return z.Level
}

func (z Zstd) Compress(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(z.level()))
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(src, make([]byte, 0, len(src)/2))
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (z Zstd) Decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(src, nil)
}

// S2 compresses with s2, the speed-oriented strategy of the
// runtime-flavored artifact.
type S2 struct{}

func (S2) Tag() string { return "s2" }

func (S2) Compress(src []byte) ([]byte, error) {
	return s2.EncodeBetter(nil, src), nil
}

func (S2) Decompress(src []byte) ([]byte, error) {
	return s2.Decode(nil, src)
}

// CompilerCompressor is the compression strategy of the compiler-flavored
// snapshot.
func CompilerCompressor() Compressor { return Zstd{} }

// RuntimeCompressor is the compression strategy of the runtime-flavored
// snapshot.
func RuntimeCompressor() Compressor { return S2{} }
