package snapshot

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/ExProbitasFiducia/deno/errors"
)

// Artifact names of the two flavors produced by the build process.
const (
	CompilerArtifactName = "COMPILER_SNAPSHOT.bin"
	RuntimeArtifactName  = "CLI_SNAPSHOT.bin"
)

var magic = []byte("DSNAP\x01")

// Artifact is the on-disk snapshot envelope: an algorithm-tagged,
// checksummed, compressed heap image keyed by a build ID. The payload is
// opaque; only the producing engine configuration can interpret it.
type Artifact struct {
	BuildID   uuid.UUID
	Algorithm string
	Payload   []byte
}

// Encode serializes the artifact envelope.
//
// Layout: magic(6) | tagLen(1) | tag | buildID(16) | xxhash64(payload)(8) |
// payload.
func (a *Artifact) Encode() []byte {
	buf := make([]byte, 0, len(magic)+1+len(a.Algorithm)+16+8+len(a.Payload))
	buf = append(buf, magic...)
	buf = append(buf, byte(len(a.Algorithm)))
	buf = append(buf, a.Algorithm...)
	buf = append(buf, a.BuildID[:]...)
	buf = binary.BigEndian.AppendUint64(buf, xxhash.Sum64(a.Payload))
	buf = append(buf, a.Payload...)
	return buf
}

// DecodeArtifact parses and verifies an artifact envelope. The payload
// checksum must match the header; a truncated or corrupted blob is rejected
// here rather than producing a corrupt engine.
func DecodeArtifact(data []byte) (*Artifact, error) {
	if len(data) < len(magic)+1 {
		return nil, errors.BadArtifact("artifact too short")
	}
	for i, b := range magic {
		if data[i] != b {
			return nil, errors.BadArtifact("bad magic")
		}
	}
	data = data[len(magic):]

	tagLen := int(data[0])
	data = data[1:]
	if len(data) < tagLen+16+8 {
		return nil, errors.BadArtifact("artifact header truncated")
	}
	tag := string(data[:tagLen])
	data = data[tagLen:]

	var id uuid.UUID
	copy(id[:], data[:16])
	data = data[16:]

	sum := binary.BigEndian.Uint64(data[:8])
	payload := data[8:]

	if got := xxhash.Sum64(payload); got != sum {
		return nil, errors.ChecksumMismatch(sum, got)
	}

	return &Artifact{BuildID: id, Algorithm: tag, Payload: payload}, nil
}

// Image decompresses the payload with the given compressor, after checking
// that the artifact was produced with the same algorithm.
func (a *Artifact) Image(c Compressor) ([]byte, error) {
	if a.Algorithm != c.Tag() {
		return nil, errors.AlgorithmMismatch(c.Tag(), a.Algorithm)
	}
	img, err := c.Decompress(a.Payload)
	if err != nil {
		return nil, errors.Compression(errors.PhaseLoad, err)
	}
	return img, nil
}

// ReadArtifact reads and verifies an artifact file.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, "read artifact", err)
	}
	return DecodeArtifact(data)
}

// Load reads an artifact and returns its decompressed heap image.
func Load(path string, c Compressor) ([]byte, error) {
	art, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return art.Image(c)
}
