package snapshot

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ExProbitasFiducia/deno/errors"
)

func TestCompressors_RoundTrip(t *testing.T) {
	payload := []byte(`{"sources":["internal:core/00_core.js"],"libs":["es5"]}`)

	tests := []struct {
		name string
		c    Compressor
	}{
		{"zstd", CompilerCompressor()},
		{"s2", RuntimeCompressor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.c.Compress(payload)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			out, err := tt.c.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if string(out) != string(payload) {
				t.Fatal("Round trip mismatch")
			}
		})
	}
}

func TestArtifact_EncodeDecode(t *testing.T) {
	art := &Artifact{
		BuildID:   uuid.New(),
		Algorithm: "zstd",
		Payload:   []byte("compressed-heap"),
	}

	decoded, err := DecodeArtifact(art.Encode())
	if err != nil {
		t.Fatalf("DecodeArtifact failed: %v", err)
	}
	if decoded.BuildID != art.BuildID {
		t.Fatal("Build ID lost")
	}
	if decoded.Algorithm != "zstd" {
		t.Fatalf("Algorithm lost: %q", decoded.Algorithm)
	}
	if string(decoded.Payload) != "compressed-heap" {
		t.Fatal("Payload lost")
	}
}

func TestDecodeArtifact_Rejects(t *testing.T) {
	good := (&Artifact{BuildID: uuid.New(), Algorithm: "s2", Payload: []byte("payload")}).Encode()

	corrupt := append([]byte(nil), good...)
	corrupt[len(corrupt)-1] ^= 0xff

	truncated := good[:len(good)-3]

	badMagic := append([]byte(nil), good...)
	badMagic[0] = 'X'

	tests := []struct {
		name string
		data []byte
		kind errors.Kind
	}{
		{"corrupted payload", corrupt, errors.KindChecksumMismatch},
		{"truncated payload", truncated, errors.KindChecksumMismatch},
		{"bad magic", badMagic, errors.KindBadArtifact},
		{"too short", []byte("DS"), errors.KindBadArtifact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeArtifact(tt.data)
			if err == nil {
				t.Fatal("Expected decode failure")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: tt.kind}) {
				t.Fatalf("Expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestArtifact_AlgorithmMismatch(t *testing.T) {
	payload, err := S2{}.Compress([]byte("heap"))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	art := &Artifact{BuildID: uuid.New(), Algorithm: "s2", Payload: payload}

	if _, err := art.Image(Zstd{}); !stderrors.Is(err, &errors.Error{
		Phase: errors.PhaseLoad, Kind: errors.KindAlgorithmMismatch,
	}) {
		t.Fatalf("Expected algorithm_mismatch, got %v", err)
	}

	img, err := art.Image(S2{})
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if string(img) != "heap" {
		t.Fatal("Image mismatch")
	}
}

func TestLibManifest_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib_file_names.json")
	libs := []string{"es5", "es2015.core", "deno.ns"}

	if err := WriteLibManifest(path, libs); err != nil {
		t.Fatalf("WriteLibManifest failed: %v", err)
	}
	got, err := ReadLibManifest(path)
	if err != nil {
		t.Fatalf("ReadLibManifest failed: %v", err)
	}
	if len(got) != len(libs) {
		t.Fatalf("Expected %d libs, got %d", len(libs), len(got))
	}
	for i := range libs {
		if got[i] != libs[i] {
			t.Fatalf("libs[%d] = %q, want %q", i, got[i], libs[i])
		}
	}
}

func TestReadArtifact_MissingFile(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatal("Expected error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindIO {
		t.Fatalf("Expected io error, got %v", err)
	}
	if _, statErr := os.Stat("missing.bin"); statErr == nil {
		t.Fatal("Nothing should be created by a failed read")
	}
}
