// Package snapshot freezes a fully composed engine to a compressed byte
// artifact and loads such artifacts back at process startup.
//
// # Main Types
//
//   - CreateOptions / Create: drive a freshly composed engine through its
//     bootstrap entries, capture the heap, compress, and persist
//   - Compressor: the caller-supplied compression boundary (Zstd, S2)
//   - Artifact: the algorithm-tagged, checksummed on-disk envelope
//
// Two snapshot flavors exist side by side: a compiler-flavored artifact
// (library-loading extension set, zstd) and a runtime-flavored one (runtime
// extension set, s2). They share this exact contract and differ only in
// which extensions and scripts are baked in and which compression strategy
// is used; Create carries no flavor-specific assumptions.
//
// # Failure Policy
//
// A compression failure is a build failure: the operation either fully
// succeeds or no file is produced. Persisting goes through a temp file and
// rename, so a partial artifact never lands at the target path.
//
// Loading verifies the envelope (magic, algorithm tag, payload checksum)
// but performs no version check: staleness must be caught externally by
// tracking every contributing input and rebuilding when any changes.
package snapshot
