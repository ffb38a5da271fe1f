package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ExProbitasFiducia/deno/buildlib"
	"github.com/ExProbitasFiducia/deno/extension"
	"github.com/ExProbitasFiducia/deno/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out-dir>",
	Short: "Build the snapshot artifacts",
	Long: `Build both snapshot flavors into <out-dir>:

  ` + snapshot.CompilerArtifactName + `  compiler flavor (library set, zstd)
  ` + snapshot.RuntimeArtifactName + `       runtime flavor (runtime extensions, s2)

A lib_file_names.json manifest is written beside the compiler artifact so
stale snapshots can be detected by the surrounding build.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("dts-dir", "", "Directory holding lib.<name>.d.ts files")
	snapshotCmd.Flags().StringSlice("lib", nil, "Library name to bake in (repeatable)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	outDir := args[0]
	dtsDir, _ := cmd.Flags().GetString("dts-dir")
	libs, _ := cmd.Flags().GetStringSlice("lib")

	cfg := buildlib.Config{
		DTSDir: dtsDir,
		Libs:   libs,
	}

	compilerPath := filepath.Join(outDir, snapshot.CompilerArtifactName)
	if _, err := snapshot.Create(snapshot.CreateOptions{
		Path:       compilerPath,
		Extensions: []*extension.Extension{buildlib.Extension(cfg)},
		Compressor: snapshot.CompilerCompressor(),
	}); err != nil {
		return fmt.Errorf("compiler snapshot: %w", err)
	}
	manifest := filepath.Join(outDir, "lib_file_names.json")
	if err := snapshot.WriteLibManifest(manifest, libs); err != nil {
		return err
	}

	runtimePath := filepath.Join(outDir, snapshot.RuntimeArtifactName)
	if _, err := snapshot.Create(snapshot.CreateOptions{
		Path:       runtimePath,
		Extensions: runtimeExtensions(),
		Compressor: snapshot.RuntimeCompressor(),
	}); err != nil {
		return fmt.Errorf("runtime snapshot: %w", err)
	}

	fmt.Printf("wrote %s\nwrote %s\n", compilerPath, runtimePath)
	return nil
}
