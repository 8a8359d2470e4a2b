package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/deb-package-builder/dist"
	"github.com/etnz/deb-package-builder/dpkg"
)

// The tool takes no arguments: it expects to live in a direct subdirectory of
// the project root (scripts/, bin/, ...) and locates everything relative to
// that root, the way the packaging step runs in CI.
//
//	<root>/Cargo.toml              project descriptor
//	<root>/target/release/<bin>    release binary
//	<root>/ui/<icon>               application icon
//	<root>/dist/                   output directory
//
// An optional deb-package-builder.yaml next to the executable overrides the
// built-in packaging values.
func main() {
	exe, err := os.Executable()
	if err != nil {
		fmt.Printf("Fatal: Could not locate own executable: %v\n", err)
		os.Exit(1)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		fmt.Printf("Fatal: Could not resolve executable path: %v\n", err)
		os.Exit(1)
	}
	toolDir := filepath.Dir(exe)
	root := filepath.Dir(toolDir)

	config, err := dist.LoadConfig(filepath.Join(toolDir, "deb-package-builder.yaml"))
	if err != nil {
		fmt.Printf("Fatal: Could not read or parse config file: %v\n", err)
		os.Exit(1)
	}

	outDir := filepath.Join(root, "dist")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Printf("Fatal: Could not create output directory %s: %v\n", outDir, err)
		os.Exit(1)
	}

	opts := dist.Options{
		Descriptor: filepath.Join(root, "Cargo.toml"),
		Binary:     filepath.Join(root, "target", "release", config.Bin),
		Icon:       filepath.Join(root, "ui", config.Icon),
		OutDir:     outDir,
		Config:     config,
	}

	artifact, err := dist.Run(dpkg.ExecRunner{}, opts, func(e fmt.Stringer) {
		fmt.Println(e)
	})
	if err != nil {
		fmt.Printf("Fatal: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Built %s\n", artifact)
}
