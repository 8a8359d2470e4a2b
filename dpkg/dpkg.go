package dpkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/deb-package-builder/deb"
)

var (
	// ErrProbe reports that the host architecture could not be determined.
	ErrProbe = errors.New("architecture probe failed")
	// ErrShlibDeps reports that the shared library dependency scan failed.
	ErrShlibDeps = errors.New("dependency scan failed")
	// ErrBuild reports that the archive builder exited with an error.
	ErrBuild = errors.New("package build failed")
)

// shlibsPrefix is the substvar line dpkg-shlibdeps prints in -O mode.
const shlibsPrefix = "shlibs:Depends="

// Architecture returns the host architecture identifier as dpkg spells it
// (amd64, arm64, ...), with surrounding whitespace stripped.
func Architecture(r Runner) (string, error) {
	out, err := r.Run("", "dpkg", "--print-architecture")
	if err != nil {
		return "", fmt.Errorf("%w: dpkg --print-architecture: %s", ErrProbe, describe(err))
	}
	return strings.TrimSpace(string(out)), nil
}

// SourceStub identifies the pseudo source package that dpkg-shlibdeps expects
// to find described in a debian/control file next to the binary it scans.
type SourceStub struct {
	Source       string
	Version      string
	Architecture string
}

// ShlibDeps resolves the runtime shared library dependencies of the binary at
// binRel, a path relative to treeDir. dpkg-shlibdeps insists on a Debian
// source layout, so a throwaway debian/control stub is written inside treeDir
// for the duration of the scan and removed again afterwards.
//
// The returned value is the comma-separated dependency list, e.g.
// "libc6 (>= 2.34), libgtk-3-0 (>= 3.24)". The scan fails if the tool exits
// non-zero or its output carries no "shlibs:Depends=" line.
func ShlibDeps(r Runner, treeDir, binRel string, stub SourceStub) (string, error) {
	debianDir := filepath.Join(treeDir, "debian")
	if err := os.MkdirAll(debianDir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating scan stub: %v", ErrShlibDeps, err)
	}
	defer os.RemoveAll(debianDir)

	var control strings.Builder
	writeField := func(field deb.ControlField, value string) {
		fmt.Fprintf(&control, "%s: %s\n", field, value)
	}
	writeField(deb.FieldSource, stub.Source)
	writeField(deb.FieldVersion, stub.Version)
	writeField(deb.FieldArchitecture, stub.Architecture)
	if err := os.WriteFile(filepath.Join(debianDir, string(deb.FileControl)), []byte(control.String()), 0644); err != nil {
		return "", fmt.Errorf("%w: writing scan stub: %v", ErrShlibDeps, err)
	}

	out, err := r.Run(treeDir, "dpkg-shlibdeps", "-O", binRel)
	if err != nil {
		return "", fmt.Errorf("%w: dpkg-shlibdeps -O %s: %s", ErrShlibDeps, binRel, describe(err))
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, shlibsPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, shlibsPrefix)), nil
		}
	}
	return "", fmt.Errorf("%w: %q not found in scanner output", ErrShlibDeps, shlibsPrefix)
}

// BuildDeb asks dpkg-deb to assemble the package tree at treeDir into a .deb
// artifact next to it, with every packaged file owned by root.
func BuildDeb(r Runner, treeDir string) error {
	if _, err := r.Run("", "dpkg-deb", "--root-owner-group", "--build", treeDir); err != nil {
		return fmt.Errorf("%w: dpkg-deb --build %s: %s", ErrBuild, treeDir, describe(err))
	}
	return nil
}
