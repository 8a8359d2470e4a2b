// Package dist assembles Debian packages for a Rust application: it reads the
// project descriptor, lays out the package tree, resolves shared library
// dependencies and drives dpkg-deb, leaving the artifact and a checksum index
// in the output directory.
package dist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/deb-package-builder/cargo"
	"github.com/etnz/deb-package-builder/deb"
	"github.com/etnz/deb-package-builder/dpkg"
)

// Options carries the run inputs: where the project files live and the tool
// configuration.
type Options struct {
	// Descriptor is the path of the Cargo.toml project descriptor.
	Descriptor string
	// Binary is the path of the release binary to package.
	Binary string
	// Icon is the path of the application icon to package.
	Icon string
	// OutDir is the directory receiving the tree, the artifact and the
	// checksum index.
	OutDir string
	// Config supplies the values not derived from the descriptor.
	Config Config
}

// Run executes the packaging pipeline and returns the artifact path. Stages
// run in a fixed order and the first failure aborts the run; its error wraps
// the stage's sentinel (cargo.ErrManifest, dpkg.ErrProbe, dpkg.ErrShlibDeps,
// dpkg.ErrBuild or ErrIO, matchable with errors.Is).
//
// The scratch tree is removed once the builder has run, whether it succeeded
// or not. Failures before the builder leave the tree in place for inspection;
// a failed removal is reported through the listener and swallowed. A built
// artifact is read back before the success event, which carries the package
// identity as recorded in the artifact itself.
func Run(r dpkg.Runner, opts Options, l Listener) (string, error) {
	if l == nil {
		l = func(fmt.Stringer) {}
	}

	m, err := cargo.Load(opts.Descriptor)
	if err != nil {
		return "", err
	}
	name, version := m.DebName(), m.DebVersion()
	l(EventMetadataExtracted{Package: name, Version: version})

	arch, err := dpkg.Architecture(r)
	if err != nil {
		return "", err
	}
	l(EventArchitectureProbed{Architecture: arch})

	tree, err := BuildTree(opts.OutDir, name, version, arch, opts.Binary, opts.Icon)
	if err != nil {
		return "", err
	}
	l(EventTreeBuilt{Path: tree.Root})

	entry := deb.Entry{
		Version:    version,
		Name:       opts.Config.AppName,
		Comment:    m.Description,
		Categories: opts.Config.Categories,
		Exec:       tree.BinAbs(),
		Icon:       tree.IconAbs(),
	}
	if err := writeDesktopEntry(tree, entry); err != nil {
		return "", err
	}
	l(EventDesktopEntryWritten{Path: tree.DesktopPath()})

	depends, err := dpkg.ShlibDeps(r, tree.Root, tree.BinRel(), dpkg.SourceStub{
		Source:       name,
		Version:      version,
		Architecture: arch,
	})
	if err != nil {
		return "", err
	}
	l(EventDependsResolved{Depends: depends})

	size, err := tree.InstalledSize()
	if err != nil {
		return "", err
	}
	ctrl := deb.Control{
		Package:       name,
		Version:       version,
		Architecture:  arch,
		Maintainer:    opts.Config.Maintainer,
		Depends:       depends,
		InstalledSize: size,
		Description:   m.Description,
	}
	if err := writeControl(tree, ctrl); err != nil {
		return "", err
	}
	l(EventControlWritten{InstalledSize: size})

	buildErr := dpkg.BuildDeb(r, tree.Root)
	if rmErr := os.RemoveAll(tree.Root); rmErr != nil {
		l(EventTreeRemoveFailure{Path: tree.Root, Error: rmErr.Error()})
	}
	if buildErr != nil {
		return "", buildErr
	}

	artifact := tree.ArtifactPath()
	pkg, err := deb.Inspect(artifact)
	if err != nil {
		return "", fmt.Errorf("%w: reading back artifact: %v", ErrIO, err)
	}
	l(EventArtifactBuilt{
		Path:         artifact,
		Package:      pkg.Control.Package,
		Version:      pkg.Control.Version,
		Architecture: pkg.Control.Architecture,
	})

	index, err := WriteChecksums(opts.OutDir, opts.Config.SignKey)
	if err != nil {
		return "", err
	}
	l(EventChecksumsWritten{Path: index, Signed: opts.Config.SignKey != ""})

	return artifact, nil
}

// writeDesktopEntry renders the desktop entry and places it in the tree under
// usr/share/applications.
func writeDesktopEntry(t *Tree, e deb.Entry) error {
	content, err := e.Render()
	if err != nil {
		return fmt.Errorf("rendering desktop entry: %w", err)
	}
	dir := filepath.Dir(t.DesktopPath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, dir, err)
	}
	if err := os.WriteFile(t.DesktopPath(), []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, t.DesktopPath(), err)
	}
	return nil
}

// writeControl validates the control metadata and writes the control and dirs
// files into the tree's DEBIAN directory.
func writeControl(t *Tree, c deb.Control) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("control metadata: %w", err)
	}
	controlPath := filepath.Join(t.DebianDir(), string(deb.FileControl))
	if err := os.WriteFile(controlPath, []byte(c.Render()), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, controlPath, err)
	}
	dirsPath := filepath.Join(t.DebianDir(), string(deb.FileDirs))
	if err := os.WriteFile(dirsPath, []byte("/"+t.PrefixRel()+"\n"), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, dirsPath, err)
	}
	return nil
}
