package dist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Tree is the scratch directory hierarchy mirroring the final installed
// layout. It lives under the output directory as
// {package}_{version}_{architecture} and is consumed by dpkg-deb, which
// derives the artifact name from the directory name.
type Tree struct {
	// Root is the tree directory itself.
	Root string

	name string // package identifier, one path element under opt
	bin  string // binary file name inside the install prefix
	icon string // icon file name inside the install prefix
}

// BuildTree creates the package tree under outDir and copies the binary and
// icon into its install prefix. Re-running over an existing tree overwrites
// the copies in place.
func BuildTree(outDir, name, version, arch, binPath, iconPath string) (*Tree, error) {
	t := &Tree{
		Root: filepath.Join(outDir, fmt.Sprintf("%s_%s_%s", name, version, arch)),
		name: name,
		bin:  filepath.Base(binPath),
		icon: filepath.Base(iconPath),
	}

	for _, dir := range []string{t.DebianDir(), t.PrefixDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrIO, dir, err)
		}
	}
	if err := copyFile(binPath, filepath.Join(t.PrefixDir(), t.bin)); err != nil {
		return nil, fmt.Errorf("%w: copying binary: %v", ErrIO, err)
	}
	if err := copyFile(iconPath, filepath.Join(t.PrefixDir(), t.icon)); err != nil {
		return nil, fmt.Errorf("%w: copying icon: %v", ErrIO, err)
	}
	return t, nil
}

// DebianDir is the tree's package metadata directory.
func (t *Tree) DebianDir() string { return filepath.Join(t.Root, "DEBIAN") }

// PrefixRel is the install prefix relative to the tree root, e.g. "opt/astralite".
func (t *Tree) PrefixRel() string { return path.Join("opt", t.name) }

// PrefixDir is the install prefix directory inside the tree.
func (t *Tree) PrefixDir() string { return filepath.Join(t.Root, "opt", t.name) }

// BinRel is the packaged binary path relative to the tree root. The
// dependency scanner takes it as argument.
func (t *Tree) BinRel() string { return path.Join(t.PrefixRel(), t.bin) }

// BinAbs is the absolute path of the binary once installed.
func (t *Tree) BinAbs() string { return "/" + t.BinRel() }

// IconAbs is the absolute path of the icon once installed.
func (t *Tree) IconAbs() string { return "/" + path.Join(t.PrefixRel(), t.icon) }

// DesktopPath is the desktop entry location inside the tree. The file is
// named after the binary, not the package.
func (t *Tree) DesktopPath() string {
	return filepath.Join(t.Root, "usr", "share", "applications", t.bin+".desktop")
}

// ArtifactPath is where dpkg-deb places the built package.
func (t *Tree) ArtifactPath() string { return t.Root + ".deb" }

// InstalledSize returns the total size of the regular files under the install
// prefix in kibibytes, truncated. Payloads under 1024 bytes report zero; dpkg
// accepts that value.
func (t *Tree) InstalledSize() (int64, error) {
	var total int64
	err := filepath.WalkDir(t.PrefixDir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: sizing %s: %v", ErrIO, t.PrefixDir(), err)
	}
	return total / 1024, nil
}

// copyFile copies src to dst byte for byte and carries the source permission
// bits over, so an executable stays executable inside the tree.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// O_CREATE only sets the mode on new files; an overwritten destination
	// keeps its old bits unless reset.
	return os.Chmod(dst, info.Mode().Perm())
}
