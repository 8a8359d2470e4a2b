package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Package is the parsed view of a built .deb artifact.
type Package struct {
	// Control holds the metadata read from the control member.
	Control Control

	// Files lists the payload paths as absolute install locations,
	// e.g. "/opt/astralite/astra_lite".
	Files []string
}

// Inspect opens the .deb artifact at path and parses it.
func Inspect(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pkg, err := ReadPackage(f)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", path, err)
	}
	return pkg, nil
}

// ReadPackage parses a .deb stream. The outer ar container is walked, the
// debian-binary member is checked for a supported format version, the
// control.tar member yields the control metadata and the data.tar member the
// payload listing. Tar members may be uncompressed or gzip, xz or zstd
// compressed; dpkg-deb picks the compression by distribution default.
func ReadPackage(r io.Reader) (*Package, error) {
	pkg := &Package{}
	var formatFound, controlFound bool

	arR := ar.NewReader(r)
	for {
		header, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ar header: %w", err)
		}

		switch {
		case strings.HasPrefix(header.Name, string(PkgDebianBinary)):
			data, err := io.ReadAll(arR)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", PkgDebianBinary, err)
			}
			if v := strings.TrimSpace(string(data)); !strings.HasPrefix(v, "2.") {
				return nil, fmt.Errorf("unsupported package format version %q", v)
			}
			formatFound = true
		case strings.HasPrefix(header.Name, string(PkgControlTar)):
			content, err := readControlMember(header.Name, arR)
			if err != nil {
				return nil, err
			}
			pkg.Control = parseControl(content)
			controlFound = true
		case strings.HasPrefix(header.Name, string(PkgDataTar)):
			files, err := readDataMember(header.Name, arR)
			if err != nil {
				return nil, err
			}
			pkg.Files = files
		}
	}

	if !formatFound {
		return nil, fmt.Errorf("%s member not found", PkgDebianBinary)
	}
	if !controlFound {
		return nil, fmt.Errorf("control member not found")
	}
	return pkg, nil
}

// memberReader wraps an archive member with the decompressor its name calls
// for. The returned close function releases decompressor state; it may be nil.
func memberReader(name string, r io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", name, err)
		}
		return gzr, func() { gzr.Close() }, nil
	case strings.HasSuffix(name, ".xz"):
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", name, err)
		}
		return xzr, nil, nil
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", name, err)
		}
		return zr, zr.Close, nil
	default:
		return r, nil, nil
	}
}

// readControlMember locates the control file inside a control.tar member.
func readControlMember(name string, r io.Reader) (string, error) {
	mr, closeMember, err := memberReader(name, r)
	if err != nil {
		return "", err
	}
	if closeMember != nil {
		defer closeMember()
	}

	tr := tar.NewReader(mr)
	for {
		th, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading control tar header: %w", err)
		}
		if filepath.Base(th.Name) == string(FileControl) {
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, tr); err != nil {
				return "", fmt.Errorf("reading control: %w", err)
			}
			return buf.String(), nil
		}
	}
	return "", fmt.Errorf("control file not found in %s", name)
}

// readDataMember lists the regular files of a data.tar member as absolute
// install paths.
func readDataMember(name string, r io.Reader) ([]string, error) {
	mr, closeMember, err := memberReader(name, r)
	if err != nil {
		return nil, err
	}
	if closeMember != nil {
		defer closeMember()
	}

	var files []string
	tr := tar.NewReader(mr)
	for {
		th, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading data tar header: %w", err)
		}
		if th.Typeflag != tar.TypeReg {
			continue
		}
		destPath := "/" + strings.TrimPrefix(th.Name, "./")
		destPath = strings.ReplaceAll(destPath, "//", "/")
		files = append(files, destPath)
	}
	return files, nil
}
