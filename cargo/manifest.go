// Package cargo extracts package metadata from Cargo.toml project descriptors.
package cargo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrManifest reports a missing or malformed field in the project descriptor.
var ErrManifest = errors.New("invalid project descriptor")

// versionPattern is the strict MAJOR.MINOR.PATCH form accepted for packaging.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Manifest holds the project metadata needed to build a package.
// Values are kept exactly as written in the descriptor; DebName and
// DebVersion derive the identifiers used on disk and in the control file.
type Manifest struct {
	Name        string
	Version     string
	Description string
}

// Load reads the [package] section of the descriptor at path.
// The section must define name, version and description, and version must be
// a three-component numeric string. Any other section of the descriptor is
// ignored. All failures wrap ErrManifest.
func Load(path string) (Manifest, error) {
	// Internal DTO for TOML deserialization.
	type tomlPackage struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description"`
	}
	type tomlManifest struct {
		Package tomlPackage `toml:"package"`
	}

	var dto tomlManifest
	md, err := toml.DecodeFile(path, &dto)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %s: %v", ErrManifest, path, err)
	}
	if !md.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%w: %s: missing [package] section", ErrManifest, path)
	}
	for _, key := range []string{"name", "version", "description"} {
		if !md.IsDefined("package", key) {
			return Manifest{}, fmt.Errorf("%w: %s: missing package.%s", ErrManifest, path, key)
		}
	}

	m := Manifest{
		Name:        dto.Package.Name,
		Version:     dto.Package.Version,
		Description: dto.Package.Description,
	}
	if m.DebName() == "" {
		return Manifest{}, fmt.Errorf("%w: %s: package.name is empty", ErrManifest, path)
	}
	if !versionPattern.MatchString(m.Version) {
		return Manifest{}, fmt.Errorf("%w: version %q does not match MAJOR.MINOR.PATCH", ErrManifest, m.Version)
	}
	return m, nil
}

// DebName returns the package identifier derived from the project name:
// surrounding quotes trimmed, underscores and spaces removed, lowercased.
// Debian package names must be lowercase, so "Astra Lite" and "astra_lite"
// both map to "astralite".
func (m Manifest) DebName() string {
	name := strings.Trim(m.Name, `"`)
	name = strings.NewReplacer("_", "", " ", "").Replace(name)
	return strings.ToLower(name)
}

// DebVersion returns the version with the patch component demoted to a
// packaging revision: "1.2.3" becomes "1.2-3". The hyphen keeps the package
// manager from ranking the patch digit like minor or major. It returns ""
// when Version is not a three-component numeric string; Load guarantees it is.
func (m Manifest) DebVersion() string {
	g := versionPattern.FindStringSubmatch(m.Version)
	if g == nil {
		return ""
	}
	return g[1] + "." + g[2] + "-" + g[3]
}
