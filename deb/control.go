package deb

import (
	"fmt"
	"strconv"
	"strings"
)

// Control maps to the fields of the DEBIAN/control file this builder emits.
//
// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#binary-package-control-files-debian-control
type Control struct {
	// Package is the name of the package, lower case letters (a-z), digits
	// (0-9), plus (+) and minus (-) signs, and periods (.).
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-package
	Package string

	// Version is the package version in [upstream_version]-[debian_revision]
	// form, e.g. "2.0-1".
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-version
	Version string

	// Architecture is the hardware architecture the binary is compiled for,
	// as dpkg spells it ("amd64", "arm64", ...).
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-architecture
	Architecture string

	// Maintainer is the name and contact address of the person responsible
	// for the package.
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-maintainer
	Maintainer string

	// Depends is the comma-separated runtime dependency list, normally the
	// verbatim output of the shared library scan.
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-relationships.html#s-binarydeps
	Depends string

	// InstalledSize is the disk usage of the installed payload in kibibytes,
	// truncated. Zero is a valid value for payloads under 1024 bytes.
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-installed-size
	InstalledSize int64

	// Description is the package synopsis.
	//
	// Reference: https://www.debian.org/doc/debian-policy/ch-controlfields.html#s-f-description
	Description string
}

// Validate reports the first empty text field. dpkg-deb accepts a control
// file with blank values and produces a semantically broken package, so the
// check runs before the builder is invoked.
func (c Control) Validate() error {
	fields := []struct {
		name  ControlField
		value string
	}{
		{FieldPackage, c.Package},
		{FieldVersion, c.Version},
		{FieldArchitecture, c.Architecture},
		{FieldMaintainer, c.Maintainer},
		{FieldDepends, c.Depends},
		{FieldDescription, c.Description},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("control field %s is empty", f.name)
		}
	}
	return nil
}

// Render emits the control file content, one "Field: value" line per field in
// the fixed order dpkg conventionally lists them. Every field is written
// unconditionally; Validate is the place where emptiness is rejected.
func (c Control) Render() string {
	var b strings.Builder

	writeField := func(field ControlField, value string) {
		fmt.Fprintf(&b, "%s: %s\n", field, value)
	}

	writeField(FieldPackage, c.Package)
	writeField(FieldVersion, c.Version)
	writeField(FieldArchitecture, c.Architecture)
	writeField(FieldMaintainer, c.Maintainer)
	writeField(FieldDepends, c.Depends)
	writeField(FieldInstalledSize, strconv.FormatInt(c.InstalledSize, 10))
	writeField(FieldDescription, c.Description)

	return b.String()
}

// parseControl parses the raw text of a control file into a Control. It
// handles folded (multiline) values by appending continuation lines to the
// current field, and ignores fields the struct does not carry.
func parseControl(content string) Control {
	var c Control
	var currentKey string
	var currentValue strings.Builder

	flush := func() {
		if currentKey == "" {
			return
		}
		val := strings.TrimSpace(currentValue.String())
		switch ControlField(currentKey) {
		case FieldPackage:
			c.Package = val
		case FieldVersion:
			c.Version = val
		case FieldArchitecture:
			c.Architecture = val
		case FieldMaintainer:
			c.Maintainer = val
		case FieldDepends:
			c.Depends = val
		case FieldInstalledSize:
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				c.InstalledSize = n
			}
		case FieldDescription:
			c.Description = val
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			currentValue.WriteString("\n" + line)
		} else if strings.Contains(line, ":") {
			flush()
			parts := strings.SplitN(line, ":", 2)
			currentKey = parts[0]
			currentValue.Reset()
			currentValue.WriteString(strings.TrimSpace(parts[1]))
		}
	}
	flush()
	return c
}
