package deb

import (
	"strings"
	"text/template"
)

// Entry models the desktop entry installed under usr/share/applications so
// application launchers can find the packaged binary.
//
// Reference: https://specifications.freedesktop.org/desktop-entry-spec/latest/
type Entry struct {
	// Version is the package version the entry was generated for.
	Version string

	// Name is the human-readable application name shown by launchers.
	Name string

	// Comment is the descriptive tooltip line. It may be empty; the line is
	// still emitted so the entry schema never varies with metadata content.
	Comment string

	// Categories is the semicolon-separated launcher category list.
	Categories string

	// Exec is the absolute installed path of the binary. It is used for both
	// the TryExec probe and the Exec command line.
	Exec string

	// Icon is the absolute installed path of the icon file.
	Icon string
}

// entryTemplate fixes the shape of the generated entry: the same keys in the
// same order on every run, with no conditional sections.
const entryTemplate = `[Desktop Entry]
Version={{.Version}}
Type=Application
Name={{.Name}}
Comment={{.Comment}}
Categories={{.Categories}}
TryExec={{.Exec}}
Exec={{.Exec}}
Icon={{.Icon}}
`

var entryTmpl = template.Must(template.New("desktop-entry").Option("missingkey=error").Parse(entryTemplate))

// Render returns the desktop entry file content.
func (e Entry) Render() (string, error) {
	var b strings.Builder
	if err := entryTmpl.Execute(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}
