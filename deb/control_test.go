package deb

import (
	"strings"
	"testing"
)

func testControl() Control {
	return Control{
		Package:       "astralite",
		Version:       "2.0-1",
		Architecture:  "amd64",
		Maintainer:    "Denis Artemov (denis.artyomov@gmail.com)",
		Depends:       "libc6 (>= 2.34), libgtk-3-0 (>= 3.24)",
		InstalledSize: 10240,
		Description:   "Telescope control",
	}
}

func TestControlRender(t *testing.T) {
	want := `Package: astralite
Version: 2.0-1
Architecture: amd64
Maintainer: Denis Artemov (denis.artyomov@gmail.com)
Depends: libc6 (>= 2.34), libgtk-3-0 (>= 3.24)
Installed-Size: 10240
Description: Telescope control
`
	if got := testControl().Render(); got != want {
		t.Errorf("Render mismatch.\nGot:\n%s\nWant:\n%s", got, want)
	}
}

func TestControlRenderZeroInstalledSize(t *testing.T) {
	c := testControl()
	c.InstalledSize = 0
	if !strings.Contains(c.Render(), "Installed-Size: 0\n") {
		t.Errorf("Render did not emit a zero Installed-Size:\n%s", c.Render())
	}
}

func TestControlValidate(t *testing.T) {
	if err := testControl().Validate(); err != nil {
		t.Errorf("Validate on populated control: %v", err)
	}

	tests := []struct {
		field string
		blank func(*Control)
	}{
		{"Package", func(c *Control) { c.Package = "" }},
		{"Version", func(c *Control) { c.Version = "" }},
		{"Architecture", func(c *Control) { c.Architecture = "" }},
		{"Maintainer", func(c *Control) { c.Maintainer = "" }},
		{"Depends", func(c *Control) { c.Depends = " " }},
		{"Description", func(c *Control) { c.Description = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			c := testControl()
			tt.blank(&c)
			err := c.Validate()
			if err == nil {
				t.Fatalf("Validate accepted empty %s", tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate error %q does not name field %s", err, tt.field)
			}
		})
	}
}

func TestControlValidateAllowsZeroInstalledSize(t *testing.T) {
	c := testControl()
	c.InstalledSize = 0
	if err := c.Validate(); err != nil {
		t.Errorf("Validate rejected zero Installed-Size: %v", err)
	}
}

func TestParseControlRoundTrip(t *testing.T) {
	want := testControl()
	got := parseControl(want.Render())
	if got != want {
		t.Errorf("parseControl(Render()) = %+v, want %+v", got, want)
	}
}

func TestParseControlFoldedField(t *testing.T) {
	content := "Package: astralite\nDescription: Telescope control\n extended body line\nVersion: 2.0-1\n"
	c := parseControl(content)
	if c.Package != "astralite" || c.Version != "2.0-1" {
		t.Errorf("parseControl = %+v", c)
	}
	if !strings.Contains(c.Description, "extended body line") {
		t.Errorf("Description lost its continuation line: %q", c.Description)
	}
}

func TestParseControlIgnoresUnknownFields(t *testing.T) {
	content := "Package: astralite\nSection: science\nPriority: optional\n"
	c := parseControl(content)
	if c.Package != "astralite" {
		t.Errorf("Package = %q, want %q", c.Package, "astralite")
	}
}
