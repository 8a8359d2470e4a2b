// Package deb models the Debian package formats this builder produces and
// consumes.
//
// It covers three artifacts:
//
//   - Control, the DEBIAN/control metadata file: rendered field by field in
//     the conventional order, validated before the external builder runs, and
//     parsed back when reading built packages.
//   - Entry, the freedesktop.org desktop entry installed under
//     usr/share/applications: rendered from a fixed template so the key set
//     never varies with metadata content.
//   - Package, the parsed view of a built .deb archive: the ar container is
//     walked and the control.tar and data.tar members decoded, whichever of
//     gzip, xz or zstd compression the builder chose.
//
// The package holds no filesystem layout knowledge; assembling and placing
// these artifacts inside a package tree is the dist package's concern.
package deb
