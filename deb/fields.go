package deb

// ControlField represents a standard field in a Debian control file.
type ControlField string

const (
	FieldPackage       ControlField = "Package"
	FieldVersion       ControlField = "Version"
	FieldArchitecture  ControlField = "Architecture"
	FieldMaintainer    ControlField = "Maintainer"
	FieldDepends       ControlField = "Depends"
	FieldInstalledSize ControlField = "Installed-Size"
	FieldDescription   ControlField = "Description"
	FieldSource        ControlField = "Source"
)

// ControlFile represents a standard file found under the DEBIAN directory of
// a package tree (and, for control, inside the control.tar member).
type ControlFile string

const (
	FileControl ControlFile = "control"
	FileDirs    ControlFile = "dirs"
)

// PackageFile names a member of the .deb archive (ar format). The tar members
// carry a compression suffix chosen by the builder (.gz, .xz or .zst), so they
// are matched by prefix.
type PackageFile string

const (
	PkgDebianBinary PackageFile = "debian-binary"
	PkgControlTar   PackageFile = "control.tar"
	PkgDataTar      PackageFile = "data.tar"
)
