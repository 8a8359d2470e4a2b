package dist

import (
	"encoding/json"
	"fmt"
)

// Listener is a callback function that receives events during the build process.
type Listener func(fmt.Stringer)

func jsonString(v interface{}) string {
	b, _ := json.Marshal(map[string]interface{}{
		fmt.Sprintf("%T", v): v,
	})
	return string(b)
}

// EventMetadataExtracted is emitted once the project descriptor is parsed.
type EventMetadataExtracted struct {
	Package string `json:"package,omitempty"`
	Version string `json:"version,omitempty"`
}

func (e EventMetadataExtracted) String() string { return jsonString(e) }

// EventArchitectureProbed is emitted once the target architecture is known.
type EventArchitectureProbed struct {
	Architecture string `json:"architecture,omitempty"`
}

func (e EventArchitectureProbed) String() string { return jsonString(e) }

// EventTreeBuilt is emitted when the package tree is populated on disk.
type EventTreeBuilt struct {
	Path string `json:"path,omitempty"`
}

func (e EventTreeBuilt) String() string { return jsonString(e) }

// EventDesktopEntryWritten is emitted when the desktop entry is placed in the tree.
type EventDesktopEntryWritten struct {
	Path string `json:"path,omitempty"`
}

func (e EventDesktopEntryWritten) String() string { return jsonString(e) }

// EventDependsResolved is emitted when the shared library scan completes.
type EventDependsResolved struct {
	Depends string `json:"depends,omitempty"`
}

func (e EventDependsResolved) String() string { return jsonString(e) }

// EventControlWritten is emitted when the control and dirs files are written.
// InstalledSize stays in the JSON even at zero, a legitimate value for
// payloads under one kibibyte.
type EventControlWritten struct {
	InstalledSize int64 `json:"installed_size"`
}

func (e EventControlWritten) String() string { return jsonString(e) }

// EventArtifactBuilt is emitted when the external builder produces the .deb.
// The identity fields are read back from the artifact's control member, not
// echoed from the pipeline's inputs.
type EventArtifactBuilt struct {
	Path         string `json:"path,omitempty"`
	Package      string `json:"package,omitempty"`
	Version      string `json:"version,omitempty"`
	Architecture string `json:"architecture,omitempty"`
}

func (e EventArtifactBuilt) String() string { return jsonString(e) }

// EventTreeRemoveFailure is emitted when the scratch tree cannot be removed.
// Cleanup is best effort, so the failure is reported and swallowed.
type EventTreeRemoveFailure struct {
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

func (e EventTreeRemoveFailure) String() string { return jsonString(e) }

// EventChecksumsWritten is emitted when the output checksum index is written.
type EventChecksumsWritten struct {
	Path   string `json:"path,omitempty"`
	Signed bool   `json:"signed,omitempty"`
}

func (e EventChecksumsWritten) String() string { return jsonString(e) }
