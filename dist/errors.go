package dist

import "errors"

// ErrIO reports a failed filesystem operation while assembling the package
// tree or its companion files. External tool failures carry their own
// sentinels in the dpkg package.
var ErrIO = errors.New("filesystem operation failed")
