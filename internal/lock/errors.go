package lock

import "errors"

// ErrLocked is wrapped by Acquire when another live process holds the device.
// Check for it with errors.Is().
var ErrLocked = errors.New("device is held by another process")
