// Package lock keeps two cpuglow processes from driving the same device.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/cpuglow/internal/errors"
	"github.com/shirou/gopsutil/v4/process"
)

const infoFileName = "info.json"

// pidExists reports whether a process is still running. Replaced in tests.
var pidExists = func(pid int) bool {
	if pid <= 0 {
		return false
	}
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

// Lock is a held claim on one serial device.
type Lock struct {
	Dir  string    // The lock directory path
	Info *LockInfo // Info about the lock holder (us)
}

// DirFor returns the lock directory for device under baseDir.
// An empty baseDir means the system temp directory.
func DirFor(baseDir, device string) string {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return filepath.Join(baseDir, "cpuglow-"+lockName(device)+".lock")
}

// lockName flattens a device path into a single file name component,
// e.g. /dev/ttyUSB0 becomes dev_ttyUSB0.
func lockName(device string) string {
	clean := strings.Trim(filepath.ToSlash(filepath.Clean(device)), "/")
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(clean)
}

// Acquire claims device. It uses mkdir as an atomic primitive (mkdir fails if
// the directory exists). It does not wait: if a live process holds the device
// the returned error wraps ErrLocked. A lock left behind by a process that is
// no longer running is removed and taken over.
func Acquire(baseDir, device string) (*Lock, error) {
	lockDir := DirFor(baseDir, device)
	info := NewLockInfo(device)

	// Two passes: the second runs only after a stale lock was cleared.
	for pass := 0; pass < 2; pass++ {
		err := os.Mkdir(lockDir, 0o755)
		if err == nil {
			if err := writeInfo(lockDir, info); err != nil {
				_ = os.RemoveAll(lockDir)
				return nil, errors.WrapWithCode(err, errors.ErrLock,
					"Failed to write lock info file",
					"Check disk space and permissions on "+filepath.Dir(lockDir))
			}
			return &Lock{Dir: lockDir, Info: info}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrLock,
				"Cannot create lock for "+device,
				"Check that "+filepath.Dir(lockDir)+" exists and is writable")
		}

		holder, readErr := readInfo(lockDir)
		if readErr != nil || pidExists(holder.PID) {
			break
		}
		if err := os.RemoveAll(lockDir); err != nil {
			break
		}
	}

	return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
		fmt.Sprintf("%s is in use by %s", device, Holder(lockDir)),
		fmt.Sprintf("Stop the other cpuglow, or remove %s if it is left over", lockDir))
}

// Release removes the lock, allowing others to acquire it.
func (l *Lock) Release() error {
	if l == nil || l.Dir == "" {
		return nil // Nothing to release
	}
	if err := os.RemoveAll(l.Dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			fmt.Sprintf("Failed to remove lock directory: %s", l.Dir),
			"Remove it by hand")
	}
	return nil
}

// Holder returns information about who holds the lock (if readable).
func Holder(lockDir string) string {
	info, err := readInfo(lockDir)
	if err != nil {
		return "unknown"
	}
	return info.String()
}

func writeInfo(lockDir string, info *LockInfo) error {
	data, err := info.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(lockDir, infoFileName), data, 0o644)
}

func readInfo(lockDir string) (*LockInfo, error) {
	data, err := os.ReadFile(filepath.Join(lockDir, infoFileName))
	if err != nil {
		return nil, err
	}
	return ParseLockInfo(data)
}
