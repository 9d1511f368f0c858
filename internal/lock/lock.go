// Package lock keeps two health check runs from writing the same report
// directory at once.
package lock

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilohealth/hcilo/internal/errors"
)

// DefaultStale is how old a lock must be before it is treated as abandoned.
const DefaultStale = 2 * time.Hour

const infoFileName = "info.json"

// Lock is a held report lock.
type Lock struct {
	Dir  string    // The lock directory
	Info *LockInfo // Info about the lock holder (us)
}

// Path returns the lock directory for reports named prefix in dir.
func Path(dir, prefix string) string {
	return filepath.Join(dir, "."+prefix+".lock")
}

// Acquire takes the lock for reports named prefix in dir. It uses mkdir as
// the atomic primitive and does not wait: if another run holds the lock the
// error wraps ErrLocked. Locks older than stale are removed first; stale <= 0
// never expires a lock.
func Acquire(dir, prefix, command string, stale time.Duration) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Cannot create report directory "+dir,
			"Check permissions or set report.dir in your config")
	}

	lockDir := Path(dir, prefix)
	infoFile := filepath.Join(lockDir, infoFileName)
	info := NewLockInfo(command)

	if isLockStale(infoFile, stale) {
		_ = os.RemoveAll(lockDir)
	}

	if err := os.Mkdir(lockDir, 0755); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return nil, errors.WrapWithCode(ErrLocked, errors.ErrLock,
				"Another health check is writing to "+dir,
				fmt.Sprintf("Lock held by: %s. Wait for it to finish, or remove %s if it is stuck.",
					readLockHolder(infoFile), lockDir))
		}
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to create lock "+lockDir,
			"Check permissions on the report directory")
	}

	data, err := info.Marshal()
	if err == nil {
		err = os.WriteFile(infoFile, data, 0644)
	}
	if err != nil {
		_ = os.RemoveAll(lockDir)
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions on the report directory")
	}

	return &Lock{Dir: lockDir, Info: info}, nil
}

// Release removes the lock. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.RemoveAll(l.Dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrLock,
			"Failed to remove lock directory: "+l.Dir,
			"Remove it by hand before the next run")
	}
	return nil
}

// Holder returns who holds the lock for reports named prefix in dir, or ""
// when it is free.
func Holder(dir, prefix string) string {
	lockDir := Path(dir, prefix)
	if _, err := os.Stat(lockDir); err != nil {
		return ""
	}
	return readLockHolder(filepath.Join(lockDir, infoFileName))
}

// isLockStale checks if the lock's info file is older than the stale threshold.
func isLockStale(infoFile string, staleThreshold time.Duration) bool {
	if staleThreshold <= 0 {
		return false
	}
	data, err := os.ReadFile(infoFile)
	if err != nil {
		return false
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return false
	}
	return info.Age() > staleThreshold
}

// readLockHolder reads the lock info file and returns a description of the holder.
func readLockHolder(infoFile string) string {
	data, err := os.ReadFile(infoFile)
	if err != nil {
		return "unknown"
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return strings.TrimSpace(string(data))
	}
	return info.String()
}
