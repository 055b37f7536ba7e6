package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMountPoint verifies that path is the root of a mounted filesystem.
func CheckMountPoint(name, path string) Result {
	mounted, err := IsMountPoint(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !mounted {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a mount point)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (mounted)", path)}
}

// IsMountPoint reports whether path sits on a different device than its
// parent, or is the filesystem root.
func IsMountPoint(path string) (bool, error) {
	var self, parent unix.Stat_t
	if err := unix.Stat(path, &self); err != nil {
		return false, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	if self.Mode&unix.S_IFMT != unix.S_IFDIR {
		return false, fmt.Errorf("is not a directory")
	}
	parentPath := filepath.Dir(filepath.Clean(path))
	if err := unix.Stat(parentPath, &parent); err != nil {
		return false, &os.PathError{Op: "stat", Path: parentPath, Err: err}
	}
	if self.Dev != parent.Dev {
		return true, nil
	}
	return self.Ino == parent.Ino, nil
}
