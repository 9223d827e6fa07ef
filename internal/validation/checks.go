package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MaxImageBytes bounds template and slide images read from disk.
const MaxImageBytes = 20 << 20

// CheckFileExists verifies a regular file exists at the given path.
func CheckFileExists(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("path %s does not exist", path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory", path)
	}

	return nil
}

// CheckImageFile verifies path is a readable file no larger than MaxImageBytes.
func CheckImageFile(path string) error {
	if err := CheckFileExists(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("image %s is empty", path)
	}
	if info.Size() > MaxImageBytes {
		return fmt.Errorf("image %s is too large: %d bytes (max %d)", path, info.Size(), MaxImageBytes)
	}

	return nil
}
