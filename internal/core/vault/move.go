package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the second-resolution suffix used to disambiguate
// colliding file names on move.
const TimestampLayout = "20060102150405"

// MoveInto relocates src into destDir keeping its name. If a file with that
// name already exists, the destination name gains a timestamp suffix before
// the extension; existing files are never overwritten. Returns the final
// destination path.
func MoveInto(src, destDir string) (string, error) {
	return moveAs(src, destDir, filepath.Base(src))
}

// MoveIntoPrefixed relocates src into destDir with prefix prepended to the
// name, resolving collisions the same way as MoveInto.
func MoveIntoPrefixed(src, destDir, prefix string) (string, error) {
	return moveAs(src, destDir, prefix+filepath.Base(src))
}

func moveAs(src, destDir, name string) (string, error) {
	dest := filepath.Join(destDir, name)

	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(destDir, SuffixName(name, time.Now()))
	}

	if err := rename(src, dest); err != nil {
		return "", fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}

	return dest, nil
}

// SuffixName inserts a _<timestamp> suffix before the extension of name.
func SuffixName(name string, t time.Time) string {
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	return fmt.Sprintf("%s_%s%s", stem, t.Format(TimestampLayout), ext)
}

// rename moves a file, falling back to copy-and-delete when the rename
// crosses filesystem boundaries.
func rename(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
