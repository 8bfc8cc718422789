// Package blob stores uploaded photo bytes on local disk and hands out
// stable /uploads/... reference strings. The review engine never touches
// the bytes, only the references.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// RefPrefix is the public path prefix under which stored photos are served.
const RefPrefix = "/uploads/"

type DiskStore struct{ dir string }

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the backing directory, for static file serving.
func (d *DiskStore) Dir() string { return d.dir }

// Put writes the bytes under a fresh random name that keeps the original
// extension, and returns the public reference.
func (d *DiskStore) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := uuid.NewString() + sanitizeExt(filename)
	dst, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close blob: %w", err)
	}
	return RefPrefix + name, nil
}

// sanitizeExt keeps a plain extension like ".jpg" and drops anything a
// client could use to escape the uploads directory.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || strings.ContainsAny(ext, `/\`) || len(ext) > 10 {
		return ""
	}
	return ext
}
