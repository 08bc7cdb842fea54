// Package thumbcache provides the disk-backed thumbnail store for paginated
// documents. Entries are keyed by (source file path, page index) and stored
// as PNG files. Writes go to a temporary file first and are renamed into
// place, so a partial write is never observable as a cache hit.
//
// The store performs no locking: the owning document is single-threaded and
// a miss simply re-renders and overwrites.
package thumbcache

import (
	"crypto/sha1"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// DirName is the directory created under the user cache dir by Default.
const DirName = "docview"

// Store is a disk-backed key/value store for page thumbnails.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("thumbcache: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Default creates a store under the user cache directory.
func Default() (*Store, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("thumbcache: no user cache dir: %w", err)
	}
	return New(filepath.Join(base, DirName))
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Load returns the cached thumbnail for (sourcePath, page), or false if the
// entry is absent or unreadable.
func (s *Store) Load(sourcePath string, page int) (image.Image, bool) {
	f, err := os.Open(s.entryPath(sourcePath, page))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	return img, true
}

// Save writes the thumbnail for (sourcePath, page). The PNG is written to a
// temporary file in the same directory and renamed over the final name, so
// readers either see the old entry or the complete new one.
func (s *Store) Save(sourcePath string, page int, img image.Image) error {
	tmp, err := os.CreateTemp(s.dir, "thumb-*.tmp")
	if err != nil {
		return fmt.Errorf("thumbcache: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("thumbcache: encode page %d: %w", page, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("thumbcache: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.entryPath(sourcePath, page)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("thumbcache: store page %d: %w", page, err)
	}
	return nil
}

// entryPath derives the on-disk file name for a cache key. The source path
// is hashed so arbitrary paths map to flat, filesystem-safe names; the page
// index stays readable for debugging.
func (s *Store) entryPath(sourcePath string, page int) string {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		abs = sourcePath
	}
	sum := sha1.Sum([]byte(abs))
	return filepath.Join(s.dir, fmt.Sprintf("%x-%04d.png", sum, page))
}
