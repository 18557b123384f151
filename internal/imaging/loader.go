package imaging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ironsheep/ppm-editor/internal/ppm"
)

// Extension is the file extension every PPM path must carry.
const Extension = ".ppm"

// ErrInvalidImage is wrapped by InvalidImageError.
var ErrInvalidImage = errors.New("invalid ppm image")

// InvalidImageError reports a file whose contents are not a valid P3 image.
type InvalidImageError struct {
	Path   string
	Detail *ppm.InvalidInput
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidImage, e.Path, e.Detail)
}

func (e *InvalidImageError) Unwrap() error {
	return ErrInvalidImage
}

// HasExtension reports whether path ends in the PPM extension.
func HasExtension(path string) bool {
	return strings.HasSuffix(path, Extension)
}

// ReadFile opens path, decodes it, and closes it again.
//
// Bad image data is reported through the returned Result, exactly as
// ppm.Read reports it. The error is non-nil only when the file cannot be
// opened or read.
func ReadFile(path string) (ppm.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return ppm.Result{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	res, err := ppm.Read(f)
	if err != nil {
		return ppm.Result{}, fmt.Errorf("failed to read image: %w", err)
	}
	return res, nil
}

// GridCache provides thread-safe caching of decoded grids to avoid redundant
// disk reads.
//
// Entries are keyed by absolute path, so different spellings of one file
// share an entry. Each entry remembers the modification time and size the
// file had when it was read; a file that has changed since is read again.
// Load hands out a copy, so callers may transform the returned grid without
// disturbing the cached one.
//
// GridCache is safe for concurrent use by multiple goroutines.
type GridCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	grid    ppm.Grid
	modTime time.Time
	size    int64
}

// current reports whether fi still describes the file the entry was read from.
func (e cacheEntry) current(fi os.FileInfo) bool {
	return e.size == fi.Size() && e.modTime.Equal(fi.ModTime())
}

// NewGridCache creates and initializes a new empty grid cache.
func NewGridCache() *GridCache {
	return &GridCache{
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey normalizes path to the key its entry is stored under.
func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Load retrieves a grid from the cache or reads it from disk if it is not
// cached or the file changed since it was cached.
//
// Invalid image data is returned as an *InvalidImageError. Invalid files are
// not cached.
func (c *GridCache) Load(path string) (ppm.Grid, error) {
	g, _, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return g.Clone(), nil
}

// load returns the cached grid itself together with the file state it
// matches. Callers must not modify the grid.
func (c *GridCache) load(path string) (ppm.Grid, os.FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	key := cacheKey(path)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && e.current(stat) {
		return e.grid, stat, nil
	}

	res, err := ReadFile(path)
	if err != nil {
		c.Evict(path)
		return nil, nil, err
	}
	if !res.Valid() {
		c.Evict(path)
		return nil, nil, &InvalidImageError{Path: path, Detail: res.Invalid}
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{grid: res.Grid, modTime: stat.ModTime(), size: stat.Size()}
	c.mu.Unlock()

	return res.Grid, stat, nil
}

// Clear removes all grids from the cache.
func (c *GridCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes the grid cached for path, however path is spelled.
//
// If the path is not in the cache, this method does nothing.
func (c *GridCache) Evict(path string) {
	key := cacheKey(path)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a PPM file.
type ImageInfo struct {
	// Path is the file path as given by the caller.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is always "ppm".
	Format string `json:"format"`

	// Encoding is always "plain" (P3).
	Encoding string `json:"encoding"`

	// MaxValue is the channel maximum, always 255.
	MaxValue int `json:"max_value"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a grid through cache and returns metadata about it.
//
// Returns an error if the file cannot be read or is not a valid P3 image.
func LoadImageInfo(cache *GridCache, path string) (*ImageInfo, error) {
	info, _, err := loadImageInfo(cache, path)
	return info, err
}

// loadImageInfo is LoadImageInfo that also returns the shared cached grid.
// The size reported is the one the grid was read at.
func loadImageInfo(cache *GridCache, path string) (*ImageInfo, ppm.Grid, error) {
	g, stat, err := cache.load(path)
	if err != nil {
		return nil, nil, err
	}

	return &ImageInfo{
		Path:          filepath.Clean(path),
		Width:         g.Cols(),
		Height:        g.Rows(),
		Format:        strings.TrimPrefix(Extension, "."),
		Encoding:      "plain",
		MaxValue:      ppm.MaxValue,
		FileSizeBytes: stat.Size(),
	}, g, nil
}

// ValidationResult reports whether a file holds a valid P3 image.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Width  int               `json:"width,omitempty"`
	Height int               `json:"height,omitempty"`
	Reason *ppm.InvalidInput `json:"reason,omitempty"`
}

// Validate reads path and reports whether it decodes to a grid.
//
// An invalid image is a successful validation with Valid set to false; the
// error is non-nil only when the file cannot be read.
func Validate(path string) (*ValidationResult, error) {
	res, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !res.Valid() {
		return &ValidationResult{Reason: res.Invalid}, nil
	}
	return &ValidationResult{
		Valid:  true,
		Width:  res.Grid.Cols(),
		Height: res.Grid.Rows(),
	}, nil
}
