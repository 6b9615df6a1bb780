package uibatch

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ReadFunc reads a whole toolkit data file (skin, layout, font) by name.
type ReadFunc func(name string) ([]byte, error)

// FileReaderSetter is implemented by toolkits that load their own data
// files. The UI hands its ReadFunc over at construction.
type FileReaderSetter interface {
	SetFileReader(read ReadFunc)
}

// DefaultResourceCacheSize is the number of files a ResourceCache keeps.
const DefaultResourceCacheSize = 64

// ResourceCache reads files from an fs.FS and keeps recently used
// contents in an LRU cache.
type ResourceCache struct {
	fsys  fs.FS
	files *lru.Cache[string, []byte]

	hits, misses int
}

// NewResourceCache returns a cache over fsys holding up to size files.
func NewResourceCache(fsys fs.FS, size int) (*ResourceCache, error) {
	if size <= 0 {
		size = DefaultResourceCacheSize
	}
	files, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create resource cache: %w", err)
	}
	return &ResourceCache{fsys: fsys, files: files}, nil
}

// ReadFile returns a copy of the named file's contents. Names use forward
// slashes; a leading slash is ignored.
func (c *ResourceCache) ReadFile(name string) ([]byte, error) {
	key := cleanResourceName(name)
	if data, ok := c.files.Get(key); ok {
		c.hits++
		return bytes.Clone(data), nil
	}
	c.misses++
	data, err := fs.ReadFile(c.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("read resource %q: %w", name, err)
	}
	c.files.Add(key, data)
	return bytes.Clone(data), nil
}

// Reader returns c.ReadFile as a ReadFunc.
func (c *ResourceCache) Reader() ReadFunc {
	return c.ReadFile
}

// Purge drops all cached contents.
func (c *ResourceCache) Purge() {
	c.files.Purge()
}

// Len returns the number of cached files.
func (c *ResourceCache) Len() int {
	return c.files.Len()
}

// Stats returns cache hits and misses.
func (c *ResourceCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

func cleanResourceName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}
