// Package imagecache keeps downloaded card artwork on disk, one directory per
// artwork mode, keyed by print unit display name.
package imagecache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/deck"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/logging"
	"github.com/arcanaland/proxyprint/internal/util"
)

// DefaultMode fetches the official pre-rendered card image.
const DefaultMode = "default"

// Fetcher downloads the bytes behind an artwork URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Cache resolves print units to local image files. Entries are never invalidated.
type Cache struct {
	root    string
	fetcher Fetcher
	logger  *zap.Logger
}

// New returns a cache rooted at root.
func New(root string, fetcher Fetcher, logger *zap.Logger) *Cache {
	return &Cache{root: root, fetcher: fetcher, logger: logging.OrNop(logger)}
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// Path returns where unit's image lives for mode, whether or not it is cached.
func (c *Cache) Path(unit deck.PrintUnit, mode string) string {
	return filepath.Join(c.root, mode, FileName(unit.DisplayName))
}

// FileName maps a display name to a cache file name.
func FileName(displayName string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", string(os.PathSeparator), "-")
	return r.Replace(displayName) + ".png"
}

// Resolve returns the local path of unit's image for mode, downloading it on
// first use. The file only appears once its bytes decode as an image, so a
// failed fetch never leaves a partial entry behind. Modes other than
// DefaultMode are reserved for generated artwork and fail with
// fault.ErrUnimplemented.
func (c *Cache) Resolve(ctx context.Context, unit deck.PrintUnit, mode string) (string, error) {
	if mode == "" {
		mode = DefaultMode
	}
	if mode != DefaultMode {
		return "", fault.New(fault.CodeUnimplemented,
			fmt.Sprintf("artwork mode %q is not implemented", mode))
	}

	path := c.Path(unit, mode)
	if util.Exists(path) {
		c.logger.Debug("image cache hit", zap.String("card", unit.DisplayName), zap.String("path", path))
		return path, nil
	}
	if unit.ArtURI == "" {
		return "", fault.New(fault.CodeFetch, fmt.Sprintf("%q has no art reference", unit.DisplayName))
	}

	c.logger.Info("fetching card image", zap.String("card", unit.DisplayName), zap.String("uri", unit.ArtURI))
	data, err := c.fetcher.Fetch(ctx, unit.ArtURI)
	if err != nil {
		if fault.CodeOf(err) == fault.CodeFetch {
			return "", err
		}
		return "", fault.Wrap(fault.CodeFetch, "fetch "+unit.ArtURI, err)
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fault.Wrap(fault.CodeFetch, fmt.Sprintf("image for %q is not decodable", unit.DisplayName), err)
	}

	if err := util.WriteFileAtomic(path, data); err != nil {
		return "", fault.Wrap(fault.CodeIO, "write "+path, err)
	}
	return path, nil
}

// Count returns the number of cached images for mode.
func (c *Cache) Count(mode string) (int, error) {
	entries, err := os.ReadDir(filepath.Join(c.root, mode))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fault.Wrap(fault.CodeIO, "read cache dir", err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".png" && !strings.HasPrefix(e.Name(), ".") {
			n++
		}
	}
	return n, nil
}

// Modes lists the mode directories present under the cache root.
func (c *Cache) Modes() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.CodeIO, "read cache root", err)
	}
	var modes []string
	for _, e := range entries {
		if e.IsDir() {
			modes = append(modes, e.Name())
		}
	}
	return modes, nil
}
