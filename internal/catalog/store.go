package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/logging"
	"github.com/arcanaland/proxyprint/internal/util"
)

const (
	manifestFile = "bulk_data.json"
	catalogFile  = "cards.json"
)

// Store owns the in-memory catalog and its on-disk snapshot: the upstream
// manifest plus the dataset payload exactly as downloaded.
type Store struct {
	dir     string
	dataset string
	logger  *zap.Logger

	current atomic.Pointer[Catalog]
}

// NewStore returns a store persisting under dir. dataset names the manifest
// entry whose updated_at stamps the snapshot.
func NewStore(dir, dataset string, logger *zap.Logger) *Store {
	return &Store{
		dir:     dir,
		dataset: dataset,
		logger:  logging.OrNop(logger),
	}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

// Dataset returns the name of the dataset this store mirrors.
func (s *Store) Dataset() string {
	return s.dataset
}

func (s *Store) manifestPath() string { return filepath.Join(s.dir, manifestFile) }
func (s *Store) catalogPath() string  { return filepath.Join(s.dir, catalogFile) }

// Load reads the persisted snapshot and makes it current. It returns
// fault.ErrNotFound when either snapshot file is missing.
func (s *Store) Load() (*Catalog, error) {
	rawManifest, err := os.ReadFile(s.manifestPath())
	if err != nil {
		return nil, s.readErr(s.manifestPath(), err)
	}
	payload, err := os.ReadFile(s.catalogPath())
	if err != nil {
		return nil, s.readErr(s.catalogPath(), err)
	}

	s.logger.Info("loading existing database", zap.String("dir", s.dir))

	manifest, err := ParseManifest(rawManifest)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.manifestPath(), err)
	}
	cards, err := card.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.catalogPath(), err)
	}

	// A manifest without our dataset leaves the age unknown, which forces a refresh.
	var c *Catalog
	if ds, err := manifest.Select(s.dataset); err == nil {
		c = New(cards, ds.UpdatedAt)
	} else {
		s.logger.Warn("persisted manifest lacks dataset", zap.String("dataset", s.dataset))
		c = New(cards, time.Time{})
	}
	s.Replace(c)
	return c, nil
}

func (s *Store) readErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fault.Wrap(fault.CodeNotFound, "no catalog snapshot at "+path, err)
	}
	return fault.Wrap(fault.CodeIO, "read "+path, err)
}

// Persist writes the manifest and payload snapshot. Each file is replaced
// atomically; the payload goes first so a failure between the two leaves an
// old stamp, which only makes the catalog look stale.
func (s *Store) Persist(rawManifest, payload []byte) error {
	if err := util.WriteFileAtomic(s.catalogPath(), payload); err != nil {
		return fault.Wrap(fault.CodeIO, "persist catalog", err)
	}
	if err := util.WriteFileAtomic(s.manifestPath(), rawManifest); err != nil {
		return fault.Wrap(fault.CodeIO, "persist manifest", err)
	}
	return nil
}

// Current returns the catalog in memory, or an empty catalog if none.
func (s *Store) Current() *Catalog {
	if c := s.current.Load(); c != nil {
		return c
	}
	return New(nil, time.Time{})
}

// Replace swaps in c as the current catalog.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
}
