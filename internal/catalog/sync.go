package catalog

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/card"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/logging"
)

// DefaultFreshnessDays is the number of whole days a catalog may age before
// it is refreshed.
const DefaultFreshnessDays = 1

// Source is the remote side of a refresh.
type Source interface {
	// Manifest returns the raw bulk-data manifest document.
	Manifest(ctx context.Context) ([]byte, error)
	// Download returns the full contents of a dataset download_uri.
	Download(ctx context.Context, uri string) ([]byte, error)
}

// Outcome reports what EnsureFresh did.
type Outcome int

const (
	Unchanged Outcome = iota
	Refreshed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Refreshed:
		return "refreshed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Syncer keeps a Store's catalog within the freshness window.
type Syncer struct {
	store         *Store
	source        Source
	freshnessDays int
	now           func() time.Time
	logger        *zap.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithFreshnessDays sets how many whole days old a catalog may be before it is stale.
func WithFreshnessDays(days int) Option {
	return func(s *Syncer) { s.freshnessDays = days }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Syncer) { s.logger = logging.OrNop(l) }
}

// NewSyncer returns a syncer refreshing store from source.
func NewSyncer(store *Store, source Source, opts ...Option) *Syncer {
	s := &Syncer{
		store:         store,
		source:        source,
		freshnessDays: DefaultFreshnessDays,
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stale reports whether c needs a refresh: its stamp is absent, or it is more
// than the configured number of whole days old.
func (s *Syncer) Stale(c *Catalog) bool {
	last, ok := c.LastUpdated()
	if !ok {
		return true
	}
	days := int(s.now().UTC().Sub(last) / (24 * time.Hour))
	return days > s.freshnessDays
}

// EnsureFresh refreshes the store's catalog only when it is stale. When the
// catalog is fresh no network call is made.
func (s *Syncer) EnsureFresh(ctx context.Context) (Outcome, error) {
	if !s.Stale(s.store.Current()) {
		s.logger.Info("database up-to-date")
		return Unchanged, nil
	}
	s.logger.Warn("database out of date")
	if err := s.Refresh(ctx); err != nil {
		return Unchanged, err
	}
	return Refreshed, nil
}

// Refresh downloads the manifest and the selected dataset and, only after both
// parse, persists them and swaps the new catalog in. Any failure leaves the
// previous catalog in memory and on disk untouched.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.logger.Info("updating database...")

	rawManifest, err := s.source.Manifest(ctx)
	if err != nil {
		return asFetch("fetch bulk data manifest", err)
	}
	manifest, err := ParseManifest(rawManifest)
	if err != nil {
		return asFetch("parse bulk data manifest", err)
	}

	ds, err := manifest.Select(s.store.Dataset())
	if err != nil {
		return err
	}

	s.logger.Info("downloading dataset",
		zap.String("dataset", ds.Name),
		zap.String("uri", ds.DownloadURI),
		zap.Time("updated_at", ds.UpdatedAt))

	payload, err := s.source.Download(ctx, ds.DownloadURI)
	if err != nil {
		return asFetch("download "+ds.Name, err)
	}
	cards, err := card.Decode(bytes.NewReader(payload))
	if err != nil {
		return asFetch("parse "+ds.Name, err)
	}

	if err := s.store.Persist(rawManifest, payload); err != nil {
		return err
	}
	s.store.Replace(New(cards, ds.UpdatedAt))

	s.logger.Info("update complete", zap.Int("cards", len(cards)))
	return nil
}

// asFetch reports err as a fetch failure, keeping its cause chain.
func asFetch(msg string, err error) error {
	if fault.CodeOf(err) == fault.CodeFetch {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fault.Wrap(fault.CodeFetch, msg, err)
}
