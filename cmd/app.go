package cmd

import (
	"errors"

	"go.uber.org/zap"

	"github.com/arcanaland/proxyprint/internal/catalog"
	"github.com/arcanaland/proxyprint/internal/config"
	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/imagecache"
	"github.com/arcanaland/proxyprint/internal/logging"
	"github.com/arcanaland/proxyprint/internal/scryfall"
)

// app wires the components every command shares.
type app struct {
	cfg    *config.Config
	store  *catalog.Store
	syncer *catalog.Syncer
	images *imagecache.Cache
	logger *zap.Logger
}

func newApp() (*app, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	log := logging.OrNop(logger)
	client := scryfall.NewClient(cfg.APIBaseURL, cfg.UserAgent, cfg.Timeout(), log)
	store := catalog.NewStore(cfg.CatalogDir(), cfg.Dataset, log)

	return &app{
		cfg:   cfg,
		store: store,
		syncer: catalog.NewSyncer(store, client,
			catalog.WithFreshnessDays(cfg.FreshnessDays),
			catalog.WithLogger(log)),
		images: imagecache.New(cfg.ImageCacheDir(), client, log),
		logger: log,
	}, nil
}

// loadCatalog reads the persisted snapshot. A missing or unreadable-as-cards
// snapshot leaves the store empty, which the syncer treats as stale.
func (a *app) loadCatalog() error {
	_, err := a.store.Load()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fault.ErrNotFound):
		a.logger.Info("did not find existing database", zap.String("dir", a.store.Dir()))
		return nil
	case errors.Is(err, fault.ErrMalformed):
		a.logger.Warn("discarding unreadable database snapshot", zap.Error(err))
		return nil
	default:
		return err
	}
}
