package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/config"
	"github.com/alnah/go-mdlayout/internal/fileutil"
	"github.com/alnah/go-mdlayout/internal/hints"
	"github.com/alnah/go-mdlayout/internal/logging"
	"github.com/alnah/go-mdlayout/internal/storage"
)

// session bundles what every command needs: config, logger, assets and a
// loaded template store.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	loader  *assets.AssetResolver
	backend storage.Backend
	store   *mdlayout.Store
}

// openSession loads config, builds the logger, opens the storage backend and
// loads the store. assetPath overrides assets.basePath when set.
func openSession(common commonFlags, assetPath string, env *Environment) (*session, error) {
	cfg, err := loadConfig(common.config, env)
	if err != nil {
		return nil, err
	}
	if assetPath != "" {
		cfg.Assets.BasePath = assetPath
	}

	level := logging.Verbosity(cfg.Log.Level, common.verbose)
	if common.quiet {
		level = "error"
	}
	log, err := logging.New(level, env.Stderr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mdlayout.ErrInvalidAssetPath, err)
	}

	opts := []mdlayout.StoreOption{mdlayout.WithStoreLogger(log)}
	if loader.HasCustomLoader() {
		defaults, err := mdlayout.LoadDefaultCollection(loader)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mdlayout.WithDefaults(defaults))
	}

	open := env.OpenStorage
	if open == nil {
		open = storage.New
	}
	backend, err := open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrOpenStorage, err, hints.ForStorage(cfg.Storage.Backend))
	}

	store := mdlayout.NewStore(backend, opts...)
	store.Load()
	log.Debug("Templates loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("count", len(store.Keys())))

	return &session{cfg: cfg, log: log, loader: loader, backend: backend, store: store}, nil
}

// loadConfig resolves --config, then the injected config, then
// $MDLAYOUT_CONFIG, then defaults.
func loadConfig(flagValue string, env *Environment) (*config.Config, error) {
	if flagValue == "" && env.Config != nil {
		cfg := *env.Config
		return &cfg, nil
	}

	nameOrPath := config.Resolve(flagValue, env.Getenv)
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		var hint string
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(nameOrPath) {
			hint = hints.ForConfigNotFound(config.SearchPaths(nameOrPath))
		}
		return nil, fmt.Errorf("loading config: %w%s", err, hint)
	}
	return cfg, nil
}

// template returns the template stored under key with a hint listing the
// available keys on a miss.
func (s *session) template(key string) (mdlayout.Template, error) {
	t, ok := s.store.Template(key)
	if !ok {
		return mdlayout.Template{}, fmt.Errorf("%w: %q%s", ErrTemplateNotFound, key, hints.ForTemplateNotFound(s.store.SortedKeys()))
	}
	return t, nil
}

func (s *session) Close() error {
	// Sync fails on terminals for some platforms.
	_ = s.log.Sync()
	return s.backend.Close()
}
