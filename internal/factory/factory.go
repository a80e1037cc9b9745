package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/homeworlds-go/internal/api/sse"
	"github.com/mcoot/homeworlds-go/internal/dependencies/clock"
	"github.com/mcoot/homeworlds-go/internal/dependencies/random"
	"github.com/mcoot/homeworlds-go/internal/services/game"
	"github.com/mcoot/homeworlds-go/internal/storage"
	"github.com/mcoot/homeworlds-go/internal/storage/memory"
	redisstorage "github.com/mcoot/homeworlds-go/internal/storage/redis"
	"github.com/mcoot/homeworlds-go/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	GameController *game.Controller
	HubManager     *sse.HubManager
}

// New creates a new application with all dependencies wired. A nil
// logger discards output.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	store, err := newStorage(storageType, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), logger)
	app.StorageType = storageType
	return app, nil
}

func newStorage(storageType string, cfg Config) (storage.Storage, error) {
	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("HWGAME_REDIS_URL required when storage type is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.GameTTL = cfg.RedisGameTTL
		return redisstorage.New(redisCfg)
	case StorageTypeSQLite:
		return sqlite.Open(cfg.SQLitePath)
	}
	return nil, fmt.Errorf("invalid storage type %q: must be 'memory', 'redis' or 'sqlite'", storageType)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	gameController := game.NewController(store, hubManager, clk, rnd, logger)

	return &App{
		Storage:        store,
		StorageType:    StorageTypeMemory,
		Clock:          clk,
		Random:         rnd,
		GameController: gameController,
		HubManager:     hubManager,
	}
}

// Close disconnects event streams and releases the storage backend
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
