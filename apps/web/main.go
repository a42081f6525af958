package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/gate"
	echoweb "github.com/alassafsami695-wq/graduation-project-main-sub001/apps/web/echo"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
	logsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/logger"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database"
	inmemdb "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/inmem"
	sqlxrepos "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/sqlx"
	redisstore "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/redis"
)

const sessionPurgeInterval = time.Hour

func main() {
	// =========================================================================
	// Set up Dependencies

	root, err := core.Getwd()
	if err != nil {
		log.Fatalf("finding config directory: %v", err)
	}
	conf, err := core.LoadConfig(root)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	msgs, err := core.NewMessages(conf.Locale)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading messages: %v", err), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// set up Redis
	var rdb *redis.Client
	if conf.UsesRedis() {
		rdb = redisstore.NewClient(conf)
		if err = rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
		}
		defer func() {
			if err = rdb.Close(); err != nil {
				logger.Error("Failed to close redis", err)
			}
		}()
	}

	// set up sessions
	var sessions core.SessionStore
	switch conf.Session.Store {
	case core.StoreRedis:
		sessions = redisstore.NewSessionStore(rdb)
	case core.StorePostgres:
		db, err := setUpDB(ctx, conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("Failed to close database", err)
			}
		}()
		store := sqlxrepos.NewSessionStore(db)
		go purgeSessions(ctx, store, logger)
		sessions = store
	case core.StoreMemory:
		sessions = inmemdb.NewSessionStore(inmemdb.Open())
	default:
		logger.Fatal(fmt.Sprintf("unknown session store %q", conf.Session.Store))
	}

	// set up view caches
	var cache cachesvc.ViewCache = cachesvc.NewMemoryCache()
	if conf.Cache.Store == core.StoreRedis {
		cache = cachesvc.NewRedisCache(rdb)
	}
	notifierOpts := cachesvc.NotifierOptions{Cache: cache, Logger: logger}
	if rdb != nil {
		notifierOpts.Redis = rdb
		notifierOpts.Channel = conf.Cache.Channel
	}
	notifier := cachesvc.NewNotifier(notifierOpts)
	if rdb != nil {
		go func() {
			if err := notifier.Subscribe(ctx, nil); err != nil {
				logger.Error(fmt.Sprintf("cache invalidation subscription closed: %v", err), err)
			}
		}()
	}
	views := cachesvc.NewViews(cache, conf.Cache.TTL, logger)

	g, err := gate.NewFromConfig(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading gate rules: %v", err), err)
	}

	acts := actions.New(actions.Deps{
		Client:   transportsvc.NewClientFromConfig(conf, logger),
		Notifier: notifier,
		Logger:   logger,
		Messages: msgs,
	})

	// =========================================================================
	// Start Web Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoweb.NewServer(&echoweb.Options{
		Address:      conf.Server.Address,
		AppName:      conf.AppName,
		Debug:        conf.Debug,
		TestMode:     conf.TestMode,
		StaticDir:    conf.Server.StaticDir,
		SessionTTL:   conf.Session.TTL,
		CookieSecure: conf.Session.CookieSecure,
		Logger:       logger,
		Actions:      acts,
		Sessions:     sessions,
		Gate:         g,
		Views:        views,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		stopCtx, stopCancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer stopCancel()

		if err = server.Stop(stopCtx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type expiringStore interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// purgeSessions removes expired sessions every hour until ctx is done.
func purgeSessions(ctx context.Context, store expiringStore, logger core.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				logger.Error("purging sessions", err)
				continue
			}
			if n > 0 {
				logger.Debug(fmt.Sprintf("purged %d expired sessions", n))
			}
		}
	}
}
