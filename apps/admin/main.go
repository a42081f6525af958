package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
	logsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/logger"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database"
	inmemdb "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/inmem"
	sqlxrepos "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/sqlx"
	redisstore "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/redis"
)

var logger core.Logger

func main() {
	root, err := core.Getwd()
	if err != nil {
		log.Fatalf("finding config directory: %v", err)
	}
	conf, err := core.LoadConfig(root)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger = logsvc.New(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	msgs, err := core.NewMessages(conf.Locale)
	errAndDie(err)

	ctx := context.Background()
	cli := commandLine{
		sessionTTL: conf.Session.TTL,
		out:        os.Stdout,
	}

	notifierOpts := cachesvc.NotifierOptions{Logger: logger}
	if conf.UsesRedis() {
		rdb := redisstore.NewClient(conf)
		errAndDie(rdb.Ping(ctx).Err())
		defer rdb.Close()

		notifierOpts.Redis = rdb
		notifierOpts.Channel = conf.Cache.Channel
		if conf.Cache.Store == core.StoreRedis {
			notifierOpts.Cache = cachesvc.NewRedisCache(rdb)
		}
		if conf.Session.Store == core.StoreRedis {
			cli.sessions = redisstore.NewSessionStore(rdb)
		}
	}
	cli.notifier = cachesvc.NewNotifier(notifierOpts)

	switch conf.Session.Store {
	case core.StorePostgres:
		var db *sqlx.DB
		cli.migrate = func(ctx context.Context) error {
			if err := database.CreateIfNotExist(ctx, conf); err != nil {
				return err
			}
			if db == nil {
				if db, err = database.Open(ctx, conf); err != nil {
					return err
				}
			}
			return database.Migrate(ctx, db)
		}
		if len(os.Args) < 2 || os.Args[1] != "migrate" {
			db, err = database.Open(ctx, conf)
			errAndDie(err)
			cli.sessions = sqlxrepos.NewSessionStore(db)
		}
		defer func() {
			if db != nil {
				_ = db.Close()
			}
		}()
	case core.StoreMemory:
		// only useful to check credentials: the session dies with the process
		cli.sessions = inmemdb.NewSessionStore(inmemdb.Open())
	}

	cli.acts = actions.New(actions.Deps{
		Client:   transportsvc.NewClientFromConfig(conf, logger),
		Notifier: cli.notifier,
		Logger:   logger,
		Messages: msgs,
	})

	if err = cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
