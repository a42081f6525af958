package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

const invalidateTimeout = 5 * time.Second

type (
	// Invalidator marks views stale after a successful mutation.
	Invalidator interface {
		Invalidate(ctx context.Context, keys ...core.ViewKey)
	}

	// Notifier drops invalidated views from the local cache and, when a Redis client is given,
	// broadcasts the keys so that other instances drop their copies too.
	Notifier struct {
		cache   ViewCache
		rdb     redis.UniversalClient
		channel string
		origin  string
		logger  core.Logger
	}

	NotifierOptions struct {
		Cache   ViewCache
		Redis   redis.UniversalClient // optional
		Channel string
		Logger  core.Logger
	}

	message struct {
		Origin string         `json:"origin"`
		Keys   []core.ViewKey `json:"keys"`
	}
)

var _ Invalidator = (*Notifier)(nil)

func NewNotifier(opts NotifierOptions) *Notifier {
	return &Notifier{
		cache:   opts.Cache,
		rdb:     opts.Redis,
		channel: opts.Channel,
		origin:  uuid.NewString(),
		logger:  opts.Logger,
	}
}

// Invalidate drops keys. It never fails: errors are logged with the keys involved.
// The work is not tied to ctx cancellation, an invalidation that was decided always runs.
func (n *Notifier) Invalidate(ctx context.Context, keys ...core.ViewKey) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if n.cache != nil {
		if err := n.cache.Delete(ctx, keys...); err != nil {
			n.logError("cache invalidation failed", err, keys)
		}
	}
	if n.rdb != nil && n.channel != "" {
		if err := n.publish(ctx, keys); err != nil {
			n.logError("cache invalidation broadcast failed", err, keys)
		}
	}
	if n.logger != nil {
		n.logger.Debug("views invalidated", map[string]interface{}{"keys": keys})
	}
}

func (n *Notifier) publish(ctx context.Context, keys []core.ViewKey) error {
	payload, err := json.Marshal(message{Origin: n.origin, Keys: keys})
	if err != nil {
		return errors.Wrap(err, "encoding invalidation message")
	}
	return errors.Wrap(n.rdb.Publish(ctx, n.channel, payload).Err(), "publishing invalidation")
}

// Subscribe drops the keys broadcast by other instances from the local cache until ctx is done.
// ready, when not nil, is closed once the subscription is active.
func (n *Notifier) Subscribe(ctx context.Context, ready chan<- struct{}) error {
	if n.rdb == nil || n.channel == "" {
		return errors.New("cache notifier: no redis channel configured")
	}
	sub := n.rdb.Subscribe(ctx, n.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return errors.Wrapf(err, "subscribing to %s", n.channel)
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			n.handle(ctx, msg.Payload)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, payload string) {
	var m message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		if n.logger != nil {
			n.logger.Warn("invalid invalidation message", err, map[string]interface{}{"payload": payload})
		}
		return
	}
	if m.Origin == n.origin || len(m.Keys) == 0 || n.cache == nil {
		return
	}
	if err := n.cache.Delete(context.WithoutCancel(ctx), m.Keys...); err != nil {
		n.logError("remote cache invalidation failed", err, m.Keys)
	}
}

func (n *Notifier) logError(msg string, err error, keys []core.ViewKey) {
	if n.logger != nil {
		n.logger.Error(msg, err, map[string]interface{}{"keys": keys})
	}
}
