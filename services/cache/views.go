package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

// Views serves view data through a ViewCache, refetching what was invalidated or expired.
type Views struct {
	cache  ViewCache
	ttl    time.Duration
	logger core.Logger
}

func NewViews(cache ViewCache, ttl time.Duration, logger core.Logger) *Views {
	return &Views{cache: cache, ttl: ttl, logger: logger}
}

// Fetch returns the cached data of key, or calls fetch and caches its data on success.
// Failed results are never cached, nor are results fetched across an invalidation of key.
// A broken cache degrades to calling fetch.
func Fetch[T any](ctx context.Context, v *Views, key core.ViewKey, fetch func(context.Context) core.Result[T]) core.Result[T] {
	if v == nil || v.cache == nil || key == "" {
		return fetch(ctx)
	}

	raw, ok, err := v.cache.Get(ctx, key)
	if err != nil {
		v.warn("view cache read failed", err, key)
	} else if ok {
		var data T
		if err = json.Unmarshal(raw, &data); err == nil {
			return core.OK(data)
		}
		v.warn("view cache entry unreadable", err, key)
	}

	// an invalidation landing while fetch runs bumps the version and voids the write below
	version, verErr := v.cache.Version(ctx, key)
	if verErr != nil {
		v.warn("view cache read failed", verErr, key)
	}

	res := fetch(ctx)
	if !res.Success || verErr != nil {
		return res
	}
	if raw, err = json.Marshal(res.Data); err != nil {
		v.warn("view cache entry not encodable", err, key)
		return res
	}
	if _, err = v.cache.SetIfVersion(ctx, key, raw, v.ttl, version); err != nil {
		v.warn("view cache write failed", err, key)
	}
	return res
}

func (v *Views) warn(msg string, err error, key core.ViewKey) {
	if v.logger != nil {
		v.logger.Warn(msg, err, map[string]interface{}{"key": key})
	}
}
