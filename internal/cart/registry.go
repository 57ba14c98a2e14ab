package cart

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
)

// Registry keeps a Session per shopper session key. Idle sessions expire
// after the configured TTL; their stored cart id survives in the Store.
type Registry struct {
	client   *Client
	sessions *ttlcache.Cache[string, *Session]
	logger   *zap.Logger
}

func NewRegistry(client *Client, ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		client:   client,
		sessions: ttlcache.New[string, *Session](ttlcache.WithTTL[string, *Session](ttl)),
		logger:   logger,
	}
	r.sessions.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		if reason == ttlcache.EvictionReasonExpired {
			r.logger.Debug("session expired", zap.String("session", item.Key()), zap.Int("active", r.Len()))
		}
	})
	return r
}

// Run evicts expired sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		r.sessions.Stop()
	}()
	r.sessions.Start()
	return nil
}

// Session returns the session for key, mounting a new one on first use.
// Concurrent first requests share a single mount and all wait for it.
func (r *Registry) Session(ctx context.Context, key string) *Session {
	s, created := r.lookup(key)
	if err := s.Mount(ctx); err != nil && created {
		r.logger.Warn("initial cart load failed", zap.String("session", key), zap.Error(err))
	}
	return s
}

func (r *Registry) lookup(key string) (*Session, bool) {
	if item := r.sessions.Get(key); item != nil {
		return item.Value(), false
	}
	item, loaded := r.sessions.GetOrSet(key, NewSession(r.client.ForSession(key)))
	return item.Value(), !loaded
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}
