package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rodrigocantu/tienda-backend/pkg/logger"
	pkgredis "github.com/rodrigocantu/tienda-backend/pkg/redis"
)

type cacheBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ShippingKey(parts ...string) string
}

// CachedRuleSource serves the active rule set through an explicit, owned
// cache in front of the repository. Cache trouble is never fatal: reads and
// writes that fail are logged and the repository answers instead.
type CachedRuleSource struct {
	repo  RuleRepository
	cache cacheBackend
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedRuleSource wires the rule repository behind a redis cache.
func NewCachedRuleSource(repo RuleRepository, cache cacheBackend, ttl time.Duration, logg *logger.Logger) (*CachedRuleSource, error) {
	if repo == nil {
		return nil, errors.New("rule repository required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &CachedRuleSource{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		logg:  logg,
	}, nil
}

// ActiveRules returns the active rule set, preferring the cache.
func (s *CachedRuleSource) ActiveRules(ctx context.Context) ([]Rule, error) {
	if s.cache != nil {
		key := s.cache.ShippingKey("rules", "active")
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var rules []Rule
			if unmarshalErr := json.Unmarshal([]byte(raw), &rules); unmarshalErr == nil {
				return rules, nil
			}
			s.logg.Warn(ctx, "shipping rule cache entry is corrupt; refetching")
		case !errors.Is(err, pkgredis.Nil):
			s.logg.Warn(ctx, "shipping rule cache read failed; falling back to repository")
		}
	}

	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rules := RulesFromModels(rows)

	if s.cache != nil {
		payload, marshalErr := json.Marshal(rules)
		if marshalErr == nil {
			key := s.cache.ShippingKey("rules", "active")
			if setErr := s.cache.Set(ctx, key, payload, s.ttl); setErr != nil {
				s.logg.Warn(ctx, "shipping rule cache write failed")
			}
		}
	}
	return rules, nil
}

// Invalidate drops the cached rule set after an admin mutation.
func (s *CachedRuleSource) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key := s.cache.ShippingKey("rules", "active")
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(ctx, "shipping rule cache invalidation failed")
	}
}
