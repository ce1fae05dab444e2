package jpqlcache

import (
	"context"

	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
	"github.com/catalystquery/jpqlrw/internal/jpqlvalue"
	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

// cacheOptions is the canonically-encodable shape hashed alongside the
// query text to build a cache key; its fields mirror the sort options
// RewriteWithSort accepts.
type cacheOptions struct {
	Sort []jpqlwalk.SortOrder `json:"sort,omitempty"`
}

func (o cacheOptions) asCanonicalValue() map[string]any {
	sort := make([]any, len(o.Sort))
	for i, s := range o.Sort {
		sort[i] = map[string]any{
			"property":    s.Property,
			"descending":  s.Descending,
			"ignore_case": s.IgnoreCase,
		}
	}
	return map[string]any{"sort": sort}
}

// CachedRewrite wraps jpqlrw.RewriteWithSort in a cache lookup keyed by
// sha256(query, sort): a hit skips re-parsing and
// re-walking entirely; a miss rewrites and then populates the cache
// before returning. The façade call underneath remains fully correct
// on its own — this is a transparent speedup, not a semantics change.
func CachedRewrite(ctx context.Context, cache *Cache, query string, sort []jpqlwalk.SortOrder, now int64) (string, error) {
	key, err := jpqlvalue.RewriteCacheKey(query, cacheOptions{Sort: sort}.asCanonicalValue())
	if err != nil {
		return "", err
	}

	if hit, ok, err := cache.Get(ctx, key); err != nil {
		return "", err
	} else if ok {
		return hit, nil
	}

	out, err := jpqlrw.RewriteWithSort(query, sort)
	if err != nil {
		return "", err
	}

	if err := cache.Put(ctx, key, query, out, now); err != nil {
		return "", err
	}
	return out, nil
}
