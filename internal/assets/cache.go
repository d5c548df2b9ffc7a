// Package assets memoizes extracted asset metadata by physical index.
package assets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kk-code-lab/tocview/internal/api"
	"github.com/kk-code-lab/tocview/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FetchFunc extracts the metadata of the asset stored at index.
type FetchFunc func(ctx context.Context, index int) (api.AssetInfo, error)

// Policy decides what happens when an index is requested again while an
// extraction for it is still outstanding.
type Policy string

const (
	// PolicySingleFlight joins the outstanding extraction.
	PolicySingleFlight Policy = "single-flight"
	// PolicyIndependent issues another extraction.
	PolicyIndependent Policy = "independent"
)

// ParsePolicy validates a policy name.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PolicySingleFlight, nil
	case PolicySingleFlight, PolicyIndependent:
		return p, nil
	default:
		return "", fmt.Errorf("unknown extract policy %q (want %s or %s)", name, PolicySingleFlight, PolicyIndependent)
	}
}

// Result is delivered once per Request.
type Result struct {
	Index  int
	Info   api.AssetInfo
	Err    error
	Cached bool // served from the cache without a fetch
	Shared bool // the extraction served more than one request
}

// Cache holds extracted metadata for the whole session. Entries are never
// evicted and failures are never stored.
type Cache struct {
	fetch  FetchFunc
	policy Policy
	log    *zap.Logger

	mu      sync.RWMutex
	entries map[int]api.AssetInfo

	group singleflight.Group
}

// New creates an empty cache.
func New(fetch FetchFunc, policy Policy) *Cache {
	if policy == "" {
		policy = PolicySingleFlight
	}
	return &Cache{
		fetch:   fetch,
		policy:  policy,
		log:     logging.Named("assets"),
		entries: make(map[int]api.AssetInfo),
	}
}

// Policy returns the configured policy.
func (c *Cache) Policy() Policy {
	return c.policy
}

// Get returns the cached metadata for index.
func (c *Cache) Get(index int) (api.AssetInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.entries[index]
	return info, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Request starts an extraction for index, or serves it from the cache. The
// extraction is registered before Request returns, so a second Request for
// the same index under PolicySingleFlight always joins the first one. The
// returned channel receives exactly one Result.
func (c *Cache) Request(ctx context.Context, index int) <-chan Result {
	out := make(chan Result, 1)

	if info, ok := c.Get(index); ok {
		c.log.Debug("cache hit", zap.Int("index", index))
		out <- Result{Index: index, Info: info, Cached: true}
		close(out)
		return out
	}

	if c.policy == PolicyIndependent {
		c.log.Debug("cache miss", zap.Int("index", index), zap.String("policy", string(c.policy)))
		go func() {
			defer close(out)
			info, err := c.extract(ctx, index)
			out <- Result{Index: index, Info: info, Err: err}
		}()
		return out
	}

	ch := c.group.DoChan(strconv.Itoa(index), func() (any, error) {
		c.log.Debug("cache miss", zap.Int("index", index), zap.String("policy", string(c.policy)))
		return c.extract(ctx, index)
	})
	go func() {
		defer close(out)
		res := <-ch
		info, _ := res.Val.(api.AssetInfo)
		out <- Result{Index: index, Info: info, Err: res.Err, Shared: res.Shared}
	}()
	return out
}

func (c *Cache) extract(ctx context.Context, index int) (api.AssetInfo, error) {
	if c.fetch == nil {
		return api.AssetInfo{}, fmt.Errorf("no asset fetcher configured")
	}
	info, err := c.fetch(ctx, index)
	if err != nil {
		c.log.Debug("extract failed", zap.Int("index", index), zap.Error(err))
		return api.AssetInfo{}, err
	}
	c.mu.Lock()
	c.entries[index] = info
	c.mu.Unlock()
	return info, nil
}
