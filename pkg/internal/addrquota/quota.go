// Package addrquota rate limits events per server address.
package addrquota

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"golang.org/x/time/rate"

	"go.minekube.com/bot/pkg/util/netutil"
)

// Quota implements a simple address based rate limiter.
// Each server host gets one event every interval with bursts of burst events.
// Information is kept in an LRU cache of size maxEntries.
type Quota struct {
	limit rate.Limit
	burst int
	mu    sync.Mutex // protects cache
	cache *lru.Cache
}

// NewQuota returns a Quota allowing an event every interval per host.
func NewQuota(interval time.Duration, burst, maxEntries int) *Quota {
	return &Quota{
		limit: rate.Every(interval),
		burst: burst,
		cache: lru.New(maxEntries),
	}
}

// Blocked reports whether an event for addr exceeds the quota.
// If not, the event is counted.
func (q *Quota) Blocked(addr string) bool {
	return !q.limiter(addr).Allow()
}

// Wait blocks until an event for addr is allowed or ctx is done.
func (q *Quota) Wait(ctx context.Context, addr string) error {
	return q.limiter(addr).Wait(ctx)
}

func (q *Quota) limiter(addr string) *rate.Limiter {
	key := hostKey(addr)
	q.mu.Lock()
	defer q.mu.Unlock()
	if v, ok := q.cache.Get(key); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(q.limit, q.burst)
	q.cache.Add(key, limiter)
	return limiter
}

func hostKey(addr string) string {
	return strings.ToLower(netutil.HostStr(addr))
}
