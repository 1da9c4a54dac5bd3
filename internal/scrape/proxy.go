package scrape

import (
	"math/rand"
	"net/url"
)

// Rotator hands out egress proxies from a randomly-shuffled cycle. The cycle
// reshuffles and restarts when exhausted; the reshuffle avoids handing out
// the same proxy twice in a row across the cycle boundary.
//
// A Rotator is created per scrape batch and is not safe for concurrent use;
// the engine serializes access with a mutex.
type Rotator struct {
	proxies []*url.URL
	order   []int
	pos     int
}

// NewRotator creates a rotator over the given proxy URLs. Invalid entries
// are dropped; an empty pool yields a rotator that always returns nil
// (direct connection).
func NewRotator(raw []string) *Rotator {
	var proxies []*url.URL
	for _, p := range raw {
		if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
			proxies = append(proxies, u)
		}
	}

	r := &Rotator{proxies: proxies}
	if len(proxies) > 0 {
		r.order = rand.Perm(len(proxies))
	}
	return r
}

// Next returns the next proxy in rotation, or nil when no proxies are
// configured.
func (r *Rotator) Next() *url.URL {
	if len(r.proxies) == 0 {
		return nil
	}

	if r.pos >= len(r.order) {
		r.reshuffle()
	}

	p := r.proxies[r.order[r.pos]]
	r.pos++
	return p
}

// Size returns the number of usable proxies in the pool
func (r *Rotator) Size() int {
	return len(r.proxies)
}

// reshuffle restarts the cycle with a fresh permutation, swapping away a
// leading repeat of the proxy served last.
func (r *Rotator) reshuffle() {
	last := r.order[len(r.order)-1]
	r.order = rand.Perm(len(r.proxies))
	r.pos = 0

	if len(r.order) > 1 && r.order[0] == last {
		j := 1 + rand.Intn(len(r.order)-1)
		r.order[0], r.order[j] = r.order[j], r.order[0]
	}
}
