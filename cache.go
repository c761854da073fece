package algosht

import "sync"

type planKey struct {
	scheme Scheme
	L      int
}

// PlanCache shares plans between callers, keyed by (scheme, L). All plans
// in a cache are built with the same PlanOptions. It is safe for concurrent
// use.
type PlanCache struct {
	opts PlanOptions

	mu    sync.Mutex
	plans map[planKey]*Plan
}

// NewPlanCache returns an empty cache that builds plans with opts.
func NewPlanCache(opts PlanOptions) *PlanCache {
	return &PlanCache{
		opts:  opts,
		plans: make(map[planKey]*Plan),
	}
}

// Get returns the cached plan for (scheme, L), creating it on first use.
// Failed constructions are not cached.
func (c *PlanCache) Get(scheme Scheme, L int) (*Plan, error) {
	key := planKey{scheme: scheme, L: L}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.plans[key]; ok {
		return p, nil
	}

	p, err := NewPlan(scheme, L, c.opts)
	if err != nil {
		return nil, err
	}

	c.plans[key] = p

	return p, nil
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.plans)
}

// Clear drops every cached plan.
func (c *PlanCache) Clear() {
	c.mu.Lock()
	clear(c.plans)
	c.mu.Unlock()
}
