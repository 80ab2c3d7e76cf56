package ratelimit

import (
	"sync"
	"time"
)

// PerKeyLimiterConfig configures a PerKeyLimiter.
type PerKeyLimiterConfig struct {
	MaxTokens     float64       // burst capacity per key
	RefillRate    float64       // tokens credited per second per key
	CleanupPeriod time.Duration // how often idle buckets are discarded
}

// PerKeyLimiter keeps an independent token bucket per key, typically a
// partner ID. Buckets are created on first use and discarded once they
// refill completely, so idle partners cost nothing.
type PerKeyLimiter struct {
	mu      sync.Mutex
	buckets map[string]*Limiter
	cfg     PerKeyLimiterConfig
	onDrop  func()
	done    chan struct{}
}

// NewPerKeyLimiter starts a limiter with a background janitor that removes
// idle buckets every CleanupPeriod. Call Stop to end the janitor.
func NewPerKeyLimiter(cfg PerKeyLimiterConfig) *PerKeyLimiter {
	p := &PerKeyLimiter{
		buckets: make(map[string]*Limiter),
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	go p.janitor()
	return p
}

// OnDrop registers a callback invoked whenever Allow rejects a request.
// Must be called before the limiter sees traffic.
func (p *PerKeyLimiter) OnDrop(fn func()) {
	p.onDrop = fn
}

// Allow spends one token from the bucket for key. The empty key is exempt
// and never creates a bucket.
func (p *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	allowed := p.bucket(key).Allow()
	if !allowed && p.onDrop != nil {
		p.onDrop()
	}
	return allowed
}

// GetAvailable reports the remaining tokens for key. Keys without a bucket
// report full capacity.
func (p *PerKeyLimiter) GetAvailable(key string) float64 {
	if key == "" {
		return p.cfg.MaxTokens
	}

	p.mu.Lock()
	b, ok := p.buckets[key]
	p.mu.Unlock()

	if !ok {
		return p.cfg.MaxTokens
	}
	return b.Available()
}

// GetActiveCount reports how many keys currently hold a bucket.
func (p *PerKeyLimiter) GetActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets)
}

// Stop ends the janitor goroutine. Safe to call more than once.
func (p *PerKeyLimiter) Stop() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

func (p *PerKeyLimiter) bucket(key string) *Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.buckets[key]
	if !ok {
		b = New(p.cfg.MaxTokens, p.cfg.RefillRate)
		p.buckets[key] = b
	}
	return b
}

func (p *PerKeyLimiter) janitor() {
	ticker := time.NewTicker(p.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			for key, b := range p.buckets {
				if b.IsFull() {
					delete(p.buckets, key)
				}
			}
			p.mu.Unlock()
		}
	}
}
