package redis

import (
	"context"
	"errors"

	"github.com/faculty-hub/faculty-hub/internal/application/query"
)

// ProgressCache implements query.ReportCache on top of the generic Cache.
type ProgressCache struct {
	cache *Cache
}

// NewProgressCache creates a new ProgressCache.
func NewProgressCache(cache *Cache) *ProgressCache {
	return &ProgressCache{cache: cache}
}

// Get returns the cached report for a student, or (nil, nil) on a miss.
func (p *ProgressCache) Get(ctx context.Context, studentID string) (*query.ProgressReport, error) {
	var report query.ProgressReport
	err := p.cache.Get(ctx, progressKey(studentID), &report)
	if errors.Is(err, ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Set stores the report under the student's key.
func (p *ProgressCache) Set(ctx context.Context, studentID string, report *query.ProgressReport) error {
	if report == nil {
		return nil
	}
	return p.cache.Set(ctx, progressKey(studentID), report, TTLProgressReport)
}

// Invalidate drops the student's cached report. Writers call this after any
// mutation that feeds the report, so the next read recomputes.
func (p *ProgressCache) Invalidate(ctx context.Context, studentID string) error {
	return p.cache.Delete(ctx, progressKey(studentID))
}

func progressKey(studentID string) string {
	return PrefixProgress + studentID
}
