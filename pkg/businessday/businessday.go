// Package businessday classifies dates against weekends and a public
// holiday calendar, for scheduling jobs relative to meeting dates.
package businessday

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-autopilot/internal/infrastructure/cache"
)

// Kind classifies one date
type Kind int

const (
	KindBusiness Kind = iota
	KindWeekend
	KindHoliday
	// KindUnknown means the holiday lookup failed. Scheduling treats it
	// as a business day so an API outage never stalls the pipeline.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindWeekend:
		return "weekend"
	case KindHoliday:
		return "holiday"
	case KindUnknown:
		return "unknown"
	default:
		return "business"
	}
}

// HolidaySource answers how many holiday events fall on a given day
type HolidaySource interface {
	CountHolidayEvents(ctx context.Context, day time.Time, loc *time.Location) (int, error)
}

const holidayCacheTTL = 30 * 24 * time.Hour

// Calendar classifies dates. Holiday lookups go through the source once
// per date and are then cached. A nil source means weekends only.
type Calendar struct {
	source HolidaySource
	loc    *time.Location
	cache  *cache.MemoryStore
}

// New creates a calendar in the given location
func New(source HolidaySource, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{
		source: source,
		loc:    loc,
		cache:  cache.NewMemoryStore(512),
	}
}

// Classify returns what kind of day the date is. A failed holiday
// lookup classifies as KindUnknown; nothing is cached for it, so the
// next call retries the source.
func (c *Calendar) Classify(ctx context.Context, d time.Time) Kind {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return KindWeekend
	}
	holiday, err := c.isHoliday(ctx, d)
	if err != nil {
		return KindUnknown
	}
	if holiday {
		return KindHoliday
	}
	return KindBusiness
}

// IsBusinessDay reports whether the date is neither a weekend nor a
// holiday. KindUnknown counts as a business day, fail-open.
func (c *Calendar) IsBusinessDay(ctx context.Context, d time.Time) bool {
	k := c.Classify(ctx, d)
	return k == KindBusiness || k == KindUnknown
}

// PreviousBusinessDay returns the most recent business day strictly before d
func (c *Calendar) PreviousBusinessDay(ctx context.Context, d time.Time) time.Time {
	cur := d.AddDate(0, 0, -1)
	for !c.IsBusinessDay(ctx, cur) {
		cur = cur.AddDate(0, 0, -1)
	}
	return cur
}

// BusinessDaysBefore returns the date n business days before d;
// n <= 0 returns d unchanged
func (c *Calendar) BusinessDaysBefore(ctx context.Context, d time.Time, n int) time.Time {
	cur := d
	for i := 0; i < n; i++ {
		cur = c.PreviousBusinessDay(ctx, cur)
	}
	return cur
}

func (c *Calendar) isHoliday(ctx context.Context, d time.Time) (bool, error) {
	if c.source == nil {
		return false, nil
	}
	key := "holiday:" + d.In(c.loc).Format("2006-01-02")
	if v, ok := c.cache.Get(key); ok {
		return v == "1", nil
	}
	count, err := c.source.CountHolidayEvents(ctx, d, c.loc)
	if err != nil {
		return false, err
	}
	v := "0"
	if count > 0 {
		v = "1"
	}
	c.cache.Set(key, v, holidayCacheTTL)
	return v == "1", nil
}
