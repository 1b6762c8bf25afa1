package businessday

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHolidaySource struct {
	holidays map[string]bool
	calls    int
	err      error
}

func (f *fakeHolidaySource) CountHolidayEvents(_ context.Context, day time.Time, loc *time.Location) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if f.holidays[day.In(loc).Format("2006-01-02")] {
		return 1, nil
	}
	return 0, nil
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestClassify(t *testing.T) {
	src := &fakeHolidaySource{holidays: map[string]bool{"2025-01-01": true}}
	cal := New(src, time.UTC)
	ctx := context.Background()

	if got := cal.Classify(ctx, date("2025-01-04")); got != KindWeekend { // Saturday
		t.Fatalf("saturday classified as %v", got)
	}
	if got := cal.Classify(ctx, date("2025-01-01")); got != KindHoliday { // New Year
		t.Fatalf("holiday classified as %v", got)
	}
	if got := cal.Classify(ctx, date("2025-01-06")); got != KindBusiness { // Monday
		t.Fatalf("monday classified as %v", got)
	}
}

func TestPreviousBusinessDaySkipsWeekend(t *testing.T) {
	cal := New(nil, time.UTC)
	// Monday 2025-01-06 -> previous business day is Friday 2025-01-03.
	got := cal.PreviousBusinessDay(context.Background(), date("2025-01-06"))
	if got.Format("2006-01-02") != "2025-01-03" {
		t.Fatalf("got %s", got.Format("2006-01-02"))
	}
}

func TestBusinessDaysBefore(t *testing.T) {
	src := &fakeHolidaySource{holidays: map[string]bool{"2025-01-03": true}} // Friday holiday
	cal := New(src, time.UTC)
	// 2 business days before Tuesday 2025-01-07: Monday 06, then skipping
	// the Friday holiday and the weekend, Thursday 2025-01-02.
	got := cal.BusinessDaysBefore(context.Background(), date("2025-01-07"), 2)
	if got.Format("2006-01-02") != "2025-01-02" {
		t.Fatalf("got %s", got.Format("2006-01-02"))
	}
	if cal.BusinessDaysBefore(context.Background(), date("2025-01-07"), 0).Format("2006-01-02") != "2025-01-07" {
		t.Fatalf("n=0 must return the input date")
	}
}

func TestLookupFailureClassifiesUnknown(t *testing.T) {
	src := &fakeHolidaySource{err: errors.New("calendar unavailable")}
	cal := New(src, time.UTC)
	ctx := context.Background()

	if got := cal.Classify(ctx, date("2025-01-06")); got != KindUnknown {
		t.Fatalf("failed lookup classified as %v", got)
	}
	if !cal.IsBusinessDay(ctx, date("2025-01-06")) {
		t.Fatalf("unknown day must not block scheduling")
	}

	// failures are not cached; a recovered source is consulted again
	src.err = nil
	if got := cal.Classify(ctx, date("2025-01-06")); got != KindBusiness {
		t.Fatalf("recovered lookup classified as %v", got)
	}
	if src.calls != 2 {
		t.Fatalf("holiday source called %d times, want 2", src.calls)
	}
}

func TestHolidayLookupCached(t *testing.T) {
	src := &fakeHolidaySource{holidays: map[string]bool{}}
	cal := New(src, time.UTC)
	ctx := context.Background()
	cal.Classify(ctx, date("2025-01-06"))
	cal.Classify(ctx, date("2025-01-06"))
	if src.calls != 1 {
		t.Fatalf("holiday source called %d times, want 1", src.calls)
	}
}
