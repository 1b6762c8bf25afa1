package googleapi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarClient reads meeting attendees and the public holiday calendar
type CalendarClient struct {
	svc               *calendar.Service
	calendarID        string
	holidayCalendarID string
}

// NewCalendarClient creates a calendar client on the shared token source
func NewCalendarClient(ctx context.Context, ts oauth2.TokenSource, calendarID, holidayCalendarID string) (*CalendarClient, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &CalendarClient{svc: svc, calendarID: calendarID, holidayCalendarID: holidayCalendarID}, nil
}

// FetchAttendeesForDate finds the event around the given date whose
// summary contains the meeting key and returns its attendee emails,
// lowercased, deduplicated and sorted. An empty slice when no event
// matches; the meeting still proceeds on stored participants.
func (c *CalendarClient) FetchAttendeesForDate(ctx context.Context, date, meetingKey string) ([]string, error) {
	base, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid meeting date %q: %w", date, err)
	}
	timeMin := base.AddDate(0, 0, -3).Format(time.RFC3339)
	timeMax := base.AddDate(0, 0, 4).Format(time.RFC3339)

	res, err := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin).
		TimeMax(timeMax).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar lookup failed: %w", err)
	}

	var target *calendar.Event
	for _, e := range res.Items {
		if strings.Contains(e.Summary, meetingKey) {
			target = e
			break
		}
	}
	if target == nil && len(res.Items) > 0 {
		target = res.Items[0]
	}
	if target == nil {
		return nil, nil
	}

	seen := map[string]bool{}
	var emails []string
	for _, a := range target.Attendees {
		email := strings.ToLower(strings.TrimSpace(a.Email))
		if email != "" && !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}
	sort.Strings(emails)
	return emails, nil
}

// CountHolidayEvents returns how many events the holiday calendar has on
// the given day in the given location. Zero with no error when the
// holiday calendar id is unset.
func (c *CalendarClient) CountHolidayEvents(ctx context.Context, day time.Time, loc *time.Location) (int, error) {
	if c.holidayCalendarID == "" {
		return 0, nil
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	res, err := c.svc.Events.List(c.holidayCalendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(5).
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("holiday lookup failed: %w", err)
	}
	return len(res.Items), nil
}
