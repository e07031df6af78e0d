package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campusbeat/events-mcp/app/query"
	"github.com/campusbeat/events-mcp/app/render"
	"github.com/campusbeat/events-mcp/app/timeparse"
)

// Service turns engine results into the user-facing text blocks. Every
// method returns text on both success and failure paths; the error is
// non-nil only for transport failures with no fallback snapshot, so callers
// can flag those without re-rendering.
type Service struct {
	engine *query.Engine
}

func NewService(engine *query.Engine) *Service {
	return &Service{engine: engine}
}

func (s *Service) Upcoming(ctx context.Context, days int) (string, error) {
	if days <= 0 {
		days = 7
	}

	events, err := s.engine.Upcoming(ctx, days)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found in the next %d days.", days), nil
	}

	header := fmt.Sprintf("Upcoming events%s for the next %d days:", s.scope(ctx), days)
	return render.EventList(header, events), nil
}

func (s *Service) Search(ctx context.Context, q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "Please provide a search query.", nil
	}

	events, err := s.engine.Search(ctx, q)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found matching '%s'.", q), nil
	}

	header := fmt.Sprintf("Events%s matching '%s':", s.scope(ctx), q)
	return render.EventList(header, events), nil
}

func (s *Service) ByDate(ctx context.Context, date string) (string, error) {
	day, events, err := s.engine.ByDate(ctx, date)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found on %s.", render.Day(day)), nil
	}

	header := fmt.Sprintf("Events%s on %s:", s.scope(ctx), render.Day(day))
	return render.EventList(header, events), nil
}

func (s *Service) ByDateRange(ctx context.Context, startDate, endDate string) (string, error) {
	lo, hi, events, err := s.engine.ByDateRange(ctx, startDate, endDate)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found between %s and %s.", render.Day(lo), render.Day(hi)), nil
	}

	header := fmt.Sprintf("Events%s from %s to %s:", s.scope(ctx), render.Day(lo), render.Day(hi))
	return render.EventList(header, events), nil
}

func (s *Service) ByCategory(ctx context.Context, category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Please provide a category.", nil
	}

	events, suggestions, err := s.engine.ByCategory(ctx, category)
	if err != nil {
		return s.errorText(err)
	}

	if len(events) == 0 {
		if len(suggestions) > 0 {
			return fmt.Sprintf("No events found in category '%s'. Did you mean: %s?",
				category, strings.Join(suggestions, ", ")), nil
		}
		return fmt.Sprintf("No events found in category '%s'.", category), nil
	}

	header := fmt.Sprintf("Events%s in category '%s':", s.scope(ctx), category)
	return render.EventList(header, events), nil
}

func (s *Service) Categories(ctx context.Context) (string, error) {
	categories, err := s.engine.Categories(ctx)
	if err != nil {
		return s.errorText(err)
	}
	if len(categories) == 0 {
		return "No categories found in the events.", nil
	}

	header := fmt.Sprintf("Available event categories%s:", s.scope(ctx))
	return header + "\n\n" + strings.Join(categories, "\n"), nil
}

func (s *Service) Details(ctx context.Context, q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "Please provide an event name.", nil
	}

	ev, err := s.engine.BestMatch(ctx, q)
	if err != nil {
		return s.errorText(err)
	}
	if ev == nil {
		return fmt.Sprintf("No event found matching '%s'.", q), nil
	}

	return render.EventDetail(*ev), nil
}

func (s *Service) ByTimeOfDay(ctx context.Context, date, timeRange string) (string, error) {
	day, events, err := s.engine.ByTimeOfDay(ctx, date, timeRange)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return fmt.Sprintf("No events found on %s during %s.", render.Day(day), strings.TrimSpace(timeRange)), nil
	}

	header := fmt.Sprintf("Events%s on %s (%s):", s.scope(ctx), render.Day(day), strings.TrimSpace(timeRange))
	return render.EventList(header, events), nil
}

func (s *Service) ThisWeek(ctx context.Context) (string, error) {
	events, err := s.engine.ThisWeek(ctx)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return "No events found for the rest of this week.", nil
	}
	return render.EventList(fmt.Sprintf("Events%s this week:", s.scope(ctx)), events), nil
}

func (s *Service) NextWeek(ctx context.Context) (string, error) {
	events, err := s.engine.NextWeek(ctx)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return "No events found next week.", nil
	}
	return render.EventList(fmt.Sprintf("Events%s next week:", s.scope(ctx)), events), nil
}

func (s *Service) Weekend(ctx context.Context) (string, error) {
	events, err := s.engine.Weekend(ctx)
	if err != nil {
		return s.errorText(err)
	}
	if len(events) == 0 {
		return "No events found this weekend.", nil
	}
	return render.EventList(fmt.Sprintf("Weekend events%s:", s.scope(ctx)), events), nil
}

// scope is the " at <feed title>" suffix for headers, empty when the feed
// carries no title or no snapshot is available yet.
func (s *Service) scope(ctx context.Context) string {
	snapshot, err := s.engine.Snapshot(ctx)
	if err != nil || snapshot.Meta.Title == "" {
		return ""
	}
	return " at " + snapshot.Meta.Title
}

// errorText renders the error taxonomy. Validation failures produce a
// corrective message and swallow the error; fetch failures keep it so the
// caller can mark the result.
func (s *Service) errorText(err error) (string, error) {
	var validation *timeparse.ValidationError
	if errors.As(err, &validation) {
		if validation.Expected == "YYYY-MM-DD" {
			return fmt.Sprintf("Invalid date format: %s. Please use YYYY-MM-DD format.", validation.Input), nil
		}
		return fmt.Sprintf("Invalid time range: %s. Use morning, afternoon, evening, or a range like 2pm-5pm.",
			validation.Input), nil
	}

	return fmt.Sprintf("Error retrieving events: %v", err), err
}
