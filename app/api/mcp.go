package api

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers one tool per query operation on an MCP server. Every
// tool returns a single rendered text block; domain failures come back as
// text, and only a fetch failure without a fallback snapshot is flagged as a
// tool error.
func RegisterMCP(srv *mcp.Server, service *Service) {
	type daysReq struct {
		Days int `json:"days,omitempty"`
	}
	type queryReq struct {
		Query string `json:"query"`
	}
	type dateReq struct {
		Date string `json:"date"`
	}
	type dateRangeReq struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	type categoryReq struct {
		Category string `json:"category"`
	}
	type timeOfDayReq struct {
		Date      string `json:"date"`
		TimeRange string `json:"time_range"`
	}
	type emptyReq struct{}

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "upcoming_events",
		Description: "Get upcoming events. Looks ahead the given number of days (default 7).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in daysReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.Upcoming(ctx, in.Days))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_events",
		Description: "Search events by keyword across titles and descriptions.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in queryReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.Search(ctx, in.Query))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_by_date",
		Description: "Get events on a specific date (YYYY-MM-DD, or phrases like 'next Monday').",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in dateReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.ByDate(ctx, in.Date))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_by_date_range",
		Description: "Get events between two dates, bounds inclusive.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in dateRangeReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.ByDateRange(ctx, in.StartDate, in.EndDate))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_by_category",
		Description: "Get events in a category. Suggests close category names when nothing matches.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in categoryReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.ByCategory(ctx, in.Category))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "event_categories",
		Description: "List the available event categories.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.Categories(ctx))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "event_details",
		Description: "Get full details for the event best matching a name or keyword.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in queryReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.Details(ctx, in.Query))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_by_time_of_day",
		Description: "Get events on a date within a time of day (morning, afternoon, evening, or e.g. 2pm-5pm).",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in timeOfDayReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.ByTimeOfDay(ctx, in.Date, in.TimeRange))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_this_week",
		Description: "Get events from now through the end of this week.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.ThisWeek(ctx))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "events_next_week",
		Description: "Get events for next week, Monday through Sunday.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.NextWeek(ctx))
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "weekend_events",
		Description: "Get events for the current or upcoming weekend.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ emptyReq) (*mcp.CallToolResult, any, error) {
		return textResult(service.Weekend(ctx))
	})
}

func textResult(text string, err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: err != nil,
	}, nil, nil
}
