package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/gateway"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAnalyzeMealTool(srv, svc)
	registerLogFeelingTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerFeelingStatsTool(srv, svc)
	registerWeeklyReportTool(srv, svc)
}

func registerAnalyzeMealTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"analyze_meal",
		mcp.WithDescription("Turn a free-text food description into a portioned, balanced meal plan."),
		mcp.WithString("food",
			mcp.Required(),
			mcp.Description("What the user plans to eat, for example 米饭 or 番茄炒蛋."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		food, err := request.RequireString("food")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Analyze(ctx, food)
		if err != nil {
			var af *gateway.AnalysisFailure
			if errors.As(err, &af) {
				return mcp.NewToolResultError(gateway.AnalysisRetryMessage), nil
			}
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerLogFeelingTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_feeling",
		mcp.WithDescription("Record how the stomach feels after a meal."),
		mcp.WithString("feeling",
			mcp.Required(),
			mcp.Description("GREAT (刚好), FULL (有点撑) or STUFFED (撑到了)."),
			mcp.Enum("GREAT", "FULL", "STUFFED"),
		),
		mcp.WithString("food",
			mcp.Description("What was eaten. Defaults to the last analyzed meal, if any."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Feeling string `json:"feeling"`
			Food    string `json:"food"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		f, err := feeling.Parse(args.Feeling)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.LogFeeling(ctx, f, args.Food)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return. Zero returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 0)
		entries, err := svc.ListEntries(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerFeelingStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"feeling_stats",
		mcp.WithDescription("Count journal entries per feeling."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := svc.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(stats)
	})
}

func registerWeeklyReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"weekly_report",
		mcp.WithDescription("Write a short narrative about how food and feelings relate."),
		mcp.WithString("last",
			mcp.Description("Only include entries from this window, for example 1w or 3d. Empty includes everything."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Report(ctx, request.GetString("last", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
