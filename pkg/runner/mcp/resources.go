package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerJournalResource(srv, svc)
	registerStatsResource(srv, svc)
	registerEntryTemplate(srv, svc)
}

func registerJournalResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"weiwei://journal",
		"Journal",
		mcp.WithResourceDescription("Every post-meal feeling entry, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := svc.ListEntries(ctx, 0)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"entries": entries,
			"count":   len(entries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerStatsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"weiwei://stats",
		"Feeling Stats",
		mcp.WithResourceDescription("Entry counts per feeling."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		stats, err := svc.Stats(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, stats)
	})
}

func registerEntryTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"weiwei://entries/{id}",
		"Entry Details",
		mcp.WithTemplateDescription("A single journal entry."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("entry id is required")
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"entry": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
