package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const recentRecordLimit = 20

func (h *handlers) today(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	session, err := h.svc.ResolveTodaySession(ctx)
	if err != nil {
		return nil, err
	}

	summary := map[string]any{
		"session": session,
		"sets":    h.svc.SessionSets(ctx, session.ID),
	}
	return jsonContents(req, summary)
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.db.ListExercises(ctx, "")
	if err != nil {
		return nil, err
	}
	return jsonContents(req, exercises)
}

func (h *handlers) recentRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.db.RecentRecords(ctx, recentRecordLimit)
	if err != nil {
		return nil, err
	}
	return jsonContents(req, records)
}

func jsonContents(req mcp.ReadResourceRequest, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
