package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/training"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, svc *training.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracking server. Log training sets, browse the exercise library, and query session history and personal records. Weights are in kilograms."),
	)

	h := &handlers{db: db, svc: svc, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolGetTodaySession, Handler: h.getTodaySession},
		server.ServerTool{Tool: toolGetSessionSets, Handler: h.getSessionSets},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resToday, Handler: h.today},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRecentRecords, Handler: h.recentRecords},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	svc *training.Service
	log *slog.Logger
}

// --- Resource definitions ---

var resToday = mcp.NewResource(
	"liftlog://today",
	"Today's Session",
	mcp.WithResourceDescription("Today's training session with all sets recorded so far, grouped by exercise"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"liftlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises in the library with muscle group, type, and default weight/reps"),
	mcp.WithMIMEType("application/json"),
)

var resRecentRecords = mcp.NewResource(
	"liftlog://recent_records",
	"Recent Personal Records",
	mcp.WithResourceDescription("The most recently achieved personal records"),
	mcp.WithMIMEType("application/json"),
)
