package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftlog/internal/models"
)

// defaultDateRange returns start/end defaulting to the last 30 days.
func defaultDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// --- Tool definitions ---

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Record a completed set for an exercise in today's session. The session is created automatically if it does not exist yet. Returns the stored set; is_personal_record is true when the weight beats the stored record for that exact rep count."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID from list_exercises")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg. Use 0 for bodyweight exercises.")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Number of repetitions performed")),
)

var toolGetTodaySession = mcp.NewTool("get_today_session",
	mcp.WithDescription("Get (or lazily create) today's training session, including all sets recorded so far."),
)

var toolGetSessionSets = mcp.NewTool("get_session_sets",
	mcp.WithDescription("List all sets of a training session with exercise details, ordered by exercise name and set number."),
	mcp.WithNumber("session_id", mcp.Required(), mcp.Description("Session ID")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises in the library, optionally filtered by muscle group."),
	mcp.WithString("muscle_group", mcp.Description("Filter by muscle group (e.g. 'Chest', 'Back', 'Legs')")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Recent sets of an exercise across all sessions, newest first. Includes the last set and the historical average rep count."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sets to return. Defaults to 50.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Personal records of an exercise: the best weight per exact rep count, ordered by reps."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List training sessions in a date range, newest first."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	session, err := h.svc.ResolveTodaySession(ctx)
	if err != nil {
		h.log.Error("mcp log_set: resolving session", "error", err)
		return mcp.NewToolResultError("resolving today's session failed: " + err.Error()), nil
	}

	set, err := h.svc.RecordSet(ctx, session.ID, int64(exerciseID), weight, reps)
	if err != nil {
		return mcp.NewToolResultError("recording set failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(set)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTodaySession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := h.svc.ResolveTodaySession(ctx)
	if err != nil {
		h.log.Error("mcp get_today_session", "error", err)
		return mcp.NewToolResultError("resolving today's session failed: " + err.Error()), nil
	}

	sets := h.svc.SessionSets(ctx, session.ID)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"session": session,
		"sets":    sets,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := req.RequireInt("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	sets := h.svc.SessionSets(ctx, int64(sessionID))
	if sets == nil {
		sets = []models.SetWithExercise{}
	}
	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.db.ListExercises(ctx, req.GetString("muscle_group", ""))
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	limit := req.GetInt("limit", 50)
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	id := int64(exerciseID)
	sets := h.svc.ExerciseHistory(ctx, id, limit)
	if sets == nil {
		sets = []models.ExerciseSet{}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"sets":         sets,
		"last_set":     h.svc.LastSet(ctx, id),
		"average_reps": h.svc.AverageReps(ctx, id),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	records := h.svc.RecordsForExercise(ctx, int64(exerciseID))
	if records == nil {
		records = []models.PersonalRecord{}
	}
	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sessions := h.svc.SessionsBetween(ctx, start, end)
	if sessions == nil {
		sessions = []models.TrainingSession{}
	}
	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
