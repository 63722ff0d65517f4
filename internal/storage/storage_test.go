package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixture builds an exercise, a session, one set, and one record referencing
// that set.
func fixture(t *testing.T, db *DB) (exerciseID, sessionID, setID int64) {
	t.Helper()
	ctx := context.Background()

	e := &models.Exercise{Name: "Bench Press", MuscleGroup: "Chest", Type: models.TypeFreeWeight}
	if err := db.InsertExercise(ctx, e); err != nil {
		t.Fatalf("inserting exercise: %v", err)
	}
	s := &models.TrainingSession{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Name: "Push Day"}
	if err := db.InsertSession(ctx, s); err != nil {
		t.Fatalf("inserting session: %v", err)
	}

	var set models.ExerciseSet
	err := db.WithTx(ctx, func(tx *Tx) error {
		set = models.ExerciseSet{
			SessionID:  s.ID,
			ExerciseID: e.ID,
			SetNumber:  1,
			Weight:     60,
			Reps:       8,
			Timestamp:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		}
		if err := tx.InsertSet(ctx, &set); err != nil {
			return err
		}
		return tx.InsertRecord(ctx, &models.PersonalRecord{
			ExerciseID: e.ID,
			Reps:       8,
			Weight:     60,
			Date:       set.Timestamp,
			SetID:      set.ID,
		})
	})
	if err != nil {
		t.Fatalf("inserting set and record: %v", err)
	}
	return e.ID, s.ID, set.ID
}

func TestDeleteExerciseCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	exerciseID, sessionID, _ := fixture(t, db)

	if err := db.DeleteExercise(ctx, exerciseID); err != nil {
		t.Fatalf("deleting exercise: %v", err)
	}

	sets, err := db.SetsForSessionAndExercise(ctx, sessionID, exerciseID)
	if err != nil {
		t.Fatalf("querying sets: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("sets after exercise delete = %d, want 0 (cascade)", len(sets))
	}

	records, err := db.RecordsForExercise(ctx, exerciseID)
	if err != nil {
		t.Fatalf("querying records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records after exercise delete = %d, want 0 (cascade)", len(records))
	}
}

func TestDeleteSessionCascadesSetsKeepsRecords(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	exerciseID, sessionID, _ := fixture(t, db)

	if err := db.DeleteSession(ctx, sessionID); err != nil {
		t.Fatalf("deleting session: %v", err)
	}

	sets, err := db.SetsForSessionAndExercise(ctx, sessionID, exerciseID)
	if err != nil {
		t.Fatalf("querying sets: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("sets after session delete = %d, want 0 (cascade)", len(sets))
	}

	// Records earned in the session survive; their set reference dangles.
	records, err := db.RecordsForExercise(ctx, exerciseID)
	if err != nil {
		t.Fatalf("querying records: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records after session delete = %d, want 1 (kept)", len(records))
	}
}

func TestGetExerciseNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetExercise(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestListExercisesFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, e := range []models.Exercise{
		{Name: "Squat", MuscleGroup: "Legs", Type: models.TypeFreeWeight},
		{Name: "Bench Press", MuscleGroup: "Chest", Type: models.TypeFreeWeight},
		{Name: "Leg Press", MuscleGroup: "Legs", Type: models.TypeMachine},
	} {
		e := e
		if err := db.InsertExercise(ctx, &e); err != nil {
			t.Fatalf("inserting %q: %v", e.Name, err)
		}
	}

	all, err := db.ListExercises(ctx, "")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Bench Press" {
		t.Errorf("unfiltered list = %d entries starting %q, want 3 starting with Bench Press",
			len(all), all[0].Name)
	}

	legs, err := db.ListExercises(ctx, "Legs")
	if err != nil {
		t.Fatalf("listing legs: %v", err)
	}
	if len(legs) != 2 || legs[0].Name != "Leg Press" || legs[1].Name != "Squat" {
		t.Errorf("legs filter returned %+v", legs)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := db.Seed(ctx)
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	if n == 0 {
		t.Fatal("first seed inserted nothing")
	}

	again, err := db.Seed(ctx)
	if err != nil {
		t.Fatalf("re-seeding: %v", err)
	}
	if again != 0 {
		t.Errorf("second seed inserted %d rows, want 0", again)
	}

	count, err := db.CountExercises(ctx)
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != n {
		t.Errorf("exercise count = %d, want %d", count, n)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.InsertSession(ctx, &models.TrainingSession{
			Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}

	sessions, err := db.SessionsBetween(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("querying sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions after rollback = %d, want 0", len(sessions))
	}
}

func TestUpdateSessionPartialFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := &models.TrainingSession{
		Date:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Name:  "Push Day",
		Notes: "felt strong",
	}
	if err := db.InsertSession(ctx, s); err != nil {
		t.Fatalf("inserting session: %v", err)
	}

	name := "Pull Day"
	if err := db.UpdateSession(ctx, s.ID, &name, nil); err != nil {
		t.Fatalf("updating name: %v", err)
	}
	got, err := db.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("getting session: %v", err)
	}
	if got.Name != "Pull Day" || got.Notes != "felt strong" {
		t.Errorf("after name update: %+v", got)
	}

	notes := "deload week"
	if err := db.UpdateSession(ctx, s.ID, nil, &notes); err != nil {
		t.Fatalf("updating notes: %v", err)
	}

	name2, notes2 := "Leg Day", "new gym"
	if err := db.UpdateSession(ctx, s.ID, &name2, &notes2); err != nil {
		t.Fatalf("updating both: %v", err)
	}
	got, err = db.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("getting session: %v", err)
	}
	if got.Name != "Leg Day" || got.Notes != "new gym" {
		t.Errorf("after combined update: %+v", got)
	}

	// No fields is a no-op, not an error.
	if err := db.UpdateSession(ctx, s.ID, nil, nil); err != nil {
		t.Errorf("empty update: %v", err)
	}

	if err := db.UpdateSession(ctx, 9999, &name, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown session error = %v, want ErrNotFound", err)
	}
}

func TestNotifierCoalescesAndCancels(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(TableSets)

	n.Publish(TableSets)
	n.Publish(TableSets) // coalesced into the pending tick
	n.Publish(TableSessions)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a tick for a subscribed table")
	}
	select {
	case <-ch:
		t.Fatal("unexpected second tick")
	default:
	}

	cancel()
	n.Publish(TableSets)
	select {
	case <-ch:
		t.Fatal("tick after cancel")
	default:
	}
}
