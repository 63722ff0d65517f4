package training

import (
	"context"
	"testing"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

func TestSessionSetsOrdering(t *testing.T) {
	svc, db := newTestService(t)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local) }

	session, _ := svc.ResolveTodaySession(context.Background())
	squat := addExercise(t, db, "Squat", models.TypeFreeWeight)
	bench := addExercise(t, db, "Bench Press", models.TypeFreeWeight)

	// Interleave exercises; display order is exercise name, then set number.
	svc.RecordSet(context.Background(), session.ID, squat.ID, 80, 5)
	svc.RecordSet(context.Background(), session.ID, bench.ID, 60, 8)
	svc.RecordSet(context.Background(), session.ID, squat.ID, 85, 5)
	svc.RecordSet(context.Background(), session.ID, bench.ID, 62.5, 8)

	sets := svc.SessionSets(context.Background(), session.ID)
	if len(sets) != 4 {
		t.Fatalf("sets = %d, want 4", len(sets))
	}

	want := []struct {
		name   string
		number int
	}{
		{"Bench Press", 1},
		{"Bench Press", 2},
		{"Squat", 1},
		{"Squat", 2},
	}
	for i, w := range want {
		if sets[i].Exercise.Name != w.name || sets[i].Set.SetNumber != w.number {
			t.Errorf("sets[%d] = %s #%d, want %s #%d",
				i, sets[i].Exercise.Name, sets[i].Set.SetNumber, w.name, w.number)
		}
	}
}

func TestSessionsBetweenInclusiveDescending(t *testing.T) {
	svc, _ := newTestService(t)

	days := []time.Time{
		time.Date(2024, 5, 31, 0, 0, 0, 0, time.Local),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local),
	}
	for _, day := range days {
		clock := day.Add(9 * time.Hour)
		svc.now = func() time.Time { return clock }
		if _, err := svc.ResolveTodaySession(context.Background()); err != nil {
			t.Fatalf("resolving session for %v: %v", day, err)
		}
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local)
	sessions := svc.SessionsBetween(context.Background(), start, end)

	if len(sessions) != 3 {
		t.Fatalf("sessions in range = %d, want 3 (inclusive bounds)", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Date.After(sessions[i-1].Date) {
			t.Errorf("sessions not in descending date order: %v before %v",
				sessions[i-1].Date, sessions[i].Date)
		}
	}
	if !sessions[0].Date.Equal(end) || !sessions[2].Date.Equal(start) {
		t.Errorf("range endpoints missing: got %v .. %v", sessions[0].Date, sessions[2].Date)
	}
}

func TestLastSet(t *testing.T) {
	svc, db := newTestService(t)
	exercise := addExercise(t, db, "Barbell Row", models.TypeFreeWeight)

	if last := svc.LastSet(context.Background(), exercise.ID); last != nil {
		t.Fatalf("last set with no history = %+v, want nil", last)
	}

	svc.now = func() time.Time { return time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local) }
	session, _ := svc.ResolveTodaySession(context.Background())
	svc.RecordSet(context.Background(), session.ID, exercise.ID, 60, 10)

	svc.now = func() time.Time { return time.Date(2024, 6, 1, 18, 5, 0, 0, time.Local) }
	svc.RecordSet(context.Background(), session.ID, exercise.ID, 65, 8)

	last := svc.LastSet(context.Background(), exercise.ID)
	if last == nil {
		t.Fatal("expected a last set")
	}
	if last.Weight != 65 || last.Reps != 8 {
		t.Errorf("last set = %.1f kg x %d, want 65 x 8", last.Weight, last.Reps)
	}
}

func TestAverageReps(t *testing.T) {
	svc, db := newTestService(t)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local) }

	exercise := addExercise(t, db, "Lat Pulldown", models.TypeMachine)
	if avg := svc.AverageReps(context.Background(), exercise.ID); avg != 10 {
		t.Errorf("average with no history = %d, want default 10", avg)
	}

	session, _ := svc.ResolveTodaySession(context.Background())
	svc.RecordSet(context.Background(), session.ID, exercise.ID, 50, 8)
	svc.RecordSet(context.Background(), session.ID, exercise.ID, 50, 12)

	if avg := svc.AverageReps(context.Background(), exercise.ID); avg != 10 {
		t.Errorf("average of 8 and 12 = %d, want 10", avg)
	}
}

func TestWatchSessionSets(t *testing.T) {
	svc, db := newTestService(t)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local) }

	session, _ := svc.ResolveTodaySession(context.Background())
	exercise := addExercise(t, db, "Bench Press", models.TypeFreeWeight)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	snapshots := svc.WatchSessionSets(ctx, session.ID)

	recv := func() []models.SetWithExercise {
		t.Helper()
		select {
		case snap, ok := <-snapshots:
			if !ok {
				t.Fatal("snapshot channel closed early")
			}
			return snap
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}

	if snap := recv(); len(snap) != 0 {
		t.Fatalf("initial snapshot has %d sets, want 0", len(snap))
	}

	if _, err := svc.RecordSet(context.Background(), session.ID, exercise.ID, 60, 8); err != nil {
		t.Fatalf("recording set: %v", err)
	}
	if snap := recv(); len(snap) != 1 {
		t.Fatalf("snapshot after insert has %d sets, want 1", len(snap))
	}

	cancel()
	for {
		select {
		case _, ok := <-snapshots:
			if !ok {
				return // closed, as expected
			}
		case <-time.After(2 * time.Second):
			t.Fatal("channel not closed after cancel")
		}
	}
}
