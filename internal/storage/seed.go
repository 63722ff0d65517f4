package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/liftlog/internal/models"
)

// Seed populates the starter exercise library when the table is empty.
// Calling it again is a no-op.
func (db *DB) Seed(ctx context.Context) (int, error) {
	count, err := db.CountExercises(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range starterExercises {
		e := starterExercises[i]
		if err := db.InsertExercise(ctx, &e); err != nil {
			return 0, fmt.Errorf("seeding exercise %q: %w", e.Name, err)
		}
	}
	return len(starterExercises), nil
}

var starterExercises = []models.Exercise{
	// Chest
	{Name: "Bench Press", MuscleGroup: "Chest", Type: models.TypeFreeWeight, Description: "Flat barbell bench press, the foundational chest compound", IsCompound: true, DefaultReps: 10},
	{Name: "Incline Bench Press", MuscleGroup: "Chest", Type: models.TypeFreeWeight, Description: "Incline barbell press emphasizing the upper chest", IsCompound: true, DefaultReps: 10},
	{Name: "Decline Bench Press", MuscleGroup: "Chest", Type: models.TypeFreeWeight, Description: "Decline barbell press emphasizing the lower chest", IsCompound: true, DefaultReps: 10},
	{Name: "Dumbbell Fly", MuscleGroup: "Chest", Type: models.TypeFreeWeight, Description: "Dumbbell fly stretching the pecs", DefaultReps: 10},
	{Name: "Pec Deck", MuscleGroup: "Chest", Type: models.TypeMachine, Description: "Seated machine fly isolating the inner chest", DefaultReps: 10},

	// Back
	{Name: "Pull-Up", MuscleGroup: "Back", Type: models.TypeBodyweight, Description: "Strict pull-up, the foundational back movement", IsCompound: true, DefaultReps: 10},
	{Name: "Barbell Row", MuscleGroup: "Back", Type: models.TypeFreeWeight, Description: "Bent-over barbell row for the entire lats", IsCompound: true, DefaultReps: 10},
	{Name: "One-Arm Dumbbell Row", MuscleGroup: "Back", Type: models.TypeFreeWeight, Description: "Single-arm dumbbell row for unilateral back work", DefaultReps: 10},
	{Name: "Lat Pulldown", MuscleGroup: "Back", Type: models.TypeMachine, Description: "Cable pulldown mimicking the pull-up", IsCompound: true, DefaultReps: 10},
	{Name: "Seated Cable Row", MuscleGroup: "Back", Type: models.TypeMachine, Description: "Seated row machine hitting the whole back", IsCompound: true, DefaultReps: 10},

	// Legs
	{Name: "Squat", MuscleGroup: "Legs", Type: models.TypeFreeWeight, Description: "Barbell back squat, the foundational lower-body compound", IsCompound: true, DefaultReps: 10},
	{Name: "Deadlift", MuscleGroup: "Legs", Type: models.TypeFreeWeight, Description: "Conventional deadlift for the posterior chain and lower back", IsCompound: true, DefaultReps: 10},
	{Name: "Leg Press", MuscleGroup: "Legs", Type: models.TypeMachine, Description: "Leg press machine emphasizing the quads", DefaultReps: 10},
	{Name: "Leg Extension", MuscleGroup: "Legs", Type: models.TypeMachine, Description: "Leg extension machine isolating the quads", DefaultReps: 10},
	{Name: "Leg Curl", MuscleGroup: "Legs", Type: models.TypeMachine, Description: "Leg curl machine for the hamstrings", DefaultReps: 10},

	// Shoulders
	{Name: "Overhead Press", MuscleGroup: "Shoulders", Type: models.TypeFreeWeight, Description: "Standing barbell press, the foundational shoulder compound", IsCompound: true, DefaultReps: 10},
	{Name: "Lateral Raise", MuscleGroup: "Shoulders", Type: models.TypeFreeWeight, Description: "Dumbbell lateral raise for the medial delts", DefaultReps: 10},
	{Name: "Front Raise", MuscleGroup: "Shoulders", Type: models.TypeFreeWeight, Description: "Dumbbell front raise for the anterior delts", DefaultReps: 10},
	{Name: "Reverse Fly", MuscleGroup: "Shoulders", Type: models.TypeFreeWeight, Description: "Bent-over dumbbell fly for the rear delts", DefaultReps: 10},
	{Name: "Upright Row", MuscleGroup: "Shoulders", Type: models.TypeFreeWeight, Description: "Barbell upright row for rear delts and traps", IsCompound: true, DefaultReps: 10},

	// Arms
	{Name: "Barbell Curl", MuscleGroup: "Arms", Type: models.TypeFreeWeight, Description: "Barbell curl, the basic biceps movement", DefaultReps: 10},
	{Name: "Close-Grip Bench Press", MuscleGroup: "Arms", Type: models.TypeFreeWeight, Description: "Close-grip press emphasizing the triceps", IsCompound: true, DefaultReps: 10},
	{Name: "Dumbbell Curl", MuscleGroup: "Arms", Type: models.TypeFreeWeight, Description: "Alternating dumbbell curl for unilateral biceps work", DefaultReps: 10},
	{Name: "Triceps Pushdown", MuscleGroup: "Arms", Type: models.TypeMachine, Description: "Cable pushdown isolating the triceps", DefaultReps: 10},

	// Core
	{Name: "Crunch", MuscleGroup: "Core", Type: models.TypeBodyweight, Description: "Standard crunch, the basic ab movement", DefaultReps: 10},
	{Name: "Plank", MuscleGroup: "Core", Type: models.TypeBodyweight, Description: "Plank hold for core stability", DefaultReps: 10},
	{Name: "Russian Twist", MuscleGroup: "Core", Type: models.TypeBodyweight, Description: "Russian twist for the obliques", DefaultReps: 10},
	{Name: "Leg Raise", MuscleGroup: "Core", Type: models.TypeBodyweight, Description: "Lying leg raise for the lower abs", DefaultReps: 10},
}
