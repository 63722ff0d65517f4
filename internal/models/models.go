package models

import "time"

// ExerciseType categorizes how an exercise is loaded. Each type carries a
// weight increment and a valid weight range in kilograms.
type ExerciseType string

const (
	TypeMachine    ExerciseType = "MACHINE"
	TypeFreeWeight ExerciseType = "FREE_WEIGHT"
	TypeBodyweight ExerciseType = "BODYWEIGHT"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	switch t {
	case TypeMachine, TypeFreeWeight, TypeBodyweight:
		return true
	}
	return false
}

// WeightIncrement returns the step size used when adjusting weight for this
// exercise type.
func (t ExerciseType) WeightIncrement() float64 {
	switch t {
	case TypeMachine:
		return 1.0
	case TypeFreeWeight:
		return 2.5
	default:
		return 0
	}
}

// WeightRange returns the valid [min, max] weight in kg for this exercise
// type. Bodyweight exercises carry no weight.
func (t ExerciseType) WeightRange() (min, max float64) {
	switch t {
	case TypeMachine:
		return 15.0, 100.0
	case TypeFreeWeight:
		return 2.5, 100.0
	default:
		return 0, 0
	}
}

// Exercise is a library entry the user can record sets against.
type Exercise struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	MuscleGroup   string       `json:"muscle_group"`
	Type          ExerciseType `json:"type"`
	Description   string       `json:"description"`
	ImageFile     string       `json:"image_file,omitempty"`
	IsCompound    bool         `json:"is_compound"`
	DefaultWeight float64      `json:"default_weight"`
	DefaultReps   int          `json:"default_reps"`
}

// TrainingSession groups the sets recorded on one calendar day. Date is the
// instant of local midnight for that day.
type TrainingSession struct {
	ID    int64     `json:"id"`
	Date  time.Time `json:"date"`
	Name  string    `json:"name"`
	Notes string    `json:"notes"`
}

// ExerciseSet is one completed performance of an exercise: weight x reps,
// numbered within its session+exercise. The record flag is computed once at
// insert time and never re-evaluated.
type ExerciseSet struct {
	ID               int64     `json:"id"`
	SessionID        int64     `json:"session_id"`
	ExerciseID       int64     `json:"exercise_id"`
	SetNumber        int       `json:"set_number"`
	Weight           float64   `json:"weight"`
	Reps             int       `json:"reps"`
	IsPersonalRecord bool      `json:"is_personal_record"`
	Timestamp        time.Time `json:"timestamp"`
}

// PersonalRecord is the best weight logged for an exact rep count on an
// exercise. SetID points at the set that achieved it.
type PersonalRecord struct {
	ID         int64     `json:"id"`
	ExerciseID int64     `json:"exercise_id"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Date       time.Time `json:"date"`
	SetID      int64     `json:"set_id"`
}

// SetWithExercise joins a set with its exercise details for display.
type SetWithExercise struct {
	Set      ExerciseSet `json:"set"`
	Exercise Exercise    `json:"exercise"`
}

// LastSet is the most recent performance of an exercise, used to pre-fill
// weight and reps when the user logs the next set.
type LastSet struct {
	ExerciseID int64     `json:"exercise_id"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Timestamp  time.Time `json:"timestamp"`
}
