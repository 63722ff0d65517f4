package models

import "testing"

func TestExerciseTypeProperties(t *testing.T) {
	tests := []struct {
		typ       ExerciseType
		increment float64
		min, max  float64
	}{
		{TypeMachine, 1.0, 15.0, 100.0},
		{TypeFreeWeight, 2.5, 2.5, 100.0},
		{TypeBodyweight, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if !tt.typ.Valid() {
				t.Errorf("%s should be valid", tt.typ)
			}
			if got := tt.typ.WeightIncrement(); got != tt.increment {
				t.Errorf("increment = %v, want %v", got, tt.increment)
			}
			min, max := tt.typ.WeightRange()
			if min != tt.min || max != tt.max {
				t.Errorf("range = [%v, %v], want [%v, %v]", min, max, tt.min, tt.max)
			}
		})
	}
}

func TestExerciseTypeInvalid(t *testing.T) {
	if ExerciseType("CARDIO").Valid() {
		t.Error("unknown type should not be valid")
	}
	if ExerciseType("").Valid() {
		t.Error("empty type should not be valid")
	}
}
