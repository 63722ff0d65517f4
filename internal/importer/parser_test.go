package importer

import (
	"strings"
	"testing"
)

const sampleExport = `"Push Day";"2024-06-01 10:30"
"1. Bench Press · Chest"
#;KG;REPS
1;60;8
2;62,5;6
"2. Overhead Press · Shoulders"
1;40;10

"Leg Day";"2024-06-03"
"1. Squat · Legs"
1;80;5
`

func TestParse(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	push := sessions[0]
	if push.Name != "Push Day" {
		t.Errorf("name = %q", push.Name)
	}
	if push.Date.Hour() != 10 || push.Date.Minute() != 30 {
		t.Errorf("date = %v, want 10:30", push.Date)
	}
	if len(push.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(push.Exercises))
	}

	bench := push.Exercises[0]
	if bench.Name != "Bench Press" || bench.MuscleGroup != "Chest" {
		t.Errorf("exercise = %+v", bench)
	}
	if len(bench.Sets) != 2 {
		t.Fatalf("sets = %d, want 2", len(bench.Sets))
	}
	if bench.Sets[1].WeightKg != 62.5 {
		t.Errorf("decimal comma weight = %v, want 62.5", bench.Sets[1].WeightKg)
	}
	if bench.Sets[0].Reps != 8 || bench.Sets[0].Number != 1 {
		t.Errorf("first set = %+v", bench.Sets[0])
	}

	leg := sessions[1]
	if leg.Date.Day() != 3 || leg.Date.Hour() != 0 {
		t.Errorf("date-only header parsed as %v", leg.Date)
	}
	if len(leg.Exercises) != 1 || len(leg.Exercises[0].Sets) != 1 {
		t.Errorf("leg day = %+v", leg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"set without exercise", "\"Push Day\";\"2024-06-01\"\n1;60;8\n"},
		{"exercise without session", "\"1. Bench Press · Chest\"\n"},
		{"bad date", "\"Push Day\";\"2024-13-99\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseSkipsUnknownLines(t *testing.T) {
	input := "some preamble\n\"Push Day\";\"2024-06-01\"\nnotes about the day\n\"1. Bench Press · Chest\"\n1;60;8\n"
	sessions, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sessions) != 1 || len(sessions[0].Exercises[0].Sets) != 1 {
		t.Errorf("sessions = %+v", sessions)
	}
}
