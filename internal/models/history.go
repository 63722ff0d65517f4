package models

import "time"

// HistorySession is one training day parsed from a history export, before it
// is matched against the database.
type HistorySession struct {
	Name      string
	Date      time.Time
	Exercises []HistoryExercise
}

// HistoryExercise groups the parsed sets of one exercise within a session.
type HistoryExercise struct {
	Number      int
	Name        string
	MuscleGroup string
	Sets        []HistorySet
}

// HistorySet is a single parsed set line.
type HistorySet struct {
	Number   int
	WeightKg float64
	Reps     int
}
