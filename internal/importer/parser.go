package importer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
)

var (
	// sessionHeaderRe matches: "Push Day";"2024-06-01 10:30"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}(?:\s+\d{1,2}:\d{2})?)"$`)

	// exerciseHeaderRe matches: "1. Bench Press · Chest"
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?"$`)

	// setDataRe matches: 1;60;8 (weight may use a decimal comma: 1;37,5;9)
	setDataRe = regexp.MustCompile(`^(\d+);([\d.,]+);(\d+)$`)

	// columnHeaderRe matches: #;KG;REPS
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS$`)
)

// Parse reads a semicolon-separated training history export and returns the
// parsed sessions. Sessions are separated by blank lines; each session starts
// with a quoted header line, followed by numbered exercise headers and their
// set lines. Unrecognized lines are skipped.
func Parse(r io.Reader) ([]models.HistorySession, error) {
	scanner := bufio.NewScanner(r)
	var sessions []models.HistorySession
	var current *models.HistorySession
	var currentExercise *models.HistoryExercise

	flushExercise := func() {
		if current != nil && currentExercise != nil {
			current.Exercises = append(current.Exercises, *currentExercise)
			currentExercise = nil
		}
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Blank line = session boundary
		if line == "" {
			flushSession()
			continue
		}

		// Skip column headers
		if columnHeaderRe.MatchString(line) {
			continue
		}

		// Try session header
		if m := sessionHeaderRe.FindStringSubmatch(line); m != nil {
			flushSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("parsing session date %q: %w", m[2], err)
			}
			current = &models.HistorySession{Name: m[1], Date: date}
			continue
		}

		// Try exercise header
		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			flushExercise()
			num, _ := strconv.Atoi(m[1])
			currentExercise = &models.HistoryExercise{
				Number:      num,
				Name:        strings.TrimSpace(m[2]),
				MuscleGroup: strings.TrimSpace(m[3]),
			}
			continue
		}

		// Try set data
		if m := setDataRe.FindStringSubmatch(line); m != nil {
			if currentExercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			setNum, _ := strconv.Atoi(m[1])
			weight, err := parseEuropeanFloat(m[2])
			if err != nil {
				return nil, fmt.Errorf("parsing weight %q: %w", m[2], err)
			}
			reps, _ := strconv.Atoi(m[3])

			currentExercise.Sets = append(currentExercise.Sets, models.HistorySet{
				Number:   setNum,
				WeightKg: weight,
				Reps:     reps,
			})
			continue
		}

		// Unknown line — skip (notes or other metadata)
	}

	flushSession()
	return sessions, scanner.Err()
}

// parseSessionDate parses "2024-06-01 10:30" or a bare "2024-06-01" in local
// time, matching how live sessions are dated.
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04", "2006-01-02"} {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseEuropeanFloat accepts both "37.5" and "37,5".
func parseEuropeanFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
