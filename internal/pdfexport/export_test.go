package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduwise/eduwise/internal/planner"
)

func testPlan(days int) planner.Plan {
	p := planner.Plan{
		Request: planner.PlanRequest{
			Topic:        "Spanish “basics”",
			Level:        planner.Beginner,
			DailyMinutes: 45,
			StartDate:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			DurationDays: days,
		},
		Path: planner.LearningPath{
			Topics: []planner.TopicNode{{Topic: "Greetings", Subtopics: []string{"Hola", "Adiós"}}},
			Links:  []planner.Link{{Topic: "Verbs", Prerequisites: []string{"Greetings"}}},
		},
		CreatedAt: time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC),
	}
	for i := range days {
		p.Schedule = append(p.Schedule, planner.StudyDay{
			Day: i + 1, Date: fmt.Sprintf("2026-05-%02d", i+1), Topic: "Greetings", Subtopic: "Hola",
			Activity: "video", Task: "say it — out loud", Practice: true,
		})
	}
	return p
}

func TestExport_Paginates(t *testing.T) {
	tests := []struct {
		days      int
		wantPages int
	}{
		{0, 1},
		{1, 2},
		{4, 2},
		{5, 3},
		{9, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, testPlan(tt.days), Options{}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Equal(t, tt.wantPages, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")))
		})
	}
}

func TestExport_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, testPlan(1), Options{FontPath: filepath.Join(t.TempDir(), "none.ttf")})
	assert.ErrorContains(t, err, "load font")
}

func TestASCIIPunct(t *testing.T) {
	assert.Equal(t, `"quoted" - it's...`, asciiPunct("“quoted” — it’s…"))
}

func TestFileName(t *testing.T) {
	plan := planner.Plan{Request: planner.PlanRequest{
		Topic:     "  Linear Algebra: Vectors & Matrices ",
		StartDate: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
	}}
	assert.Equal(t, "learning-plan-linear-algebra-vectors-matrices-2026-05-04.pdf", FileName(plan))
	assert.Equal(t, "learning-plan-plan.pdf", FileName(planner.Plan{Request: planner.PlanRequest{Topic: "!!"}}))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "plan.pdf")
	require.NoError(t, WriteFile(path, testPlan(3), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	bad := filepath.Join(dir, "bad.pdf")
	require.Error(t, WriteFile(bad, testPlan(1), Options{FontPath: filepath.Join(dir, "missing.ttf")}))
	_, err = os.Stat(bad)
	assert.True(t, os.IsNotExist(err), "failed export should remove the file")
}
