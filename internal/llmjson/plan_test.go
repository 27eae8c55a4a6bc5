package llmjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const validPlan = `{
  "internship": {"domain": "web", "title": "Go APIs", "durationWeeks": 2, "daysPerWeek": 2, "status": "planned"},
  "weekly_plans": [
    {"weekNumber": 1, "learningObjectives": "HTTP basics"},
    {"weekNumber": 2, "learningObjectives": "Persistence"}
  ],
  "tasks": [
    {"weekNumber": 1, "title": "Hello server", "contentType": "learning", "description": "Write main.go serving /hello with net/http", "expectedDeliverables": "main.go", "estimatedHours": 2, "difficulty": "easy"},
    {"weekNumber": 1, "title": "JSON echo", "contentType": "coding", "description": "Add /echo returning the posted JSON", "expectedDeliverables": "echo.go", "estimatedHours": 3, "difficulty": "easy"},
    {"weekNumber": 2, "title": "SQLite notes", "contentType": "learning", "description": "Create notes table with database/sql", "expectedDeliverables": ["db.go", "schema.sql"], "estimatedHours": "4", "difficulty": "medium"}
  ]
}`

func TestValidatePlan_AcceptsTasksWithWeekAndDescription(t *testing.T) {
	obj, err := ValidatePlan(validPlan)
	require.NoError(t, err)
	require.Len(t, obj["tasks"], 3)
}

func TestValidatePlan_FencedInput(t *testing.T) {
	_, err := ValidatePlan("```json\n" + validPlan + "\n```")
	require.NoError(t, err)
}

func TestValidatePlan_LenientTopLevel(t *testing.T) {
	// no internship / weekly_plans / tasks keys: accepted by the validator
	_, err := ValidatePlan(`{}`)
	require.NoError(t, err)
	_, err = ValidatePlan(`{"tasks":[{"weekNumber":1,"description":"write code"}]}`)
	require.NoError(t, err)
}

func TestValidatePlan_Rejections(t *testing.T) {
	cases := map[string]string{
		"missing weekNumber": `{"tasks":[{"description":"write code"}]}`,
		"missing description": `{"tasks":[{"weekNumber":1}]}`,
		"blank description":  `{"tasks":[{"weekNumber":1,"description":"  "}]}`,
		"non-string desc":    `{"tasks":[{"weekNumber":1,"description":5}]}`,
		"tasks not array":    `{"tasks":{"weekNumber":1}}`,
		"task not object":    `{"tasks":["write code"]}`,
		"second task bad":    `{"tasks":[{"weekNumber":1,"description":"ok"},{"description":"no week"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidatePlan(raw)
			var sv *SchemaViolationError
			require.True(t, errors.As(err, &sv), "got %v", err)
		})
	}
}

func TestDecodePlan_Typed(t *testing.T) {
	p, err := DecodePlan(validPlan)
	require.NoError(t, err)
	require.Equal(t, "Go APIs", p.Internship.Title)
	require.Equal(t, 2, p.Internship.DurationWeeks)
	require.Len(t, p.WeeklyPlans, 2)
	require.Len(t, p.Tasks, 3)
	require.Equal(t, 4.0, p.Tasks[2].EstimatedHours)
	require.Equal(t, []any{"db.go", "schema.sql"}, p.Tasks[2].ExpectedDeliverables)
}

func TestDecodePlan_DefaultsStatus(t *testing.T) {
	p, err := DecodePlan(`{"internship":{"title":"x"},"weekly_plans":[],"tasks":[]}`)
	require.NoError(t, err)
	require.Equal(t, "planned", p.Internship.Status)
}

func TestDecodePlan_RepeatedWeekKept(t *testing.T) {
	p, err := DecodePlan(`{"internship":{},"weekly_plans":[{"weekNumber":1,"learningObjectives":"a"},{"weekNumber":1,"learningObjectives":"b"}],"tasks":[]}`)
	require.NoError(t, err)
	require.Len(t, p.WeeklyPlans, 2)
	require.Equal(t, "b", p.WeeklyPlans[1].LearningObjectives)
}

func TestDecodePlan_MappingErrors(t *testing.T) {
	cases := map[string]string{
		"unknown week":       `{"internship":{},"weekly_plans":[{"weekNumber":1,"learningObjectives":"x"}],"tasks":[{"weekNumber":3,"title":"t","contentType":"coding","description":"d","expectedDeliverables":"e","estimatedHours":1,"difficulty":"easy"}]}`,
		"missing internship": `{"weekly_plans":[],"tasks":[]}`,
		"missing weeks":      `{"internship":{},"tasks":[]}`,
		"missing tasks":      `{"internship":{},"weekly_plans":[]}`,
		"fractional week":    `{"internship":{},"weekly_plans":[{"weekNumber":1.5,"learningObjectives":"a"}],"tasks":[]}`,
		"missing task title": `{"internship":{},"weekly_plans":[{"weekNumber":1,"learningObjectives":"x"}],"tasks":[{"weekNumber":1,"contentType":"coding","description":"d","expectedDeliverables":"e","estimatedHours":1,"difficulty":"easy"}]}`,
		"non-numeric hours":  `{"internship":{},"weekly_plans":[{"weekNumber":1,"learningObjectives":"x"}],"tasks":[{"weekNumber":1,"title":"t","contentType":"coding","description":"d","expectedDeliverables":"e","estimatedHours":"lots","difficulty":"easy"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePlan(raw)
			var me *MappingError
			require.True(t, errors.As(err, &me), "got %v", err)
			require.Equal(t, StageMapping, Stage(err))
		})
	}
}
