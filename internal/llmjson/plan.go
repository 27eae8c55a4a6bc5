package llmjson

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Plan is the typed form of a generated internship plan.
type Plan struct {
	Internship  PlanInternship
	WeeklyPlans []PlanWeek
	Tasks       []PlanTask

	// Raw is the validated object exactly as the model produced it.
	Raw map[string]any
}

type PlanInternship struct {
	Domain        string
	Title         string
	DurationWeeks int
	DaysPerWeek   int
	Status        string
}

type PlanWeek struct {
	WeekNumber         int
	LearningObjectives any
}

type PlanTask struct {
	WeekNumber           int
	Title                string
	ContentType          string
	Description          string
	ExpectedDeliverables any
	EstimatedHours       float64
	Difficulty           string
}

// ValidatePlan parses raw model output and checks every entry of "tasks"
// (when present) for a week number and a non-blank description. The parsed
// object is returned unchanged.
//
// Top-level "internship" and "weekly_plans" are not checked
// here; DecodePlan reports them as mapping errors.
func ValidatePlan(raw string) (map[string]any, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	v, ok := obj["tasks"]
	if !ok {
		return obj, nil
	}
	tasks, ok := v.([]any)
	if !ok {
		return nil, &SchemaViolationError{Field: "tasks", Reason: "must be an array"}
	}
	for i, it := range tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		task, ok := it.(map[string]any)
		if !ok {
			return nil, &SchemaViolationError{Field: field, Reason: "must be an object"}
		}
		if _, ok := task["weekNumber"]; !ok {
			return nil, &SchemaViolationError{Field: field + ".weekNumber", Reason: "is missing"}
		}
		desc, _ := task["description"].(string)
		if strings.TrimSpace(desc) == "" {
			return nil, &SchemaViolationError{Field: field + ".description", Reason: "must be a non-empty string"}
		}
	}
	return obj, nil
}

// DecodePlan validates raw and maps it to a Plan. Every task's week number
// must refer to one of the weekly plans.
func DecodePlan(raw string) (*Plan, error) {
	obj, err := ValidatePlan(raw)
	if err != nil {
		return nil, err
	}
	return planFromObject(obj)
}

func planFromObject(obj map[string]any) (*Plan, error) {
	p := &Plan{Raw: obj}

	in, ok := obj["internship"].(map[string]any)
	if !ok {
		return nil, &MappingError{Path: "internship", Reason: "must be an object"}
	}
	p.Internship = PlanInternship{
		Domain: optString(in, "domain"),
		Title:  optString(in, "title"),
		Status: optString(in, "status"),
	}
	if p.Internship.Status == "" {
		p.Internship.Status = "planned"
	}
	var err error
	if p.Internship.DurationWeeks, err = optInt(in, "durationWeeks"); err != nil {
		return nil, &MappingError{Path: "internship.durationWeeks", Reason: err.Error()}
	}
	if p.Internship.DaysPerWeek, err = optInt(in, "daysPerWeek"); err != nil {
		return nil, &MappingError{Path: "internship.daysPerWeek", Reason: err.Error()}
	}

	weeks, ok := obj["weekly_plans"].([]any)
	if !ok {
		return nil, &MappingError{Path: "weekly_plans", Reason: "must be an array"}
	}
	seen := make(map[int]bool, len(weeks))
	for i, it := range weeks {
		path := fmt.Sprintf("weekly_plans[%d]", i)
		w, ok := it.(map[string]any)
		if !ok {
			return nil, &MappingError{Path: path, Reason: "must be an object"}
		}
		num, err := requiredInt(w, "weekNumber")
		if err != nil {
			return nil, &MappingError{Path: path + ".weekNumber", Reason: err.Error()}
		}
		// a repeated week number is kept; tasks attach to its last entry
		seen[num] = true
		objectives, ok := w["learningObjectives"]
		if !ok {
			return nil, &MappingError{Path: path + ".learningObjectives", Reason: "is missing"}
		}
		p.WeeklyPlans = append(p.WeeklyPlans, PlanWeek{WeekNumber: num, LearningObjectives: objectives})
	}

	tasks, ok := obj["tasks"].([]any)
	if !ok {
		return nil, &MappingError{Path: "tasks", Reason: "must be an array"}
	}
	for i, it := range tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		t := it.(map[string]any) // shape checked by ValidatePlan
		num, err := requiredInt(t, "weekNumber")
		if err != nil {
			return nil, &MappingError{Path: path + ".weekNumber", Reason: err.Error()}
		}
		if !seen[num] {
			return nil, &MappingError{Path: path + ".weekNumber", Reason: fmt.Sprintf("no weekly plan for week %d", num)}
		}
		task := PlanTask{WeekNumber: num, Description: t["description"].(string)}
		for _, f := range []struct {
			key string
			dst *string
		}{
			{"title", &task.Title},
			{"contentType", &task.ContentType},
			{"difficulty", &task.Difficulty},
		} {
			s, err := requiredString(t, f.key)
			if err != nil {
				return nil, &MappingError{Path: path + "." + f.key, Reason: err.Error()}
			}
			*f.dst = s
		}
		deliverables, ok := t["expectedDeliverables"]
		if !ok {
			return nil, &MappingError{Path: path + ".expectedDeliverables", Reason: "is missing"}
		}
		task.ExpectedDeliverables = deliverables
		hours, err := requiredNumber(t, "estimatedHours")
		if err != nil {
			return nil, &MappingError{Path: path + ".estimatedHours", Reason: err.Error()}
		}
		task.EstimatedHours = hours
		p.Tasks = append(p.Tasks, task)
	}
	return p, nil
}

func optString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func requiredString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("must be a string")
	}
	return s, nil
}

func requiredNumber(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("is missing")
	}
	return toNumber(v)
}

func requiredInt(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("is missing")
	}
	return toInt(v)
}

func optInt(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, nil
	}
	return toInt(v)
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number")
		}
		return f, nil
	}
	return 0, fmt.Errorf("must be a number")
}

func toInt(v any) (int, error) {
	f, err := toNumber(v)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be an integer")
	}
	return int(f), nil
}
