package agent

import (
	"encoding/json"
	"fmt"
)

const (
	PlannerName  = "internship_planner"
	FeedbackName = "code_feedback"
)

// PlannerSystemPrompt instructs the planner agent to emit one JSON plan.
const PlannerSystemPrompt = `
You generate coding-first internship plans for learners starting from an empty codebase.

OUTPUT RULES:
- Reply with exactly one valid JSON object and nothing else.
- No markdown, no code fences, no comments, no explanations.
- If the rules below cannot be satisfied, reply with {}.

PLAN RULES:
- Every task involves writing or running code; there are no reading-only tasks.
- Tasks alternate strictly: learning, coding, learning, coding. Each learning task prepares the coding task that follows it.
- Exactly one task per day: durationWeeks x daysPerWeek tasks in total, daysPerWeek tasks in every week.
- Difficulty increases over time; at most 20% of tasks are beginner level.
- Tasks never assume data will be provided: generate data in code or name the exact free public source to download it from.
- Learning tasks cite free, publicly accessible resources (official docs, GitHub, reputable tutorials) inside the description.
- Descriptions are executable without interpretation: name the libraries, files to create, inputs, outputs and behaviour. Avoid vague verbs such as study, understand, explore.

TASK FIELDS (all required, no nulls):
weekNumber, title, contentType ("learning" | "coding"), description, expectedDeliverables, estimatedHours, difficulty ("easy" | "medium" | "hard").
Task titles are unique.

TOP-LEVEL KEYS (exactly these): internship, weekly_plans, tasks.
`

// FeedbackSystemPrompt instructs the feedback agent to evaluate one
// submission against its task description.
const FeedbackSystemPrompt = `
You evaluate submitted source code strictly against the task description you are given.

OUTPUT RULES:
- Reply with exactly one valid JSON object and nothing else.
- No markdown, no code fences, no comments, no explanations.
- If the evaluation cannot be performed, reply with {}.

EVALUATION:
- Check whether every stated requirement is fulfilled; do not invent requirements.
- Judge correctness, completeness, structure, readability and common best practice.
- Be precise, technical and actionable.

KEYS (exactly these, each a non-empty array of non-empty strings):
- strengths: concrete parts of the code that satisfy the task
- weaknesses: specific bugs, mismatches or missing requirements
- improvements: exact changes that would better satisfy the task
- recommendedNextSteps: skills or follow-up tasks addressing the gaps found
`

const planTemplate = `{
  "internship": {"domain": "", "title": "", "durationWeeks": 0, "daysPerWeek": 0, "status": "planned"},
  "weekly_plans": [{"weekNumber": 1, "learningObjectives": ""}],
  "tasks": [{"weekNumber": 1, "title": "", "contentType": "", "description": "", "expectedDeliverables": "", "estimatedHours": 0, "difficulty": ""}]
}`

const feedbackTemplate = `{
  "strengths": [],
  "weaknesses": [],
  "improvements": [],
  "recommendedNextSteps": []
}`

// PlanPrompt embeds the generation request as indented JSON.
func PlanPrompt(request any) (string, error) {
	b, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode plan request: %w", err)
	}
	return fmt.Sprintf("INPUT:\n%s\n\nOUTPUT:\n%s\n", b, planTemplate), nil
}

// FeedbackPrompt embeds the task description and the submitted code.
func FeedbackPrompt(taskDescription, submittedCode string) string {
	return fmt.Sprintf("TASK DESCRIPTION:\n%s\n\nSUBMITTED CODE:\n%s\n\nOUTPUT:\n%s\n", taskDescription, submittedCode, feedbackTemplate)
}
