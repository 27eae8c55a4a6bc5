package llmjson

import "strings"

// FeedbackKeys are the arrays every feedback object must carry, in the order
// they are checked.
var FeedbackKeys = []string{"strengths", "weaknesses", "improvements", "recommendedNextSteps"}

// Feedback is the typed form of a validated feedback object.
type Feedback struct {
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Improvements         []string `json:"improvements"`
	RecommendedNextSteps []string `json:"recommendedNextSteps"`
}

// ValidateFeedback parses raw model output and checks that each of
// FeedbackKeys is a non-empty array of non-blank strings. The parsed object
// is returned unchanged.
func ValidateFeedback(raw string) (map[string]any, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	for _, key := range FeedbackKeys {
		if _, err := stringList(obj, key); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// DecodeFeedback validates raw and returns the typed feedback.
func DecodeFeedback(raw string) (*Feedback, error) {
	obj, err := ValidateFeedback(raw)
	if err != nil {
		return nil, err
	}
	fb := &Feedback{}
	fb.Strengths, _ = stringList(obj, "strengths")
	fb.Weaknesses, _ = stringList(obj, "weaknesses")
	fb.Improvements, _ = stringList(obj, "improvements")
	fb.RecommendedNextSteps, _ = stringList(obj, "recommendedNextSteps")
	return fb, nil
}

func stringList(obj map[string]any, key string) ([]string, error) {
	v, ok := obj[key]
	if !ok {
		return nil, &SchemaViolationError{Field: key, Reason: "is missing"}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &SchemaViolationError{Field: key, Reason: "must be an array"}
	}
	if len(items) == 0 {
		return nil, &SchemaViolationError{Field: key, Reason: "must be a non-empty array"}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, &SchemaViolationError{Field: key, Reason: "must contain only non-empty strings"}
		}
		out = append(out, s)
	}
	return out, nil
}
