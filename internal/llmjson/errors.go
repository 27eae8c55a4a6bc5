package llmjson

import (
	"errors"
	"fmt"
)

// Stage names used in error responses and metrics.
const (
	StageMalformedJSON   = "malformed_json"
	StageSchemaViolation = "schema_violation"
	StageMapping         = "mapping"
)

// MalformedJSONError reports model output that is empty or not valid JSON.
type MalformedJSONError struct {
	Raw string
	Err error
}

func (e *MalformedJSONError) Error() string {
	if e.Err == nil {
		return "model output is empty"
	}
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// SchemaViolationError reports parsed output that does not match the
// expected shape.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	if e.Field == "" {
		return "model output schema violation: " + e.Reason
	}
	return fmt.Sprintf("model output field %q %s", e.Field, e.Reason)
}

// MappingError reports validated plan output that cannot be turned into
// documents, e.g. a task pointing at a week that has no weekly plan.
type MappingError struct {
	Path   string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("plan output %s: %s", e.Path, e.Reason)
}

// Stage returns the pipeline stage name of the first output error in err's
// chain, or "" when there is none.
func Stage(err error) string {
	var mj *MalformedJSONError
	if errors.As(err, &mj) {
		return StageMalformedJSON
	}
	var sv *SchemaViolationError
	if errors.As(err, &sv) {
		return StageSchemaViolation
	}
	var me *MappingError
	if errors.As(err, &me) {
		return StageMapping
	}
	return ""
}
