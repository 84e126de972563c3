package match

import "fmt"

// FieldKind classifies a single-field validation failure.
type FieldKind string

const (
	FieldMissing     FieldKind = "missing_required_field"
	FieldCoercion    FieldKind = "type_coercion_failure"
	FieldEnumeration FieldKind = "enumeration_violation"
)

// FieldError reports one field that failed validation. Path is the
// dotted location inside the raw payload and Raw carries the offending
// input value for diagnosability.
type FieldError struct {
	Kind FieldKind
	Path string
	Raw  any
}

func (e *FieldError) Error() string {
	switch e.Kind {
	case FieldMissing:
		return fmt.Sprintf("missing required field %q", e.Path)
	case FieldEnumeration:
		return fmt.Sprintf("field %q: value %v is not in the allowed set", e.Path, e.Raw)
	default:
		return fmt.Sprintf("field %q: cannot coerce value %v", e.Path, e.Raw)
	}
}

func missingField(path string) *FieldError {
	return &FieldError{Kind: FieldMissing, Path: path}
}

func coercionError(path string, raw any) *FieldError {
	return &FieldError{Kind: FieldCoercion, Path: path, Raw: raw}
}

func enumError(path string, raw any) *FieldError {
	return &FieldError{Kind: FieldEnumeration, Path: path, Raw: raw}
}

// StructuralError reports a payload whose shape violates the schema,
// e.g. a match that does not carry exactly two clubs.
type StructuralError struct {
	Path   string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func structuralError(path, format string, args ...any) *StructuralError {
	return &StructuralError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports a cross-field invariant violation, such as
// mirrored scores that disagree. No reconciliation is attempted.
type ConsistencyError struct {
	MatchID string
	Reason  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("match %s: %s", e.MatchID, e.Reason)
}

func consistencyError(matchID, format string, args ...any) *ConsistencyError {
	return &ConsistencyError{MatchID: matchID, Reason: fmt.Sprintf(format, args...)}
}
