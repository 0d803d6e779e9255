package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind distinguishes the two validation outcomes.
type ErrorKind int

const (
	// KindStructural means required fields are absent or of the wrong kind.
	KindStructural ErrorKind = iota + 1
	// KindRange means fields are present but outside their documented domain.
	KindRange
)

const (
	MessageInvalidFormat = "Invalid input format"
	MessageInvalidValues = "Invalid input values"
)

var (
	// ErrStructural matches any structural ValidationError via errors.Is.
	ErrStructural = errors.New("invalid input format")
	// ErrRange matches any range ValidationError via errors.Is.
	ErrRange = errors.New("invalid input values")
)

// ValidationError reports every structural or range problem of one input.
// Exactly one of MissingFields / InvalidFields is populated, matching Kind.
type ValidationError struct {
	Kind          ErrorKind
	MissingFields []string
	InvalidFields map[string]string
}

// NewStructuralError builds a structural error for the given fields.
func NewStructuralError(fields []string) *ValidationError {
	return &ValidationError{Kind: KindStructural, MissingFields: fields}
}

// NewRangeError builds a range error from field -> reason.
func NewRangeError(fields map[string]string) *ValidationError {
	return &ValidationError{Kind: KindRange, InvalidFields: fields}
}

// Message is the boundary "error" string for this kind.
func (e *ValidationError) Message() string {
	if e.Kind == KindStructural {
		return MessageInvalidFormat
	}
	return MessageInvalidValues
}

func (e *ValidationError) Error() string {
	if e.Kind == KindStructural {
		return fmt.Sprintf("%s: missing fields %s", MessageInvalidFormat, strings.Join(e.MissingFields, ", "))
	}
	keys := make([]string, 0, len(e.InvalidFields))
	for k := range e.InvalidFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.InvalidFields[k])
	}
	return fmt.Sprintf("%s: %s", MessageInvalidValues, strings.Join(parts, "; "))
}

// Is lets errors.Is match ErrStructural / ErrRange.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrStructural:
		return e.Kind == KindStructural
	case ErrRange:
		return e.Kind == KindRange
	}
	return false
}

// MarshalJSON renders the boundary error bodies:
//
//	{"error":"Invalid input format","missing_fields":[...]}
//	{"error":"Invalid input values","invalid_fields":{...}}
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	if e.Kind == KindStructural {
		fields := e.MissingFields
		if fields == nil {
			fields = []string{}
		}
		return json.Marshal(struct {
			Error         string   `json:"error"`
			MissingFields []string `json:"missing_fields"`
		}{MessageInvalidFormat, fields})
	}
	fields := e.InvalidFields
	if fields == nil {
		fields = map[string]string{}
	}
	return json.Marshal(struct {
		Error         string            `json:"error"`
		InvalidFields map[string]string `json:"invalid_fields"`
	}{MessageInvalidValues, fields})
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
