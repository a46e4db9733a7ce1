package search

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError describes one rejected request parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected parameter of a search request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid search parameters: " + strings.Join(msgs, "; ")
}

// add records a rejection; a second rejection of the same parameter is folded
// into its existing entry so each parameter is listed once.
func (e *ValidationError) add(field, message string) {
	for i := range e.Fields {
		if e.Fields[i].Field == field {
			e.Fields[i].Message += "; " + message
			return
		}
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// sortByParam orders the errors the way the parameters are documented.
func (e *ValidationError) sortByParam() {
	sort.SliceStable(e.Fields, func(i, j int) bool {
		return paramOrder[e.Fields[i].Field] < paramOrder[e.Fields[j].Field]
	})
}

// StoreError wraps a failed provider store read.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
