package jnirt

import "fmt"

// Step names the operation a boundary fault happened in.
type Step string

const (
	StepEncode     Step = "encode"
	StepDecode     Step = "decode"
	StepFindClass  Step = "find class"
	StepFieldID    Step = "get static field id"
	StepFieldValue Step = "get static field value"
)

// BoundaryFault is raised, via panic, when generated glue cannot complete a
// call across the Java boundary. Such calls have no error return: a fault
// means the marshaling code or the loaded Java classes do not match what was
// generated, and is never an expected condition.
type BoundaryFault struct {
	// Enum is the name of the enum involved: the Go type for ordinal
	// faults, the Java internal class name for lookup faults.
	Enum string

	// Step is the operation that failed.
	Step Step

	// Value is the offending ordinal or value, if any.
	Value any

	// Field is the static field being resolved, for lookup faults.
	Field string
}

func (f *BoundaryFault) Error() string {
	switch f.Step {
	case StepEncode, StepDecode:
		return fmt.Sprintf("jnirt: %v not expected for %s (%s)", f.Value, f.Enum, f.Step)
	case StepFindClass:
		return fmt.Sprintf("jnirt: FindClass %s failed", f.Enum)
	default:
		return fmt.Sprintf("jnirt: %s failed for item %s of %s", f.Step, f.Field, f.Enum)
	}
}

// NewOrdinalFault reports an ordinal that decodes to no item of enum.
func NewOrdinalFault(enum string, x Int) *BoundaryFault {
	return &BoundaryFault{Enum: enum, Step: StepDecode, Value: x}
}

// NewValueFault reports a value of enum that is not one of its items.
func NewValueFault(enum string, v any) *BoundaryFault {
	return &BoundaryFault{Enum: enum, Step: StepEncode, Value: v}
}
