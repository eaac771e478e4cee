package profile

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStep        = errors.New("unknown step")
	ErrMalformedPatch     = errors.New("malformed patch")
	ErrInvalidOption      = errors.New("value is not a valid option")
	ErrDuplicateSkill     = errors.New("skill already exists")
	ErrEmptySkill         = errors.New("skill name is required")
	ErrInvalidProficiency = errors.New("proficiency must be between 1 and 5")
	ErrSkillIndex         = errors.New("skill index out of range")
	ErrUnknownSkillField  = errors.New("unknown skill field")
	ErrInvalidSkillValue  = errors.New("invalid skill field value")
)

// OptionError reports an enumerated field holding a value outside its option set.
type OptionError struct {
	Field string
	Value string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid option", e.Field, e.Value)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOption }
