package loaders

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel causes carried by FieldError
var (
	ErrUnknownType        = errors.New("unknown type")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUndefinedMaterial  = errors.New("material is not defined")
	ErrDuplicateMaterial  = errors.New("duplicate material name")
	ErrConflictingOptions = errors.New("conflicting options")
)

// FieldError is one problem in a scene document, located by its JSON path
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigError lists every problem found while loading a scene document
type ConfigError struct {
	Source   string // File name, or empty when parsed from a reader
	Problems []*FieldError
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&sb, "%s: ", e.Source)
	}
	fmt.Fprintf(&sb, "invalid scene (%d problem", len(e.Problems))
	if len(e.Problems) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(")")
	for _, p := range e.Problems {
		sb.WriteString("\n  ")
		sb.WriteString(p.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual problems to errors.Is and errors.As
func (e *ConfigError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p
	}
	return errs
}

// problems accumulates field errors while a document is built
type problems struct {
	list []*FieldError
}

func (p *problems) add(path string, err error) {
	p.list = append(p.list, &FieldError{Path: path, Err: err})
}

func (p *problems) addf(path string, cause error, format string, args ...any) {
	p.add(path, fmt.Errorf("%w: %s", cause, fmt.Sprintf(format, args...)))
}

func (p *problems) empty() bool {
	return len(p.list) == 0
}
