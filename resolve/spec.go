package resolve

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pipekit/errors"
)

// Spec is a YAML-loadable pipeline declaration.
//
//	name: scale-and-filter
//	config:
//	  threshold: 5
//	steps:
//	  - {mode: fit}
//	  - [prep/scale]
//	  - [math/multiply-by, ctx/threshold]
type Spec struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name" validate:"required"`
	// Config supplies values for ctx-qualified parameter references.
	Config map[string]any `yaml:"config,omitempty"`
	// Steps are the declaration lines, in execution order.
	Steps []Line `yaml:"steps" validate:"required,min=1"`
}

// Lines returns the declaration lines as the resolver's input values.
func (s *Spec) Lines() []any {
	lines := make([]any, len(s.Steps))
	for i, l := range s.Steps {
		lines[i] = l.Value()
	}
	return lines
}

// Line is one declaration line: a scalar symbolic reference, a mapping
// injection, or a call-form sequence. Exactly one of the three is set.
type Line struct {
	Ref    string
	Inject map[string]any
	Call   []any
}

// Value returns the line in the shape the resolver consumes.
func (l Line) Value() any {
	switch {
	case l.Inject != nil:
		return l.Inject
	case l.Call != nil:
		return l.Call
	default:
		return Ref(l.Ref)
	}
}

// UnmarshalYAML maps YAML node kinds onto the three line forms.
func (l *Line) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&l.Ref)
	case yaml.MappingNode:
		return node.Decode(&l.Inject)
	case yaml.SequenceNode:
		return node.Decode(&l.Call)
	default:
		return fmt.Errorf("line %d: step must be a scalar, mapping or sequence", node.Line)
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use yaml tag names for field names in error messages.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks a declaration's structure: required fields plus the
// one-form-per-line rule.
func (s *Spec) Validate() error {
	if err := getValidator().Struct(s); err != nil {
		return errors.InvalidDeclaration(s.Name, err)
	}
	for i, l := range s.Steps {
		set := 0
		if l.Ref != "" {
			set++
		}
		if l.Inject != nil {
			set++
		}
		if l.Call != nil {
			set++
		}
		if set != 1 {
			return errors.InvalidDeclaration(s.Name,
				fmt.Errorf("step %d must be exactly one of reference, injection or call form", i))
		}
	}
	return nil
}
