package clibind

import (
	"strconv"
	"strings"
	"time"
)

// A Validator converts one raw command-line token into one typed value, or
// rejects it. Validators hold only their own constraints and never mutate
// shared state, so a single instance is safe to reuse across options and
// across concurrent parse passes.
type Validator interface {
	Validate(raw string) (interface{}, error)
}

// StrValidator accepts anything. The default for options with no TypeSpec.
type StrValidator struct{}

func (StrValidator) Validate(raw string) (interface{}, error) {
	return raw, nil
}

// BoolValidator recognizes, case insensitively: t, true, y, yes, on, 1 for
// true and f, false, n, no, off, 0 for false.
type BoolValidator struct{}

func (BoolValidator) Validate(raw string) (interface{}, error) {
	switch strings.ToLower(raw) {
	case "t", "true", "y", "yes", "on", "1":
		return true, nil
	case "f", "false", "n", "no", "off", "0":
		return false, nil
	}
	return nil, validationErrorf(InvalidBool, raw, "%q is not a valid boolean", raw)
}

// IntValidator converts to int64.
type IntValidator struct{}

func (IntValidator) Validate(raw string) (interface{}, error) {
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validationErrorf(InvalidNumber, raw, "%q is not a valid integer", raw)
	}
	return i, nil
}

// FloatValidator converts to float64.
type FloatValidator struct{}

func (FloatValidator) Validate(raw string) (interface{}, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, validationErrorf(InvalidNumber, raw, "%q is not a valid number", raw)
	}
	return f, nil
}

// TypeSpec describes the value an option accepts: a prototype value
// establishing the base type, plus optional constraints. Of may instead be
// an explicit Validator, in which case no constraints are allowed and it is
// returned as-is.
//
// Recognized prototypes: nil and "" (string), false (bool), int values,
// float64 values, time.Time (Formats applies), Path, Bytes.
type TypeSpec struct {
	Of      interface{}
	Choices []interface{}
	Min     interface{}
	Max     interface{}
	Formats []string
}

func (me TypeSpec) constrained() bool {
	return len(me.Choices) != 0 || me.Min != nil || me.Max != nil || len(me.Formats) != 0
}

// ResolveValidator maps a TypeSpec to its Validator. Dispatch is total over
// the closed descriptor set: anything it does not recognize is a SetupError
// of kind UnsupportedType, surfaced at command build time rather than during
// a parse. The same spec always yields a behaviorally identical Validator.
func ResolveValidator(spec TypeSpec) (Validator, error) {
	if v, ok := spec.Of.(Validator); ok {
		if spec.constrained() {
			return nil, setupErrorf("explicit validator cannot be combined with constraints")
		}
		return v, nil
	}
	if len(spec.Choices) != 0 && (spec.Min != nil || spec.Max != nil) {
		return nil, setupErrorf("choices cannot be combined with bounds")
	}
	switch of := spec.Of.(type) {
	case nil, string:
		if spec.Min != nil || spec.Max != nil || len(spec.Formats) != 0 {
			return nil, unsupportedTypeErrorf("string options take no bounds or formats")
		}
		if len(spec.Choices) != 0 {
			choices, err := stringChoices(spec.Choices)
			if err != nil {
				return nil, err
			}
			return StrChoices(choices...)
		}
		return StrValidator{}, nil
	case bool:
		if spec.constrained() {
			return nil, unsupportedTypeErrorf("bool options take no constraints")
		}
		return BoolValidator{}, nil
	case int, int64:
		if len(spec.Formats) != 0 {
			return nil, unsupportedTypeErrorf("int options take no formats")
		}
		if len(spec.Choices) != 0 {
			choices, err := intChoices(spec.Choices)
			if err != nil {
				return nil, err
			}
			return IntChoices(choices...)
		}
		if spec.Min != nil || spec.Max != nil {
			return IntRange(spec.Min, spec.Max)
		}
		return IntValidator{}, nil
	case float64:
		if len(spec.Formats) != 0 {
			return nil, unsupportedTypeErrorf("float options take no formats")
		}
		if len(spec.Choices) != 0 {
			choices, err := floatChoices(spec.Choices)
			if err != nil {
				return nil, err
			}
			return FloatChoices(choices...)
		}
		if spec.Min != nil || spec.Max != nil {
			return FloatRange(spec.Min, spec.Max)
		}
		return FloatValidator{}, nil
	case time.Time:
		if len(spec.Choices) != 0 || spec.Min != nil || spec.Max != nil {
			return nil, unsupportedTypeErrorf("date-time options take only formats")
		}
		return NewDateTimeValidator(spec.Formats...), nil
	case Path:
		if spec.constrained() {
			return nil, unsupportedTypeErrorf("path options take no constraints; construct a PathValidator directly")
		}
		return &PathValidator{}, nil
	case Bytes:
		if spec.constrained() {
			return nil, unsupportedTypeErrorf("byte quantity options take no constraints")
		}
		return BytesValidator{}, nil
	default:
		return nil, unsupportedTypeErrorf("unsupported option type %T", of)
	}
}

func stringChoices(in []interface{}) (out []string, err error) {
	for _, c := range in {
		s, ok := c.(string)
		if !ok {
			return nil, unsupportedTypeErrorf("string choice has type %T", c)
		}
		out = append(out, s)
	}
	return
}

func intChoices(in []interface{}) (out []int64, err error) {
	for _, c := range in {
		i, err := toInt64(c)
		if err != nil {
			return nil, unsupportedTypeErrorf("int choice has type %T", c)
		}
		out = append(out, i)
	}
	return out, nil
}

func floatChoices(in []interface{}) (out []float64, err error) {
	for _, c := range in {
		f, ok := c.(float64)
		if !ok {
			return nil, unsupportedTypeErrorf("float choice has type %T", c)
		}
		out = append(out, f)
	}
	return out, nil
}

func toInt64(v interface{}) (int64, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	}
	return 0, unsupportedTypeErrorf("expected int, got %T", v)
}
