package clibind

import (
	"fmt"
	"strings"
)

// ChoiceValidator wraps an inner validator and membership-checks the
// converted value against an ordered allowed set. Comparison uses the typed
// value, not the raw token, so "01" matches the int choice 1.
type ChoiceValidator struct {
	inner      Validator
	choices    []interface{}
	ignoreCase bool
	normCase   bool
}

func NewChoiceValidator(inner Validator, choices []interface{}) (*ChoiceValidator, error) {
	if len(choices) == 0 {
		return nil, setupErrorf("choices must be non-empty")
	}
	return &ChoiceValidator{inner: inner, choices: choices}, nil
}

// StrChoices restricts a string option to the given spellings.
func StrChoices(choices ...string) (*ChoiceValidator, error) {
	return NewChoiceValidator(StrValidator{}, anySlice(choices))
}

// StrChoicesFold is StrChoices with case-insensitive matching. With norm,
// the value is remapped to its canonical spelling from the declared set, so
// "ios" validates to "iOS" given choices ["Android", "iOS"].
func StrChoicesFold(norm bool, choices ...string) (*ChoiceValidator, error) {
	v, err := NewChoiceValidator(StrValidator{}, anySlice(choices))
	if err != nil {
		return nil, err
	}
	v.ignoreCase = true
	v.normCase = norm
	return v, nil
}

func IntChoices(choices ...int64) (*ChoiceValidator, error) {
	return NewChoiceValidator(IntValidator{}, anySlice(choices))
}

func FloatChoices(choices ...float64) (*ChoiceValidator, error) {
	return NewChoiceValidator(FloatValidator{}, anySlice(choices))
}

func (me *ChoiceValidator) Validate(raw string) (interface{}, error) {
	v, err := me.inner.Validate(raw)
	if err != nil {
		return nil, err
	}
	if me.ignoreCase {
		s := v.(string)
		for _, c := range me.choices {
			if strings.EqualFold(s, c.(string)) {
				if me.normCase {
					return c, nil
				}
				return s, nil
			}
		}
		return nil, me.notInChoices(raw)
	}
	for _, c := range me.choices {
		if c == v {
			return v, nil
		}
	}
	return nil, me.notInChoices(raw)
}

func (me *ChoiceValidator) notInChoices(raw string) error {
	if len(me.choices) < 2 {
		return validationErrorf(NotInChoices, raw, "%q is not %s", raw, formatValues(me.choices))
	}
	return validationErrorf(NotInChoices, raw, "%q is not one of %s", raw, formatValues(me.choices))
}

func formatValues(values []interface{}) string {
	ss := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ss = append(ss, fmt.Sprintf("%q", s))
		} else {
			ss = append(ss, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(ss, ", ")
}

func anySlice[T any](in []T) (out []interface{}) {
	for _, v := range in {
		out = append(out, v)
	}
	return
}
