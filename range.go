package clibind

// RangeValidator wraps a numeric validator and enforces optional inclusive
// bounds on the converted value.
type RangeValidator struct {
	inner Validator
	// int64 or float64; nil means unbounded on that side.
	min, max interface{}
}

// IntRange bounds an int option inclusively. Either bound may be nil for
// unbounded; non-nil bounds may be int or int64.
func IntRange(min, max interface{}) (*RangeValidator, error) {
	lo, hi, err := normalizeIntBounds(min, max)
	if err != nil {
		return nil, err
	}
	if lo != nil && hi != nil && lo.(int64) > hi.(int64) {
		return nil, setupErrorf("min must be less than or equal to max")
	}
	return &RangeValidator{inner: IntValidator{}, min: lo, max: hi}, nil
}

// FloatRange bounds a float option inclusively. Either bound may be nil.
func FloatRange(min, max interface{}) (*RangeValidator, error) {
	if min != nil {
		if _, ok := min.(float64); !ok {
			return nil, unsupportedTypeErrorf("expected float64 bound, got %T", min)
		}
	}
	if max != nil {
		if _, ok := max.(float64); !ok {
			return nil, unsupportedTypeErrorf("expected float64 bound, got %T", max)
		}
	}
	if min != nil && max != nil && min.(float64) > max.(float64) {
		return nil, setupErrorf("min must be less than or equal to max")
	}
	return &RangeValidator{inner: FloatValidator{}, min: min, max: max}, nil
}

func normalizeIntBounds(min, max interface{}) (lo, hi interface{}, err error) {
	if min != nil {
		i, err := toInt64(min)
		if err != nil {
			return nil, nil, err
		}
		lo = i
	}
	if max != nil {
		i, err := toInt64(max)
		if err != nil {
			return nil, nil, err
		}
		hi = i
	}
	return
}

func (me *RangeValidator) Validate(raw string) (interface{}, error) {
	v, err := me.inner.Validate(raw)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int64:
		if me.min != nil && v < me.min.(int64) {
			return nil, validationErrorf(OutOfRange, raw, "%q must be at least %v", raw, me.min)
		}
		if me.max != nil && v > me.max.(int64) {
			return nil, validationErrorf(OutOfRange, raw, "%q must be at most %v", raw, me.max)
		}
	case float64:
		if me.min != nil && v < me.min.(float64) {
			return nil, validationErrorf(OutOfRange, raw, "%q must be at least %v", raw, me.min)
		}
		if me.max != nil && v > me.max.(float64) {
			return nil, validationErrorf(OutOfRange, raw, "%q must be at most %v", raw, me.max)
		}
	}
	return v, nil
}
