package clibind

import (
	"time"
)

// The RFC 3339 ladder tried when no formats are given: full timestamps with
// and without fractional seconds and zone offsets, down to a bare date.
var defaultDateTimeFormats = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateTimeValidator converts to time.Time by trying its formats in declared
// order; the first that parses wins. The zero value uses the default formats.
type DateTimeValidator struct {
	formats []string
}

func NewDateTimeValidator(formats ...string) *DateTimeValidator {
	return &DateTimeValidator{formats: formats}
}

func (me *DateTimeValidator) Validate(raw string) (interface{}, error) {
	formats := me.effectiveFormats()
	for _, f := range formats {
		if t, err := time.Parse(f, raw); err == nil {
			return t, nil
		}
	}
	if len(formats) < 2 {
		return nil, validationErrorf(InvalidDateTime, raw,
			"%q does not match date-time format %q", raw, formats[0])
	}
	return nil, validationErrorf(InvalidDateTime, raw,
		"%q does not match any of date-time formats %s", raw, formatQuoted(formats))
}

func (me *DateTimeValidator) effectiveFormats() []string {
	if len(me.formats) == 0 {
		return defaultDateTimeFormats
	}
	return me.formats
}

func formatQuoted(ss []string) string {
	return formatValues(anySlice(ss))
}

// Formats returns the accepted formats in trial order.
func (me *DateTimeValidator) Formats() []string {
	return append([]string(nil), me.effectiveFormats()...)
}
