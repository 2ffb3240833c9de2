package clibind

import (
	"github.com/dustin/go-humanize"
)

// A nice builtin type for byte quantities given in human readable form, for
// example 100GB. See https://godoc.org/github.com/dustin/go-humanize.
type Bytes int64

func (me Bytes) Int64() int64 {
	return int64(me)
}

func (me Bytes) String() string {
	return humanize.Bytes(uint64(me))
}

// BytesValidator converts human readable byte quantities to Bytes.
type BytesValidator struct{}

func (BytesValidator) Validate(raw string) (interface{}, error) {
	ui64, err := humanize.ParseBytes(raw)
	if err != nil {
		return nil, validationErrorf(InvalidNumber, raw, "%q is not a valid byte quantity", raw)
	}
	return Bytes(ui64), nil
}
