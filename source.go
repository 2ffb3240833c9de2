package clibind

import "fmt"

// SourceType is the origin kind of a raw value, not its content.
type SourceType int

const (
	// Baked into the driver itself: defaults, flags with no external token.
	InternalSource SourceType = iota
	// A command-line option occurrence.
	OptionSource
	// A positional argument occurrence.
	PositionalSource
	// An environment variable, read through an EnvLookup.
	EnvSource
)

func (st SourceType) String() string {
	switch st {
	case InternalSource:
		return "internal"
	case OptionSource:
		return "option"
	case PositionalSource:
		return "positional"
	case EnvSource:
		return "environment"
	}
	return fmt.Sprintf("SourceType(%d)", int(st))
}

// Source describes where a raw value physically originates, independent of
// what it becomes. Name is the option or environment variable spelling,
// Index the positional ordinal.
type Source struct {
	Type  SourceType
	Name  string
	Index int
}

func (me Source) describe() string {
	switch me.Type {
	case PositionalSource:
		return fmt.Sprintf("argument %q", me.Name)
	case EnvSource:
		return fmt.Sprintf("environment variable %q", me.Name)
	case OptionSource:
		return fmt.Sprintf("option %q", me.Name)
	}
	return me.Name
}

// EnvLookup resolves an environment variable for drivers with an env var
// configured. os.LookupEnv satisfies it; tests substitute their own.
type EnvLookup func(name string) (value string, ok bool)

// EnvMap is an EnvLookup over a fixed map, for tests and embedding hosts.
func EnvMap(m map[string]string) EnvLookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}
