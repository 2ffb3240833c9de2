package clibind

import (
	"github.com/pkg/errors"
)

// OutcomeKind discriminates what a driver produced for one parse pass.
type OutcomeKind int

const (
	// Nothing bound: a message driver that saw no occurrence.
	OutcomeNone OutcomeKind = iota
	OutcomeValue
	OutcomeValues
	OutcomeHalt
)

// Outcome is the result of resolving one option during one parse pass.
type Outcome struct {
	Kind    OutcomeKind
	Value   interface{}
	Values  []interface{}
	Message string
}

func valueOutcome(v interface{}) Outcome {
	return Outcome{Kind: OutcomeValue, Value: v}
}

func valuesOutcome(vs []interface{}) Outcome {
	return Outcome{Kind: OutcomeValues, Values: vs}
}

func haltOutcome(message string) Outcome {
	return Outcome{Kind: OutcomeHalt, Message: message}
}

// A Driver owns one option's Source and, where applicable, one Validator,
// and turns the occurrences observed during a parse pass into a final
// Outcome. Drivers are immutable once their option table is built and are
// safe to share between concurrent passes: accumulation is local to each
// Resolve call.
//
// The driver set is closed; new kinds are added here, not by embedding from
// outside the package.
type Driver interface {
	// Resolve combines the gathered occurrences, the environment and the
	// driver's internal default into an outcome. Occurrences arrive in
	// command-line order. env may be nil when no environment is available.
	Resolve(occurrences []string, env EnvLookup) (Outcome, error)
	// The raw tokens one occurrence consumes: 1 for value drivers, 0 for
	// flag and message drivers.
	NumValues() int
	Source() Source

	bind(src Source)
	bindEnv(name string)
}

type driverBase struct {
	source Source
	envVar string
}

func (me *driverBase) Source() Source {
	return me.source
}

func (me *driverBase) bind(src Source) {
	me.source = src
}

func (me *driverBase) bindEnv(name string) {
	me.envVar = name
}

// One environment occurrence at most, and only when configured.
func (me *driverBase) envOccurrence(env EnvLookup) (string, bool) {
	if me.envVar == "" || env == nil {
		return "", false
	}
	return env(me.envVar)
}

// ScalarDriver expects at most one occurrence. Precedence is fixed: command
// line beats environment beats the internal default.
type ScalarDriver struct {
	driverBase
	validator Validator
	def       interface{}
}

// Scalar resolves a single occurrence with v. def is the already-typed
// fallback; it is never passed back through the validator, so a bad default
// is a bug in the option table, not a user error.
func Scalar(v Validator, def interface{}) *ScalarDriver {
	return &ScalarDriver{validator: v, def: def}
}

func (me *ScalarDriver) NumValues() int { return 1 }

func (me *ScalarDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	switch len(occurrences) {
	case 0:
	case 1:
		v, err := me.validator.Validate(occurrences[0])
		if err != nil {
			return Outcome{}, err
		}
		return valueOutcome(v), nil
	default:
		return Outcome{}, validationErrorf(DuplicateOption, me.source.Name, "given more than once")
	}
	if raw, ok := me.envOccurrence(env); ok {
		v, err := me.validator.Validate(raw)
		if err != nil {
			return Outcome{}, errors.Wrapf(err, "environment variable %s", me.envVar)
		}
		return valueOutcome(v), nil
	}
	return valueOutcome(me.def), nil
}

// ListDriver accepts any number of occurrences, validating each
// independently and preserving command-line order. One invalid occurrence
// aborts the whole option; no partial results.
type ListDriver struct {
	driverBase
	validator Validator
	def       []interface{}
}

// List accumulates occurrences with v. def is returned when nothing is
// supplied at all; an absent def yields an empty sequence.
func List(v Validator, def ...interface{}) *ListDriver {
	return &ListDriver{validator: v, def: def}
}

func (me *ListDriver) NumValues() int { return 1 }

func (me *ListDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	if len(occurrences) == 0 {
		if raw, ok := me.envOccurrence(env); ok {
			v, err := me.validator.Validate(raw)
			if err != nil {
				return Outcome{}, errors.Wrapf(err, "environment variable %s", me.envVar)
			}
			return valuesOutcome([]interface{}{v}), nil
		}
		return valuesOutcome(me.def), nil
	}
	vs := make([]interface{}, 0, len(occurrences))
	for _, raw := range occurrences {
		v, err := me.validator.Validate(raw)
		if err != nil {
			return Outcome{}, err
		}
		vs = append(vs, v)
	}
	return valuesOutcome(vs), nil
}

// Flag drivers consume no token; presence alone toggles. Repeats are
// idempotent, not an error. An env var set to a true boolean counts as
// presence.

type OnFlagDriver struct {
	driverBase
}

// OnFlag yields true when present, false otherwise.
func OnFlag() *OnFlagDriver {
	return &OnFlagDriver{}
}

func (me *OnFlagDriver) NumValues() int { return 0 }

func (me *OnFlagDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	present, err := me.flagPresent(occurrences, env)
	if err != nil {
		return Outcome{}, err
	}
	return valueOutcome(present), nil
}

type OffFlagDriver struct {
	driverBase
}

// OffFlag yields false when present, true otherwise.
func OffFlag() *OffFlagDriver {
	return &OffFlagDriver{}
}

func (me *OffFlagDriver) NumValues() int { return 0 }

func (me *OffFlagDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	present, err := me.flagPresent(occurrences, env)
	if err != nil {
		return Outcome{}, err
	}
	return valueOutcome(!present), nil
}

func (me *driverBase) flagPresent(occurrences []string, env EnvLookup) (bool, error) {
	if len(occurrences) > 0 {
		return true, nil
	}
	raw, ok := me.envOccurrence(env)
	if !ok {
		return false, nil
	}
	v, err := BoolValidator{}.Validate(raw)
	if err != nil {
		return false, errors.Wrapf(err, "environment variable %s", me.envVar)
	}
	return v.(bool), nil
}

// CountFlagDriver yields how many times its option occurred, for the
// -vvv idiom.
type CountFlagDriver struct {
	driverBase
}

func CountFlag() *CountFlagDriver {
	return &CountFlagDriver{}
}

func (me *CountFlagDriver) NumValues() int { return 0 }

func (me *CountFlagDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	return valueOutcome(len(occurrences)), nil
}

// Message drivers never consume input and never run validators: any
// occurrence short-circuits the pass with a halt carrying the message body
// supplied at construction. The caller prints it and terminates with the
// success status.
type messageDriver struct {
	driverBase
	message string
}

func (me *messageDriver) NumValues() int { return 0 }

func (me *messageDriver) haltMessage() string { return me.message }

func (me *messageDriver) Resolve(occurrences []string, env EnvLookup) (Outcome, error) {
	if len(occurrences) == 0 {
		return Outcome{}, nil
	}
	return haltOutcome(me.message), nil
}

// The resolution loop checks for this before running any other driver, so a
// help request wins over validation failures elsewhere in the pass.
type messageHalter interface {
	haltMessage() string
}

type HelpDriver struct {
	messageDriver
}

// Help halts with the given help text when its option occurs.
func Help(text string) *HelpDriver {
	return &HelpDriver{messageDriver{message: text}}
}

type VersionDriver struct {
	messageDriver
}

// Version halts with the given version string when its option occurs.
func Version(text string) *VersionDriver {
	return &VersionDriver{messageDriver{message: text}}
}
