package clibind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type parseCase struct {
	args     []string
	env      map[string]string
	err      string
	expected map[string]interface{}
}

func noErrorCase(expected map[string]interface{}, args ...string) parseCase {
	return parseCase{args: args, expected: expected}
}

func errorCase(err string, args ...string) parseCase {
	return parseCase{args: args, err: err}
}

func (me parseCase) Run(t *testing.T, newCmd func() *Command) {
	res, err := newCmd().Parse(me.args, EnvMap(me.env))
	if me.err != "" {
		assert.EqualError(t, err, me.err, "%v", me)
		return
	}
	if !assert.NoError(t, err, "%v", me) {
		return
	}
	for id, want := range me.expected {
		assert.EqualValues(t, want, res.Value(id), "%v: %s", me, id)
	}
}

func RunCases(t *testing.T, cases []parseCase, newCmd func() *Command) {
	for _, _case := range cases {
		_case.Run(t, newCmd)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
