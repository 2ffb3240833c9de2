package clibind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeedCmd() *Command {
	cmd := NewCommand("bt")
	must(cmd.AddOption("seed", OnFlag(), "-s", "--seed"))
	must(cmd.AddOption("upload", OffFlag(), "--no-upload"))
	must(cmd.AddOption("listen", Scalar(StrValidator{}, ":6881"), "--listen-addr"))
	must(cmd.AddOption("level", Scalar(must(IntRange(0, 9)), int64(3)), "-l", "--level"))
	must(cmd.AddOption("peer", List(StrValidator{}), "-p", "--peer"))
	must(cmd.AddArgument("torrent", Scalar(StrValidator{}, nil)))
	return cmd
}

func TestParseBasic(t *testing.T) {
	RunCases(t, []parseCase{
		noErrorCase(map[string]interface{}{
			"seed": true, "upload": true, "listen": ":6881", "level": int64(3), "torrent": "a.torrent",
		}, "-s", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"seed": false, "upload": false, "torrent": "a.torrent",
		}, "--no-upload", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"listen": "1.2.3.4:80", "torrent": "a.torrent",
		}, "--listen-addr=1.2.3.4:80", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"listen": "1.2.3.4:80", "torrent": "a.torrent",
		}, "--listen-addr", "1.2.3.4:80", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"level": int64(7), "torrent": "a.torrent",
		}, "-l", "7", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"level": int64(7), "torrent": "a.torrent",
		}, "-l7", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"seed": true, "level": int64(7), "torrent": "a.torrent",
		}, "-sl7", "a.torrent"),
		noErrorCase(map[string]interface{}{
			"peer": []interface{}{"a", "b"}, "torrent": "x",
		}, "-p", "a", "--peer", "b", "x"),
		noErrorCase(map[string]interface{}{
			"torrent": "--weird", "seed": true,
		}, "-s", "--", "--weird"),
		errorCase(`missing argument: "TORRENT"`, "-s"),
		errorCase(`excess argument: "extra"`, "a.torrent", "extra"),
		errorCase(`unknown option: "--nope"`, "--nope", "a.torrent"),
		errorCase(`unknown option: "-x"`, "-sx", "a.torrent"),
		errorCase(`option "--listen-addr" requires a value`, "a.torrent", "--listen-addr"),
		errorCase(`option "--seed" does not take a value`, "--seed=yes", "a.torrent"),
		errorCase(`option "-l" requires a value`, "a.torrent", "-l"),
		errorCase(`option "--level": "x" is not a valid integer`, "-l", "x", "a.torrent"),
		errorCase(`option "--level": "99" must be at most 9`, "--level=99", "a.torrent"),
		errorCase(`option "--level": given more than once`, "-l1", "-l2", "a.torrent"),
	}, newSeedCmd)
}

func TestParseDuplicateScalarKind(t *testing.T) {
	_, err := newSeedCmd().Parse([]string{"-l1", "-l2", "a.torrent"}, nil)
	assert.True(t, IsKind(err, DuplicateOption))
}

func TestParseRepeatableArgument(t *testing.T) {
	newCmd := func() *Command {
		cmd := NewCommand("cat")
		must(cmd.AddOption("number", OnFlag(), "-n"))
		must(cmd.AddArgument("file", List(StrValidator{})))
		return cmd
	}
	res, err := newCmd().Parse([]string{"a", "-n", "b", "c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", "c"}, res.Values("file"))
	assert.True(t, res.Bool("number"))
	assert.Equal(t, 3, res.Count("file"))

	// Required by default: zero occurrences is a user error.
	_, err = newCmd().Parse(nil, nil)
	assert.EqualError(t, err, `missing argument: "FILE"`)
}

func TestParseOptionalArgument(t *testing.T) {
	cmd := NewCommand("x")
	a := must(cmd.AddArgument("name", Scalar(StrValidator{}, "anon")))
	a.Optional()
	res, err := cmd.Parse(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "anon", res.String("name"))
}

func TestParseRequiredOption(t *testing.T) {
	newCmd := func() *Command {
		cmd := NewCommand("x")
		must(cmd.AddOption("token", Scalar(StrValidator{}, nil), "--token")).
			Required().Env("X_TOKEN")
		return cmd
	}
	_, err := newCmd().Parse(nil, nil)
	assert.EqualError(t, err, `missing option: "--token"`)

	// The environment satisfies a required option.
	res, err := newCmd().Parse(nil, EnvMap(map[string]string{"X_TOKEN": "tk"}))
	require.NoError(t, err)
	assert.Equal(t, "tk", res.String("token"))
	assert.False(t, res.Present("token"))
}

func TestHelpWinsOverValidationFailure(t *testing.T) {
	cmd := newSeedCmd()
	must(cmd.AddOption("help", Help("the help\n"), "-h", "--help"))
	res, err := cmd.Parse([]string{"--level", "banana", "-h"}, nil)
	require.NoError(t, err)
	msg, ok := res.Halted()
	assert.True(t, ok)
	assert.Equal(t, "the help\n", msg)

	// Help also beats a missing required argument.
	res, err = cmd.Parse([]string{"-h"}, nil)
	require.NoError(t, err)
	_, ok = res.Halted()
	assert.True(t, ok)
}

func TestHelpBeatsLaterTokenizerError(t *testing.T) {
	newCmd := func() *Command {
		cmd := newSeedCmd()
		must(cmd.AddOption("help", Help("the help\n"), "-h", "--help"))
		return cmd
	}
	res, err := newCmd().Parse([]string{"--help", "--nope"}, nil)
	require.NoError(t, err)
	msg, ok := res.Halted()
	assert.True(t, ok)
	assert.Equal(t, "the help\n", msg)

	// A bad token before help is still an error.
	_, err = newCmd().Parse([]string{"--nope", "--help"}, nil)
	assert.EqualError(t, err, `unknown option: "--nope"`)
}

func TestSubcommands(t *testing.T) {
	newCmd := func() *Command {
		cmd := NewCommand("svc")
		must(cmd.AddOption("verbose", CountFlag(), "-v"))
		start := must(cmd.AddCommand("start"))
		must(start.AddOption("wait", OnFlag(), "--wait"))
		must(start.AddArgument("unit", Scalar(StrValidator{}, nil)))
		must(cmd.AddCommand("stop"))
		return cmd
	}
	res, err := newCmd().Parse([]string{"-vv", "start", "--wait", "web"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Value("verbose"))
	leaf := res.Leaf()
	assert.Equal(t, "start", leaf.Command().name)
	assert.True(t, leaf.Bool("wait"))
	assert.Equal(t, "web", leaf.String("unit"))

	_, err = newCmd().Parse([]string{"restart"}, nil)
	assert.EqualError(t, err, `unknown command: "restart"`)
}

func TestEnvPrecedenceThroughParse(t *testing.T) {
	newCmd := func() *Command {
		cmd := NewCommand("x")
		must(cmd.AddOption("level", Scalar(IntValidator{}, int64(1)), "--level")).Env("X_LEVEL")
		return cmd
	}
	env := EnvMap(map[string]string{"X_LEVEL": "5"})
	res, err := newCmd().Parse(nil, env)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Int("level"))

	res, err = newCmd().Parse([]string{"--level=8"}, env)
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.Int("level"))

	_, err = newCmd().Parse(nil, EnvMap(map[string]string{"X_LEVEL": "nope"}))
	require.Error(t, err)
	assert.True(t, IsKind(err, InvalidNumber))
	assert.Contains(t, err.Error(), "X_LEVEL")
}

func TestSetupErrors(t *testing.T) {
	cmd := NewCommand("x")
	_, err := cmd.AddOption("a", OnFlag())
	assert.Error(t, err)
	_, err = cmd.AddOption("b", OnFlag(), "b")
	assert.EqualError(t, err, `option decl "b" does not start with a prefix`)
	_, err = cmd.AddOption("c", OnFlag(), "--c")
	assert.EqualError(t, err, `long option "--c" is too short`)
	_, err = cmd.AddOption("d", OnFlag(), "-dd")
	assert.EqualError(t, err, `short option "-dd" is too long`)
	must(cmd.AddOption("e", OnFlag(), "-e"))
	_, err = cmd.AddOption("f", OnFlag(), "-e")
	assert.EqualError(t, err, `option "-e" declared more than once`)
	_, err = cmd.AddArgument("g", OnFlag())
	assert.Error(t, err)
	must(cmd.AddArgument("rest", List(StrValidator{})))
	_, err = cmd.AddArgument("after", Scalar(StrValidator{}, nil))
	assert.EqualError(t, err, `argument "after" cannot follow a repeatable argument`)
	_, err = cmd.AddCommand("sub")
	assert.EqualError(t, err, "command cannot have both subcommands and arguments")
}

func TestReader(t *testing.T) {
	r := newReader([]string{"a", "b"})
	assert.False(t, r.eof())
	assert.Equal(t, "a", r.get())
	r.put()
	assert.Equal(t, "a", r.get())
	assert.Equal(t, "b", r.get())
	assert.True(t, r.eof())
	assert.Equal(t, []string{}, r.rest())
	assert.Panics(t, func() { r.get() })
}
