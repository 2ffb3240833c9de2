package clibind

import (
	"strings"

	"github.com/huandu/xstrings"
)

// Option declares a named command-line option: its long and short spellings,
// the driver that resolves it, and an optional environment fallback.
type Option struct {
	id       string
	longs    []string
	shorts   []byte
	help     string
	envVar   string
	required bool
	driver   Driver
}

// Env names an environment variable consulted when the option is absent
// from the command line. Command line beats environment beats default.
func (me *Option) Env(name string) *Option {
	me.envVar = name
	me.driver.bindEnv(name)
	return me
}

func (me *Option) Help(text string) *Option {
	me.help = text
	return me
}

// Required makes zero occurrences (and no environment hit) a parse error
// instead of falling back to the driver's default.
func (me *Option) Required() *Option {
	me.required = true
	return me
}

// The spelling used when naming the option in errors and usage: the first
// long form if any, else the first short form.
func (me *Option) displayName() string {
	if len(me.longs) != 0 {
		return "--" + me.longs[0]
	}
	return "-" + string(me.shorts[0])
}

func (me *Option) spellings() (ret []string) {
	for _, s := range me.shorts {
		ret = append(ret, "-"+string(s))
	}
	for _, l := range me.longs {
		ret = append(ret, "--"+l)
	}
	return
}

// Argument declares a positional argument. A ListDriver argument consumes
// every remaining positional token and must come last.
type Argument struct {
	id       string
	name     string
	help     string
	required bool
	driver   Driver
}

func (me *Argument) Help(text string) *Argument {
	me.help = text
	return me
}

// Optional tolerates the argument being absent; the driver's default
// applies.
func (me *Argument) Optional() *Argument {
	me.required = false
	return me
}

func (me *Argument) repeatable() bool {
	_, ok := me.driver.(*ListDriver)
	return ok
}

// OptionGroup titles a set of options in usage output.
type OptionGroup struct {
	cmd     *Command
	title   string
	options []*Option
}

// AddOption declares an option within the group.
func (me *OptionGroup) AddOption(id string, d Driver, decls ...string) (*Option, error) {
	opt, err := me.cmd.addOption(id, d, decls)
	if err != nil {
		return nil, err
	}
	me.options = append(me.options, opt)
	return opt, nil
}

// Command is an option table: options, positional arguments or subcommands,
// and an optional callback run after a successful parse. Built once, then
// immutable across parse passes.
type Command struct {
	name        string
	description string
	options     []*Option
	groups      []*OptionGroup
	args        []*Argument
	subs        []*Command
	run         func(*Result) error
}

func NewCommand(name string) *Command {
	return &Command{name: name}
}

func (me *Command) Description(text string) *Command {
	me.description = text
	return me
}

// SetRun installs the callback invoked by Program for this command when it
// is the parsed leaf.
func (me *Command) SetRun(f func(*Result) error) {
	me.run = f
}

// AddGroup opens a titled option group for usage rendering.
func (me *Command) AddGroup(title string) *OptionGroup {
	g := &OptionGroup{cmd: me, title: title}
	me.groups = append(me.groups, g)
	return g
}

func (me *Command) defaultGroup() *OptionGroup {
	if len(me.groups) == 0 {
		return me.AddGroup("Options")
	}
	return me.groups[len(me.groups)-1]
}

// AddOption declares an option with at least one "--long" or "-s" spelling.
func (me *Command) AddOption(id string, d Driver, decls ...string) (*Option, error) {
	opt, err := me.addOption(id, d, decls)
	if err != nil {
		return nil, err
	}
	g := me.defaultGroup()
	g.options = append(g.options, opt)
	return opt, nil
}

func (me *Command) addOption(id string, d Driver, decls []string) (*Option, error) {
	if id == "" {
		return nil, setupErrorf("option id must be non-empty")
	}
	if len(decls) == 0 {
		return nil, setupErrorf("option %q needs at least one decl", id)
	}
	opt := &Option{id: id, driver: d}
	for _, decl := range decls {
		if err := opt.addDecl(decl); err != nil {
			return nil, err
		}
	}
	for _, s := range opt.spellings() {
		if me.findOption(s) != nil {
			return nil, setupErrorf("option %q declared more than once", s)
		}
	}
	d.bind(Source{Type: OptionSource, Name: opt.displayName()})
	me.options = append(me.options, opt)
	return opt, nil
}

func (me *Option) addDecl(decl string) error {
	switch {
	case strings.HasPrefix(decl, "--"):
		text := decl[2:]
		if text == "" {
			return setupErrorf("empty option name in decl %q", decl)
		}
		if len(text) < 2 {
			return setupErrorf("long option %q is too short", decl)
		}
		me.longs = append(me.longs, text)
	case strings.HasPrefix(decl, "-"):
		text := decl[1:]
		if text == "" {
			return setupErrorf("empty option name in decl %q", decl)
		}
		if len(text) > 1 {
			return setupErrorf("short option %q is too long", decl)
		}
		me.shorts = append(me.shorts, text[0])
	case decl == "":
		return setupErrorf("empty option decl")
	default:
		return setupErrorf("option decl %q does not start with a prefix", decl)
	}
	return nil
}

func (me *Command) findOption(spelling string) *Option {
	for _, opt := range me.options {
		for _, s := range opt.spellings() {
			if s == spelling {
				return opt
			}
		}
	}
	return nil
}

// AddArgument declares a positional argument. Arguments are required by
// default; a ListDriver argument consumes all remaining positionals and
// must be last.
func (me *Command) AddArgument(id string, d Driver) (*Argument, error) {
	if id == "" {
		return nil, setupErrorf("argument id must be non-empty")
	}
	if len(me.subs) != 0 {
		return nil, setupErrorf("command cannot have both subcommands and arguments")
	}
	if d.NumValues() == 0 {
		return nil, setupErrorf("argument %q needs a driver that consumes a value", id)
	}
	if n := len(me.args); n != 0 && me.args[n-1].repeatable() {
		return nil, setupErrorf("argument %q cannot follow a repeatable argument", id)
	}
	a := &Argument{
		id:       id,
		name:     strings.ToUpper(xstrings.ToSnakeCase(id)),
		required: true,
		driver:   d,
	}
	d.bind(Source{Type: PositionalSource, Name: a.name, Index: len(me.args)})
	me.args = append(me.args, a)
	return a, nil
}

// AddCommand declares a subcommand. Subcommands and positional arguments
// are mutually exclusive on one command.
func (me *Command) AddCommand(name string) (*Command, error) {
	if name == "" {
		return nil, setupErrorf("command name must be non-empty")
	}
	if len(me.args) != 0 {
		return nil, setupErrorf("command cannot have both subcommands and arguments")
	}
	for _, sub := range me.subs {
		if sub.name == name {
			return nil, setupErrorf("command %q declared more than once", name)
		}
	}
	sub := NewCommand(name)
	me.subs = append(me.subs, sub)
	return sub, nil
}
