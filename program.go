package clibind

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/anacrolix/missinggo"
	"github.com/fatih/color"
)

// Program wires a command tree to a process: default help and version
// options, usage rendering, error styling, and exit statuses.
type Program struct {
	name             string
	version          string
	cmd              *Command
	stdout           io.Writer
	stderr           io.Writer
	env              EnvLookup
	invalidStatus    int
	errorStatus      int
	noDefaultHelp    bool
	noDefaultVersion bool
}

type progOpt func(p *Program)

func Stdout(w io.Writer) progOpt {
	return func(p *Program) {
		p.stdout = w
	}
}

func Stderr(w io.Writer) progOpt {
	return func(p *Program) {
		p.stderr = w
	}
}

// Env overrides the process environment, mostly for tests.
func Env(lookup EnvLookup) progOpt {
	return func(p *Program) {
		p.env = lookup
	}
}

// Exit status for invalid command-line input. Defaults to 2.
func InvalidStatus(code int) progOpt {
	return func(p *Program) {
		p.invalidStatus = code
	}
}

// Exit status for everything else that fails. Defaults to 1.
func ErrorStatus(code int) progOpt {
	return func(p *Program) {
		p.errorStatus = code
	}
}

// Don't add -h and --help options.
func NoDefaultHelp() progOpt {
	return func(p *Program) {
		p.noDefaultHelp = true
	}
}

// Don't add a --version option.
func NoDefaultVersion() progOpt {
	return func(p *Program) {
		p.noDefaultVersion = true
	}
}

// NewProgram binds a built command tree to a program name and version and
// wires the default help and version options into it. Build the tree fully
// first: the generated help text snapshots the option tables.
func NewProgram(name, version string, cmd *Command, opts ...progOpt) (*Program, error) {
	p := &Program{
		name:          name,
		version:       version,
		cmd:           cmd,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		env:           os.LookupEnv,
		invalidStatus: 2,
		errorStatus:   1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.wireDefaults(cmd, name); err != nil {
		return nil, err
	}
	return p, nil
}

func (me *Program) wireDefaults(cmd *Command, path string) error {
	if cmd == me.cmd && !me.noDefaultVersion && me.version != "" && cmd.findOption("--version") == nil {
		v := Version(fmt.Sprintf("%s %s", me.name, me.version))
		opt, err := cmd.AddOption("version", v, "--version")
		if err != nil {
			return err
		}
		opt.Help("print version and exit")
	}
	var help *HelpDriver
	if !me.noDefaultHelp && cmd.findOption("-h") == nil && cmd.findOption("--help") == nil {
		help = Help("")
		opt, err := cmd.AddOption("help", help, "-h", "--help")
		if err != nil {
			return err
		}
		opt.Help("print this help and exit")
	}
	for _, sub := range cmd.subs {
		if err := me.wireDefaults(sub, path+" "+sub.name); err != nil {
			return err
		}
	}
	// Snapshot the usage last so it lists the wired-in options too.
	if help != nil {
		help.message = me.usageString(cmd, path)
	}
	return nil
}

// Run parses argv (without the program name) and executes the parsed leaf
// command's callback, returning the process exit status.
func (me *Program) Run(argv []string) int {
	res, err := me.cmd.Parse(argv, me.env)
	if err != nil {
		me.printError(err)
		if IsUserError(err) {
			return me.invalidStatus
		}
		return me.errorStatus
	}
	if msg, ok := res.Halted(); ok {
		fmt.Fprint(me.stdout, missinggo.Unchomp(msg))
		return 0
	}
	leaf := res.Leaf()
	if leaf.cmd.run != nil {
		if err := leaf.cmd.run(res); err != nil {
			me.printError(err)
			return me.errorStatus
		}
	}
	return 0
}

func (me *Program) RunAndExit() {
	os.Exit(me.Run(os.Args[1:]))
}

var errorLabel = color.New(color.FgRed, color.Bold)

func (me *Program) printError(err error) {
	fmt.Fprintf(me.stderr, "%s %s\n", errorLabel.Sprint("error:"), err)
}

func (me *Program) usageString(cmd *Command, path string) string {
	var b strings.Builder
	me.writeUsage(&b, cmd, path)
	return b.String()
}

func newUsageTabwriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 8, 2, 3, ' ', 0)
}

func (me *Program) writeUsage(w io.Writer, cmd *Command, path string) {
	fmt.Fprintf(w, "Usage:\n  %s", path)
	if len(cmd.options) != 0 {
		fmt.Fprintf(w, " [OPTIONS...]")
	}
	if len(cmd.subs) != 0 {
		fmt.Fprintf(w, " COMMAND")
	}
	for _, a := range cmd.args {
		switch {
		case a.repeatable() && a.required:
			fmt.Fprintf(w, " %s...", a.name)
		case a.repeatable():
			fmt.Fprintf(w, " [%s...]", a.name)
		case a.required:
			fmt.Fprintf(w, " <%s>", a.name)
		default:
			fmt.Fprintf(w, " [%s]", a.name)
		}
	}
	fmt.Fprintf(w, "\n")
	if cmd.description != "" {
		fmt.Fprintf(w, "\n%s\n", missinggo.Unchomp(cmd.description))
	}
	if len(cmd.subs) != 0 {
		fmt.Fprintf(w, "Commands:\n")
		tw := newUsageTabwriter(w)
		for _, sub := range cmd.subs {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.name, sub.description)
		}
		tw.Flush()
	}
	if awd := argsWithHelp(cmd.args); len(awd) != 0 {
		fmt.Fprintf(w, "Arguments:\n")
		tw := newUsageTabwriter(w)
		for _, a := range awd {
			fmt.Fprintf(tw, "  %s\t%s\n", a.name, a.help)
		}
		tw.Flush()
	}
	for _, g := range cmd.groups {
		me.writeGroupUsage(w, g)
	}
}

func argsWithHelp(args []*Argument) (ret []*Argument) {
	for _, a := range args {
		if a.help != "" {
			ret = append(ret, a)
		}
	}
	return
}

func (me *Program) writeGroupUsage(w io.Writer, g *OptionGroup) {
	if len(g.options) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", g.title)
	tw := newUsageTabwriter(w)
	for _, opt := range g.options {
		help := opt.help
		if opt.envVar != "" {
			help = strings.TrimSpace(help + " [$" + opt.envVar + "]")
		}
		fmt.Fprintf(tw, "  %s\t%s\n", strings.Join(opt.spellings(), ", "), help)
	}
	tw.Flush()
}
