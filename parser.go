package clibind

import (
	"strings"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// Result holds one parse pass's outcome for one command. Subcommand results
// chain through Sub.
type Result struct {
	cmd    *Command
	values map[string]interface{}
	counts map[string]int
	halt   string
	halted bool
	sub    *Result
}

// Value returns the typed value bound to an option or argument id, or nil.
// Lists are stored as []interface{}.
func (me *Result) Value(id string) interface{} {
	return me.values[id]
}

// Values returns the ordered sequence bound to a list id.
func (me *Result) Values(id string) []interface{} {
	vs, _ := me.values[id].([]interface{})
	return vs
}

func (me *Result) Bool(id string) bool {
	v, _ := me.values[id].(bool)
	return v
}

func (me *Result) Int(id string) int64 {
	v, _ := me.values[id].(int64)
	return v
}

func (me *Result) Float(id string) float64 {
	v, _ := me.values[id].(float64)
	return v
}

func (me *Result) String(id string) string {
	v, _ := me.values[id].(string)
	return v
}

// Count is how many occurrences the id had on the command line.
func (me *Result) Count(id string) int {
	return me.counts[id]
}

// Present reports whether the id occurred at least once on the command line.
func (me *Result) Present(id string) bool {
	return me.counts[id] > 0
}

// Halted reports a message halt anywhere in the command chain. The caller
// prints the message and terminates with the success status.
func (me *Result) Halted() (message string, ok bool) {
	if me.halted {
		return me.halt, true
	}
	if me.sub != nil {
		return me.sub.Halted()
	}
	return "", false
}

// Command is the command this result belongs to.
func (me *Result) Command() *Command {
	return me.cmd
}

// Sub is the subcommand's result, or nil.
func (me *Result) Sub() *Result {
	return me.sub
}

// Leaf follows the subcommand chain to the command that actually ran.
func (me *Result) Leaf() *Result {
	if me.sub != nil {
		return me.sub.Leaf()
	}
	return me
}

type parser struct {
	cmd      *Command
	shorts   map[byte]*Option
	longs    map[string]*Option
	occ      map[*Option][]string
	posOcc   map[*Argument][]string
	argIndex int
}

func newParser(cmd *Command) *parser {
	p := &parser{
		cmd:    cmd,
		shorts: make(map[byte]*Option),
		longs:  make(map[string]*Option),
		occ:    make(map[*Option][]string),
		posOcc: make(map[*Argument][]string),
	}
	for _, opt := range cmd.options {
		for _, s := range opt.shorts {
			p.shorts[s] = opt
		}
		for _, l := range opt.longs {
			p.longs[l] = opt
		}
	}
	return p
}

// Parse runs one pass over args (without the program name) against this
// command. env may be nil; pass os.LookupEnv to enable environment
// fallbacks. A message halt comes back in the Result, not as an error.
func (me *Command) Parse(args []string, env EnvLookup) (*Result, error) {
	p := newParser(me)
	rest, err := p.tokenize(newReader(args))
	if err != nil {
		// A help or version option consumed before the offending token
		// still wins.
		if res := p.haltedResult(); res != nil {
			return res, nil
		}
		return nil, err
	}
	res, err := p.resolve(env)
	if err != nil || res.halted {
		return res, err
	}
	if len(rest) != 0 {
		sub := me.findSub(rest[0])
		subRes, err := sub.Parse(rest[1:], env)
		if err != nil {
			return nil, err
		}
		res.sub = subRes
	}
	return res, nil
}

func (me *Command) findSub(name string) *Command {
	for _, sub := range me.subs {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

// tokenize segments args into per-option and per-argument occurrence lists.
// On a subcommand token it stops and returns the subcommand name plus the
// unconsumed tail.
func (me *parser) tokenize(r *reader) (rest []string, err error) {
	for !r.eof() {
		tok := r.get()
		if tok == "--" {
			return me.tokenizeTail(r)
		}
		if strings.HasPrefix(tok, "--") {
			err = me.longToken(tok, r)
		} else if strings.HasPrefix(tok, "-") && len(tok) > 1 {
			err = me.shortToken(tok, r)
		} else {
			rest, err = me.plainToken(tok, r)
			if rest != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
	return
}

// Everything after "--" is positional, or the subcommand and its argv.
func (me *parser) tokenizeTail(r *reader) (rest []string, err error) {
	for !r.eof() {
		tok := r.get()
		rest, err = me.plainToken(tok, r)
		if rest != nil || err != nil {
			return
		}
	}
	return
}

func (me *parser) plainToken(tok string, r *reader) (rest []string, err error) {
	if len(me.cmd.subs) != 0 {
		if me.cmd.findSub(tok) == nil {
			return nil, userErrorf("unknown command: %q", tok)
		}
		// Hand the subcommand name back so the tail starts with it.
		r.put()
		return r.rest(), nil
	}
	return nil, me.posToken(tok)
}

func (me *parser) posToken(tok string) error {
	if me.argIndex >= len(me.cmd.args) {
		return userErrorf("excess argument: %q", tok)
	}
	a := me.cmd.args[me.argIndex]
	me.posOcc[a] = append(me.posOcc[a], tok)
	if !a.repeatable() {
		me.argIndex++
	}
	return nil
}

func (me *parser) longToken(tok string, r *reader) error {
	name, val, hasVal := strings.Cut(tok[2:], "=")
	opt := me.longs[name]
	if opt == nil {
		return userErrorf("unknown option: %q", "--"+name)
	}
	if opt.driver.NumValues() == 0 {
		if hasVal {
			return userErrorf("option %q does not take a value", "--"+name)
		}
		me.addOcc(opt, "")
		return nil
	}
	if !hasVal {
		if r.eof() {
			return userErrorf("option %q requires a value", "--"+name)
		}
		val = r.get()
	}
	me.addOcc(opt, val)
	return nil
}

// Short options cluster: -abc is -a -b -c until one of them wants a value,
// which takes the remainder of the cluster (-ovalue) or the next token.
func (me *parser) shortToken(tok string, r *reader) error {
	body := tok[1:]
	for i := range iter.N(len(body)) {
		c := body[i]
		opt := me.shorts[c]
		if opt == nil {
			return userErrorf("unknown option: %q", "-"+string(c))
		}
		if opt.driver.NumValues() == 0 {
			me.addOcc(opt, "")
			continue
		}
		if i+1 < len(body) {
			me.addOcc(opt, body[i+1:])
		} else {
			if r.eof() {
				return userErrorf("option %q requires a value", "-"+string(c))
			}
			me.addOcc(opt, r.get())
		}
		break
	}
	return nil
}

func (me *parser) addOcc(opt *Option, val string) {
	me.occ[opt] = append(me.occ[opt], val)
}

// resolve runs every driver over its gathered occurrences. Message drivers
// are checked first across the whole pass: a help or version request halts
// and wins over any validation failure elsewhere.
func (me *parser) resolve(env EnvLookup) (*Result, error) {
	if res := me.haltedResult(); res != nil {
		return res, nil
	}
	res := &Result{
		cmd:    me.cmd,
		values: make(map[string]interface{}),
		counts: make(map[string]int),
	}
	for _, opt := range me.cmd.options {
		occ := me.occ[opt]
		res.counts[opt.id] = len(occ)
		if opt.required && len(occ) == 0 && !me.envHas(opt, env) {
			return nil, userErrorf("missing option: %q", opt.displayName())
		}
		out, err := opt.driver.Resolve(occ, env)
		if err != nil {
			return nil, errors.Wrap(err, opt.driver.Source().describe())
		}
		res.store(opt.id, out)
	}
	for _, a := range me.cmd.args {
		occ := me.posOcc[a]
		res.counts[a.id] = len(occ)
		if a.required && len(occ) == 0 {
			return nil, userErrorf("missing argument: %q", a.name)
		}
		out, err := a.driver.Resolve(occ, env)
		if err != nil {
			return nil, errors.Wrap(err, a.driver.Source().describe())
		}
		res.store(a.id, out)
	}
	return res, nil
}

// haltedResult reports a triggered message option as a halted Result, or nil.
func (me *parser) haltedResult() *Result {
	for _, opt := range me.cmd.options {
		if h, ok := opt.driver.(messageHalter); ok && len(me.occ[opt]) != 0 {
			return &Result{
				cmd:    me.cmd,
				values: make(map[string]interface{}),
				counts: make(map[string]int),
				halt:   h.haltMessage(),
				halted: true,
			}
		}
	}
	return nil
}

func (me *parser) envHas(opt *Option, env EnvLookup) bool {
	if opt.envVar == "" || env == nil {
		return false
	}
	_, ok := env(opt.envVar)
	return ok
}

func (me *Result) store(id string, out Outcome) {
	switch out.Kind {
	case OutcomeValue:
		me.values[id] = out.Value
	case OutcomeValues:
		me.values[id] = out.Values
	}
}
