package clibind

// reader walks a token slice with one-step putback, for lookahead when an
// option wants the next token as its value.
type reader struct {
	tokens []string
	cursor int
}

func newReader(tokens []string) *reader {
	return &reader{tokens: tokens}
}

func (me *reader) eof() bool {
	return me.cursor >= len(me.tokens)
}

func (me *reader) get() string {
	if me.eof() {
		panic("read past end of tokens")
	}
	tok := me.tokens[me.cursor]
	me.cursor++
	return tok
}

func (me *reader) put() {
	if me.cursor == 0 {
		panic("putback at start of tokens")
	}
	me.cursor--
}

// rest returns the unread tail without consuming it.
func (me *reader) rest() []string {
	return me.tokens[me.cursor:]
}
