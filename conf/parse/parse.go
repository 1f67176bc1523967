// Package parse assembles lex tokens into passenger and flight statements.
package parse

import (
	"io"
	"sync"

	"github.com/om-bhutkar-05/airbook/conf/lex"
)

// A Parser is used to parse a single file.
type Parser struct {
	// Will keep outputting statements until EOF at which point the channel is closed.
	Statements chan Statement

	buff, last *lex.Token

	mu sync.Mutex

	l   *lex.Lexer
	lex chan lex.Token
}

// New builds a new parser and starts to parse the input. The results are reached through
// the Statements channel.
func New(input io.Reader) *Parser {
	// use relatively large buffers so processing can continue
	// despite no readers currently waiting
	buffSize := 500
	lexc := make(chan lex.Token, buffSize)
	l := lex.New(input, lexc)
	go l.Lex()
	p := &Parser{
		l:          l,
		lex:        lexc,
		Statements: make(chan Statement, buffSize),
	}
	p.mu.Lock()
	go p.parse()
	return p
}

// Wait blocks until either the first error or the entire reader has
// been parsed and sent on the p.Statements chan
func (p *Parser) Wait() {
	p.mu.Lock()
	p.mu.Unlock()
}

func (p *Parser) parse() {
	// we are not building a tree, a schedule file is a flat statement list
	for state := p.parseStatement; state != nil; state = state() {
	}
	close(p.Statements)
	p.mu.Unlock()
}

type parseState func() parseState

func (p *Parser) eatCommentNewline() {
	tok := p.next()
	for tok.Type == lex.Newline || tok.Type == lex.Comment {
		tok = p.next()
	}
	p.backup()
}

func (p *Parser) parseStatement() parseState {
	// a statement is either a passenger declaration or a flight, i.e. we
	// expect the line not to start with an indent
	p.eatCommentNewline()
	tok := p.next()

	if tok.Type == lex.Keyword && tok.Val == "passenger" {
		name := p.next()
		if name.Type != lex.Name {
			return p.error("expected quoted passenger name", name)
		}
		as := p.next()
		if as.Type != lex.Keyword || as.Val != "as" {
			return p.error("expected as after passenger name", as)
		}
		id := p.next()
		if id.Type != lex.PassengerID {
			return p.error("expected passenger id", id)
		}
		if id.Val == "" {
			return p.error("expected a usable passenger id", id)
		}
		p.Statements <- PassengerStatement{
			Name:    name.Val,
			NamePos: name.Pos,
			ID:      id.Val,
			IDPos:   id.Pos,
		}
		return p.parseStatement
	}

	if tok.Type == lex.Keyword {
		return p.error("unknown keyword '"+tok.Val+"'", tok)
	}

	if tok.Type == lex.Flight {
		colon := p.next()
		if colon.Type != lex.Colon {
			return p.error("colon", colon)
		}

		fields := []string{}
		fieldspos := []lex.Pos{}
		for n := p.next(); n.Type == lex.Field; n = p.next() {
			fields = append(fields, n.Val)
			fieldspos = append(fieldspos, n.Pos)
		}
		p.backup()

		// eat comments and a newline before any booking lines
		for tok := p.next(); tok.Type == lex.Newline || tok.Type == lex.Comment; {
			tok = p.next()
		}
		p.backup()

		bookings := []string{}
		bookingspos := []lex.Pos{}
		for {
			b, pos, ok := p.maybeReadBooking()
			if !ok {
				break
			}
			bookings = append(bookings, b)
			bookingspos = append(bookingspos, pos)
		}
		p.Statements <- FlightStatement{
			ID:          tok.Val,
			IDPos:       tok.Pos,
			Fields:      fields,
			FieldsPos:   fieldspos,
			Bookings:    bookings,
			BookingsPos: bookingspos,
		}

		return p.parseStatement
	}

	if tok.Type == lex.EOF {
		return nil
	}

	return p.error("expected passenger or flight statement", tok)
}

func (p *Parser) maybeReadBooking() (string, lex.Pos, bool) {
	// try to read out a booking line, else return false if not possible
	p.eatCommentNewline()
	if p.next().Type != lex.Indent {
		p.backup()
		return "", lex.Pos{}, false
	}
	t := p.next()
	if t.Type != lex.Booking {
		p.error("expected booking after indent", t)
		return "", lex.Pos{}, false
	}
	return t.Val, t.Pos, true
}

func (p *Parser) next() lex.Token {
	if p.buff != nil {
		a := *p.buff
		p.buff = nil
		return a
	}
	t := <-p.lex
	p.last = &t
	return t
}

func (p *Parser) backup() {
	p.buff = p.last
}

func (p *Parser) error(e string, t lex.Token) parseState {
	p.Statements <- ErrorStatement{
		Err: e,
		Pos: t.Pos,
	}
	return nil
}
