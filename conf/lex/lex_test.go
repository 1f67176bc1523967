package lex

import (
	"bytes"
	"testing"
)

type testcase struct {
	src string
	res []Token
}

var testCases = map[string]testcase{
	"empty": tc(``, t(EOF, "")),
	"passenger": tc(`passenger "Alice" as 1`,
		t(Keyword, "passenger"), t(Name, "Alice"), t(Keyword, "as"), t(PassengerID, "1"), t(EOF, "")),
	"passengerel": tc(`passenger "Alice" as 1
`,
		t(Keyword, "passenger"), t(Name, "Alice"), t(Keyword, "as"), t(PassengerID, "1"), t(Newline, "\n"), t(EOF, "")),
	"emptyflight": tc(`AI101:`,
		t(Flight, "AI101"), t(Colon, ":"), t(EOF, "")),
	"fields": tc(`AI101: DEL BOM 2`,
		t(Flight, "AI101"), t(Colon, ":"), t(Field, "DEL"), t(Field, "BOM"), t(Field, "2"), t(EOF, "")),
	"bookings": tc(`AI101: DEL BOM 2
  1
  2`,
		t(Flight, "AI101"), t(Colon, ":"), t(Field, "DEL"), t(Field, "BOM"), t(Field, "2"), t(Newline, "\n"),
		t(Indent, "  "), t(Booking, "1"), t(Newline, "\n"), t(Indent, "  "), t(Booking, "2"), t(EOF, "")),
	"comment": tc(`# seed data`,
		t(Comment, "# seed data"), t(EOF, "")),
	"commented": tc(`AI101: DEL BOM 2 # small
  1`,
		t(Flight, "AI101"), t(Colon, ":"), t(Field, "DEL"), t(Field, "BOM"), t(Field, "2"),
		t(Comment, "# small"), t(Newline, "\n"), t(Indent, "  "), t(Booking, "1"), t(EOF, "")),
	"spacename": tc(`passenger "Alice Jones" as 12`,
		t(Keyword, "passenger"), t(Name, "Alice Jones"), t(Keyword, "as"), t(PassengerID, "12"), t(EOF, "")),
}

func tc(s string, tokens ...Token) testcase {
	return testcase{
		src: s,
		res: tokens,
	}
}

func t(t TokenType, v string) Token {
	return Token{
		Type: t,
		Val:  v,
	}
}

func TestLargeBuffer(t *testing.T) {
	blockSize = 1024 * 1024
	for nm, tc := range testCases {
		t.Run(nm, func(t *testing.T) {
			tokens := run(tc.src, t)
			check(tc, tokens, t)
		})
	}
}

func TestSmallBuffer(t *testing.T) {
	blockSize = 7
	for nm, tc := range testCases {
		t.Run(nm, func(t *testing.T) {
			tokens := run(tc.src, t)
			check(tc, tokens, t)
		})
	}
}

func TestUnterminatedName(t *testing.T) {
	blockSize = 1024 * 4
	tokens := run(`passenger "Alice`, t)
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != Error {
		t.Error("expected a trailing error token, got", tokens)
	}
}

func run(input string, t *testing.T) []Token {
	buff := bytes.NewBuffer([]byte(input))
	c := make(chan Token, 10000)
	l := New(buff, c)
	l.Lex()
	res := make([]Token, 0, len(c))
	for {
		v, ok := <-c
		if !ok {
			break
		}
		res = append(res, v)
	}
	return res
}

func check(tc testcase, results []Token, t *testing.T) {
	for i, e := range tc.res {
		if i >= len(results) {
			t.Error(i, "got to few tokens, expected", e)
			return
		}

		a := results[i]
		if e.Type != a.Type || e.Val != a.Val {
			t.Error(i, "got", a, "but expected", e)
		}
	}
	for i := len(tc.res); i < len(results); i++ {
		t.Error("got to many, additional:", results[i])
	}
}
