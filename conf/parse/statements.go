package parse

import "github.com/om-bhutkar-05/airbook/conf/lex"

// A Statement represents part of a schedule file.
type Statement interface {
	String() string
}

// A PassengerStatement declares a passenger under an explicit id.
type PassengerStatement struct {
	Name    string
	NamePos lex.Pos
	ID      string
	IDPos   lex.Pos
}

// A FlightStatement declares a flight and its initial bookings. The fields
// are the raw whitespace separated values after the colon, their meaning is
// assigned by the semantic layer.
type FlightStatement struct {
	ID          string
	IDPos       lex.Pos
	Fields      []string
	FieldsPos   []lex.Pos
	Bookings    []string
	BookingsPos []lex.Pos
}

// A ErrorStatement reports an error occuring during the parsing
type ErrorStatement struct {
	Err string
	Pos lex.Pos
}

func (es ErrorStatement) String() string {
	return "err:" + es.Err
}

func (fs FlightStatement) String() string {
	s := fs.ID + ": "
	for _, f := range fs.Fields {
		s += f + " "
	}
	s += "\n"
	for _, b := range fs.Bookings {
		s += "\t" + b + "\n"
	}
	return "flt:" + s + "\n"
}

func (ps PassengerStatement) String() string {
	return "pax:passenger \"" + ps.Name + "\" as " + ps.ID + "\n"
}
