// package conf parses schedule seed files
package conf

import (
	"io"
	"strconv"
	"strings"

	"github.com/om-bhutkar-05/airbook/conf/parse"
)

// A Schedule holds the seed data of one file: the passengers to register,
// the flights to create and the bookings to replay. Flights keep file order
// so the booking priorities assigned when replaying are deterministic.
type Schedule struct {
	Passengers map[int]*Passenger
	Flights    []*Flight
}

type Passenger struct {
	Pos  Pos
	ID   int
	Name string
}

type Flight struct {
	Pos         Pos
	ID          string
	Origin      string
	Destination string
	Capacity    int
	Bookings    []Booking
}

// A Booking is an initial reservation of a seat (or waitlist slot) for a
// declared passenger, applied in file order.
type Booking struct {
	Pos       Pos
	Passenger int
}

type ParseError struct {
	Pos Pos
	Err string
}

type Pos struct {
	Line   int
	Column int // Column in unicode characters
	Length int // Length in unicode characters
}

func (pe ParseError) Error() string {
	return pe.Err
}

// Parse is a blocking call that blocks until the entire file is parsed.
func Parse(input io.Reader) (*Schedule, error) {
	s := &Schedule{
		Passengers: make(map[int]*Passenger, 10),
	}
	if err := s.drainParser(input); err != nil {
		return nil, err
	}
	return s, s.check()
}

func (s *Schedule) drainParser(input io.Reader) error {
	p := parse.New(input)
	for {
		stm, ok := <-p.Statements
		if !ok {
			break
		}
		switch t := stm.(type) {
		case parse.PassengerStatement:
			id, err := strconv.Atoi(t.ID)
			if err != nil || id <= 0 {
				return ParseError{
					Err: "passenger id must be a positive integer: '" + t.ID + "'",
					Pos: Pos(t.IDPos),
				}
			}
			if s.Passengers[id] != nil {
				return ParseError{
					Err: "allready a passenger with id: '" + t.ID + "'",
					Pos: Pos(t.IDPos),
				}
			}
			s.Passengers[id] = &Passenger{
				Pos:  Pos(t.NamePos),
				ID:   id,
				Name: t.Name,
			}
		case parse.FlightStatement:
			f, err := s.flight(t)
			if err != nil {
				return err
			}
			s.Flights = append(s.Flights, f)
		case parse.ErrorStatement:
			return ParseError{
				Pos: Pos(t.Pos),
				Err: t.Err,
			}
		default:
			panic("unknown statement type")
		}
	}
	return nil
}

// flight turns a raw flight statement into a Flight, validating the field
// arity and the booking lines.
func (s *Schedule) flight(t parse.FlightStatement) (*Flight, error) {
	if len(t.Fields) != 3 {
		return nil, ParseError{
			Err: "a flight needs exactly origin, destination and capacity",
			Pos: Pos(t.IDPos),
		}
	}
	capacity, err := strconv.Atoi(t.Fields[2])
	if err != nil {
		return nil, ParseError{
			Err: "capacity must be an integer: '" + t.Fields[2] + "'",
			Pos: Pos(t.FieldsPos[2]),
		}
	}
	f := &Flight{
		Pos:         Pos(t.IDPos),
		ID:          t.ID,
		Origin:      t.Fields[0],
		Destination: t.Fields[1],
		Capacity:    capacity,
		Bookings:    []Booking{},
	}
	for i, b := range t.Bookings {
		b = strings.TrimSpace(b)
		if b == "" {
			continue // an indented blank line, nothing was booked
		}
		id, err := strconv.Atoi(b)
		if err != nil {
			return nil, ParseError{
				Err: "a booking must be a passenger id: '" + b + "'",
				Pos: Pos(t.BookingsPos[i]),
			}
		}
		f.Bookings = append(f.Bookings, Booking{
			Pos:       Pos(t.BookingsPos[i]),
			Passenger: id,
		})
	}
	return f, nil
}

func (s *Schedule) check() error {
	// flights must be unique and bookings must refer to declared passengers
	seen := make(map[string]bool, len(s.Flights))
	for _, f := range s.Flights {
		if seen[f.ID] {
			return ParseError{
				Err: "allready a flight named: '" + f.ID + "'",
				Pos: f.Pos,
			}
		}
		seen[f.ID] = true
		for _, b := range f.Bookings {
			if s.Passengers[b.Passenger] == nil {
				return ParseError{
					Err: "booking refers to an undeclared passenger: " + strconv.Itoa(b.Passenger),
					Pos: b.Pos,
				}
			}
		}
	}
	return nil
}
