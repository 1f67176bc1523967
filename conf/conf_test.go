package conf

import (
	"bytes"
	"reflect"
	"testing"
)

func TestErrorSamePassenger(tt *testing.T) {
	src := `
passenger "Alice" as 1
passenger "Bob" as 1`
	ensure(tt, src)
}

func TestErrorSameFlight(tt *testing.T) {
	src := `
AI101: DEL BOM 2
AI101: DEL BOM 3`
	ensure(tt, src)
}

func TestErrorBadCapacity(tt *testing.T) {
	ensure(tt, `AI101: DEL BOM lots`)
}

func TestErrorFieldArity(tt *testing.T) {
	ensure(tt, `AI101: DEL BOM`)
	ensure(tt, `AI101: DEL BOM 2 extra`)
}

func TestErrorUnknownBooking(tt *testing.T) {
	src := `
passenger "Alice" as 1

AI101: DEL BOM 2
	2`
	ensure(tt, src)
}

func TestErrorBadBooking(tt *testing.T) {
	src := `
passenger "Alice" as 1

AI101: DEL BOM 2
	Alice`
	ensure(tt, src)
}

func TestErrorBadPassengerID(tt *testing.T) {
	ensure(tt, `passenger "Alice" as zero`)
	ensure(tt, `passenger "Alice" as 0`)
}

func TestComplicated(tt *testing.T) {
	src := `# seed data
passenger "Alice" as 1
passenger "Bob Jones" as 2
passenger "Charlie" as 3

AI101: DEL BOM 1  # small capacity to exercise the waitlist
	1
	2
	3

BA202: LHR JFK 250

LH303: FRA NRT 3
	3
`
	s := sc(
		[]*Passenger{
			pa(1, "Alice"),
			pa(2, "Bob Jones"),
			pa(3, "Charlie"),
		},
		[]*Flight{
			fl("AI101", "DEL", "BOM", 1, 1, 2, 3),
			fl("BA202", "LHR", "JFK", 250),
			fl("LH303", "FRA", "NRT", 3, 3),
		})
	check(tt, src, s)
}

func check(tt *testing.T, src string, want *Schedule) {
	r := bytes.NewReader([]byte(src))
	got, e := Parse(r)
	if e != nil {
		tt.Error(e)
		return
	}
	normalize(got)
	if !reflect.DeepEqual(want, got) {
		tt.Error("expected same")
	}
}

func ensure(tt *testing.T, src string) {
	r := bytes.NewReader([]byte(src))
	_, e := Parse(r)
	if e == nil {
		tt.Error("expected error but got none")
	}
}

// normalize zeroes source positions, the tests only care about semantics.
func normalize(s *Schedule) {
	for _, p := range s.Passengers {
		p.Pos = Pos{}
	}
	for _, f := range s.Flights {
		f.Pos = Pos{}
		for i := range f.Bookings {
			f.Bookings[i].Pos = Pos{}
		}
	}
}

func sc(ps []*Passenger, fs []*Flight) *Schedule {
	s := &Schedule{
		Passengers: map[int]*Passenger{},
		Flights:    fs,
	}
	for _, p := range ps {
		s.Passengers[p.ID] = p
	}
	return s
}

func pa(id int, name string) *Passenger {
	return &Passenger{
		ID:   id,
		Name: name,
	}
}

func fl(id, origin, dest string, capacity int, bookings ...int) *Flight {
	f := &Flight{
		ID:          id,
		Origin:      origin,
		Destination: dest,
		Capacity:    capacity,
		Bookings:    []Booking{},
	}
	for _, b := range bookings {
		f.Bookings = append(f.Bookings, Booking{Passenger: b})
	}
	return f
}
