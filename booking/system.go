package booking

import (
	"errors"
	"io"
	"os"
	"sort"

	"github.com/juju/errgo"

	"github.com/om-bhutkar-05/airbook/conf"
	"github.com/om-bhutkar-05/airbook/store"
)

// Options configure how the booking system should operate
type Options struct {
	// LogEvents writes a line for every booking event to Stderr
	LogEvents bool

	// If nil os.Stdin will be used
	Stdin io.Reader
	// If nil os.Stdout will be used
	Stdout io.Writer
	// If nil os.Stderr will be used
	Stderr io.Writer
}

// Errors reported for lookups against unknown ids.
var (
	ErrNoFlight    = errors.New("no such flight")
	ErrNoPassenger = errors.New("no such passenger")
	ErrFlightTaken = errors.New("flight id already in use")
)

// A System owns the seat ledgers of all flights and the persistent passenger
// and flight registry. Booking priorities are handed out from a counter that
// increases per booking attempt, so earlier bookers hold numerically lower,
// i.e. higher, priorities. A System is not safe for concurrent use.
type System struct {
	Options

	reg     *store.Store
	flights map[string]*Flight

	nextPriority int
}

// NewSystem builds a system on top of the registry, creating a fresh, empty
// seat ledger for every stored flight definition. Seat state is never read
// from the registry, it exists only for the lifetime of the process.
func NewSystem(reg *store.Store, o Options) (*System, error) {
	s := &System{
		Options:      o,
		reg:          reg,
		flights:      make(map[string]*Flight, 10),
		nextPriority: 1,
	}
	defs, err := reg.Flights()
	if err != nil {
		return nil, errgo.Notef(err, "loading flight definitions")
	}
	for _, d := range defs {
		s.flights[d.ID] = NewFlight(d.ID, d.Origin, d.Destination, d.Capacity)
	}
	return s, nil
}

// AddFlight persists a new flight definition and creates its ledger.
func (s *System) AddFlight(id, origin, destination string, capacity int) error {
	if _, ok := s.flights[id]; ok {
		return ErrFlightTaken
	}
	f := NewFlight(id, origin, destination, capacity)
	err := s.reg.PutFlight(store.Flight{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		Capacity:    f.Capacity(),
	})
	if err != nil {
		return errgo.Mask(err)
	}
	s.flights[id] = f
	s.logEvent("flight %s added (%s -> %s, capacity %d)", id, origin, destination, f.Capacity())
	return nil
}

// AddPassenger registers a passenger and returns the assigned id.
func (s *System) AddPassenger(name string) (int, error) {
	id, err := s.reg.AddPassenger(name)
	if err != nil {
		return 0, errgo.Mask(err)
	}
	s.logEvent("passenger %d registered: %s", id, name)
	return id, nil
}

// Book attempts to book the passenger onto the flight. The next booking
// priority is consumed even when the passenger ends up confirmed, keeping
// priorities aligned with the booking sequence.
func (s *System) Book(passengerID int, flightID string) (BookResult, error) {
	f, ok := s.flights[flightID]
	if !ok {
		return 0, ErrNoFlight
	}
	_, ok, err := s.reg.Passenger(passengerID)
	if err != nil {
		return 0, errgo.Mask(err)
	}
	if !ok {
		return 0, ErrNoPassenger
	}
	priority := s.nextPriority
	s.nextPriority++
	res := f.AddPassenger(passengerID, priority)
	s.logEvent("passenger %d on %s: %s (priority %d)", passengerID, flightID, res, priority)
	return res, nil
}

// Cancel releases the passenger's confirmed seat on the flight. The promoted
// waitlist passenger, if any, is returned. found is false when the passenger
// holds no confirmed seat, also when it only sits on the waitlist.
func (s *System) Cancel(passengerID int, flightID string) (promoted int, found bool, err error) {
	f, ok := s.flights[flightID]
	if !ok {
		return NoPromotion, false, ErrNoFlight
	}
	promoted, found = f.CancelBooking(passengerID)
	if found {
		s.logEvent("passenger %d cancelled on %s", passengerID, flightID)
		if promoted != NoPromotion {
			s.logEvent("passenger %d promoted from waitlist on %s", promoted, flightID)
		}
	}
	return promoted, found, nil
}

// Flight returns the ledger of the given flight id.
func (s *System) Flight(id string) (*Flight, bool) {
	f, ok := s.flights[id]
	return f, ok
}

// Flights returns all ledgers sorted by flight id.
func (s *System) Flights() []*Flight {
	out := make([]*Flight, 0, len(s.flights))
	for _, f := range s.flights {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PassengerName resolves a passenger id to its registered name.
func (s *System) PassengerName(id int) (string, bool) {
	name, ok, err := s.reg.Passenger(id)
	if err != nil {
		return "", false
	}
	return name, ok
}

// ApplySchedule registers the seed passengers and flights of a parsed
// schedule and replays its bookings in file order.
func (s *System) ApplySchedule(sc *conf.Schedule) error {
	ids := make([]int, 0, len(sc.Passengers))
	for id := range sc.Passengers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if err := s.reg.PutPassenger(id, sc.Passengers[id].Name); err != nil {
			return errgo.Mask(err)
		}
	}
	for _, f := range sc.Flights {
		// seed files may be re-applied on every run, an existing
		// flight keeps its current ledger rather than erroring
		err := s.AddFlight(f.ID, f.Origin, f.Destination, f.Capacity)
		if err != nil && err != ErrFlightTaken {
			return errgo.Mask(err)
		}
	}
	for _, f := range sc.Flights {
		for _, b := range f.Bookings {
			if _, err := s.Book(b.Passenger, f.ID); err != nil {
				return errgo.Notef(err, "replaying booking of %d on %s", b.Passenger, f.ID)
			}
		}
	}
	return nil
}

func (s *System) stdin() io.Reader {
	if s.Stdin != nil {
		return s.Stdin
	}
	return os.Stdin
}

func (s *System) stdout() io.Writer {
	if s.Stdout != nil {
		return s.Stdout
	}
	return os.Stdout
}

func (s *System) stderr() io.Writer {
	if s.Stderr != nil {
		return s.Stderr
	}
	return os.Stderr
}
