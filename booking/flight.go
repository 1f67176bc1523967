package booking

import (
	"fmt"
	"io"

	"github.com/om-bhutkar-05/airbook/heap"
)

// A BookResult reports the outcome of a booking attempt.
type BookResult int

const (
	// Confirmed means the passenger holds a seat.
	Confirmed BookResult = iota
	// Waitlisted means the flight was full and the passenger was queued.
	Waitlisted
)

func (r BookResult) String() string {
	if r == Confirmed {
		return "confirmed"
	}
	return "waitlisted"
}

// NoPromotion is returned from CancelBooking when no waitlisted passenger
// was available to take the freed seat.
const NoPromotion = -1

// A Flight owns the seat inventory of a single flight: a fixed capacity,
// the confirmed passenger ids and the waitlist heap. Seat state lives only
// for the duration of the process.
type Flight struct {
	ID          string
	Origin      string
	Destination string

	capacity  int
	confirmed []int
	waitlist  *heap.Heap
}

// NewFlight creates an empty flight ledger. A negative capacity is clamped
// to zero rather than rejected.
func NewFlight(id, origin, destination string, capacity int) *Flight {
	if capacity < 0 {
		capacity = 0
	}
	return &Flight{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		capacity:    capacity,
		confirmed:   []int{},
		waitlist:    heap.New(),
	}
}

// Route returns the flight route as "ORIGIN/DESTINATION".
func (f *Flight) Route() string {
	return f.Origin + "/" + f.Destination
}

func (f *Flight) Capacity() int { return f.capacity }
func (f *Flight) Booked() int   { return len(f.confirmed) }

// Waiting counts the waitlisted passengers. It traverses the heap, callers
// should not assume it is O(1).
func (f *Flight) Waiting() int { return f.waitlist.Size() }

// Confirmed returns a copy of the confirmed passenger ids in seat order.
func (f *Flight) Confirmed() []int {
	out := make([]int, len(f.confirmed))
	copy(out, f.confirmed)
	return out
}

// AddPassenger books the passenger onto the flight. An already confirmed
// passenger is reported Confirmed again without a duplicate seat. When the
// flight is full the passenger is queued under the given priority; whether
// the passenger already waits is not checked.
func (f *Flight) AddPassenger(id, priority int) BookResult {
	for _, p := range f.confirmed {
		if p == id {
			return Confirmed
		}
	}
	if len(f.confirmed) < f.capacity {
		f.confirmed = append(f.confirmed, id)
		return Confirmed
	}
	f.waitlist.Insert(priority, id)
	return Waitlisted
}

// CancelBooking releases the passenger's confirmed seat and promotes the
// front of the waitlist into it. It returns the promoted passenger id, or
// NoPromotion when the waitlist was empty. A passenger that is not in the
// confirmed list is reported found=false, even if it sits on the waitlist:
// cancelling a waitlist-only booking is not supported.
func (f *Flight) CancelBooking(id int) (promoted int, found bool) {
	for i, p := range f.confirmed {
		if p != id {
			continue
		}
		f.confirmed = append(f.confirmed[:i], f.confirmed[i+1:]...)
		if f.waitlist.Empty() {
			return NoPromotion, true
		}
		next, err := f.waitlist.ExtractMin()
		if err != nil {
			// Empty was checked just above
			panic("invariant broken")
		}
		f.confirmed = append(f.confirmed, next)
		return next, true
	}
	return NoPromotion, false
}

// NextInLine returns the single minimum-priority waitlist entry without
// removing it, false when the waitlist is empty. The waitlist beyond its
// front cannot be observed without draining it.
func (f *Flight) NextInLine() (heap.Entry, bool) {
	p, err := f.waitlist.MinPriority()
	if err != nil {
		return heap.Entry{}, false
	}
	id, err := f.waitlist.MinPassenger()
	if err != nil {
		return heap.Entry{}, false
	}
	return heap.Entry{Priority: p, Passenger: id}, true
}

// DrainWaitlist empties the waitlist and returns its entries in ascending
// priority order.
func (f *Flight) DrainWaitlist() []heap.Entry {
	return f.waitlist.Drain()
}

// WriteStatus writes a status report for the flight to w. Passenger names
// are resolved through nameOf; ids without a name render as a placeholder.
func (f *Flight) WriteStatus(w io.Writer, nameOf func(int) (string, bool)) {
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, " Flight %s (%s -> %s)\n", f.ID, f.Origin, f.Destination)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, " Capacity: %d\n", f.capacity)
	fmt.Fprintf(w, " Booked:   %d\n", len(f.confirmed))
	fmt.Fprintf(w, " Waitlist: %d\n", f.Waiting())

	fmt.Fprintln(w, "\n--- Confirmed passengers ---")
	if len(f.confirmed) == 0 {
		fmt.Fprintln(w, " none")
	}
	for _, id := range f.confirmed {
		fmt.Fprintf(w, " %4d  %s\n", id, displayName(id, nameOf))
	}

	fmt.Fprintln(w, "\n--- Waitlist ---")
	if next, ok := f.NextInLine(); ok {
		fmt.Fprintf(w, " next in line: %d (%s), priority %d\n",
			next.Passenger, displayName(next.Passenger, nameOf), next.Priority)
	} else {
		fmt.Fprintln(w, " empty")
	}
	fmt.Fprintln(w, "----------------------------------------")
}

func displayName(id int, nameOf func(int) (string, bool)) string {
	if nameOf == nil {
		return "<unknown>"
	}
	if name, ok := nameOf(id); ok {
		return name
	}
	return "<unknown>"
}
