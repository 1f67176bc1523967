package booking

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Run drives the interactive booking menu until the user exits, the input
// ends or ctx is cancelled. Everything runs synchronously on the calling
// goroutine, the context is checked between commands.
func (s *System) Run(ctx context.Context) error {
	in := bufio.NewScanner(s.stdin())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.writeMenu()
		choice, ok := s.readLine(in, "choice: ")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.listFlights()
		case "2":
			s.viewFlight(in)
		case "3":
			s.addPassenger(in)
		case "4":
			s.bookTicket(in)
		case "5":
			s.cancelBooking(in)
		case "6":
			s.addFlight(in)
		case "7":
			s.findFlights(in)
		case "8":
			s.findPassengers(in)
		case "9":
			s.drainWaitlist(in)
		case "0":
			fmt.Fprintln(s.stdout(), "goodbye")
			return nil
		default:
			fmt.Fprintln(s.stdout(), "unknown choice")
		}
	}
}

func (s *System) writeMenu() {
	w := s.stdout()
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, " airbook - seat inventory and waitlists")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "1. list flights")
	fmt.Fprintln(w, "2. view flight")
	fmt.Fprintln(w, "3. add passenger")
	fmt.Fprintln(w, "4. book ticket")
	fmt.Fprintln(w, "5. cancel booking")
	fmt.Fprintln(w, "6. add flight")
	fmt.Fprintln(w, "7. find flights by route")
	fmt.Fprintln(w, "8. find passengers by name")
	fmt.Fprintln(w, "9. drain a waitlist")
	fmt.Fprintln(w, "0. exit")
}

func (s *System) listFlights() {
	w := s.stdout()
	flights := s.Flights()
	if len(flights) == 0 {
		fmt.Fprintln(w, "no flights available")
		return
	}
	fmt.Fprintf(w, "%-10s %-12s %-12s %8s %8s %8s\n",
		"flight", "origin", "destination", "booked", "capacity", "waitlist")
	for _, f := range flights {
		fmt.Fprintf(w, "%-10s %-12s %-12s %8d %8d %8d\n",
			f.ID, f.Origin, f.Destination, f.Booked(), f.Capacity(), f.Waiting())
	}
}

func (s *System) viewFlight(in *bufio.Scanner) {
	f, ok := s.promptFlight(in)
	if !ok {
		return
	}
	f.WriteStatus(s.stdout(), s.PassengerName)
}

func (s *System) addPassenger(in *bufio.Scanner) {
	name, ok := s.readLine(in, "passenger name: ")
	if !ok || strings.TrimSpace(name) == "" {
		fmt.Fprintln(s.stdout(), "no name given")
		return
	}
	id, err := s.AddPassenger(strings.TrimSpace(name))
	if err != nil {
		fmt.Fprintln(s.stderr(), err)
		return
	}
	fmt.Fprintf(s.stdout(), "passenger registered with id %d\n", id)
}

func (s *System) bookTicket(in *bufio.Scanner) {
	id, ok := s.readInt(in, "passenger id: ")
	if !ok {
		return
	}
	fid, ok := s.readLine(in, "flight id: ")
	if !ok {
		return
	}
	res, err := s.Book(id, strings.TrimSpace(fid))
	if err != nil {
		fmt.Fprintln(s.stdout(), err)
		return
	}
	switch res {
	case Confirmed:
		fmt.Fprintf(s.stdout(), "booking confirmed for passenger %d\n", id)
	case Waitlisted:
		fmt.Fprintf(s.stdout(), "flight is full, passenger %d added to the waitlist\n", id)
	}
}

func (s *System) cancelBooking(in *bufio.Scanner) {
	id, ok := s.readInt(in, "passenger id: ")
	if !ok {
		return
	}
	fid, ok := s.readLine(in, "flight id: ")
	if !ok {
		return
	}
	promoted, found, err := s.Cancel(id, strings.TrimSpace(fid))
	if err != nil {
		fmt.Fprintln(s.stdout(), err)
		return
	}
	if !found {
		// also reported for passengers that only sit on the waitlist,
		// those bookings cannot be cancelled
		fmt.Fprintf(s.stdout(), "passenger %d holds no confirmed seat\n", id)
		return
	}
	fmt.Fprintf(s.stdout(), "booking cancelled for passenger %d\n", id)
	if promoted != NoPromotion {
		fmt.Fprintf(s.stdout(), "passenger %d (%s) moved from the waitlist to a seat\n",
			promoted, displayName(promoted, s.PassengerName))
	}
}

func (s *System) addFlight(in *bufio.Scanner) {
	id, ok := s.readLine(in, "flight id: ")
	if !ok {
		return
	}
	origin, ok := s.readLine(in, "origin: ")
	if !ok {
		return
	}
	dest, ok := s.readLine(in, "destination: ")
	if !ok {
		return
	}
	capacity, ok := s.readInt(in, "capacity: ")
	if !ok {
		return
	}
	err := s.AddFlight(strings.TrimSpace(id), strings.TrimSpace(origin), strings.TrimSpace(dest), capacity)
	if err != nil {
		fmt.Fprintln(s.stdout(), err)
		return
	}
	fmt.Fprintf(s.stdout(), "flight %s added\n", strings.TrimSpace(id))
}

func (s *System) findFlights(in *bufio.Scanner) {
	pattern, ok := s.readLine(in, "route pattern (e.g. DEL/* or **/NRT): ")
	if !ok {
		return
	}
	flights, err := s.FindFlights(strings.TrimSpace(pattern))
	if err != nil {
		fmt.Fprintln(s.stdout(), "bad pattern:", err)
		return
	}
	if len(flights) == 0 {
		fmt.Fprintln(s.stdout(), "no matching flights")
		return
	}
	for _, f := range flights {
		fmt.Fprintf(s.stdout(), "%-10s %s\n", f.ID, f.Route())
	}
}

func (s *System) findPassengers(in *bufio.Scanner) {
	pattern, ok := s.readLine(in, "name pattern (e.g. A* or *Jones*): ")
	if !ok {
		return
	}
	ps, err := s.FindPassengers(strings.TrimSpace(pattern))
	if err != nil {
		fmt.Fprintln(s.stdout(), "bad pattern:", err)
		return
	}
	if len(ps) == 0 {
		fmt.Fprintln(s.stdout(), "no matching passengers")
		return
	}
	for _, p := range ps {
		fmt.Fprintf(s.stdout(), "%4d  %s\n", p.ID, p.Name)
	}
}

func (s *System) drainWaitlist(in *bufio.Scanner) {
	f, ok := s.promptFlight(in)
	if !ok {
		return
	}
	confirm, ok := s.readLine(in, "draining empties the waitlist, continue? (y/n): ")
	if !ok || strings.TrimSpace(confirm) != "y" {
		fmt.Fprintln(s.stdout(), "aborted")
		return
	}
	entries := f.DrainWaitlist()
	if len(entries) == 0 {
		fmt.Fprintln(s.stdout(), "waitlist is empty")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(s.stdout(), "%3d. passenger %d (%s), priority %d\n",
			i+1, e.Passenger, displayName(e.Passenger, s.PassengerName), e.Priority)
	}
	fmt.Fprintln(s.stdout(), "the waitlist is now empty")
}

func (s *System) promptFlight(in *bufio.Scanner) (*Flight, bool) {
	id, ok := s.readLine(in, "flight id: ")
	if !ok {
		return nil, false
	}
	f, ok := s.Flight(strings.TrimSpace(id))
	if !ok {
		fmt.Fprintf(s.stdout(), "flight '%s' not found\n", strings.TrimSpace(id))
		return nil, false
	}
	return f, true
}

func (s *System) readLine(in *bufio.Scanner, prompt string) (string, bool) {
	fmt.Fprint(s.stdout(), prompt)
	if !in.Scan() {
		return "", false
	}
	return in.Text(), true
}

func (s *System) readInt(in *bufio.Scanner, prompt string) (int, bool) {
	for {
		line, ok := s.readLine(in, prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, true
		}
		fmt.Fprintln(s.stdout(), "please enter a number")
	}
}
