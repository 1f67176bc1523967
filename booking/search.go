package booking

import (
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/gobwas/glob"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/om-bhutkar-05/airbook/store"
)

// FindFlights returns the flights whose route matches the pattern. Routes
// are matched as "ORIGIN/DESTINATION" paths, so "DEL/*" finds everything
// leaving DEL and "**/NRT" everything arriving in NRT.
func (s *System) FindFlights(pattern string) ([]*Flight, error) {
	var out []*Flight
	for _, f := range s.Flights() {
		ok, err := doublestar.Match(pattern, f.Route())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// FindPassengers returns the registered passengers whose name matches the
// glob pattern, e.g. "A*" or "*Jones*". Results are sorted by name using a
// case insensitive collation.
func (s *System) FindPassengers(pattern string) ([]store.Passenger, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	all, err := s.reg.Passengers()
	if err != nil {
		return nil, err
	}
	var out []store.Passenger
	for _, p := range all {
		if g.Match(p.Name) {
			out = append(out, p)
		}
	}
	sortByName(out)
	return out, nil
}

func sortByName(ps []store.Passenger) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.Slice(ps, func(i, j int) bool {
		if r := c.CompareString(ps[i].Name, ps[j].Name); r != 0 {
			return r < 0
		}
		return ps[i].ID < ps[j].ID
	})
}
