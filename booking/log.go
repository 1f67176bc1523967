package booking

import "fmt"

func (s *System) logEvent(format string, args ...interface{}) {
	if !s.LogEvents {
		return
	}
	fmt.Fprintf(s.stderr(), format+"\n", args...)
}
