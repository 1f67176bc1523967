// Command airbook manages flight seat inventory and passenger waitlists
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/shibukawa/configdir"

	"github.com/om-bhutkar-05/airbook/booking"
	"github.com/om-bhutkar-05/airbook/conf"
	"github.com/om-bhutkar-05/airbook/store"
)

var (
	fVerbose  bool
	fHelp     bool
	fResetDB  bool
	fSchedule string
)

func init() {
	flag.BoolVar(&fVerbose, "v", false, "verbose logging of booking events")
	flag.BoolVar(&fHelp, "h", false, "show help information")
	flag.BoolVar(&fResetDB, "reset-db", false, "completely wipe the passenger and flight registry")
	flag.StringVar(&fSchedule, "i", "", "schedule file with seed passengers, flights and bookings")
}

func main() {
	options := handleArgs()
	reg := loadStore()
	defer reg.Close()

	sys, err := booking.NewSystem(reg, options)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if fSchedule != "" {
		applySchedule(sys, fSchedule)
	}

	doRun(sys)
}

func doRun(sys *booking.System) {
	ctx, cf := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cf()
		stopped <- struct{}{}
	}()

	if err := sys.Run(ctx); err != nil {
		select {
		case <-stopped:
			// we were interupted so simply quit
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(0)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func handleArgs() (options booking.Options) {
	flag.Parse()
	if fHelp {
		showHelp()
		os.Exit(1)
	}

	if fResetDB {
		resetDB()
		os.Exit(0)
	}

	if fVerbose {
		options.LogEvents = true
	}
	return
}

func getDBPath() string {
	configDirs := configdir.New("om-bhutkar-05", "airbook")
	cf := configDirs.QueryCacheFolder()
	if err := cf.MkdirAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return filepath.Join(cf.Path, "registry.db")
}

func loadStore() *store.Store {
	s, err := store.Open(getDBPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return s
}

func applySchedule(sys *booking.System, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	sc, err := conf.Parse(f)
	if err != nil {
		if pe, ok := err.(conf.ParseError); ok {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", path, pe.Pos.Line, pe.Pos.Column, pe.Err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	if err := sys.ApplySchedule(sc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resetDB() {
	err := os.Remove(getDBPath())
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func showHelp() {
	flag.PrintDefaults()
}
