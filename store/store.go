// Package store keeps the passenger and flight registries in a bolt database
// so they survive between runs. Seat assignments and waitlists are rebuilt
// fresh on every run and are never written here.
package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
)

var (
	bktPassengers = []byte("passengers")
	bktFlights    = []byte("flights")
)

// A Passenger is one registry entry, an id with a display name.
type Passenger struct {
	ID   int
	Name string
}

// A Flight is the persistent definition of a flight, without seat state.
type Flight struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Capacity    int    `json:"capacity"`
}

type Store struct {
	db   *bolt.DB
	path string
}

// Open opens or creates the registry database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bktPassengers); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bktFlights)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddPassenger registers a new passenger under the next free id.
func (s *Store) AddPassenger(name string) (id int, err error) {
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktPassengers)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = int(seq)
		return b.Put(key(id), []byte(name))
	})
	return id, err
}

// PutPassenger registers a passenger under an explicit id, overwriting any
// previous name. The bucket sequence is raised so ids handed out by
// AddPassenger never collide with explicitly registered ones.
func (s *Store) PutPassenger(id int, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktPassengers)
		if uint64(id) > b.Sequence() {
			if err := b.SetSequence(uint64(id)); err != nil {
				return err
			}
		}
		return b.Put(key(id), []byte(name))
	})
}

// Passenger looks up a passenger name, ok is false for unknown ids.
func (s *Store) Passenger(id int) (name string, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bktPassengers).Get(key(id))
		if v != nil {
			name = string(v)
			ok = true
		}
		return nil
	})
	return name, ok, err
}

// Passengers returns every registered passenger in id order.
func (s *Store) Passengers() (out []Passenger, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bktPassengers).ForEach(func(k, v []byte) error {
			out = append(out, Passenger{
				ID:   int(binary.BigEndian.Uint64(k)),
				Name: string(v),
			})
			return nil
		})
	})
	return out, err
}

// PutFlight stores a flight definition, overwriting a previous one with the
// same id.
func (s *Store) PutFlight(f Flight) error {
	v, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bktFlights).Put([]byte(f.ID), v)
	})
}

// Flight looks up a single flight definition, ok is false for unknown ids.
func (s *Store) Flight(id string) (f Flight, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bktFlights).Get([]byte(id))
		if v == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(v, &f)
	})
	return f, ok, err
}

// Flights returns every stored flight definition in id order.
func (s *Store) Flights() (out []Flight, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bktFlights).ForEach(func(k, v []byte) error {
			var f Flight
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			out = append(out, f)
			return nil
		})
	})
	return out, err
}

func key(id int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}
