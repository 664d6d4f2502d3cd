// Package store is the minimal stand-in for the UPS-monitoring daemon's
// variable store that spec.md places out of scope: a mutex-guarded map of
// named variables, populated by the poll loop and read by the status API.
package store

import (
	"sync"
	"time"

	"apc-modbus-hid-driver/internal/modbus"
)

// Variable is one named entry of the store: its access flags, its last
// decoded numeric value and formatted string, and (if the last poll
// failed) the error that was recorded instead.
type Variable struct {
	Name      string
	Flags     modbus.AccessFlag
	Numeric   float64
	Formatted string
	UpdatedAt time.Time
	Err       string
}

// Store holds the variable map with its own synchronization, grounded on
// the teacher's DeviceStats/DeviceStatsSnapshot split: writers lock for
// the whole mutation, readers get a copy that carries no mutex.
type Store struct {
	mu   sync.RWMutex
	vars map[string]*Variable
}

// New returns an empty Store.
func New() *Store {
	return &Store{vars: make(map[string]*Variable)}
}

// Define registers name with the given access flags, matching spec.md
// §6's define(name, flags, format, lookup) collaborator contract. format
// and lookup are carried by the binding table itself (Binding.DataType and
// Binding.Formatter) rather than duplicated here; Define only reserves the
// slot so a Snapshot taken before the first poll still lists every
// binding.
func (s *Store) Define(name string, flags modbus.AccessFlag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vars[name]; ok {
		return
	}
	s.vars[name] = &Variable{Name: name, Flags: flags}
}

// Set records a successful poll or write result for name.
func (s *Store) Set(name string, numeric float64, formatted string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vars[name]
	if !ok {
		v = &Variable{Name: name}
		s.vars[name] = v
	}
	v.Numeric = numeric
	v.Formatted = formatted
	v.UpdatedAt = time.Now()
	v.Err = ""
}

// SetError records that the most recent poll or write of name failed.
// Per spec.md §7, failure of one variable must not poison the driver: the
// previous value is left in place and only Err/UpdatedAt change.
func (s *Store) SetError(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vars[name]
	if !ok {
		v = &Variable{Name: name}
		s.vars[name] = v
	}
	v.UpdatedAt = time.Now()
	v.Err = err.Error()
}

// Get returns a copy of name's current state.
func (s *Store) Get(name string) (Variable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}

// Snapshot returns a copy of every variable currently defined, keyed by
// name, safe to range over without holding the store's lock.
func (s *Store) Snapshot() map[string]Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Variable, len(s.vars))
	for name, v := range s.vars {
		out[name] = *v
	}
	return out
}
