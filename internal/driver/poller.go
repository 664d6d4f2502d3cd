package driver

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"apc-modbus-hid-driver/internal/modbus"
	"apc-modbus-hid-driver/internal/store"
)

// Poller runs the poll cycle over modbus.Bindings, pushing results into a
// Store. Grounded on the teacher's Device struct in controller.go: a
// mutex-guarded wrapper around the transport plus cumulative stats, with a
// snapshot type that copies out without carrying the mutex.
type Poller struct {
	Engine *modbus.Engine
	Store  *store.Store

	mu    sync.RWMutex
	stats PollStats
}

// PollStats tracks cumulative poll-cycle outcomes, mirroring the shape of
// the teacher's DeviceStats/DeviceStatsSnapshot pair.
type PollStats struct {
	Cycles       uint64
	ReadOK       uint64
	ReadFailed   uint64
	LastCycleID  string
	LastCycleAt  time.Time
	LastDuration time.Duration
}

// NewPoller builds a Poller over engine and store, defining every
// non-command binding entry in the store up front so a status snapshot
// taken before the first poll still lists every known variable.
func NewPoller(engine *modbus.Engine, st *store.Store) *Poller {
	for _, b := range modbus.Bindings {
		if b.IsCommand() {
			continue
		}
		st.Define(b.Name, b.Access)
	}
	return &Poller{Engine: engine, Store: st}
}

// Stats returns a copy of the cumulative poll statistics.
func (p *Poller) Stats() PollStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// PollOnce runs one pass over every read-eligible binding entry in
// declaration order (spec.md §4.H, §9: "iteration order for polls follows
// declaration order"). One entry's failure does not stop the cycle
// (spec.md §7: "failure of one variable must not poison the driver").
func (p *Poller) PollOnce() {
	cycleID := uuid.NewString()
	start := time.Now()

	for _, b := range modbus.Bindings {
		if b.IsCommand() || b.Access&modbus.AccessRead == 0 {
			continue
		}
		if err := p.pollEntry(b); err != nil {
			log.Printf("driver: poll %s: cycle=%s: %v", b.Name, cycleID, err)
			p.Store.SetError(b.Name, err)
			p.mu.Lock()
			p.stats.ReadFailed++
			p.mu.Unlock()
			continue
		}
		p.mu.Lock()
		p.stats.ReadOK++
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.stats.Cycles++
	p.stats.LastCycleID = cycleID
	p.stats.LastCycleAt = start
	p.stats.LastDuration = time.Since(start)
	p.mu.Unlock()
}

// pollEntry reads one binding entry, decodes it per its DataType, and
// pushes the result into the store.
func (p *Poller) pollEntry(b modbus.Binding) error {
	data, err := p.Engine.ReadHolding(b.Register, b.Length)
	if err != nil {
		return fmt.Errorf("read_holding: %w", err)
	}

	numeric, formatted, err := decode(b, data)
	if err != nil {
		return err
	}

	p.Store.Set(b.Name, numeric, formatted)
	return nil
}

// QuickPollNames returns the names of every binding entry flagged for
// quick-poll priority, in declaration order.
func QuickPollNames() []string {
	var names []string
	for _, b := range modbus.Bindings {
		if b.Access&modbus.AccessQuickPoll != 0 {
			names = append(names, b.Name)
		}
	}
	return names
}

// Run polls every interval until stop is closed.
func (p *Poller) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.PollOnce()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.PollOnce()
		}
	}
}

// decode turns a binding entry's raw register bytes into a numeric value
// and its formatted string, per spec.md §4.C/§4.I.
func decode(b modbus.Binding, data []byte) (numeric float64, formatted string, err error) {
	switch modbus.DecodeKind(b.DataType) {
	case modbus.KindBinaryPoint:
		numeric = modbus.DecodeBinaryPoint(b.DataType, data, b.ByteLen())
	default:
		raw := modbus.BEToUint(data, b.ByteLen())
		numeric = float64(raw)
	}
	return numeric, b.Formatter.Format(numeric), nil
}
