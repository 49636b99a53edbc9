// pkg/telemetry/recorder.go
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/opd-ai/go-rocketsim/pkg/engine"
	"github.com/opd-ai/go-rocketsim/pkg/event"
)

// Header is the first row of every trajectory file
var Header = []string{"tick", "time", "vehicle", "kind", "x", "y", "vx", "vy", "mass", "thrust", "grounded"}

// StateSource provides simulation snapshots
type StateSource interface {
	State() engine.SimulationState
}

// Recorder writes one CSV row per vehicle for every sampled tick
type Recorder struct {
	w           *csv.Writer
	closer      io.Closer
	sampleEvery int
	seen        uint64
	rows        int
	err         error
	detach      func()
}

// NewRecorder writes the header to w and returns a recorder that keeps one
// tick out of every sampleEvery. Values below 1 keep every tick.
func NewRecorder(w io.Writer, sampleEvery int) (*Recorder, error) {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	r := &Recorder{
		w:           csv.NewWriter(w),
		sampleEvery: sampleEvery,
	}
	if err := r.w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write trajectory header: %w", err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write trajectory header: %w", err)
	}
	return r, nil
}

// Create opens path for writing, truncating it, and returns a recorder that
// closes the file on Close.
func Create(path string, sampleEvery int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trajectory file: %w", err)
	}
	r, err := NewRecorder(f, sampleEvery)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record appends the vehicles of a snapshot. Paused snapshots are skipped
// since nothing moved.
func (r *Recorder) Record(state engine.SimulationState) error {
	if state.Paused {
		return nil
	}
	r.seen++
	if (r.seen-1)%uint64(r.sampleEvery) != 0 {
		return nil
	}

	tick := strconv.FormatUint(state.Tick, 10)
	elapsed := formatFloat(state.ElapsedTime)
	for _, v := range state.Vehicles {
		record := []string{
			tick,
			elapsed,
			v.Name,
			string(v.Kind),
			formatFloat(v.Position.X),
			formatFloat(v.Position.Y),
			formatFloat(v.Velocity.X),
			formatFloat(v.Velocity.Y),
			formatFloat(v.Mass),
			strconv.FormatBool(v.ThrustActive),
			strconv.FormatBool(v.Grounded),
		}
		if err := r.w.Write(record); err != nil {
			return fmt.Errorf("failed to write trajectory row: %w", err)
		}
		r.rows++
	}
	r.w.Flush()
	return r.w.Error()
}

// Attach records a snapshot from src after every completed tick. The first
// write error is kept and reported by Err.
func (r *Recorder) Attach(bus *event.Bus, src StateSource) event.SubscriptionID {
	id := bus.Subscribe(event.TickCompleted, func(event.Event) {
		if r.err != nil {
			return
		}
		r.err = r.Record(src.State())
	})
	r.detach = func() {
		bus.Unsubscribe(event.TickCompleted, id)
	}
	return id
}

// Err returns the first error hit by an attached recorder
func (r *Recorder) Err() error {
	return r.err
}

// Rows returns the number of data rows written
func (r *Recorder) Rows() int {
	return r.rows
}

// Close detaches the recorder from its bus, flushes buffered rows and
// closes the file opened by Create.
func (r *Recorder) Close() error {
	if r.detach != nil {
		r.detach()
		r.detach = nil
	}
	r.w.Flush()
	err := r.w.Error()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
