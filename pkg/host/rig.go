package host

import (
	"time"

	"github.com/matzehuels/cardfan/pkg/fan"
)

// FrameStep is one 60 Hz frame.
const FrameStep = time.Second / 60

// Rig wires a fan to a clock and a stage.
type Rig struct {
	Clock *Clock
	Stage *Stage
	Fan   *fan.Fan
}

// NewRig creates a fan of size w×h hosted on a fresh clock and stage. The
// stage hit test resolves contacts.
func NewRig(w, h float64, opts ...fan.Option) (*Rig, error) {
	r := &Rig{Clock: NewClock(), Stage: NewStage()}
	hit := r.Stage.HitTester(func(h fan.Handle) (int, bool) {
		if r.Fan == nil {
			return -1, false
		}
		return r.Fan.IndexOf(h)
	})
	f, err := fan.New(r.Stage.Env(r.Clock, hit), Factory, append([]fan.Option{fan.WithSize(w, h)}, opts...)...)
	if err != nil {
		return nil, err
	}
	r.Fan = f
	return r, nil
}

// Step advances the clock by one frame.
func (r *Rig) Step() {
	r.Clock.Advance(FrameStep)
}

// Settle runs frames until nothing is left to do, for at most limit.
func (r *Rig) Settle(limit time.Duration) time.Duration {
	return r.Clock.Settle(FrameStep, limit)
}
