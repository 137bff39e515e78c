package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/fan/pool"
	"github.com/matzehuels/cardfan/pkg/host"
	"github.com/matzehuels/cardfan/pkg/observability"
)

const simulateLimit = time.Minute

// simulateCommand runs a headless fan on a virtual clock.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		count, remove int
		noRecycle     bool
		step          time.Duration
		seed          uint64
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless fan and report lifecycle statistics",
		Long: `Run a headless fan and report lifecycle statistics.

Deals --count cards, taps and drags the top card, removes --remove random
cards, then deals the same number again so recycled handles are reused.
Time is virtual: the run completes immediately and every event is stamped
with its simulated time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			sim := simulation{
				count:   count,
				remove:  min(remove, count),
				recycle: !noRecycle,
				step:    step,
				rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
				out:     cmd.OutOrStdout(),
				quiet:   quiet,
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			stats, err := sim.run(float64(cfg.Demo.Width), float64(cfg.Demo.Height), fan.WithConfig(cfg.Fan), fan.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			prog.doneSimulated(fmt.Sprintf("Simulated %d cards", count), stats.virtual, "redraws", stats.redraws)
			stats.print(sim.out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 7, "cards to deal")
	cmd.Flags().IntVarP(&remove, "remove", "r", 3, "cards to remove")
	cmd.Flags().BoolVar(&noRecycle, "no-recycle", false, "remove without fading out and pooling")
	cmd.Flags().DurationVar(&step, "step", time.Second/60, "virtual frame duration")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for removals")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the summary")

	return cmd
}

type simulation struct {
	count, remove int
	recycle       bool
	step          time.Duration
	rng           *rand.Rand
	out           io.Writer
	quiet         bool
}

// simStats counts hook calls during a simulation.
type simStats struct {
	redraws, animations   int
	removed, recycled     int
	acquired, reused      int
	released, kept        int
	gestures              map[string]int
	virtual               time.Duration
	pool                  pool.Stats
	finalCards, poolIdles int
}

func (s *simStats) OnRedraw(int, int, time.Duration) { s.redraws++ }
func (s *simStats) OnAnimationStart(string, int)     { s.animations++ }
func (s *simStats) OnRemoved(recycled bool) {
	s.removed++
	if recycled {
		s.recycled++
	}
}
func (s *simStats) OnAcquire(reused bool) {
	s.acquired++
	if reused {
		s.reused++
	}
}
func (s *simStats) OnRelease(kept bool) {
	s.released++
	if kept {
		s.kept++
	}
}
func (s *simStats) OnClassify(g string) { s.gestures[g]++ }

func (sim simulation) run(w, h float64, opts ...fan.Option) (*simStats, error) {
	stats := &simStats{gestures: make(map[string]int)}
	observability.SetFanHooks(stats)
	observability.SetPoolHooks(stats)
	observability.SetGestureHooks(stats)
	defer observability.Reset()

	rig, err := host.NewRig(w, h, opts...)
	if err != nil {
		return nil, err
	}
	clock := rig.Clock
	if !sim.quiet {
		for _, k := range []fan.EventKind{fan.EventAdded, fan.EventRemoved, fan.EventPress, fan.EventDragBegin, fan.EventDrop} {
			rig.Fan.On(k, func(ev fan.Event) {
				name := "-"
				if ev.Item != nil {
					name = fmt.Sprint(ev.Item)
				}
				fmt.Fprintf(sim.out, "%s %-10s %-4s %s\n",
					StyleNumber.Render(fmt.Sprintf("%7.3fs", clock.Now().Seconds())),
					ev.Kind, name, StyleDim.Render("#"+strconv.Itoa(ev.Index)))
			})
		}
	}

	settle := func() { clock.Settle(sim.step, simulateLimit) }
	names := card.StandardNames()
	deal := func(from, n int) error {
		for i := range n {
			c := card.New(names[(from+i)%len(names)])
			if err := rig.Fan.Insert(rig.Fan.Len(), c); err != nil {
				return err
			}
		}
		settle()
		return nil
	}

	if err := deal(0, sim.count); err != nil {
		return nil, err
	}
	sim.touch(rig)
	settle()

	for range sim.remove {
		if _, _, err := rig.Fan.Pop(sim.rng.IntN(rig.Fan.Len()), sim.recycle); err != nil {
			return nil, err
		}
	}
	settle()

	if err := deal(sim.count, sim.remove); err != nil {
		return nil, err
	}
	if err := rig.Fan.Validate(); err != nil {
		return nil, err
	}

	stats.pool = rig.Fan.PoolStats()
	stats.virtual = clock.Now()
	stats.finalCards = rig.Fan.Len()
	stats.poolIdles = rig.Fan.PoolLen()
	return stats, nil
}

// touch taps the top card, then drags it right and lets go.
func (sim simulation) touch(rig *host.Rig) {
	h, ok := rig.Fan.HandleAt(rig.Fan.Len() - 1)
	if !ok {
		return
	}
	sp := h.(*host.Sprite)
	x, y := sp.Center()
	f := rig.Fan

	f.ContactDown(fan.Contact{ID: 1, X: x, Y: y})
	f.ContactUp(fan.Contact{ID: 1, X: x, Y: y})

	f.ContactDown(fan.Contact{ID: 2, X: x, Y: y})
	for i := 1; i <= 10; i++ {
		rig.Clock.Advance(sim.step)
		f.ContactMove(fan.Contact{ID: 2, X: x + float64(10*i), Y: y})
	}
	f.ContactUp(fan.Contact{ID: 2, X: x + 100, Y: y})
}

func (s *simStats) print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Summary"))
	printKeyValue(w, "cards", strconv.Itoa(s.finalCards))
	printKeyValue(w, "virtual", s.virtual.Round(time.Millisecond).String())
	printKeyValue(w, "redraws", strconv.Itoa(s.redraws))
	printKeyValue(w, "animations", strconv.Itoa(s.animations))
	printKeyValue(w, "removed", fmt.Sprintf("%d (%d recycled)", s.removed, s.recycled))
	printKeyValue(w, "acquired", fmt.Sprintf("%d (%d reused)", s.acquired, s.reused))
	printKeyValue(w, "released", fmt.Sprintf("%d (%d kept)", s.released, s.kept))
	printKeyValue(w, "handles", fmt.Sprintf("%d created, %d discarded", s.pool.Created, s.pool.Discarded))
	printKeyValue(w, "pooled", strconv.Itoa(s.poolIdles))
	for _, g := range []string{"tap", "drag", "long-press"} {
		if n := s.gestures[g]; n > 0 {
			printKeyValue(w, g, strconv.Itoa(n))
		}
	}
}
