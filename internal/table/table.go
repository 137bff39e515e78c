// Package table is the interactive card table shared by the terminal and
// window hosts: a fan of cards dealt from a draw pile, with selection,
// hover lift, discard and reordering wired to the fan's gesture events.
package table

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/host"
)

const (
	// ArcRadius is the minimum radius used when arc mode is toggled on.
	ArcRadius = 400

	pileMargin = 20
	logSize    = 8
)

// Entry is one logged fan event, stamped with virtual time.
type Entry struct {
	At    time.Duration
	Kind  fan.EventKind
	Name  string
	Index int
}

func (e Entry) String() string {
	return fmt.Sprintf("%8s %-11s %-4s #%d", e.At.Round(time.Millisecond), e.Kind, e.Name, e.Index)
}

// Table owns a host rig and the cards around it.
type Table struct {
	Rig *host.Rig

	logger   *log.Logger
	pile     []*card.Card
	rank     map[string]int
	names    map[string]string
	selected map[string]bool
	hovered  string
	log      []Entry
	arcOn    bool
}

// New creates an empty w×h table with a full standard deck on the pile.
func New(w, h float64, cfg fan.Config, logger *log.Logger) (*Table, error) {
	if logger == nil {
		logger = log.Default()
	}
	rig, err := host.NewRig(w, h, fan.WithConfig(cfg), fan.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	t := &Table{
		Rig:      rig,
		logger:   logger,
		pile:     card.Deck(card.StandardNames()...),
		rank:     make(map[string]int),
		names:    make(map[string]string),
		selected: make(map[string]bool),
		arcOn:    cfg.MinRadius > 0,
	}
	for i, c := range t.pile {
		t.rank[c.Key()] = i
		t.names[c.Key()] = c.Name
	}
	t.subscribe()
	return t, nil
}

func (t *Table) subscribe() {
	f := t.Rig.Fan
	for _, k := range []fan.EventKind{fan.EventAdded, fan.EventRemoved, fan.EventPress, fan.EventLongPress, fan.EventDragBegin, fan.EventDrop} {
		f.On(k, t.record)
	}
	f.On(fan.EventPress, func(ev fan.Event) { t.ToggleSelect(ev.Item.Key()) })
	f.On(fan.EventLongPress, func(ev fan.Event) {
		if err := t.Discard(ev.Index, true); err != nil {
			t.logger.Warn("Discard failed", "err", err)
		}
	})
	f.On(fan.EventDrop, func(ev fan.Event) {
		if err := t.DropAt(ev.Item.Key(), ev.Contact.X); err != nil {
			t.logger.Warn("Drop failed", "err", err)
		}
	})
	f.On(fan.EventHoverEnter, func(ev fan.Event) {
		t.hovered = ev.Item.Key()
		t.applyLift()
	})
	f.On(fan.EventHoverLeave, func(ev fan.Event) {
		if t.hovered == ev.Item.Key() {
			t.hovered = ""
			t.applyLift()
		}
	})
}

func (t *Table) record(ev fan.Event) {
	e := Entry{At: t.Rig.Clock.Now(), Kind: ev.Kind, Index: ev.Index}
	if ev.Item != nil {
		e.Name = t.names[ev.Item.Key()]
	}
	t.log = append(t.log, e)
	if len(t.log) > logSize {
		t.log = t.log[len(t.log)-logSize:]
	}
	t.logger.Debug("Fan event", "kind", ev.Kind, "card", e.Name, "index", ev.Index)
}

// Log returns the most recent events, oldest first.
func (t *Table) Log() []Entry { return slices.Clone(t.log) }

// Cards returns the cards in the fan, in order.
func (t *Table) Cards() []*card.Card {
	items := t.Rig.Fan.Items()
	out := make([]*card.Card, len(items))
	for i, it := range items {
		out[i] = it.(*card.Card)
	}
	return out
}

// PileLen returns the number of cards left to draw.
func (t *Table) PileLen() int { return len(t.pile) }

// Name returns the display name of a card key.
func (t *Table) Name(key string) string { return t.names[key] }

// Selected reports whether the card with key is selected.
func (t *Table) Selected(key string) bool { return t.selected[key] }

// Arc reports whether arc mode is on.
func (t *Table) Arc() bool { return t.arcOn }

// PilePosition is the lower-left corner where new cards are dealt from.
func (t *Table) PilePosition() (x, y float64) {
	w, _ := t.Rig.Fan.Size()
	return w - t.Rig.Fan.Config().ItemWidth - pileMargin, pileMargin
}

// Deal moves n cards from the pile to the end of the fan at once.
func (t *Table) Deal(n int) error {
	for range n {
		if len(t.pile) == 0 {
			break
		}
		c := t.pile[0]
		if err := t.Rig.Fan.Insert(t.Rig.Fan.Len(), c); err != nil {
			return err
		}
		t.pile = t.pile[1:]
	}
	return nil
}

// Add draws one card and slides it into the fan from the pile.
func (t *Table) Add() (*card.Card, error) {
	if len(t.pile) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "pile is empty")
	}
	c := t.pile[0]
	cfg := t.Rig.Fan.Config()
	sp := host.NewSprite()
	sp.SetSize(cfg.ItemWidth, cfg.ItemHeight)
	sp.SetPosition(t.PilePosition())
	if err := t.Rig.Fan.InsertWithHandle(t.Rig.Fan.Len(), c, sp); err != nil {
		return nil, err
	}
	t.pile = t.pile[1:]
	return c, nil
}

// Discard removes the card at index and returns it to the bottom of the
// pile. With recycle the card fades out and its sprite is pooled.
func (t *Table) Discard(index int, recycle bool) error {
	it, _, err := t.Rig.Fan.Pop(index, recycle)
	if err != nil {
		return err
	}
	delete(t.selected, it.Key())
	if t.hovered == it.Key() {
		t.hovered = ""
	}
	t.pile = append(t.pile, it.(*card.Card))
	t.applyLift()
	return nil
}

// Shuffle reorders the fan randomly.
func (t *Table) Shuffle(rng *rand.Rand) error {
	items := t.Rig.Fan.Items()
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return t.replace(items)
}

// Sort restores deck order.
func (t *Table) Sort() error {
	items := t.Rig.Fan.Items()
	slices.SortFunc(items, func(a, b fan.Item) int { return cmp.Compare(t.rank[a.Key()], t.rank[b.Key()]) })
	return t.replace(items)
}

func (t *Table) replace(items []fan.Item) error {
	if err := t.Rig.Fan.Replace(items); err != nil {
		return err
	}
	t.applyLift()
	return nil
}

// ToggleSelect flips the selection of the card with key.
func (t *Table) ToggleSelect(key string) {
	if t.selected[key] {
		delete(t.selected, key)
	} else {
		t.selected[key] = true
	}
	t.applyLift()
}

// ToggleArc switches between linear and arc layout.
func (t *Table) ToggleArc() error {
	cfg := t.Rig.Fan.Config()
	if t.arcOn {
		cfg.MinRadius = -1
	} else {
		cfg.MinRadius = ArcRadius
	}
	if err := t.Rig.Fan.SetConfig(cfg); err != nil {
		return err
	}
	t.arcOn = !t.arcOn
	return nil
}

// Hover forwards the pointer position to the fan.
func (t *Table) Hover(x, y float64) { t.Rig.Fan.Hover(x, y) }

// DropAt moves the card with key to the slot nearest x.
func (t *Table) DropAt(key string, x float64) error {
	from := t.Rig.Fan.Index(key)
	if from < 0 {
		return errors.New(errors.ErrCodeNotFound, "card %q not in fan", key)
	}
	to := 0
	for _, st := range t.Rig.Fan.States() {
		if st.Key == key || st.Index < 0 || st.Status == fan.StatusRemoving || st.Status == fan.StatusRecycling {
			continue
		}
		if st.Target.Center().X < x {
			to++
		}
	}
	if to >= t.Rig.Fan.Len() {
		to = t.Rig.Fan.Len() - 1
	}
	if err := t.Rig.Fan.Move(from, to); err != nil {
		return err
	}
	t.applyLift()
	return nil
}

// applyLift lifts the selected cards and the hovered one.
func (t *Table) applyLift() {
	var lifted []int
	for i, it := range t.Rig.Fan.Items() {
		if k := it.Key(); t.selected[k] || k == t.hovered {
			lifted = append(lifted, i)
		}
	}
	t.Rig.Fan.SetLifted(lifted...)
}

// Step advances the table clock by dt.
func (t *Table) Step(dt time.Duration) { t.Rig.Clock.Advance(dt) }
