package fan_test

import (
	"testing"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/host"
)

// In an 800×600 linear fan of three cards the slots start at x=292, 340
// and 388. Each card is 120 wide, so only a 48-unit strip of the first two
// is uncovered.
const (
	stripX0 = 300 // on card 0 only
	centerY = 300
	topX2   = 448 // center of card 2
)

func gestureRig(t *testing.T, opts ...fan.Option) (*host.Rig, []*card.Card, *recorder) {
	t.Helper()
	r := newRig(t, opts...)
	cards := deal(t, r, "A", "B", "C")
	rec := record(r.Fan,
		fan.EventPress, fan.EventLongPress, fan.EventDragBegin, fan.EventDrop,
		fan.EventHoverEnter, fan.EventHoverLeave)
	return r, cards, rec
}

func TestTap(t *testing.T) {
	r, cards, rec := gestureRig(t)

	if !r.Fan.ContactDown(fan.Contact{ID: 1, X: stripX0, Y: centerY}) {
		t.Fatal("ContactDown() on card 0 not claimed")
	}
	r.Fan.ContactMove(fan.Contact{ID: 1, X: stripX0 + 3, Y: centerY + 2})
	if !r.Fan.ContactUp(fan.Contact{ID: 1, X: stripX0 + 3, Y: centerY + 2}) {
		t.Fatal("ContactUp() not claimed")
	}

	ev, ok := rec.last(fan.EventPress)
	if !ok || ev.Item != cards[0] || ev.Index != 0 {
		t.Fatalf("press = %+v, want card 0", ev)
	}
	if len(rec.events) != 1 {
		t.Errorf("events = %d, want only press", len(rec.events))
	}

	// The topmost card wins where cards overlap.
	r.Fan.ContactDown(fan.Contact{ID: 2, X: topX2 - 50, Y: centerY})
	r.Fan.ContactUp(fan.Contact{ID: 2, X: topX2 - 50, Y: centerY})
	if ev, _ := rec.last(fan.EventPress); ev.Index != 2 {
		t.Errorf("press index = %d, want 2", ev.Index)
	}

	if r.Fan.ContactDown(fan.Contact{ID: 3, X: 10, Y: 10}) {
		t.Error("ContactDown() outside every card was claimed")
	}
}

func TestLongPress(t *testing.T) {
	r, cards, rec := gestureRig(t)

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	for range 40 {
		r.Step()
	}
	ev, ok := rec.last(fan.EventLongPress)
	if !ok || ev.Item != cards[2] {
		t.Fatalf("long-press = %+v, want card 2", ev)
	}

	// No drag after a long press.
	r.Fan.ContactMove(fan.Contact{ID: 1, X: topX2 + 100, Y: centerY})
	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2 + 100, Y: centerY})
	if rec.count(fan.EventPress, "")+rec.count(fan.EventDragBegin, "")+rec.count(fan.EventDrop, "") != 0 {
		t.Errorf("unexpected events after long press: %+v", rec.events)
	}
}

func TestDrag(t *testing.T) {
	r, cards, rec := gestureRig(t)
	sp := sprite(t, r, cards[2].Key())
	x0, y0 := sp.Position()

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	r.Fan.ContactMove(fan.Contact{ID: 1, X: topX2 + 10, Y: centerY})
	if rec.count(fan.EventDragBegin, "") != 0 {
		t.Fatal("drag began below the threshold")
	}
	r.Fan.ContactMove(fan.Contact{ID: 1, X: topX2 + 30, Y: centerY})
	if ev, ok := rec.last(fan.EventDragBegin); !ok || ev.Item != cards[2] {
		t.Fatalf("drag-begin = %+v, want card 2", ev)
	}
	r.Fan.ContactMove(fan.Contact{ID: 1, X: topX2 + 40, Y: centerY + 5})
	if x, y := sp.Position(); x != x0+40 || y != y0+5 {
		t.Errorf("dragged to (%v, %v), want (%v, %v)", x, y, x0+40, y0+5)
	}

	// Layout changes while dragging leave the dragged handle alone.
	r.Fan.SetLifted(0)
	r.Step()
	if x, _ := sp.Position(); x != x0+40 {
		t.Errorf("redraw moved the dragged card to x=%v", x)
	}

	// Long press never fires once dragging.
	for range 40 {
		r.Step()
	}
	if rec.count(fan.EventLongPress, "") != 0 {
		t.Error("long-press fired during a drag")
	}

	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2 + 40, Y: centerY + 5})
	if _, ok := rec.last(fan.EventDrop); !ok {
		t.Fatal("drop not emitted")
	}
	r.Settle(settleLimit)
	assertAtTarget(t, r, cards[2].Key())
}

func TestDragDisabled(t *testing.T) {
	cfg := fan.DefaultConfig()
	cfg.DragDistance = 0
	r, _, rec := gestureRig(t, fan.WithConfig(cfg))

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	r.Fan.ContactMove(fan.Contact{ID: 1, X: topX2 + 200, Y: centerY})
	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2 + 200, Y: centerY})

	if rec.count(fan.EventDragBegin, "") != 0 {
		t.Error("drag began with dragging disabled")
	}
	if rec.count(fan.EventPress, "") != 1 {
		t.Error("contact did not resolve to a press")
	}
}

func TestPressOnRemovedItem(t *testing.T) {
	r, _, rec := gestureRig(t)

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	if _, _, err := r.Fan.Pop(2, true); err != nil {
		t.Fatal(err)
	}
	r.Step()
	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2, Y: centerY})
	if rec.count(fan.EventPress, "") != 0 {
		t.Error("press emitted for an item that left the fan")
	}
}

func TestPressIndexFollowsCollectionEdits(t *testing.T) {
	r, cards, rec := gestureRig(t)

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	if _, _, err := r.Fan.Pop(0, true); err != nil {
		t.Fatal(err)
	}
	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2, Y: centerY})

	ev, ok := rec.last(fan.EventPress)
	if !ok || ev.Item != cards[2] {
		t.Fatalf("press = %+v, want card 2", ev)
	}
	if ev.Index != 1 {
		t.Errorf("press index = %d, want 1", ev.Index)
	}
	if it, err := r.Fan.At(ev.Index); err != nil || it != cards[2] {
		t.Errorf("At(%d) = %v, %v, want the pressed card", ev.Index, it, err)
	}
}

func TestLongPressIndexAfterMove(t *testing.T) {
	r, cards, rec := gestureRig(t)

	r.Fan.ContactDown(fan.Contact{ID: 1, X: topX2, Y: centerY})
	if err := r.Fan.Move(2, 0); err != nil {
		t.Fatal(err)
	}
	for range 40 {
		r.Step()
	}
	ev, ok := rec.last(fan.EventLongPress)
	if !ok || ev.Item != cards[2] {
		t.Fatalf("long-press = %+v, want card 2", ev)
	}
	if ev.Index != 0 || r.Fan.Index(cards[2].Key()) != 0 {
		t.Errorf("long-press index = %d, fan index = %d, want 0", ev.Index, r.Fan.Index(cards[2].Key()))
	}
	r.Fan.ContactUp(fan.Contact{ID: 1, X: topX2, Y: centerY})
}

func TestHover(t *testing.T) {
	r, cards, rec := gestureRig(t)

	r.Fan.Hover(stripX0, centerY)
	r.Fan.Hover(stripX0+1, centerY)
	r.Fan.Hover(topX2, centerY)
	r.Fan.Hover(5, 5)

	want := []struct {
		kind fan.EventKind
		item *card.Card
	}{
		{fan.EventHoverEnter, cards[0]},
		{fan.EventHoverLeave, cards[0]},
		{fan.EventHoverEnter, cards[2]},
		{fan.EventHoverLeave, cards[2]},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %d, want %d", len(rec.events), len(want))
	}
	for i, w := range want {
		if ev := rec.events[i]; ev.Kind != w.kind || ev.Item != w.item {
			t.Errorf("event[%d] = %v %v, want %v %v", i, ev.Kind, ev.Item, w.kind, w.item)
		}
	}
}

func TestDeviceDragDistance(t *testing.T) {
	tests := []struct {
		dpi, want float64
	}{
		{96, 20},
		{192, 40},
		{0, 20},
	}
	for _, tt := range tests {
		if got := fan.DeviceDragDistance(tt.dpi); got != tt.want {
			t.Errorf("DeviceDragDistance(%v) = %v, want %v", tt.dpi, got, tt.want)
		}
	}
}
