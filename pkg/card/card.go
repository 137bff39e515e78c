// Package card provides playing-card items and the display overlay used by
// card handles.
//
// A [Card] is an immutable item: handles never modify it. A [Face] shows a
// card and may override any of its display attributes without touching the
// card itself. Overrides are tri-state (see [Field]) so an attribute can be
// delegated to the card, set explicitly, or explicitly blanked.
package card

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// DefaultBackSource is the image shown for the back of a card.
const DefaultBackSource = "card-back.png"

// Card is a playing card.
type Card struct {
	ID         string
	Name       string
	BackSource string
	Flags      []string
}

// New creates a card with a fresh random ID and the default back image.
func New(name string, flags ...string) *Card {
	return &Card{
		ID:         uuid.NewString(),
		Name:       name,
		BackSource: DefaultBackSource,
		Flags:      slices.Clone(flags),
	}
}

// Key implements fan.Item.
func (c *Card) Key() string { return c.ID }

// Source returns the front image path, derived from the card name.
func (c *Card) Source() string {
	if c.Name == "" {
		return ""
	}
	return fmt.Sprintf("card-%s.png", c.Name)
}

// HasFlag reports whether the card carries flag.
func (c *Card) HasFlag(flag string) bool {
	return slices.Contains(c.Flags, flag)
}

func (c *Card) String() string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}

// Deck returns one card per name, in order.
func Deck(names ...string) []*Card {
	out := make([]*Card, len(names))
	for i, n := range names {
		out[i] = New(n)
	}
	return out
}

// StandardNames returns the 52 names of a standard deck, e.g. "AS", "10H".
func StandardNames() []string {
	ranks := []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suits := []string{"S", "H", "D", "C"}
	names := make([]string, 0, len(ranks)*len(suits))
	for _, s := range suits {
		for _, r := range ranks {
			names = append(names, r+s)
		}
	}
	return names
}
