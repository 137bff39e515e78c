package card

import "slices"

type fieldState uint8

const (
	fieldUnset fieldState = iota
	fieldSet
	fieldBlank
)

// Field is an overridable attribute. An unset field delegates to its
// fallback, a set field returns its value and a blanked field returns the
// zero value without delegating.
type Field[T any] struct {
	state fieldState
	v     T
}

// Set overrides the field with v.
func (f *Field[T]) Set(v T) {
	f.state = fieldSet
	f.v = v
}

// Blank overrides the field with "no value".
func (f *Field[T]) Blank() {
	var zero T
	f.state = fieldBlank
	f.v = zero
}

// Unset restores delegation.
func (f *Field[T]) Unset() {
	var zero T
	f.state = fieldUnset
	f.v = zero
}

// IsSet reports whether the field overrides its fallback.
func (f Field[T]) IsSet() bool { return f.state != fieldUnset }

// Get returns the override, or fallback() when unset.
func (f Field[T]) Get(fallback func() T) T {
	switch f.state {
	case fieldSet:
		return f.v
	case fieldBlank:
		var zero T
		return zero
	}
	return fallback()
}

// Face displays a card. Attributes not overridden are read from the card,
// or are empty when no card is shown.
type Face struct {
	card       *Card
	id         Field[string]
	name       Field[string]
	source     Field[string]
	backSource Field[string]
	flags      Field[[]string]
	hideFront  bool
}

// Card returns the shown card, or nil.
func (f *Face) Card() *Card { return f.card }

// SetCard shows c. Overrides stay in place.
func (f *Face) SetCard(c *Card) { f.card = c }

// ID returns the card ID, or its override.
func (f *Face) ID() string {
	return f.id.Get(func() string {
		if f.card == nil {
			return ""
		}
		return f.card.ID
	})
}

// Name returns the card name, or its override.
func (f *Face) Name() string {
	return f.name.Get(func() string {
		if f.card == nil {
			return ""
		}
		return f.card.Name
	})
}

// Source returns the front image path, or its override.
func (f *Face) Source() string {
	return f.source.Get(func() string {
		if f.card == nil {
			return ""
		}
		return f.card.Source()
	})
}

// BackSource returns the back image path, or its override.
func (f *Face) BackSource() string {
	return f.backSource.Get(func() string {
		if f.card == nil {
			return ""
		}
		return f.card.BackSource
	})
}

// Flags returns the card flags, or their override. The result aliases the
// card or override slice and must not be modified.
func (f *Face) Flags() []string {
	return f.flags.Get(func() []string {
		if f.card == nil {
			return nil
		}
		return f.card.Flags
	})
}

// SetID overrides the displayed ID. The shown card is not modified.
func (f *Face) SetID(v string) { f.id.Set(v) }

// SetName overrides the displayed name.
func (f *Face) SetName(v string) { f.name.Set(v) }

// SetSource overrides the front image.
func (f *Face) SetSource(v string) { f.source.Set(v) }

// SetBackSource overrides the back image.
func (f *Face) SetBackSource(v string) { f.backSource.Set(v) }

// SetFlags overrides the flags with a copy of v.
func (f *Face) SetFlags(v []string) { f.flags.Set(slices.Clone(v)) }

// Fields exposes the overrides for blanking or unsetting individual ones.
func (f *Face) Fields() (id, name, source, backSource *Field[string], flags *Field[[]string]) {
	return &f.id, &f.name, &f.source, &f.backSource, &f.flags
}

// ShowFront reports whether the front is shown.
func (f *Face) ShowFront() bool { return !f.hideFront }

// SetShowFront flips the card face up or down.
func (f *Face) SetShowFront(v bool) { f.hideFront = !v }

// Image returns the image currently shown.
func (f *Face) Image() string {
	if f.ShowFront() {
		return f.Source()
	}
	return f.BackSource()
}

// Clear drops the card and every override so a later card is shown as is.
func (f *Face) Clear() {
	*f = Face{}
}

// CopyFrom makes f show the same card with the same overrides as src.
func (f *Face) CopyFrom(src *Face) {
	*f = *src
	if src.flags.state == fieldSet {
		f.flags.v = slices.Clone(src.flags.v)
	}
}
