package widget

import "errors"

var (
	// ErrUnknownKind is returned by LoadLayout for an unknown widget kind.
	ErrUnknownKind = errors.New("widget: unknown widget kind")

	// ErrAttached is returned when adding a node that already has a
	// parent.
	ErrAttached = errors.New("widget: node already attached")

	// ErrNotAttached is returned when removing a node that is not in the
	// tree.
	ErrNotAttached = errors.New("widget: node not attached")

	// ErrUnknownFont is returned for a font name never added.
	ErrUnknownFont = errors.New("widget: unknown font")

	// ErrNoTextures is returned when a skin is loaded before the toolkit
	// received a texture creator.
	ErrNoTextures = errors.New("widget: no texture creator")

	// ErrBadColor is returned for a malformed color string.
	ErrBadColor = errors.New("widget: bad color")
)
