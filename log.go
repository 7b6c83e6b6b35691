package ell

import "ell/internal/runtime"

// Sink and Event are re-exported from internal/runtime so callers building
// a custom sink never need to import the internal package directly.
type (
	Sink  = runtime.Sink
	Event = runtime.Event
)

// NopSink discards every event; it is the default when no Sink option is
// given to NewEventLoop.
type NopSink = runtime.NopSink
