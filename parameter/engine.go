package parameter

import "time"

// Frame loop
const (
	// DefaultTickRate is the target frames per second of the scene loop
	DefaultTickRate = 60

	// MaxFrameDelta clamps a single step after a stall (debugger, suspended terminal)
	MaxFrameDelta = 250 * time.Millisecond
)

// World dimensions in simulation units
const (
	DefaultWorldWidth  = 640
	DefaultWorldHeight = 480
)

// Spectator stream
const (
	StreamWriteTimeout = 2 * time.Second
	StreamPingInterval = 5 * time.Second
	StreamSendBuffer   = 8
)
