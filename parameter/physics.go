package parameter

// Body defaults
const (
	// DefaultGravity is the downward acceleration applied to every body unless overridden (units/s²)
	DefaultGravity = 200.0

	// DefaultMass approximates an immovable body under the elastic formula
	DefaultMass = 10000.0

	// DefaultDepth is the paint-order key of bodies that do not set one
	DefaultDepth = 10
)

// Collision detection
const (
	// MinDeltaSpeed is the relative speed below which an axis is not tested for contact
	MinDeltaSpeed = 0.01

	// MaxTimeFactor bounds the back-solved contact time to this many ticks in either direction
	MaxTimeFactor = 2.0

	// MaxCollisionPasses caps detect/resolve passes in one step, exceeding it is fatal
	MaxCollisionPasses = 512
)

// Ball
const (
	BallMass           = 1.0
	BallElasticity     = 1.0
	BlueBallElasticity = 0.9
	BallSize           = 16.0
)

// Rock
const (
	RockSize = 12.0
)

// Auto walker
const (
	WalkerMass         = 100.0
	WalkerWidth        = 24.0
	WalkerHeight       = 32.0
	WalkerSpeedStep    = 50.0
	WalkerMaxSpeed     = 300.0
	WalkerJumpSpeed    = -350.0
	WalkerReboundSpeed = 100.0
	// WalkerStride is the traveled distance per animation frame
	WalkerStride = 8.0
	// WalkerFrames is the animation cycle length
	WalkerFrames = 16
)

// Top-down walker
const (
	Walker2DSize      = 16.0
	Walker2DSpeedStep = 10.0
	Walker2DMaxSpeed  = 300.0
	Walker2DStride    = 4.0
	Walker2DFrames    = 4
)

// Tree
const (
	TreeWidth    = 40.0
	TreeHeight   = 80.0
	TreeMinDepth = 1
	TreeMaxDepth = 20
)

// DepthScale is the depth at which parallax and sprite scale are 1:1
const DepthScale = 10.0
