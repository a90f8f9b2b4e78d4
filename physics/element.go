package physics

// Element is a simulated body variant
// Variants embed Body and override Accelerate or React to change behavior
type Element interface {
	Base() *Body
	Accelerate(dt float64)
	Move(dt float64)
	React(c Contact) bool
}

// Contact is one side of a resolved collision as seen by the reacting body
type Contact struct {
	// Side is the face of the reacting body that was hit
	Side Side
	// Overtime is the part of the tick remaining after the contact instant
	Overtime float64
	// Where is the coordinate of the touching edges on the contact axis
	Where float64
	Other *Body
}
