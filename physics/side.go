package physics

// Side is the face of a body a contact arrives on
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the contact is along the x axis
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Mirror returns the side as seen from the other body of the pair
func Mirror(s Side) Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	default:
		return s
	}
}
