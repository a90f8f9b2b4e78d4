package physics

// Resolve lets both bodies of a collision react, the other body sees the mirrored side
// Each body that reacted is re-integrated over the overtime left in the tick
func Resolve(c Collision, dt float64) (subjectReacted, otherReacted bool) {
	overtime := dt - c.Time
	subject, other := c.Subject, c.Other

	subjectReacted = subject.React(Contact{
		Side:     c.Side,
		Overtime: overtime,
		Where:    c.Where,
		Other:    other.Base(),
	})
	otherReacted = other.React(Contact{
		Side:     Mirror(c.Side),
		Overtime: overtime,
		Where:    c.Where,
		Other:    subject.Base(),
	})

	if subjectReacted {
		subject.Move(overtime)
	}
	if otherReacted {
		other.Move(overtime)
	}
	return subjectReacted, otherReacted
}
