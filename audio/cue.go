package audio

// Cue identifies a synthesized impact sound
type Cue int

const (
	CueRockHeavy Cue = iota // Rock landing hard on ground
	CueRockLight            // Rock settling on ground
	CueBlop                 // Walker bumping into a wall
	cueCount
)

var cueNames = [cueCount]string{
	CueRockHeavy: "rock_heavy",
	CueRockLight: "rock_light",
	CueBlop:      "blop",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// parseCue maps a cue name back to its value
func parseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), true
		}
	}
	return 0, false
}
