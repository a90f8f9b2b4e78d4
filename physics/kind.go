package physics

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a body for solid-set membership
type Kind uint8

const (
	KindDefault Kind = iota
	KindGround
	KindTree
	KindRock
	KindBall
	KindWalker
	KindWalker2D
	kindCount
)

var kindNames = [kindCount]string{
	KindDefault:  "default",
	KindGround:   "ground",
	KindTree:     "tree",
	KindRock:     "rock",
	KindBall:     "ball",
	KindWalker:   "walker",
	KindWalker2D: "walker2d",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind name, case-insensitive
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindDefault, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// KindSet is the set of kinds a body is solid against
type KindSet uint32

// NewKindSet builds a set from the given kinds
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add returns the set with k included
func (s KindSet) Add(k Kind) KindSet { return s | 1<<k }

// Has reports membership
func (s KindSet) Has(k Kind) bool { return s&(1<<k) != 0 }

// Kinds lists members in declaration order
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for k := KindDefault; k < kindCount; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}
