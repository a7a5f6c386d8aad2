package feature

import (
	"fmt"
	"strings"
)

// Kind discriminates the Shape variants.
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindRect
	KindLine
	KindPolyline
	KindPolygon
	KindArrow
)

var kindNames = [...]string{"point", "circle", "rect", "line", "polyline", "polygon", "arrow"}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPoint, KindCircle, KindRect, KindLine, KindPolyline, KindPolygon, KindArrow}
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature kind %q", s)
}
