// Package view owns the transform between logical coordinates and screen
// pixels: center, scale, viewport and the direction convention of each axis.
package view

import (
	"fmt"
	"strings"
)

// XDirection is the screen direction in which logical x grows.
type XDirection int

const (
	Right XDirection = iota
	Left
)

// Sign is +1 when x grows toward screen right.
func (d XDirection) Sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}

func (d XDirection) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Flip returns the opposite direction.
func (d XDirection) Flip() XDirection {
	if d == Left {
		return Right
	}
	return Left
}

// ParseXDirection accepts "right" or "left" (case-insensitive).
func ParseXDirection(s string) (XDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "":
		return Right, nil
	case "left":
		return Left, nil
	}
	return Right, fmt.Errorf("%w: x axis %q", ErrInvalidOptions, s)
}

// YDirection is the screen direction in which logical y grows.
type YDirection int

const (
	Bottom YDirection = iota
	Top
)

// Sign is +1 when y grows toward the screen bottom.
func (d YDirection) Sign() float64 {
	if d == Top {
		return -1
	}
	return 1
}

func (d YDirection) String() string {
	if d == Top {
		return "top"
	}
	return "bottom"
}

func (d YDirection) Flip() YDirection {
	if d == Top {
		return Bottom
	}
	return Top
}

// ParseYDirection accepts "bottom" or "top" (case-insensitive).
func ParseYDirection(s string) (YDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom", "":
		return Bottom, nil
	case "top":
		return Top, nil
	}
	return Bottom, fmt.Errorf("%w: y axis %q", ErrInvalidOptions, s)
}

// Axes is the direction convention of both axes. The zero value is
// x right, y down the screen.
type Axes struct {
	X XDirection
	Y YDirection
}

func (a Axes) String() string { return a.X.String() + "/" + a.Y.String() }

// FarX is the x coordinate reached by extending from x by a non-negative
// extent toward screen right.
func (a Axes) FarX(x, extent float64) float64 { return x + a.X.Sign()*extent }

// FarY is the y coordinate reached by extending from y by a non-negative
// extent toward the screen bottom.
func (a Axes) FarY(y, extent float64) float64 { return y + a.Y.Sign()*extent }

// Direction is a screen-relative nudge direction.
type Direction int

const (
	Up Direction = iota
	Down
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Step returns the logical delta that moves a shape step units in the
// screen direction dir.
func (a Axes) Step(dir Direction, step float64) (dx, dy float64) {
	switch dir {
	case Up:
		return 0, -a.Y.Sign() * step
	case Down:
		return 0, a.Y.Sign() * step
	case DirLeft:
		return -a.X.Sign() * step, 0
	case DirRight:
		return a.X.Sign() * step, 0
	}
	return 0, 0
}
