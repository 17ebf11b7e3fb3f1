package cursor

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"github.com/mouseminder/mouseminder/internal/core/model"
)

// RobotActuator implements Actuator with a robotgo cursor warp. The warp
// primitive itself reports nothing, so success is judged by reading the
// position back from the OS.
type RobotActuator struct {
	move     func(x, y int)
	location func() (int, int)
	displays func() []image.Rectangle
}

// NewRobotActuator creates an actuator driving the real OS cursor.
func NewRobotActuator() *RobotActuator {
	return &RobotActuator{
		move:     robotgo.Move,
		location: robotgo.Location,
		displays: activeDisplayBounds,
	}
}

// SetPosition warps the cursor to (x, y). When the cursor does not land on
// the target, the failure is classified: a target outside every display is
// ErrOutOfBounds, anything else is ErrPermissionDenied. A concurrent
// physical mouse move can make a successful warp look failed; that is
// acceptable for a per-attempt error, the next attempt stands alone.
func (a *RobotActuator) SetPosition(x, y int) error {
	a.move(x, y)

	gotX, gotY := a.location()
	if gotX == x && gotY == y {
		return nil
	}

	if !a.withinAnyDisplay(x, y) {
		return fmt.Errorf("set position (%d,%d): %w", x, y, model.ErrOutOfBounds)
	}
	return fmt.Errorf("set position (%d,%d): cursor landed at (%d,%d): %w",
		x, y, gotX, gotY, model.ErrPermissionDenied)
}

func (a *RobotActuator) withinAnyDisplay(x, y int) bool {
	for _, bounds := range a.displays() {
		if image.Pt(x, y).In(bounds) {
			return true
		}
	}
	return false
}

// activeDisplayBounds collects the bounds of every active display.
func activeDisplayBounds() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}
