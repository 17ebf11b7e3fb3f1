package cursor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mouseminder/mouseminder/internal/core/model"
)

// fakeOS simulates the cursor warp primitive: warps land only inside the
// configured displays, and a denied flag makes every warp a no-op.
type fakeOS struct {
	displays []image.Rectangle
	denied   bool
	x, y     int
	moves    int
}

func (f *fakeOS) move(x, y int) {
	f.moves++
	if f.denied {
		return
	}
	for _, b := range f.displays {
		if image.Pt(x, y).In(b) {
			f.x, f.y = x, y
			return
		}
	}
}

func (f *fakeOS) location() (int, int) {
	return f.x, f.y
}

func newFakeActuator(os *fakeOS) *RobotActuator {
	return &RobotActuator{
		move:     os.move,
		location: os.location,
		displays: func() []image.Rectangle { return os.displays },
	}
}

func TestSetPositionSuccess(t *testing.T) {
	os := &fakeOS{displays: []image.Rectangle{image.Rect(0, 0, 1920, 1080)}}
	a := newFakeActuator(os)

	err := a.SetPosition(100, 100)
	assert.NoError(t, err)
	assert.Equal(t, 100, os.x)
	assert.Equal(t, 100, os.y)
}

func TestSetPositionOutOfBounds(t *testing.T) {
	os := &fakeOS{displays: []image.Rectangle{image.Rect(0, 0, 1920, 1080)}}
	a := newFakeActuator(os)

	err := a.SetPosition(5000, 5000)
	assert.ErrorIs(t, err, model.ErrOutOfBounds)
	assert.Equal(t, 1, os.moves, "the OS call is still issued; bounds are not pre-validated")
}

func TestSetPositionSecondaryDisplay(t *testing.T) {
	os := &fakeOS{displays: []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(-1280, 0, 0, 1024),
	}}
	a := newFakeActuator(os)

	// Negative coordinates are valid on a display left of the primary.
	err := a.SetPosition(-640, 500)
	assert.NoError(t, err)
}

func TestSetPositionPermissionDenied(t *testing.T) {
	os := &fakeOS{
		displays: []image.Rectangle{image.Rect(0, 0, 1920, 1080)},
		denied:   true,
		x:        10, y: 10,
	}
	a := newFakeActuator(os)

	err := a.SetPosition(100, 100)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)
}
