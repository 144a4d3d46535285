package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// keyPanCells is how far one arrow key press moves the camera, in cells at zoom 1.
const keyPanCells = 4.0

func (e *Editor) handlePan(key string, speed int) bool {
	step := keyPanCells * float64(speed) / e.Camera.Zoom
	switch key {
	case "left", "shift+left":
		e.Camera.PanBy(r2.Vec{X: -step})
	case "right", "shift+right":
		e.Camera.PanBy(r2.Vec{X: step})
	case "up", "shift+up":
		e.Camera.PanBy(r2.Vec{Y: -step})
	case "down", "shift+down":
		e.Camera.PanBy(r2.Vec{Y: step})
	default:
		return false
	}
	return true
}

func getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

type panDrag struct {
	startScreen r2.Vec
	startOrigin r2.Vec
}

func (e *Editor) startPan(pos r2.Vec) {
	e.pan = &panDrag{startScreen: pos, startOrigin: e.Camera.Origin}
}

// updatePan keeps the world point under the press position under the pointer.
func (e *Editor) updatePan(pos r2.Vec) {
	if e.pan == nil {
		return
	}
	delta := r2.Sub(pos, e.pan.startScreen)
	e.Camera.Origin = r2.Sub(e.pan.startOrigin, r2.Scale(1/e.Camera.PixelScale(), delta))
}

func (e *Editor) endPan() {
	e.pan = nil
}

// zoomAt applies notches of the configured zoom step around pos.
func (e *Editor) zoomAt(pos r2.Vec, notches float64) {
	factor := math.Pow(e.zoomStep, notches)
	e.Camera.ZoomAroundCursor(pos, factor)
}

func (e *Editor) viewportCenter() r2.Vec {
	return r2.Vec{X: e.viewW / 2, Y: e.viewH / 2}
}
