package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText normalizes line endings and drops control characters
// other than newlines and tabs.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

// bresenham returns every cell on the line from a to b, both ends included.
func bresenham(from, to point) []point {
	x0, y0 := from.X, from.Y
	dx := abs(to.X - x0)
	dy := abs(to.Y - y0)
	sx, sy := 1, 1
	if x0 > to.X {
		sx = -1
	}
	if y0 > to.Y {
		sy = -1
	}
	err := dx - dy

	cells := make([]point, 0, max(dx, dy)+1)
	for {
		cells = append(cells, point{x0, y0})
		if x0 == to.X && y0 == to.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return cells
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
