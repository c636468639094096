// Package termview renders a monochrome frame as text, packing two pixel rows
// into each character cell with Unicode half blocks.
package termview

import "strings"

const (
	empty = ' '
	upper = '▀'
	lower = '▄'
	full  = '█'
)

// Render converts a row-major frame of 0/1 bytes into height/2 lines. An odd
// trailing pixel row is paired with an unlit row.
func Render(frame []byte, width int) []string {
	if width <= 0 || len(frame) == 0 {
		return nil
	}
	height := len(frame) / width

	lines := make([]string, 0, (height+1)/2)
	var sb strings.Builder

	for y := 0; y < height; y += 2 {
		sb.Reset()
		for x := range width {
			top := frame[y*width+x] != 0
			bottom := y+1 < height && frame[(y+1)*width+x] != 0
			sb.WriteRune(cell(top, bottom))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return full
	case top:
		return upper
	case bottom:
		return lower
	}
	return empty
}
