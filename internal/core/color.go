package core

// Color is a terminal color for a screen cell: a "#rrggbb" hex triple or an
// ANSI palette index such as "208". The empty value means the terminal default.
type Color string

// ColorDefault leaves the cell in the terminal's default color.
const ColorDefault Color = ""

// Hex builds a Color from 8-bit RGB components.
func Hex(r, g, b uint8) Color {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, c := range [3]uint8{r, g, b} {
		buf[1+i*2] = digits[c>>4]
		buf[2+i*2] = digits[c&0x0f]
	}
	return Color(buf)
}
