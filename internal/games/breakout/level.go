package breakout

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickEmpty  BrickType = iota // No brick
	BrickNormal                  // Destroyed in one hit
	BrickHard                    // Requires 2 hits to destroy
	BrickSolid                   // Indestructible, not needed to clear a level
)

// Breakable reports whether a brick of this type must go to clear a level.
func (t BrickType) Breakable() bool {
	return t == BrickNormal || t == BrickHard
}

// Brick is one cell of a layout.
type Brick struct {
	Type   BrickType
	Points int // Awarded when destroyed
	HP     int
}

// Level is a brick layout. Bricks is indexed [row][col]; empty cells have
// type BrickEmpty.
type Level struct {
	Name   string
	Width  int
	Height int
	Bricks [][]Brick
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = normal brick (10 points)
//	'1'-'9' = normal brick worth 10 * digit
//	'H' = hard brick (2 HP, 20 points)
//	'X' = solid brick
//	anything else = empty
func ParseLevel(name string, lines []string) *Level {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	level := &Level{Name: name, Width: width, Height: len(lines), Bricks: make([][]Brick, len(lines))}
	for row, line := range lines {
		level.Bricks[row] = make([]Brick, width)
		for col := 0; col < len(line); col++ {
			level.Bricks[row][col] = brickFor(line[col])
		}
	}
	return level
}

func brickFor(ch byte) Brick {
	switch {
	case ch == '#':
		return Brick{Type: BrickNormal, Points: 10, HP: 1}
	case ch >= '1' && ch <= '9':
		return Brick{Type: BrickNormal, Points: int(ch-'0') * 10, HP: 1}
	case ch == 'H' || ch == 'h':
		return Brick{Type: BrickHard, Points: 20, HP: 2}
	case ch == 'X' || ch == 'x':
		return Brick{Type: BrickSolid}
	default:
		return Brick{}
	}
}

// GridLevel builds the opening wall: rows x cols bricks, worth more toward
// the top, with the top hardRows rows needing two hits.
func GridLevel(rows, cols, hardRows int) *Level {
	level := &Level{Name: "Grid", Width: cols, Height: rows, Bricks: make([][]Brick, rows)}
	for row := range rows {
		level.Bricks[row] = make([]Brick, cols)
		for col := range cols {
			b := Brick{Type: BrickNormal, Points: (rows - row) * 10, HP: 1}
			if row < hardRows {
				b.Type = BrickHard
				b.HP = 2
			}
			level.Bricks[row][col] = b
		}
	}
	return level
}

// layouts are the walls that follow the opening grid, in play order.
var layouts = []struct {
	name  string
	lines []string
}{
	{"Steps", []string{
		"5..........",
		"44.........",
		"333........",
		"2222.......",
		"11111......",
		"######.....",
	}},
	{"Arch", []string{
		"..HHHHHHH..",
		".H#######H.",
		"H##.....##H",
		"##.......##",
		"##.......##",
	}},
	{"Bars", []string{
		"3.3.3.3.3.3",
		"3.3.3.3.3.3",
		"2.2.2.2.2.2",
		"1.1.1.1.1.1",
	}},
	{"Vault", []string{
		"XHHHHHHHHHX",
		"X#########X",
		"X####9####X",
		"X#########X",
		"XXXX...XXXX",
	}},
	{"Waves", []string{
		"##.....##..",
		"..##.....##",
		"....##.....",
		"##....##...",
		"..##....##.",
		"HHHHHHHHHHH",
	}},
}

// LevelFor returns the layout for a 1-based level number. Level 1 is the
// grid; later levels cycle through the ASCII layouts.
func LevelFor(n int, grid *Level) *Level {
	if n <= 1 || len(layouts) == 0 {
		return grid
	}
	l := layouts[(n-2)%len(layouts)]
	return ParseLevel(l.name, l.lines)
}
