package sim

// Cell is a discrete grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns c+o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// WrapCell maps a cell onto a cols x rows torus.
func WrapCell(c Cell, cols, rows int) Cell {
	return Cell{X: mod(c.X, cols), Y: mod(c.Y, rows)}
}

func mod(v, n int) int {
	if n <= 0 {
		return v
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Trail is a growing chain of cells, head first.
type Trail struct {
	Cells  []Cell
	GrowTo int
}

// NewTrail creates a one-cell trail that grows to growTo cells.
func NewTrail(head Cell, growTo int) *Trail {
	return &Trail{Cells: []Cell{head}, GrowTo: growTo}
}

// Head returns the first cell.
func (t *Trail) Head() Cell {
	return t.Cells[0]
}

// Len returns the number of cells.
func (t *Trail) Len() int {
	return len(t.Cells)
}

// Contains reports whether c is exactly one of the trail's cells.
func (t *Trail) Contains(c Cell) bool {
	for _, tc := range t.Cells {
		if tc == c {
			return true
		}
	}
	return false
}

// Advance moves the head to next. Landing on any current cell, including the
// tail that would be dropped this move, is fatal and leaves the trail as is.
func (t *Trail) Advance(next Cell) (fatal bool) {
	if t.Contains(next) {
		return true
	}
	t.Cells = append(t.Cells, Cell{})
	copy(t.Cells[1:], t.Cells)
	t.Cells[0] = next
	if len(t.Cells) > t.GrowTo {
		t.Cells = t.Cells[:t.GrowTo]
	}
	return false
}

// Grow extends the target length by n.
func (t *Trail) Grow(n int) {
	t.GrowTo += n
}
