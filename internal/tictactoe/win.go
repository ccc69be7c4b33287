package tictactoe

// Line names one of the eight winning lines.
type Line string

const (
	DiagonalMain Line = "diagonal-main"
	DiagonalAnti Line = "diagonal-anti"
	Row0         Line = "row0"
	Row1         Line = "row1"
	Row2         Line = "row2"
	Col0         Line = "col0"
	Col1         Line = "col1"
	Col2         Line = "col2"
)

// Win describes a completed line of three.
type Win struct {
	Side   Cell        `json:"side"`
	Line   Line        `json:"line"`
	Coords [Size]Coord `json:"coords"`
}

type winLine struct {
	kind   Line
	coords [Size]Coord
}

// winLines is ordered by report priority: diagonals, rows, columns.
var winLines = []winLine{
	{DiagonalMain, [Size]Coord{{0, 0}, {1, 1}, {2, 2}}},
	{DiagonalAnti, [Size]Coord{{0, 2}, {1, 1}, {2, 0}}},
	{Row0, [Size]Coord{{0, 0}, {0, 1}, {0, 2}}},
	{Row1, [Size]Coord{{1, 0}, {1, 1}, {1, 2}}},
	{Row2, [Size]Coord{{2, 0}, {2, 1}, {2, 2}}},
	{Col0, [Size]Coord{{0, 0}, {1, 0}, {2, 0}}},
	{Col1, [Size]Coord{{0, 1}, {1, 1}, {2, 1}}},
	{Col2, [Size]Coord{{0, 2}, {1, 2}, {2, 2}}},
}

// lineOf returns the first complete line held by side, or nil.
func (b Board) lineOf(side Cell) *Win {
	for _, line := range winLines {
		complete := true
		for _, at := range line.coords {
			if b.cells[at.Row][at.Col] != side {
				complete = false
				break
			}
		}

		if complete {
			return &Win{Side: side, Line: line.kind, Coords: line.coords}
		}
	}

	return nil
}

// winner checks X before O.
func (b Board) winner() *Win {
	for _, side := range []Cell{X, O} {
		if win := b.lineOf(side); win != nil {
			return win
		}
	}

	return nil
}
