// Package board implements the falling-block game engine: the grid, the
// active piece, collision checks, locking, line clearing and scoring.
//
// A Board is a synchronous state machine driven by a single host loop. Every
// command is speculative: the piece is moved, checked with Intersects and
// reverted when it collides, so commands never return errors.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned by New for non-positive sizes.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// State is the lifecycle state of a board.
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Piece is the falling piece. X and Y locate the top-left cell of its 4x4
// bounding box in grid coordinates.
type Piece struct {
	Kind     Kind
	Rotation int
	X, Y     int
}

// Shape returns the occupied cells of the piece's current rotation.
func (p Piece) Shape() Shape {
	return ShapeOf(p.Kind, p.Rotation)
}

// Cells returns the occupied cells in grid coordinates as (row, col) pairs.
func (p Piece) Cells() [4][2]int {
	cells := p.Shape().Offsets()
	for i := range cells {
		cells[i][0] += p.Y
		cells[i][1] += p.X
	}
	return cells
}

// Option configures a Board.
type Option func(*Board)

// WithSource sets the random source used to pick piece kinds.
func WithSource(src Source) Option {
	return func(b *Board) {
		b.source = src
	}
}

// Board holds the grid, the active piece, the score and the game state.
type Board struct {
	height int
	width  int
	cells  []uint8

	piece    Piece
	hasPiece bool

	score        int
	state        State
	linesCleared int
	piecesLocked int

	source Source
}

// New creates an empty running board with no active piece.
func New(height, width int, opts ...Option) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, height, width)
	}

	b := &Board{
		height: height,
		width:  width,
		cells:  make([]uint8, height*width),
		state:  Running,
		source: globalSource{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// MustNew is like New but panics on invalid dimensions.
func MustNew(height, width int, opts ...Option) *Board {
	b, err := New(height, width, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }
func (b *Board) Score() int  { return b.score }
func (b *Board) State() State { return b.state }

// LinesCleared is the total number of rows counted by line clears so far.
func (b *Board) LinesCleared() int { return b.linesCleared }

// PiecesLocked is the number of pieces merged into the grid so far.
func (b *Board) PiecesLocked() int { return b.piecesLocked }

// Cell returns the colour index at (row, col), 0 when empty.
func (b *Board) Cell(row, col int) int {
	return int(b.cells[row*b.width+col])
}

// Rows returns a copy of the grid, row 0 first.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.height)
	for i := range rows {
		rows[i] = make([]int, b.width)
		for j := range rows[i] {
			rows[i][j] = b.Cell(i, j)
		}
	}
	return rows
}

// Active returns the falling piece. ok is false before the first spawn.
func (b *Board) Active() (p Piece, ok bool) {
	return b.piece, b.hasPiece
}

// ActiveCells returns the falling piece's cells in grid coordinates.
func (b *Board) ActiveCells() ([4][2]int, bool) {
	if !b.hasPiece {
		return [4][2]int{}, false
	}
	return b.piece.Cells(), true
}

// SpawnPiece replaces the active piece with a random kind at the spawn
// anchor. It does not check whether the new piece fits.
func (b *Board) SpawnPiece() {
	b.piece = Piece{
		Kind:     Kind(b.source.IntN(NumKinds)),
		Rotation: 0,
		X:        b.width/2 - 2,
		Y:        0,
	}
	b.hasPiece = true
}

// SpawnNext spawns a piece and ends the game when it does not fit. It
// reports whether the game is still running.
func (b *Board) SpawnNext() bool {
	b.SpawnPiece()
	if b.Intersects() {
		b.state = GameOver
	}
	return b.state == Running
}

// Intersects reports whether the active piece leaves the field through the
// floor or a side wall, or overlaps a filled cell. The top edge is open.
func (b *Board) Intersects() bool {
	if !b.hasPiece {
		return false
	}
	for _, c := range b.piece.Cells() {
		row, col := c[0], c[1]
		if row >= b.height || col >= b.width || col < 0 {
			return true
		}
		if row >= 0 && b.cells[row*b.width+col] != 0 {
			return true
		}
	}
	return false
}

func (b *Board) accepting() bool {
	return b.hasPiece && b.state == Running
}

// MoveDown moves the piece one row down, locking it when it cannot move.
func (b *Board) MoveDown() {
	if !b.accepting() {
		return
	}
	b.piece.Y++
	if b.Intersects() {
		b.piece.Y--
		b.lock()
	}
}

// MoveHorizontal shifts the piece by dx columns unless that collides.
func (b *Board) MoveHorizontal(dx int) {
	if !b.accepting() {
		return
	}
	old := b.piece.X
	b.piece.X += dx
	if b.Intersects() {
		b.piece.X = old
	}
}

// Rotate advances the piece to its next rotation state unless that collides.
// There are no wall kicks.
func (b *Board) Rotate() {
	if !b.accepting() {
		return
	}
	old := b.piece.Rotation
	b.piece.Rotation = (old + 1) % Rotations(b.piece.Kind)
	if b.Intersects() {
		b.piece.Rotation = old
	}
}

// DropHard drops the piece to its resting row and locks it.
func (b *Board) DropHard() {
	if !b.accepting() {
		return
	}
	for !b.Intersects() {
		b.piece.Y++
	}
	b.piece.Y--
	b.lock()
}

// lock merges the piece into the grid, clears lines, then spawns the next
// piece. Clearing must precede the fit check because it frees rows.
func (b *Board) lock() {
	color := uint8(b.piece.Kind.ColorIndex())
	for _, c := range b.piece.Cells() {
		if b.inside(c[0], c[1]) {
			b.cells[c[0]*b.width+c[1]] = color
		}
	}
	b.piecesLocked++

	b.clearLines()
	b.SpawnNext()
}

// clearLines scans rows 1..height-1 for full rows. Row 0 is never checked.
// For each full row i, rows i-1 down to 1 are copied one row down; row 1
// keeps its content and row 0 is untouched. The score grows by count².
func (b *Board) clearLines() int {
	count := 0
	for i := 1; i < b.height; i++ {
		if !b.rowFull(i) {
			continue
		}
		count++
		for r := i; r > 1; r-- {
			copy(b.row(r), b.row(r-1))
		}
	}
	b.linesCleared += count
	b.score += count * count
	return count
}

func (b *Board) inside(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Board) row(i int) []uint8 {
	return b.cells[i*b.width : (i+1)*b.width]
}

func (b *Board) rowFull(i int) bool {
	for _, c := range b.row(i) {
		if c == 0 {
			return false
		}
	}
	return true
}
