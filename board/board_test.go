package board

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence replays fixed kinds, repeating the last one once exhausted.
type sequence struct {
	kinds []Kind
	next  int
}

func (s *sequence) IntN(n int) int {
	k := s.kinds[min(s.next, len(s.kinds)-1)]
	s.next++
	return int(k) % n
}

func kinds(k ...Kind) *sequence {
	return &sequence{kinds: k}
}

func fillRow(b *Board, row int, value uint8, skip ...int) {
	for col := 0; col < b.width; col++ {
		if contains(skip, col) {
			continue
		}
		b.cells[row*b.width+col] = value
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	b, err := New(20, 10)
	require.NoError(t, err)

	assert.Equal(t, 20, b.Height())
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, Running, b.State())

	_, ok := b.Active()
	assert.False(t, ok)

	for _, row := range b.Rows() {
		for _, cell := range row {
			assert.Equal(t, 0, cell)
		}
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		height, width int
	}{
		{0, 10},
		{20, 0},
		{-1, 10},
		{20, -5},
	}

	for _, tt := range tests {
		_, err := New(tt.height, tt.width)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}

	assert.Panics(t, func() { MustNew(0, 0) })
}

func TestSpawnPiece(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindT)))
	b.SpawnPiece()

	p, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, Piece{Kind: KindT, Rotation: 0, X: 3, Y: 0}, p)

	narrow := MustNew(20, 7, WithSource(kinds(KindO)))
	narrow.SpawnPiece()
	p, _ = narrow.Active()
	assert.Equal(t, 1, p.X)
}

func TestIntersectsIsPure(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindL)))
	assert.False(t, b.Intersects(), "no active piece")

	b.SpawnPiece()
	before, _ := b.Active()
	rows := b.Rows()

	first := b.Intersects()
	second := b.Intersects()

	after, _ := b.Active()
	assert.Equal(t, first, second)
	assert.Equal(t, before, after)
	assert.Equal(t, rows, b.Rows())
}

func TestIntersectsBounds(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindO)))
	b.SpawnPiece()

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"spawn", 3, 0, false},
		{"resting on floor", 3, 18, false},
		{"through floor", 3, 19, true},
		{"left wall flush", -1, 0, false},
		{"through left wall", -2, 0, true},
		{"right wall flush", 7, 0, false},
		{"through right wall", 8, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.piece.X, b.piece.Y = tt.x, tt.y
			assert.Equal(t, tt.want, b.Intersects())
		})
	}

	b.piece.X, b.piece.Y = 3, 5
	b.cells[6*b.width+4] = uint8(KindJ.ColorIndex())
	assert.True(t, b.Intersects(), "overlapping a filled cell")
}

func TestMoveDownUntilLock(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindO, KindT)))
	b.SpawnPiece()

	for i := 1; i <= 18; i++ {
		b.MoveDown()
		p, _ := b.Active()
		require.Equal(t, KindO, p.Kind)
		require.Equal(t, i, p.Y)
		require.Equal(t, 0, b.PiecesLocked())
	}

	b.MoveDown()

	assert.Equal(t, 1, b.PiecesLocked())
	for _, cell := range [][2]int{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.Equal(t, KindO.ColorIndex(), b.Cell(cell[0], cell[1]))
	}

	p, _ := b.Active()
	assert.Equal(t, Piece{Kind: KindT, X: 3, Y: 0}, p)
	assert.Equal(t, Running, b.State())
}

func TestMoveHorizontal(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindO)))
	b.SpawnPiece()

	b.MoveHorizontal(1)
	p, _ := b.Active()
	assert.Equal(t, 4, p.X)

	for i := 0; i < 10; i++ {
		b.MoveHorizontal(1)
	}
	p, _ = b.Active()
	assert.Equal(t, 7, p.X, "stops at the right wall")

	for i := 0; i < 20; i++ {
		b.MoveHorizontal(-1)
	}
	p, _ = b.Active()
	assert.Equal(t, -1, p.X, "stops at the left wall")
}

func TestMoveHorizontalBlockedByCells(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindO)))
	b.SpawnPiece()
	b.cells[0*b.width+6] = 1

	b.MoveHorizontal(1)

	p, _ := b.Active()
	assert.Equal(t, 3, p.X)
	assert.Equal(t, 0, p.Y)
}

func TestRotate(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindT)))
	b.SpawnPiece()
	b.MoveDown()

	for i := 1; i <= Rotations(KindT); i++ {
		b.Rotate()
		p, _ := b.Active()
		assert.Equal(t, i%Rotations(KindT), p.Rotation)
	}

	o := MustNew(20, 10, WithSource(kinds(KindO)))
	o.SpawnPiece()
	o.Rotate()
	p, _ := o.Active()
	assert.Equal(t, 0, p.Rotation, "single-state kinds stay put")
}

func TestRotateRejectedAtLeftWall(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindI)))
	b.SpawnPiece()

	for i := 0; i < 10; i++ {
		b.MoveHorizontal(-1)
	}
	before, _ := b.Active()
	require.Equal(t, -1, before.X)
	cellsBefore, _ := b.ActiveCells()
	for _, c := range cellsBefore {
		require.Equal(t, 0, c[1])
	}

	b.Rotate()

	after, _ := b.Active()
	cellsAfter, _ := b.ActiveCells()
	assert.Equal(t, before, after)
	assert.Equal(t, cellsBefore, cellsAfter)
	assert.False(t, b.Intersects())
}

func TestDropHard(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindI, KindZ)))
	b.SpawnPiece()
	b.DropHard()

	for row := 16; row < 20; row++ {
		assert.Equal(t, KindI.ColorIndex(), b.Cell(row, 4))
	}
	assert.Equal(t, 0, b.Cell(15, 4))
	assert.Equal(t, 1, b.PiecesLocked())

	p, _ := b.Active()
	assert.Equal(t, KindZ, p.Kind)
	assert.Equal(t, 0, p.Y)
}

func TestLockCompletesLine(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindI, KindO)))
	fillRow(b, 19, uint8(KindS.ColorIndex()), 0)
	b.SpawnPiece()

	for i := 0; i < 4; i++ {
		b.MoveHorizontal(-1)
	}
	p, _ := b.Active()
	require.Equal(t, -1, p.X)

	b.DropHard()

	assert.Equal(t, 1, b.Score())
	assert.Equal(t, 1, b.LinesCleared())

	// rows 16..18 held the rest of the I piece and moved down by one
	for row := 17; row < 20; row++ {
		assert.Equal(t, KindI.ColorIndex(), b.Cell(row, 0), "row %d", row)
		for col := 1; col < 10; col++ {
			assert.Equal(t, 0, b.Cell(row, col), "row %d col %d", row, col)
		}
	}
	assert.Equal(t, 0, b.Cell(16, 0))
}

func TestClearLines(t *testing.T) {
	t.Run("single full row shifts rows above down", func(t *testing.T) {
		b := MustNew(8, 4)
		b.cells[1*4+0] = 1
		b.cells[3*4+1] = 2
		b.cells[4*4+2] = 3
		fillRow(b, 5, 4)
		b.cells[7*4+3] = 5

		before := b.Rows()
		n := b.clearLines()

		assert.Equal(t, 1, n)
		assert.Equal(t, 1, b.Score())
		assert.Equal(t, before[4], b.Rows()[5])
		assert.Equal(t, before[3], b.Rows()[4])
		assert.Equal(t, before[1], b.Rows()[2])
		assert.Equal(t, before[1], b.Rows()[1], "row 1 is duplicated, not emptied")
		assert.Equal(t, before[0], b.Rows()[0])
		assert.Equal(t, before[6], b.Rows()[6])
		assert.Equal(t, before[7], b.Rows()[7])
	})

	t.Run("row zero is never cleared", func(t *testing.T) {
		b := MustNew(4, 4)
		fillRow(b, 0, 2)

		assert.Equal(t, 0, b.clearLines())
		assert.Equal(t, 0, b.Score())
		assert.Equal(t, []int{2, 2, 2, 2}, b.Rows()[0])
	})

	t.Run("full row one is counted but stays", func(t *testing.T) {
		b := MustNew(4, 4)
		fillRow(b, 1, 3)

		assert.Equal(t, 1, b.clearLines())
		assert.Equal(t, []int{3, 3, 3, 3}, b.Rows()[1])
	})

	t.Run("score grows by the square of the count", func(t *testing.T) {
		b := MustNew(6, 3)
		fillRow(b, 3, 1)
		fillRow(b, 4, 2)
		fillRow(b, 5, 3)

		assert.Equal(t, 3, b.clearLines())
		assert.Equal(t, 9, b.Score())
		assert.Equal(t, 3, b.LinesCleared())

		assert.Equal(t, 0, b.clearLines())
		assert.Equal(t, 9, b.Score())
	})
}

func TestGameOverWhenSpawnCollides(t *testing.T) {
	b := MustNew(4, 4, WithSource(kinds(KindO)))
	b.SpawnPiece()
	b.piece.Y = 2
	b.cells[1*4+1] = uint8(KindL.ColorIndex())

	b.MoveDown()

	assert.Equal(t, GameOver, b.State())
	assert.Equal(t, 1, b.PiecesLocked())

	rows := b.Rows()
	b.MoveDown()
	b.MoveHorizontal(1)
	b.Rotate()
	b.DropHard()
	assert.Equal(t, rows, b.Rows(), "commands are ignored after game over")
	assert.Equal(t, GameOver, b.State())
}

func TestSpawnNext(t *testing.T) {
	b := MustNew(20, 10, WithSource(kinds(KindS)))
	assert.True(t, b.SpawnNext())

	blocked := MustNew(20, 10, WithSource(kinds(KindS)))
	fillRow(blocked, 1, 1, 0)
	assert.False(t, blocked.SpawnNext())
	assert.Equal(t, GameOver, blocked.State())
}

func TestCommandsWithoutPiece(t *testing.T) {
	b := MustNew(20, 10)

	b.MoveDown()
	b.MoveHorizontal(-1)
	b.Rotate()
	b.DropHard()

	_, ok := b.Active()
	assert.False(t, ok)
	assert.Equal(t, 0, b.PiecesLocked())
}

func TestCellsStayInRange(t *testing.T) {
	b := MustNew(20, 10, WithSource(NewSeededSource(7)))
	moves := rand.New(rand.NewPCG(1, 2))
	b.SpawnPiece()

	for step := 0; step < 5000 && b.State() == Running; step++ {
		switch moves.IntN(5) {
		case 0:
			b.MoveDown()
		case 1:
			b.MoveHorizontal(-1)
		case 2:
			b.MoveHorizontal(1)
		case 3:
			b.Rotate()
		case 4:
			b.DropHard()
		}

		if b.State() == Running {
			require.False(t, b.Intersects(), "step %d", step)
		}
	}

	for _, row := range b.Rows() {
		for _, cell := range row {
			require.GreaterOrEqual(t, cell, 0)
			require.LessOrEqual(t, cell, NumKinds)
		}
	}
	assert.Greater(t, b.PiecesLocked(), 0)
}
