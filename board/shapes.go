package board

// Kind identifies one of the seven piece types.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// NumKinds is the number of piece types in the catalog. Grid cells hold
// values in [0, NumKinds].
const NumKinds = 7

// BoxSize is the edge length of the bounding box every rotation state lives in.
const BoxSize = 4

// Shape is one rotation state: the occupied cell indices within the 4x4
// bounding box, where index = row*4 + col.
type Shape [4]int8

var kindNames = [NumKinds]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return "?"
	}
	return kindNames[k]
}

// ColorIndex is the value a locked cell of this kind carries in the grid.
func (k Kind) ColorIndex() int {
	return int(k) + 1
}

var catalog = [NumKinds][]Shape{
	KindI: {{1, 5, 9, 13}, {4, 5, 6, 7}},
	KindJ: {{1, 2, 5, 9}, {0, 4, 5, 6}, {1, 5, 9, 8}, {4, 5, 6, 10}},
	KindL: {{1, 2, 6, 10}, {5, 6, 7, 9}, {2, 6, 10, 11}, {3, 5, 6, 7}},
	KindO: {{1, 2, 5, 6}},
	KindS: {{5, 6, 8, 9}, {1, 5, 6, 10}},
	KindT: {{1, 4, 5, 6}, {1, 4, 5, 9}, {4, 5, 6, 9}, {1, 5, 6, 9}},
	KindZ: {{4, 5, 9, 10}, {2, 6, 5, 9}},
}

// Rotations returns how many rotation states the kind cycles through.
func Rotations(k Kind) int {
	return len(catalog[k])
}

// ShapeOf returns the rotation state of a kind. The rotation wraps.
func ShapeOf(k Kind, rotation int) Shape {
	states := catalog[k]
	return states[rotation%len(states)]
}

// Contains reports whether the bounding-box cell at (row, col) is occupied.
func (s Shape) Contains(row, col int) bool {
	idx := int8(row*BoxSize + col)
	for _, c := range s {
		if c == idx {
			return true
		}
	}
	return false
}

// Offsets returns the (row, col) pairs of the occupied cells.
func (s Shape) Offsets() [4][2]int {
	var out [4][2]int
	for i, c := range s {
		out[i] = [2]int{int(c) / BoxSize, int(c) % BoxSize}
	}
	return out
}
