package board

// RGB is an 8-bit colour triple.
type RGB [3]uint8

// Colors is indexed by colour index - 1. Only renderers read it.
var Colors = [NumKinds]RGB{
	{0, 0, 0},
	{120, 37, 179},
	{100, 179, 179},
	{80, 34, 22},
	{80, 134, 22},
	{180, 34, 22},
	{180, 34, 122},
}

// ColorOf returns the colour for a grid cell value. ok is false for empty
// cells.
func ColorOf(cell int) (c RGB, ok bool) {
	if cell <= 0 || cell > NumKinds {
		return RGB{}, false
	}
	return Colors[cell-1], true
}
