// Package zone classifies touch coordinates into the four triangular zones of
// the logical touch surface.
//
// The surface is a fixed 100x100 square split by its two diagonals into a
// top, bottom, left and right triangle. Each zone is named by a single byte
// so a multi-finger gesture can be written as a short string like "gg" or
// "bh".
package zone

// Logical surface dimensions. Device coordinates are transformed into this
// space before classification.
const (
	SurfaceWidth  = 100.0
	SurfaceHeight = 100.0
)

// Symbol identifies one of the four zones of the touch surface.
type Symbol byte

const (
	Left   Symbol = 'b'
	Top    Symbol = 'g'
	Bottom Symbol = 'd'
	Right  Symbol = 'h'
)

// Valid reports whether s is one of the four zone symbols.
func (s Symbol) Valid() bool {
	switch s {
	case Left, Top, Bottom, Right:
		return true
	}
	return false
}

func (s Symbol) String() string {
	return string([]byte{byte(s)})
}

// Classify maps a point on the logical surface to its zone.
//
// The point is compared against the anti-diagonal (y = SurfaceHeight - x) and
// the main diagonal (y = x) with strict less-than, so a point exactly on a
// diagonal falls into the second branch of the comparison. Classify is pure:
// every finite coordinate pair maps to exactly one symbol.
func Classify(x, y float64) Symbol {
	if y < SurfaceHeight-x {
		if y < x {
			return Right
		}
		return Top
	}
	if y < x {
		return Bottom
	}
	return Left
}
