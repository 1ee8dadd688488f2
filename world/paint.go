package world

import "math"

// Checkerboard block names painted by the demo, per spec.md §4.G.
const (
	BlockGrayConcrete      = "minecraft:gray_concrete"
	BlockLightGrayConcrete = "minecraft:light_gray_concrete"
	BlockWhiteConcrete     = "minecraft:white_concrete"
)

// Cell truncates a world coordinate to its integer cell the way the
// original demo does: plain int(x)/int(z) truncation, not floor. Kept
// exactly as specified (see DESIGN.md's open-question decision) — this
// reproduces the origin-hole snap rather than "fixing" it, since nothing in
// the spec asks for floor-style rounding and the artifact is independently
// testable.
func Cell(x, z float64) (cx, cz int32) {
	cx, cz = int32(x), int32(z)
	if x > 0 && x < 1 && z > 0 && z < 1 {
		cx, cz = 0, 0
	}
	return cx, cz
}

// CheckerColor picks the two-tone ground colour for cell (cx, cz):
// ((cx//2)%2) == ((cz//2)%2).
func CheckerColor(cx, cz int32) string {
	if floorDiv2Mod2(cx) == floorDiv2Mod2(cz) {
		return BlockGrayConcrete
	}
	return BlockLightGrayConcrete
}

func floorDiv2Mod2(v int32) int32 {
	d := int32(math.Floor(float64(v) / 2))
	m := d % 2
	if m < 0 {
		m += 2
	}
	return m
}

// BlockUpdate is one ground-cell block change returned by Step.
type BlockUpdate struct {
	X, Z  int32
	Block string
}

// Step advances a player's paint state for a new position, returning the
// two block updates the caller must emit (restoring the previously painted
// cell, then painting the new one) and whether a step actually occurred —
// false when the player's integer cell hasn't changed since last call.
func (p *PaintState) Step(x, z float64) (restore BlockUpdate, hasRestore bool, paint BlockUpdate, moved bool) {
	cx, cz := Cell(x, z)

	if p.HasCell && cx == p.CellX && cz == p.CellZ {
		return BlockUpdate{}, false, BlockUpdate{}, false
	}

	if p.HasCell {
		restore = BlockUpdate{X: p.LastPaintedX, Z: p.LastPaintedZ, Block: CheckerColor(p.LastPaintedX, p.LastPaintedZ)}
		hasRestore = true
	}
	paint = BlockUpdate{X: cx, Z: cz, Block: BlockWhiteConcrete}

	p.HasCell = true
	p.CellX, p.CellZ = cx, cz
	p.LastPaintedX, p.LastPaintedZ = cx, cz

	return restore, hasRestore, paint, true
}
