package session

// OverflowIndices reports which tabs do not fit in the visible tab strip.
// Tabs are laid out left to right at their given widths; any tab whose right
// edge exceeds the strip width minus the reserved control margin is
// overflowed and must be reachable through the secondary list. Pure function;
// callers recompute whenever the tab set, active tab, or strip width changes.
func OverflowIndices(widths []float32, stripWidth, reserved float32) []int {
	limit := stripWidth - reserved
	var overflowed []int
	var right float32
	for i, w := range widths {
		right += w
		if right > limit {
			overflowed = append(overflowed, i)
		}
	}
	return overflowed
}
