package collection

import "github.com/warrenhq/warren/internal/domain"

// Position says on which side of the reference item a dragged item lands.
type Position int

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Reorder computes the new sibling ordering after dropping dragID next to
// refID. The dragged item is removed and spliced back in at the reference
// index (Before) or one past it (After); every other item keeps its relative
// order. If either id is absent the input is returned unchanged — a stale
// drag over a deleted sibling is an expected race, not an error.
func Reorder[T domain.Identifiable](siblings []T, dragID, refID int64, pos Position) []T {
	dragIdx := indexOf(siblings, dragID)
	if dragIdx < 0 {
		return siblings
	}

	remaining := make([]T, 0, len(siblings))
	remaining = append(remaining, siblings[:dragIdx]...)
	remaining = append(remaining, siblings[dragIdx+1:]...)

	refIdx := indexOf(remaining, refID)
	if refIdx < 0 {
		return siblings
	}

	insertAt := refIdx
	if pos == After {
		insertAt = refIdx + 1
	}

	out := make([]T, 0, len(siblings))
	out = append(out, remaining[:insertAt]...)
	out = append(out, siblings[dragIdx])
	out = append(out, remaining[insertAt:]...)
	return out
}

// IDs flattens a sibling sequence to the ordered id list persisted by the
// reorder endpoints; the index in this list becomes the new sort order.
func IDs[T domain.Identifiable](items []T) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ItemID()
	}
	return ids
}

func indexOf[T domain.Identifiable](items []T, id int64) int {
	for i, item := range items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}
