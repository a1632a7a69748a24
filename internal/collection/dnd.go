package collection

import "github.com/warrenhq/warren/internal/domain"

// Fraction of a folder row's height, at the top and at the bottom, that
// resolves to a reorder gap instead of a drop-into-folder. The middle band
// (the remaining half) re-parents into the folder. The zones are symmetric
// and the exact vertical centre is inclusive toward the container.
const folderGapZone = 0.25

// DragPayload describes the item currently being dragged. It exists only
// between drag start and drop/cancel.
type DragPayload struct {
	Kind           domain.Kind
	ID             int64
	SourceFolderID *int64
}

// TargetKind discriminates the two drop-target variants.
type TargetKind int

const (
	// TargetGap inserts the dragged item before or after a sibling.
	TargetGap TargetKind = iota
	// TargetContainer re-parents the dragged item into a folder.
	TargetContainer
)

// DropTarget is the resolved semantic meaning of a hover position.
type DropTarget struct {
	Kind TargetKind

	// Gap fields
	ReferenceID   int64
	ReferenceKind domain.Kind
	Position      Position

	// Container field
	FolderID int64
}

// GapPosition resolves a pointer's vertical coordinate against an item row's
// extent. The midpoint is the tie-break line: strictly above it is Before, at
// or below it is After. Pure function of its arguments.
func GapPosition(pointerY, top, height float32) Position {
	if pointerY < top+height/2 {
		return Before
	}
	return After
}

// ResolveRequestHover resolves a hover over a request row. Request rows only
// ever produce gap targets.
func ResolveRequestHover(requestID int64, pointerY, top, height float32) DropTarget {
	return DropTarget{
		Kind:          TargetGap,
		ReferenceID:   requestID,
		ReferenceKind: domain.KindRequest,
		Position:      GapPosition(pointerY, top, height),
	}
}

// ResolveFolderHover resolves a hover over a folder row, which is ambiguous
// between "reorder relative to this folder" and "drop inside it". The row is
// split into three zones: the top quarter is a gap before, the bottom quarter
// a gap after, and the middle half (centre inclusive) drops into the folder.
func ResolveFolderHover(folderID int64, pointerY, top, height float32) DropTarget {
	switch {
	case pointerY < top+height*folderGapZone:
		return DropTarget{
			Kind:          TargetGap,
			ReferenceID:   folderID,
			ReferenceKind: domain.KindFolder,
			Position:      Before,
		}
	case pointerY > top+height*(1-folderGapZone):
		return DropTarget{
			Kind:          TargetGap,
			ReferenceID:   folderID,
			ReferenceKind: domain.KindFolder,
			Position:      After,
		}
	default:
		return DropTarget{Kind: TargetContainer, FolderID: folderID}
	}
}

// AllowDrop is the validity filter applied before a resolved target is
// surfaced. Gap targets require matching kinds (requests reorder against
// requests, folders against folders); container targets accept either kind.
// Invalid pairings must never reach the UI as an active indicator.
func AllowDrop(drag DragPayload, target DropTarget) bool {
	if target.Kind == TargetContainer {
		return true
	}
	return drag.Kind == target.ReferenceKind
}
