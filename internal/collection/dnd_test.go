package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warrenhq/warren/internal/domain"
)

func TestGapPosition(t *testing.T) {
	tests := []struct {
		name     string
		pointerY float32
		top      float32
		height   float32
		want     Position
	}{
		{"above midpoint", 104, 100, 20, Before},
		{"just above midpoint", 109.9, 100, 20, Before},
		{"exactly at midpoint", 110, 100, 20, After},
		{"below midpoint", 118, 100, 20, After},
		{"at top edge", 100, 100, 20, Before},
		{"at bottom edge", 120, 100, 20, After},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GapPosition(tt.pointerY, tt.top, tt.height))
		})
	}
}

func TestResolveFolderHoverZones(t *testing.T) {
	const top, height = 200, 40 // zones: [200,210) gap-before, [210,230] container, (230,240] gap-after

	tests := []struct {
		name     string
		pointerY float32
		wantKind TargetKind
		wantPos  Position
	}{
		{"top quarter is gap before", 205, TargetGap, Before},
		{"just inside top zone", 209.9, TargetGap, Before},
		{"upper middle is container", 212, TargetContainer, 0},
		{"exact centre is container", 220, TargetContainer, 0},
		{"lower middle is container", 228, TargetContainer, 0},
		{"zone boundary stays container", 230, TargetContainer, 0},
		{"bottom quarter is gap after", 235, TargetGap, After},
		{"bottom edge is gap after", 240, TargetGap, After},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFolderHover(7, tt.pointerY, top, height)
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind == TargetGap {
				assert.Equal(t, int64(7), got.ReferenceID)
				assert.Equal(t, domain.KindFolder, got.ReferenceKind)
				assert.Equal(t, tt.wantPos, got.Position)
			} else {
				assert.Equal(t, int64(7), got.FolderID)
			}
		})
	}
}

func TestResolveRequestHover(t *testing.T) {
	got := ResolveRequestHover(3, 101, 100, 20)
	assert.Equal(t, TargetGap, got.Kind)
	assert.Equal(t, domain.KindRequest, got.ReferenceKind)
	assert.Equal(t, Before, got.Position)

	got = ResolveRequestHover(3, 119, 100, 20)
	assert.Equal(t, After, got.Position)
}

func TestAllowDrop(t *testing.T) {
	reqDrag := DragPayload{Kind: domain.KindRequest, ID: 1}
	folderDrag := DragPayload{Kind: domain.KindFolder, ID: 2}

	reqGap := DropTarget{Kind: TargetGap, ReferenceID: 9, ReferenceKind: domain.KindRequest}
	folderGap := DropTarget{Kind: TargetGap, ReferenceID: 9, ReferenceKind: domain.KindFolder}
	container := DropTarget{Kind: TargetContainer, FolderID: 9}

	assert.True(t, AllowDrop(reqDrag, reqGap))
	assert.True(t, AllowDrop(folderDrag, folderGap))
	assert.False(t, AllowDrop(reqDrag, folderGap), "request cannot gap-target a folder")
	assert.False(t, AllowDrop(folderDrag, reqGap), "folder cannot gap-target a request")
	assert.True(t, AllowDrop(reqDrag, container))
	assert.True(t, AllowDrop(folderDrag, container))
}

func TestDragStateSingleSlot(t *testing.T) {
	var s DragState
	assert.False(t, s.Active())

	s.Start(DragPayload{Kind: domain.KindRequest, ID: 1})
	s.SetTarget(DropTarget{Kind: TargetContainer, FolderID: 4})
	assert.True(t, s.Active())
	assert.NotNil(t, s.Target())

	// A new drag replaces the old one and drops its stale target.
	s.Start(DragPayload{Kind: domain.KindFolder, ID: 2})
	assert.Equal(t, int64(2), s.Payload().ID)
	assert.Nil(t, s.Target())

	s.End()
	assert.False(t, s.Active())
	assert.Nil(t, s.Payload())
	assert.Nil(t, s.Target())

	// Targets cannot be set without an active drag.
	s.SetTarget(DropTarget{Kind: TargetContainer, FolderID: 4})
	assert.Nil(t, s.Target())
}
