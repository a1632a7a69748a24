package sidebar

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/logging"
)

func newTestPanel(t *testing.T) *Panel {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	window := app.NewWindow("test")
	t.Cleanup(window.Close)

	p := NewPanel(logging.NewNopLogger(), window)
	p.SetTree(fixtureTree())
	return p
}

func TestPanelDragResolvesAndCommits(t *testing.T) {
	p := newTestPanel(t)

	var droppedDrag collection.DragPayload
	var droppedTarget collection.DropTarget
	dropped := false
	p.SetOnDrop(func(drag collection.DragPayload, target collection.DropTarget) {
		dropped = true
		droppedDrag = drag
		droppedTarget = target
	})

	// Drag request 11 (row index 2) over the top half of request 10 (row 1).
	p.startDrag(2)
	require.True(t, p.drag.Active())
	p.hoverTarget(1*p.rowHeight + 4)
	require.NotNil(t, p.drag.Target())

	p.finishDrag()
	require.True(t, dropped)
	assert.Equal(t, domain.KindRequest, droppedDrag.Kind)
	assert.Equal(t, int64(11), droppedDrag.ID)
	assert.Equal(t, collection.TargetGap, droppedTarget.Kind)
	assert.Equal(t, int64(10), droppedTarget.ReferenceID)
	assert.Equal(t, collection.Before, droppedTarget.Position)
	assert.False(t, p.drag.Active(), "drag slot clears after commit")
}

func TestPanelDragWithoutTargetIsNoOp(t *testing.T) {
	p := newTestPanel(t)

	dropped := false
	p.SetOnDrop(func(collection.DragPayload, collection.DropTarget) { dropped = true })

	p.startDrag(1)
	p.hoverTarget(float32(len(p.rows))*p.rowHeight + 50) // below every row
	assert.Nil(t, p.drag.Target())

	p.finishDrag()
	assert.False(t, dropped, "no resolved target means no drop")
}

func TestPanelHoveringDraggedRowClearsTarget(t *testing.T) {
	p := newTestPanel(t)

	p.startDrag(1)
	p.hoverTarget(p.rowHeight / 2) // folder centre, a valid container target
	require.NotNil(t, p.drag.Target())

	p.hoverTarget(1*p.rowHeight + 4) // back over itself
	assert.Nil(t, p.drag.Target())
}

func TestPanelSetTreeCancelsDrag(t *testing.T) {
	p := newTestPanel(t)

	p.startDrag(1)
	require.True(t, p.drag.Active())

	p.SetTree(fixtureTree())
	assert.False(t, p.drag.Active(), "reloads invalidate in-flight drags")
}
