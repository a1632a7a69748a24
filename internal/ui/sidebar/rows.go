package sidebar

import (
	"github.com/warrenhq/warren/internal/collection"
	"github.com/warrenhq/warren/internal/domain"
)

// Row is one visible line of the collection panel: a folder or a request at
// some indentation depth. Standalone requests render at depth 0 after the
// last root folder.
type Row struct {
	Kind  domain.Kind
	Depth int

	Folder  domain.Folder
	Request domain.Request
}

// ID returns the underlying item's id.
func (r Row) ID() int64 {
	if r.Kind == domain.KindFolder {
		return r.Folder.ID
	}
	return r.Request.ID
}

// Label returns the display text for the row.
func (r Row) Label() string {
	if r.Kind == domain.KindFolder {
		return r.Folder.Name
	}
	return r.Request.Name
}

// FlattenTree linearizes the tree into the visible row order: each folder is
// followed by its child folders (depth-first), then its requests; standalone
// requests come last at root depth.
func FlattenTree(tree *collection.Tree) []Row {
	var rows []Row

	var walk func(folder domain.Folder, depth int)
	walk = func(folder domain.Folder, depth int) {
		rows = append(rows, Row{Kind: domain.KindFolder, Depth: depth, Folder: folder})
		for _, child := range folder.Children {
			walk(child, depth+1)
		}
		for _, req := range folder.Requests {
			rows = append(rows, Row{Kind: domain.KindRequest, Depth: depth + 1, Request: req})
		}
	}

	for _, root := range tree.Roots {
		walk(root, 0)
	}
	for _, req := range tree.Standalone {
		rows = append(rows, Row{Kind: domain.KindRequest, Depth: 0, Request: req})
	}
	return rows
}

// payload builds the drag payload for the row.
func (r Row) payload() collection.DragPayload {
	if r.Kind == domain.KindFolder {
		return collection.DragPayload{
			Kind:           domain.KindFolder,
			ID:             r.Folder.ID,
			SourceFolderID: r.Folder.ParentFolderID,
		}
	}
	return collection.DragPayload{
		Kind:           domain.KindRequest,
		ID:             r.Request.ID,
		SourceFolderID: r.Request.FolderID,
	}
}

// resolveHover maps a pointer's vertical position inside the panel to a drop
// target, given the row it lands on. Returns false when the pairing is
// invalid for the in-flight drag.
func resolveHover(drag collection.DragPayload, row Row, pointerY, rowTop, rowHeight float32) (collection.DropTarget, bool) {
	var target collection.DropTarget
	if row.Kind == domain.KindFolder {
		target = collection.ResolveFolderHover(row.Folder.ID, pointerY, rowTop, rowHeight)
	} else {
		target = collection.ResolveRequestHover(row.Request.ID, pointerY, rowTop, rowHeight)
	}
	if !collection.AllowDrop(drag, target) {
		return collection.DropTarget{}, false
	}
	return target, true
}
