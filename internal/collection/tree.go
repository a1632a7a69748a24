// Package collection holds the client-side model of the folder/request tree
// and the pure logic behind drag-and-drop: sibling lookup, reordering, and
// drop-target resolution. Nothing in this package talks to the network; the
// tree is a read-only snapshot replaced wholesale after every mutation.
package collection

import "github.com/warrenhq/warren/internal/domain"

// Tree is an immutable snapshot of the folder hierarchy plus the standalone
// (root-level) requests. An id index is built up front so lookups and
// ancestry checks do not re-walk the tree.
type Tree struct {
	Roots      []domain.Folder
	Standalone []domain.Request

	folders  map[int64]*domain.Folder
	requests map[int64]*domain.Request
	parents  map[int64]*int64 // folder id -> parent folder id (nil at root)
}

// NewTree builds a snapshot from the collaborator's tree and standalone lists.
func NewTree(roots []domain.Folder, standalone []domain.Request) *Tree {
	t := &Tree{
		Roots:      roots,
		Standalone: standalone,
		folders:    make(map[int64]*domain.Folder),
		requests:   make(map[int64]*domain.Request),
		parents:    make(map[int64]*int64),
	}
	for i := range t.Roots {
		t.index(&t.Roots[i], nil)
	}
	for i := range t.Standalone {
		t.requests[t.Standalone[i].ID] = &t.Standalone[i]
	}
	return t
}

func (t *Tree) index(f *domain.Folder, parentID *int64) {
	t.folders[f.ID] = f
	t.parents[f.ID] = parentID
	for i := range f.Requests {
		t.requests[f.Requests[i].ID] = &f.Requests[i]
	}
	id := f.ID
	for i := range f.Children {
		t.index(&f.Children[i], &id)
	}
}

// FolderByID returns the folder with the given id, or nil if it is not in the
// snapshot. A nil result is expected during races with deletion and callers
// treat it as a no-op.
func (t *Tree) FolderByID(id int64) *domain.Folder {
	return t.folders[id]
}

// RequestByID returns the request with the given id, or nil if absent.
func (t *Tree) RequestByID(id int64) *domain.Request {
	return t.requests[id]
}

// SiblingFolders locates the ordered folder list the given folder belongs to:
// its parent's children, or the root list for top-level folders. Returns nil
// when the id is unknown.
func (t *Tree) SiblingFolders(folderID int64) []domain.Folder {
	parentID, ok := t.parents[folderID]
	if !ok {
		return nil
	}
	if parentID == nil {
		return t.Roots
	}
	return t.folders[*parentID].Children
}

// SiblingRequests locates the ordered request list the given request belongs
// to: its folder's requests, or the standalone list. Returns nil when the id
// is unknown.
func (t *Tree) SiblingRequests(requestID int64) []domain.Request {
	req, ok := t.requests[requestID]
	if !ok {
		return nil
	}
	if req.FolderID == nil {
		return t.Standalone
	}
	parent := t.folders[*req.FolderID]
	if parent == nil {
		return nil
	}
	return parent.Requests
}

// IsDescendant reports whether candidateID sits anywhere below ancestorID.
// A folder is not its own descendant.
func (t *Tree) IsDescendant(ancestorID, candidateID int64) bool {
	if ancestorID == candidateID {
		return false
	}
	current, ok := t.parents[candidateID]
	for ok && current != nil {
		if *current == ancestorID {
			return true
		}
		current, ok = t.parents[*current]
	}
	return false
}

// CanReparentFolder reports whether moving the folder under the destination
// would be structurally valid. Moving a folder into itself or into one of its
// own descendants would orphan the subtree, so both are rejected. A nil
// destination means the root level, which is always valid.
func (t *Tree) CanReparentFolder(folderID int64, destinationID *int64) bool {
	if destinationID == nil {
		return true
	}
	if *destinationID == folderID {
		return false
	}
	return !t.IsDescendant(folderID, *destinationID)
}
