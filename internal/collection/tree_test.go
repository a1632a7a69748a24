package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/domain"
)

func ptr(v int64) *int64 { return &v }

// fixture:
//
//	api/        (1)
//	  auth/     (2)   requests: 100, 101
//	    tokens/ (3)   requests: 102
//	  users/    (4)
//	misc/       (5)
//	standalone requests: 200, 201
func fixtureTree() *Tree {
	roots := []domain.Folder{
		{
			ID: 1, Name: "api",
			Children: []domain.Folder{
				{
					ID: 2, Name: "auth", ParentFolderID: ptr(1),
					Children: []domain.Folder{
						{ID: 3, Name: "tokens", ParentFolderID: ptr(2),
							Requests: []domain.Request{{ID: 102, FolderID: ptr(3)}}},
					},
					Requests: []domain.Request{
						{ID: 100, FolderID: ptr(2)},
						{ID: 101, FolderID: ptr(2)},
					},
				},
				{ID: 4, Name: "users", ParentFolderID: ptr(1)},
			},
		},
		{ID: 5, Name: "misc"},
	}
	standalone := []domain.Request{{ID: 200}, {ID: 201}}
	return NewTree(roots, standalone)
}

func TestTreeLookup(t *testing.T) {
	tree := fixtureTree()

	require.NotNil(t, tree.FolderByID(3))
	assert.Equal(t, "tokens", tree.FolderByID(3).Name)
	require.NotNil(t, tree.RequestByID(102))
	require.NotNil(t, tree.RequestByID(200))

	assert.Nil(t, tree.FolderByID(999), "unknown folder id is nil, not an error")
	assert.Nil(t, tree.RequestByID(999))
}

func TestSiblingFolders(t *testing.T) {
	tree := fixtureTree()

	assert.Equal(t, []int64{1, 5}, IDs(tree.SiblingFolders(1)), "root folder's siblings are the root list")
	assert.Equal(t, []int64{1, 5}, IDs(tree.SiblingFolders(5)))
	assert.Equal(t, []int64{2, 4}, IDs(tree.SiblingFolders(2)), "nested folder's siblings come from its parent")
	assert.Equal(t, []int64{3}, IDs(tree.SiblingFolders(3)))
	assert.Nil(t, tree.SiblingFolders(999), "unknown id yields nil for caller no-op")
}

func TestSiblingRequests(t *testing.T) {
	tree := fixtureTree()

	assert.Equal(t, []int64{100, 101}, IDs(tree.SiblingRequests(100)))
	assert.Equal(t, []int64{100, 101}, IDs(tree.SiblingRequests(101)))
	assert.Equal(t, []int64{102}, IDs(tree.SiblingRequests(102)))
	assert.Equal(t, []int64{200, 201}, IDs(tree.SiblingRequests(201)), "standalone requests are each other's siblings")
	assert.Nil(t, tree.SiblingRequests(999))
}

func TestIsDescendant(t *testing.T) {
	tree := fixtureTree()

	assert.True(t, tree.IsDescendant(1, 2))
	assert.True(t, tree.IsDescendant(1, 3), "descent is transitive")
	assert.True(t, tree.IsDescendant(2, 3))
	assert.False(t, tree.IsDescendant(3, 2), "not symmetric")
	assert.False(t, tree.IsDescendant(1, 5))
	assert.False(t, tree.IsDescendant(2, 2), "a folder is not its own descendant")
	assert.False(t, tree.IsDescendant(1, 999))
}

func TestCanReparentFolder(t *testing.T) {
	tree := fixtureTree()

	assert.True(t, tree.CanReparentFolder(5, ptr(3)), "unrelated folder may move anywhere")
	assert.True(t, tree.CanReparentFolder(2, nil), "moving to root is always valid")
	assert.False(t, tree.CanReparentFolder(2, ptr(2)), "folder cannot become its own parent")
	assert.False(t, tree.CanReparentFolder(1, ptr(3)), "folder cannot move under its own descendant")
	assert.False(t, tree.CanReparentFolder(2, ptr(3)))
}
