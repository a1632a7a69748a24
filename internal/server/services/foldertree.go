// Package services implements the behavior behind the HTTP handlers: folder
// tree assembly and validation, variable substitution, request execution, and
// history recording.
package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/server/models"
)

// MaxNestingDepth caps how deep folders may nest. A root folder sits at
// depth 1.
const MaxNestingDepth = 5

// TreeService answers structural questions about the folder hierarchy and
// assembles the nested tree the client renders.
type TreeService struct {
	db *gorm.DB
}

func NewTreeService(db *gorm.DB) *TreeService {
	return &TreeService{db: db}
}

// FolderDepth returns the depth of the folder, walking up through its
// ancestors. Returns gorm.ErrRecordNotFound for an unknown id.
func (s *TreeService) FolderDepth(id int64) (int, error) {
	depth := 0
	current := &id
	for current != nil {
		var folder models.Folder
		if err := s.db.Select("id", "parent_folder_id").First(&folder, *current).Error; err != nil {
			return 0, err
		}
		depth++
		current = folder.ParentFolderID
	}
	return depth, nil
}

// SubtreeHeight returns the height of the subtree rooted at id: 1 for a
// folder with no child folders.
func (s *TreeService) SubtreeHeight(id int64) (int, error) {
	var children []models.Folder
	if err := s.db.Select("id").Where("parent_folder_id = ?", id).Find(&children).Error; err != nil {
		return 0, err
	}

	max := 0
	for _, child := range children {
		h, err := s.SubtreeHeight(child.ID)
		if err != nil {
			return 0, err
		}
		if h > max {
			max = h
		}
	}
	return max + 1, nil
}

// WouldCycle reports whether moving folderID under newParentID would make the
// folder its own ancestor. A nil parent (move to root) never cycles.
func (s *TreeService) WouldCycle(folderID int64, newParentID *int64) (bool, error) {
	current := newParentID
	for current != nil {
		if *current == folderID {
			return true, nil
		}
		var folder models.Folder
		if err := s.db.Select("id", "parent_folder_id").First(&folder, *current).Error; err != nil {
			return false, err
		}
		current = folder.ParentFolderID
	}
	return false, nil
}

// BuildTree loads every folder and every foldered request and assembles the
// nested tree. Siblings are ordered by (sort_order, id).
func (s *TreeService) BuildTree() ([]domain.Folder, error) {
	var folders []models.Folder
	if err := s.db.Find(&folders).Error; err != nil {
		return nil, err
	}

	var requests []models.Request
	if err := s.db.Where("folder_id IS NOT NULL").Find(&requests).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Folder, len(folders))
	childIDs := make(map[int64][]int64)
	var rootIDs []int64
	for _, f := range folders {
		byID[f.ID] = f
		if f.ParentFolderID == nil {
			rootIDs = append(rootIDs, f.ID)
		} else {
			childIDs[*f.ParentFolderID] = append(childIDs[*f.ParentFolderID], f.ID)
		}
	}

	requestsByFolder := make(map[int64][]domain.Request)
	for _, r := range requests {
		requestsByFolder[*r.FolderID] = append(requestsByFolder[*r.FolderID], r.ToDomain())
	}

	siblingOrder := func(ids []int64) {
		sort.Slice(ids, func(i, j int) bool {
			a, b := byID[ids[i]], byID[ids[j]]
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.ID < b.ID
		})
	}

	var build func(id int64) domain.Folder
	build = func(id int64) domain.Folder {
		node := byID[id].ToDomain()
		node.Requests = requestsByFolder[id]
		sort.Slice(node.Requests, func(i, j int) bool {
			if node.Requests[i].SortOrder != node.Requests[j].SortOrder {
				return node.Requests[i].SortOrder < node.Requests[j].SortOrder
			}
			return node.Requests[i].ID < node.Requests[j].ID
		})

		kids := childIDs[id]
		siblingOrder(kids)
		for _, childID := range kids {
			node.Children = append(node.Children, build(childID))
		}
		return node
	}

	siblingOrder(rootIDs)
	roots := make([]domain.Folder, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}
	return roots, nil
}
