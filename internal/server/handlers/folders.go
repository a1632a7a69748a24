package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/server/models"
	"github.com/warrenhq/warren/internal/server/services"
	appErrors "github.com/warrenhq/warren/pkg/errors"
	"github.com/warrenhq/warren/pkg/response"
)

// FolderTree returns the nested folder hierarchy with requests attached,
// siblings in sort order.
func (h *Handler) FolderTree(c *gin.Context) {
	tree, err := h.tree.BuildTree()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree)
}

type createFolderInput struct {
	Name           string `json:"name" binding:"required"`
	ParentFolderID *int64 `json:"parent_folder_id"`
}

// CreateFolder adds a folder at the end of its sibling group, rejecting
// parents that would push it past the nesting limit.
func (h *Handler) CreateFolder(c *gin.Context) {
	var input createFolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	if input.ParentFolderID != nil {
		parentDepth, err := h.tree.FolderDepth(*input.ParentFolderID)
		if err != nil {
			response.Error(c, notFoundOr(err, "Parent folder not found"))
			return
		}
		if parentDepth+1 > services.MaxNestingDepth {
			response.Error(c, appErrors.ErrBadRequest.WithMessage("Maximum folder nesting depth exceeded"))
			return
		}
	}

	folder := models.Folder{
		Name:           input.Name,
		ParentFolderID: input.ParentFolderID,
		SortOrder:      h.nextFolderSortOrder(input.ParentFolderID),
	}
	if err := h.db.Create(&folder).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("folder created", zap.Int64("id", folder.ID), zap.String("name", folder.Name))
	response.Success(c, http.StatusCreated, folder.ToDomain())
}

// UpdateFolder renames or re-parents a folder. Moves that would make the
// folder its own ancestor or exceed the nesting limit are rejected before
// anything is written.
func (h *Handler) UpdateFolder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var folder models.Folder
	if err := h.db.First(&folder, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Folder not found"))
		return
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &folder.Name); err != nil {
			response.Error(c, appErrors.ErrValidation.WithInternal(err))
			return
		}
	}

	if raw, ok := fields["parent_folder_id"]; ok {
		var parentID *int64
		if err := json.Unmarshal(raw, &parentID); err != nil {
			response.Error(c, appErrors.ErrValidation.WithInternal(err))
			return
		}
		if err := h.validateMove(folder.ID, parentID); err != nil {
			response.Error(c, err)
			return
		}
		// Re-parenting appends the folder to its new sibling group.
		if !sameParent(folder.ParentFolderID, parentID) {
			folder.ParentFolderID = parentID
			folder.SortOrder = h.nextFolderSortOrder(parentID)
		}
	}

	if err := h.db.Save(&folder).Error; err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, folder.ToDomain())
}

// DeleteFolder removes a folder and, through foreign keys, every descendant
// folder and request.
func (h *Handler) DeleteFolder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var folder models.Folder
	if err := h.db.First(&folder, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Folder not found"))
		return
	}
	if err := h.db.Delete(&folder).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("folder deleted", zap.Int64("id", id))
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

type reorderFoldersInput struct {
	FolderIDs []int64 `json:"folder_ids" binding:"required"`
}

// ReorderFolders persists a new sibling order: each folder's sort order
// becomes its index in the posted list.
func (h *Handler) ReorderFolders(c *gin.Context) {
	var input reorderFoldersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range input.FolderIDs {
			result := tx.Model(&models.Folder{}).Where("id = ?", id).Update("sort_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return appErrors.ErrNotFound.WithMessage("Folder not found")
			}
		}
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(input.FolderIDs)})
}

func (h *Handler) validateMove(folderID int64, newParentID *int64) error {
	cycle, err := h.tree.WouldCycle(folderID, newParentID)
	if err != nil {
		return notFoundOr(err, "Parent folder not found")
	}
	if cycle {
		return appErrors.ErrBadRequest.WithMessage("Circular folder reference detected")
	}

	if newParentID == nil {
		return nil
	}
	parentDepth, err := h.tree.FolderDepth(*newParentID)
	if err != nil {
		return notFoundOr(err, "Parent folder not found")
	}
	height, err := h.tree.SubtreeHeight(folderID)
	if err != nil {
		return err
	}
	if parentDepth+height > services.MaxNestingDepth {
		return appErrors.ErrBadRequest.WithMessage("Maximum folder nesting depth exceeded")
	}
	return nil
}

func (h *Handler) nextFolderSortOrder(parentID *int64) int {
	var max *int
	h.db.Model(&models.Folder{}).
		Where("parent_folder_id IS ?", parentID).
		Select("MAX(sort_order)").
		Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}
