package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/server/models"
	appErrors "github.com/warrenhq/warren/pkg/errors"
	"github.com/warrenhq/warren/pkg/response"
)

type createRequestInput struct {
	Name        string            `json:"name" binding:"required"`
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     []domain.KeyValue `json:"headers"`
	QueryParams []domain.KeyValue `json:"query_params"`
	BodyType    string            `json:"body_type"`
	Body        string            `json:"body"`
	FolderID    *int64            `json:"folder_id"`
}

// CreateRequest adds a request at the end of its sibling group.
func (h *Handler) CreateRequest(c *gin.Context) {
	var input createRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	if input.FolderID != nil {
		if err := h.requireFolder(*input.FolderID); err != nil {
			response.Error(c, err)
			return
		}
	}

	if input.Method == "" {
		input.Method = "GET"
	}
	if input.BodyType == "" {
		input.BodyType = "none"
	}

	req := models.Request{
		Name:        input.Name,
		Method:      input.Method,
		URL:         input.URL,
		Headers:     input.Headers,
		QueryParams: input.QueryParams,
		BodyType:    input.BodyType,
		Body:        input.Body,
		FolderID:    input.FolderID,
		SortOrder:   h.nextRequestSortOrder(input.FolderID),
	}
	if err := h.db.Create(&req).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("request created", zap.Int64("id", req.ID), zap.String("name", req.Name))
	response.Success(c, http.StatusCreated, req.ToDomain())
}

// UpdateRequest applies a partial update. Only keys present in the JSON body
// are touched; "folder_id": null moves the request to standalone.
func (h *Handler) UpdateRequest(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.Request
	if err := h.db.First(&req, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Request not found"))
		return
	}

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	if err := applyRequestPatch(&req, fields); err != nil {
		response.Error(c, err)
		return
	}

	if raw, ok := fields["folder_id"]; ok {
		var folderID *int64
		if err := json.Unmarshal(raw, &folderID); err != nil {
			response.Error(c, appErrors.ErrValidation.WithInternal(err))
			return
		}
		if folderID != nil {
			if err := h.requireFolder(*folderID); err != nil {
				response.Error(c, err)
				return
			}
		}
		// Re-parenting appends the request to its new sibling group.
		if !sameParent(req.FolderID, folderID) {
			req.FolderID = folderID
			req.SortOrder = h.nextRequestSortOrder(folderID)
		}
	}

	if err := h.db.Save(&req).Error; err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, req.ToDomain())
}

// DeleteRequest removes a request. History rows keep their snapshot and lose
// only the request link.
func (h *Handler) DeleteRequest(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.Request
	if err := h.db.First(&req, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Request not found"))
		return
	}
	if err := h.db.Delete(&req).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("request deleted", zap.Int64("id", id))
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

type reorderRequestsInput struct {
	RequestIDs []int64 `json:"request_ids" binding:"required"`
}

// ReorderRequests persists a new sibling order: each request's sort order
// becomes its index in the posted list.
func (h *Handler) ReorderRequests(c *gin.Context) {
	var input reorderRequestsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for index, id := range input.RequestIDs {
			result := tx.Model(&models.Request{}).Where("id = ?", id).Update("sort_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return appErrors.ErrNotFound.WithMessage("Request not found")
			}
		}
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(input.RequestIDs)})
}

// ListStandaloneRequests returns requests outside any folder, in sibling
// order.
func (h *Handler) ListStandaloneRequests(c *gin.Context) {
	var rows []models.Request
	if err := h.db.Where("folder_id IS NULL").Order("sort_order, id").Find(&rows).Error; err != nil {
		response.Error(c, err)
		return
	}

	out := make([]domain.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	response.Success(c, http.StatusOK, out)
}

func applyRequestPatch(req *models.Request, fields map[string]json.RawMessage) error {
	set := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return appErrors.ErrValidation.WithInternal(err)
		}
		return nil
	}

	if err := set("name", &req.Name); err != nil {
		return err
	}
	if err := set("method", &req.Method); err != nil {
		return err
	}
	if err := set("url", &req.URL); err != nil {
		return err
	}
	if err := set("headers", &req.Headers); err != nil {
		return err
	}
	if err := set("query_params", &req.QueryParams); err != nil {
		return err
	}
	if err := set("body_type", &req.BodyType); err != nil {
		return err
	}
	return set("body", &req.Body)
}

func (h *Handler) nextRequestSortOrder(folderID *int64) int {
	var max *int
	h.db.Model(&models.Request{}).
		Where("folder_id IS ?", folderID).
		Select("MAX(sort_order)").
		Scan(&max)
	if max == nil {
		return 0
	}
	return *max + 1
}

func (h *Handler) requireFolder(id int64) error {
	var folder models.Folder
	if err := h.db.Select("id").First(&folder, id).Error; err != nil {
		return notFoundOr(err, "Folder not found")
	}
	return nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.ErrValidation.WithMessage("Invalid id")
	}
	return id, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErrors.ErrNotFound.WithMessage(message)
	}
	return err
}
