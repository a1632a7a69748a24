package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/server/models"
	appErrors "github.com/warrenhq/warren/pkg/errors"
	"github.com/warrenhq/warren/pkg/response"
)

// ListEnvironments returns every environment with its variables.
func (h *Handler) ListEnvironments(c *gin.Context) {
	var rows []models.Environment
	if err := h.db.Preload("Variables").Order("name").Find(&rows).Error; err != nil {
		response.Error(c, err)
		return
	}

	out := make([]domain.Environment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	response.Success(c, http.StatusOK, out)
}

type environmentInput struct {
	Name      string `json:"name" binding:"required"`
	BaseURL   string `json:"base_url"`
	Variables []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"variables"`
}

// CreateEnvironment adds an environment together with its variables.
func (h *Handler) CreateEnvironment(c *gin.Context) {
	var input environmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	env := models.Environment{Name: input.Name, BaseURL: input.BaseURL}
	for _, v := range input.Variables {
		env.Variables = append(env.Variables, models.Variable{Key: v.Key, Value: v.Value})
	}
	if err := h.db.Create(&env).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("environment created", zap.Int64("id", env.ID), zap.String("name", env.Name))
	response.Success(c, http.StatusCreated, env.ToDomain())
}

// UpdateEnvironment replaces an environment's name, base URL, and variable
// set wholesale.
func (h *Handler) UpdateEnvironment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var env models.Environment
	if err := h.db.First(&env, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Environment not found"))
		return
	}

	var input environmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.ErrValidation.WithInternal(err))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		env.Name = input.Name
		env.BaseURL = input.BaseURL
		if err := tx.Save(&env).Error; err != nil {
			return err
		}
		if err := tx.Where("environment_id = ?", env.ID).Delete(&models.Variable{}).Error; err != nil {
			return err
		}
		for _, v := range input.Variables {
			variable := models.Variable{EnvironmentID: env.ID, Key: v.Key, Value: v.Value}
			if err := tx.Create(&variable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.db.Preload("Variables").First(&env, id).Error; err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, env.ToDomain())
}

// DeleteEnvironment removes an environment and its variables.
func (h *Handler) DeleteEnvironment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var env models.Environment
	if err := h.db.First(&env, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Environment not found"))
		return
	}
	if err := h.db.Delete(&env).Error; err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ActivateEnvironment makes one environment active and deactivates the rest.
func (h *Handler) ActivateEnvironment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var env models.Environment
	if err := h.db.First(&env, id).Error; err != nil {
		response.Error(c, notFoundOr(err, "Environment not found"))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Environment{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&env).Update("is_active", true).Error
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.logger.Info("environment activated", zap.Int64("id", id), zap.String("name", env.Name))
	response.Success(c, http.StatusOK, gin.H{"activated": id})
}

// activeEnvironment returns the active environment, or nil when none is.
func (h *Handler) activeEnvironment() (*domain.Environment, error) {
	var env models.Environment
	err := h.db.Preload("Variables").Where("is_active = ?", true).First(&env).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := env.ToDomain()
	return &out, nil
}
