package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/warrenhq/warren/internal/domain"
	"github.com/warrenhq/warren/internal/server/models"
	appErrors "github.com/warrenhq/warren/pkg/errors"
)

// HistoryService records request executions and serves them back newest
// first.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record persists one execution outcome.
func (s *HistoryService) Record(entry *models.History) error {
	return s.db.Create(entry).Error
}

// List returns one page of history, newest first, with the total count of
// all entries.
func (s *HistoryService) List(skip, limit int) (*domain.HistoryPage, error) {
	var total int64
	if err := s.db.Model(&models.History{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.History
	if err := s.db.Order("executed_at DESC, id DESC").Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	page := &domain.HistoryPage{Total: int(total), Items: make([]domain.HistoryEntry, 0, len(rows))}
	for _, row := range rows {
		page.Items = append(page.Items, row.ToDomain())
	}
	return page, nil
}

// Delete removes a single entry.
func (s *HistoryService) Delete(id int64) error {
	var entry models.History
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrNotFound.WithMessage("History entry not found")
		}
		return err
	}
	return s.db.Delete(&entry).Error
}

// Clear removes every entry.
func (s *HistoryService) Clear() error {
	return s.db.Where("1 = 1").Delete(&models.History{}).Error
}
