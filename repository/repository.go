// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"

	apperrors "cityweather.app/errors"
	"cityweather.app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository handles persistence for per-city weather summaries.
// Rows are keyed by the city display name, matching the listing render
// path; two same-named cities overwrite each other's summary.
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new repository for summary data
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// LoadAll retrieves every persisted summary, called once at startup.
func (r *SummaryRepository) LoadAll() ([]models.CitySummary, error) {
	var summaries []models.CitySummary
	result := r.db.Find(&summaries)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when loading summaries: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to load summaries", result.Error)
	}

	log.Printf("[DEBUG] Loaded %d persisted summaries\n", len(summaries))
	return summaries, nil
}

// Upsert creates or overwrites the summary row for a city.
func (r *SummaryRepository) Upsert(summary *models.CitySummary) error {
	if summary.CityName == "" {
		return apperrors.NewValidationError("city name cannot be empty")
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "city_name"}},
		UpdateAll: true,
	}).Create(summary)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when upserting summary: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to persist summary", result.Error)
	}

	return nil
}

// Find retrieves one summary by city name, nil when absent.
func (r *SummaryRepository) Find(cityName string) (*models.CitySummary, error) {
	var summary models.CitySummary
	result := r.db.Where("city_name = ?", cityName).First(&summary)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding summary: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find summary", result.Error)
	}

	return &summary, nil
}
