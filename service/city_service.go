package service

import (
	"cityweather.app/models"
	"cityweather.app/providers"
)

// CityServiceInterface defines the city listing operations
type CityServiceInterface interface {
	ListCities(query string, offset, pageSize int, sortColumn models.SortColumn, direction models.SortDirection) (*models.CityPage, error)
	SuggestCities(prefix string, limit int) ([]models.CityRecord, error)
}

// CityService wraps the directory gateway for the API surface.
type CityService struct {
	gateway  providers.CityProvider
	pageSize int
}

// NewCityService creates a new city listing service
func NewCityService(gateway providers.CityProvider, pageSize int) *CityService {
	return &CityService{
		gateway:  gateway,
		pageSize: pageSize,
	}
}

// ListCities fetches one page of the directory. A non-positive pageSize
// falls back to the configured default. HasMore uses the returned-count
// approximation rather than the server's total, which can drift between
// pages.
func (s *CityService) ListCities(
	query string,
	offset, pageSize int,
	sortColumn models.SortColumn,
	direction models.SortDirection,
) (*models.CityPage, error) {
	if pageSize < 1 {
		pageSize = s.pageSize
	}

	records, total, err := s.gateway.SearchCities(query, offset, pageSize, sortColumn, direction)
	if err != nil {
		return nil, err
	}

	return &models.CityPage{
		Records:    records,
		TotalCount: total,
		HasMore:    len(records) == pageSize,
	}, nil
}

// SuggestCities proxies the autocomplete side-channel.
func (s *CityService) SuggestCities(prefix string, limit int) ([]models.CityRecord, error) {
	return s.gateway.SuggestCities(prefix, limit)
}
