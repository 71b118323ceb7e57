package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"cityweather.app/config"
	"cityweather.app/errors"
	"cityweather.app/models"
)

// GeonamesProvider implements CityProvider against the Opendatasoft
// records API serving the geonames city dataset.
type GeonamesProvider struct {
	baseURL string
	dataset string
	client  *http.Client
}

// NewGeonamesProvider creates a new city directory provider
func NewGeonamesProvider(config *config.CitiesConfig) *GeonamesProvider {
	return &GeonamesProvider{
		baseURL: config.BaseURL,
		dataset: config.Dataset,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type cityRecordsResponse struct {
	Records []struct {
		RecordID string `json:"recordid"`
		Fields   struct {
			Name             string    `json:"name"`
			CouNameEn        string    `json:"cou_name_en"`
			Timezone         string    `json:"timezone"`
			Coordinates      []float64 `json:"coordinates"`
			Population       int64     `json:"population"`
			Dem              int       `json:"dem"`
			FeatureCode      string    `json:"feature_code"`
			GeonameID        int64     `json:"geoname_id"`
			ModificationDate string    `json:"modification_date"`
		} `json:"fields"`
	} `json:"records"`
	TotalCount int `json:"total_count"`
}

// SearchCities retrieves one page of the city listing. An empty query means
// unfiltered browse. Descending order is encoded as a "-" prefix on the sort
// column; that encoding is a wire contract with the upstream API, swapping it
// silently reverses result order.
func (p *GeonamesProvider) SearchCities(
	query string,
	offset, pageSize int,
	sortColumn models.SortColumn,
	direction models.SortDirection,
) ([]models.CityRecord, int, error) {
	if pageSize < 1 {
		return nil, 0, errors.NewValidationError("page size must be positive")
	}
	if offset < 0 {
		return nil, 0, errors.NewValidationError("offset cannot be negative")
	}

	params := url.Values{}
	params.Set("dataset", p.dataset)
	params.Set("rows", fmt.Sprintf("%d", pageSize))
	params.Set("start", fmt.Sprintf("%d", offset))
	if query != "" {
		params.Set("q", query)
	}
	sort := string(sortColumn)
	if direction == models.SortDesc {
		sort = "-" + sort
	}
	params.Set("sort", sort)

	result, err := p.fetchRecords(params)
	if err != nil {
		return nil, 0, err
	}

	return convertCityRecords(result), result.TotalCount, nil
}

// SuggestCities retrieves autocomplete candidates, most populous first. A
// prefix shorter than two characters returns empty without any network call.
func (p *GeonamesProvider) SuggestCities(prefix string, limit int) ([]models.CityRecord, error) {
	if utf8.RuneCountInString(prefix) < 2 {
		return []models.CityRecord{}, nil
	}
	if limit < 1 {
		return nil, errors.NewValidationError("suggestion limit must be positive")
	}

	params := url.Values{}
	params.Set("dataset", p.dataset)
	params.Set("rows", fmt.Sprintf("%d", limit))
	// Field-scoped match on the city name, ranked by population.
	params.Set("q", "name:"+prefix)
	params.Set("sort", "population")

	result, err := p.fetchRecords(params)
	if err != nil {
		return nil, err
	}

	return convertCityRecords(result), nil
}

func (p *GeonamesProvider) fetchRecords(params url.Values) (*cityRecordsResponse, error) {
	requestURL := p.baseURL + "?" + params.Encode()

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewNetworkError("failed to reach city directory", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.NewUpstreamError("city directory request failed", resp.StatusCode, string(body))
	}

	var result cityRecordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewMalformedResponseError("failed to decode city records", err)
	}

	return &result, nil
}

// convertCityRecords flattens the nested records payload into CityRecord
// values. Coordinates arrive as [longitude, latitude].
func convertCityRecords(resp *cityRecordsResponse) []models.CityRecord {
	records := make([]models.CityRecord, 0, len(resp.Records))
	for _, r := range resp.Records {
		record := models.CityRecord{
			ID:               r.RecordID,
			Name:             r.Fields.Name,
			CountryName:      r.Fields.CouNameEn,
			Timezone:         r.Fields.Timezone,
			Population:       r.Fields.Population,
			Elevation:        r.Fields.Dem,
			FeatureCode:      r.Fields.FeatureCode,
			GeonameID:        r.Fields.GeonameID,
			ModificationDate: r.Fields.ModificationDate,
		}
		if len(r.Fields.Coordinates) == 2 {
			record.Longitude = r.Fields.Coordinates[0]
			record.Latitude = r.Fields.Coordinates[1]
		}
		records = append(records, record)
	}
	return records
}
