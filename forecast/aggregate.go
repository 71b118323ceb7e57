// Package forecast implements pure aggregation over three-hour forecast
// samples. No I/O; callers feed it gateway output.
package forecast

import (
	"time"

	"cityweather.app/models"
)

const (
	// maxDays bounds the daily view to the five days the upstream
	// forecast actually covers.
	maxDays = 5

	noonWindowStart = 12
	noonWindowEnd   = 14
)

// GroupByDay buckets chronological samples into per-day min/max/icon
// summaries. The grouping key is the UTC calendar date of each sample, a
// deliberate simplification over per-city timezones. Output order follows
// the first occurrence of each date and is truncated to five entries.
//
// The representative icon comes from the first sample whose UTC hour falls
// within [12:00, 14:00]; when no sample hits that window the day's first
// sample is used.
func GroupByDay(samples []models.ForecastSample) []models.DailyForecast {
	if len(samples) == 0 {
		return []models.DailyForecast{}
	}

	type bucket struct {
		summary models.DailyForecast
		hasNoon bool
	}

	order := make([]string, 0, maxDays)
	buckets := make(map[string]*bucket)

	for _, sample := range samples {
		ts := time.Unix(sample.Timestamp, 0).UTC()
		date := ts.Format("2006-01-02")

		b, exists := buckets[date]
		if !exists {
			if len(order) == maxDays {
				continue
			}
			b = &bucket{
				summary: models.DailyForecast{
					Date:     date,
					MinTempC: sample.TempC,
					MaxTempC: sample.TempC,
					Icon:     sample.Icon,
				},
			}
			buckets[date] = b
			order = append(order, date)
		}

		if sample.TempC < b.summary.MinTempC {
			b.summary.MinTempC = sample.TempC
		}
		if sample.TempC > b.summary.MaxTempC {
			b.summary.MaxTempC = sample.TempC
		}

		hour := ts.Hour()
		if !b.hasNoon && hour >= noonWindowStart && hour <= noonWindowEnd {
			b.summary.Icon = sample.Icon
			b.hasNoon = true
		}
	}

	result := make([]models.DailyForecast, 0, len(order))
	for _, date := range order {
		result = append(result, buckets[date].summary)
	}
	return result
}

// FirstNHours returns the leading n samples unchanged, for the hourly strip
// view. n larger than the sample count returns everything.
func FirstNHours(samples []models.ForecastSample, n int) []models.ForecastSample {
	if n < 0 {
		n = 0
	}
	if n > len(samples) {
		n = len(samples)
	}
	result := make([]models.ForecastSample, n)
	copy(result, samples[:n])
	return result
}
