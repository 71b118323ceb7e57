package forecast

import (
	"testing"
	"time"

	"cityweather.app/models"
	"github.com/stretchr/testify/assert"
)

func sampleAt(t time.Time, temp float64, icon string) models.ForecastSample {
	return models.ForecastSample{
		Timestamp: t.Unix(),
		TempC:     temp,
		TempMinC:  temp,
		TempMaxC:  temp,
		Icon:      icon,
	}
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("EmptyInput", func(t *testing.T) {
		result := GroupByDay([]models.ForecastSample{})
		assert.Empty(t, result)
	})

	t.Run("NoonWindowPicksRepresentativeIcon", func(t *testing.T) {
		samples := []models.ForecastSample{
			sampleAt(day1.Add(9*time.Hour), 10, "03d"),
			sampleAt(day1.Add(13*time.Hour), 15, "01d"),
			sampleAt(day1.Add(18*time.Hour), 12, "10d"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 1)
		assert.Equal(t, "2024-03-10", result[0].Date)
		assert.Equal(t, 10.0, result[0].MinTempC)
		assert.Equal(t, 15.0, result[0].MaxTempC)
		assert.Equal(t, "01d", result[0].Icon)
	})

	t.Run("FirstSampleIconWhenNoNoonSample", func(t *testing.T) {
		samples := []models.ForecastSample{
			sampleAt(day1.Add(3*time.Hour), 5, "13d"),
			sampleAt(day1.Add(18*time.Hour), 8, "10n"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 1)
		assert.Equal(t, "13d", result[0].Icon)
	})

	t.Run("FirstNoonMatchWins", func(t *testing.T) {
		samples := []models.ForecastSample{
			sampleAt(day1.Add(12*time.Hour), 11, "02d"),
			sampleAt(day1.Add(14*time.Hour), 13, "09d"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 1)
		assert.Equal(t, "02d", result[0].Icon)
	})

	t.Run("SingleSampleHasEqualMinMax", func(t *testing.T) {
		samples := []models.ForecastSample{
			sampleAt(day1.Add(6*time.Hour), 7.5, "01d"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 1)
		assert.Equal(t, result[0].MinTempC, result[0].MaxTempC)
	})

	t.Run("TruncatesToFiveDays", func(t *testing.T) {
		var samples []models.ForecastSample
		for day := 0; day < 7; day++ {
			for _, hour := range []int{2, 13, 20} {
				ts := day1.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
				samples = append(samples, sampleAt(ts, float64(day), "04d"))
			}
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 5)
		for i, group := range result {
			assert.Equal(t, day1.AddDate(0, 0, i).Format("2006-01-02"), group.Date)
			assert.LessOrEqual(t, group.MinTempC, group.MaxTempC)
		}
	})

	t.Run("GroupCountMatchesDistinctDays", func(t *testing.T) {
		samples := []models.ForecastSample{
			sampleAt(day1.Add(21*time.Hour), 4, "01n"),
			sampleAt(day1.Add(24*time.Hour), 2, "01n"),
			sampleAt(day1.Add(27*time.Hour), 3, "02n"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 2)
		assert.Equal(t, "2024-03-10", result[0].Date)
		assert.Equal(t, "2024-03-11", result[1].Date)
	})

	t.Run("UTCDateBoundary", func(t *testing.T) {
		// 23:00 and 01:00 straddle midnight UTC and must land in
		// different groups regardless of the host timezone.
		samples := []models.ForecastSample{
			sampleAt(day1.Add(23*time.Hour), 1, "01n"),
			sampleAt(day1.Add(25*time.Hour), 2, "01n"),
		}

		result := GroupByDay(samples)
		assert.Len(t, result, 2)
	})
}

func TestFirstNHours(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{
		sampleAt(day1, 1, "01d"),
		sampleAt(day1.Add(3*time.Hour), 2, "02d"),
		sampleAt(day1.Add(6*time.Hour), 3, "03d"),
	}

	t.Run("Truncates", func(t *testing.T) {
		result := FirstNHours(samples, 2)
		assert.Len(t, result, 2)
		assert.Equal(t, 1.0, result[0].TempC)
		assert.Equal(t, 2.0, result[1].TempC)
	})

	t.Run("NLargerThanInput", func(t *testing.T) {
		result := FirstNHours(samples, 10)
		assert.Len(t, result, 3)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		result := FirstNHours(nil, 5)
		assert.Empty(t, result)
	})

	t.Run("CopyDoesNotAliasInput", func(t *testing.T) {
		result := FirstNHours(samples, 3)
		result[0].TempC = 99
		assert.Equal(t, 1.0, samples[0].TempC)
	})
}
