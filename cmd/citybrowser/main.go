// Command citybrowser is an interactive terminal client for the city
// directory: it drives the search and suggestion controllers against the
// live gateways the same way the web listing does.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"cityweather.app/config"
	"cityweather.app/database"
	"cityweather.app/models"
	"cityweather.app/providers"
	"cityweather.app/repository"
	"cityweather.app/search"
	"cityweather.app/service"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		slog.Error("Failed to open summary store", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to migrate summary store", "error", err)
		os.Exit(1)
	}

	summaryCache := service.NewSummaryCache(repository.NewSummaryRepository(db))
	if err := summaryCache.Load(); err != nil {
		slog.Error("Failed to load summaries", "error", err)
		os.Exit(1)
	}

	cityProvider := providers.NewGeonamesProvider(&cfg.Cities)
	weatherProvider := providers.NewOpenWeatherProvider(&cfg.Weather)
	weatherService := service.NewWeatherService(weatherProvider, summaryCache)

	browser := &browser{
		cache:   summaryCache,
		weather: weatherService,
	}
	browser.list = search.NewController(cityProvider, cfg.Cities.PageSize)
	browser.list.SetNotifier(func(err error) {
		fmt.Printf("! %v\n", err)
	})
	browser.list.SetUpdateHook(func(snapshot search.Snapshot) {
		browser.render(snapshot)
	})
	browser.suggest = search.NewSuggestController(
		cityProvider,
		browser.list,
		time.Duration(cfg.Search.DebounceMillis)*time.Millisecond,
		cfg.Search.SuggestMinChars,
		cfg.Search.SuggestLimit,
	)

	browser.run()
}

type browser struct {
	list    *search.Controller
	suggest *search.SuggestController
	cache   *service.SummaryCache
	weather service.WeatherServiceInterface
}

func (b *browser) run() {
	fmt.Println("citybrowser - type text to search, or a command:")
	fmt.Println("  :more        load the next page")
	fmt.Println("  :sort <col>  sort by name|country|timezone|population")
	fmt.Println("  :pick <n>    select suggestion n")
	fmt.Println("  :view <n>    open weather for row n")
	fmt.Println("  :esc         dismiss suggestions")
	fmt.Println("  :quit        exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == ":quit":
			return
		case line == ":more":
			snapshot := b.list.Snapshot()
			if snapshot.HasMore && !snapshot.IsLoading {
				b.list.LoadNextPage()
			}
		case line == ":esc":
			b.suggest.Dismiss()
		case strings.HasPrefix(line, ":sort "):
			column, ok := models.ParseSortColumn(strings.TrimPrefix(line, ":sort "))
			if !ok {
				fmt.Println("! unknown sort column")
				continue
			}
			b.list.SetSort(column)
		case strings.HasPrefix(line, ":pick "):
			b.pick(strings.TrimPrefix(line, ":pick "))
		case strings.HasPrefix(line, ":view "):
			b.view(strings.TrimPrefix(line, ":view "))
		default:
			b.suggest.Input(line)
		}

		// Give in-flight fetches a moment before showing suggestions.
		time.Sleep(500 * time.Millisecond)
		b.renderSuggestions()
	}
}

func (b *browser) pick(arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	suggestions, open := b.suggest.Suggestions()
	if err != nil || !open || n < 1 || n > len(suggestions) {
		fmt.Println("! no such suggestion")
		return
	}
	b.suggest.Select(suggestions[n-1])
}

func (b *browser) view(arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	snapshot := b.list.Snapshot()
	if err != nil || n < 1 || n > len(snapshot.Items) {
		fmt.Println("! no such row")
		return
	}
	record := snapshot.Items[n-1]

	detail, err := b.weather.GetDetail(record.Latitude, record.Longitude, record.Name)
	if err != nil {
		fmt.Printf("! %v\n", err)
		return
	}

	fmt.Printf("%s, %s: %.1f°C (feels %.1f°C), %s\n",
		detail.CityName, detail.Current.CountryCode,
		detail.Current.TemperatureC, detail.Current.FeelsLikeC,
		detail.Current.Description)
	for _, day := range detail.Daily {
		fmt.Printf("  %s  %5.1f° - %5.1f°  %s\n", day.Date, day.MinTempC, day.MaxTempC, day.Icon)
	}
}

func (b *browser) render(snapshot search.Snapshot) {
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCITY\tCOUNTRY\tTIMEZONE\tPOPULATION\tWEATHER")
	for i, record := range snapshot.Items {
		weather := "-"
		if summary, ok := b.cache.Get(record.Name); ok {
			weather = fmt.Sprintf("%.1f° - %.1f°", summary.TempMinC, summary.TempMaxC)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, record.Name, record.CountryName, record.Timezone, record.Population, weather)
	}
	if err := w.Flush(); err != nil {
		slog.Warn("render flush", "error", err)
	}

	switch snapshot.State {
	case search.StateExhausted:
		fmt.Println("-- no more cities to load --")
	case search.StateError:
		fmt.Println("-- load failed, previous rows kept --")
	default:
		if snapshot.HasMore {
			fmt.Println("-- :more to continue --")
		}
	}
}

func (b *browser) renderSuggestions() {
	suggestions, open := b.suggest.Suggestions()
	if !open {
		return
	}
	fmt.Println("suggestions:")
	for i, record := range suggestions {
		fmt.Printf("  %d. %s (%s)\n", i+1, record.Name, record.CountryName)
	}
}
