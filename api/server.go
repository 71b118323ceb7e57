package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cityweather.app/config"
	apperrors "cityweather.app/errors"
	"cityweather.app/models"
	"cityweather.app/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	cityService    service.CityServiceInterface
	weatherService service.WeatherServiceInterface
	summaryCache   service.SummaryCacheInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	cityService service.CityServiceInterface,
	weatherService service.WeatherServiceInterface,
	summaryCache service.SummaryCacheInterface,
) *Server {
	router := gin.Default()
	router.Use(requestIDMiddleware())

	server := &Server{
		router:         router,
		config:         config,
		cityService:    cityService,
		weatherService: weatherService,
		summaryCache:   summaryCache,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/cities", s.listCities)
		api.GET("/cities/suggest", s.suggestCities)
		api.GET("/weather", s.getWeatherDetail)
		api.GET("/summaries", s.getSummaries)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// requestIDMiddleware tags every request with an X-Request-ID for log
// correlation, generating one when the client did not send it.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

type listCitiesRequest struct {
	Query     string `form:"q"`
	Start     int    `form:"start" binding:"min=0"`
	Rows      int    `form:"rows" binding:"min=0,max=100"`
	Sort      string `form:"sort"`
	Direction string `form:"direction" binding:"omitempty,oneof=asc desc"`
}

func (s *Server) listCities(c *gin.Context) {
	var req listCitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid listing parameters"))
		return
	}

	sortColumn := models.SortByName
	if req.Sort != "" {
		column, ok := models.ParseSortColumn(req.Sort)
		if !ok {
			s.handleError(c, apperrors.NewValidationError("unknown sort column"))
			return
		}
		sortColumn = column
	}
	direction := models.SortAsc
	if req.Direction == "desc" {
		direction = models.SortDesc
	}

	page, err := s.cityService.ListCities(req.Query, req.Start, req.Rows, sortColumn, direction)
	if err != nil {
		slog.Error("City listing error", "error", err, "query", req.Query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

type suggestRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"min=0,max=20"`
}

func (s *Server) suggestCities(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid suggestion parameters"))
		return
	}
	if req.Limit == 0 {
		req.Limit = s.config.Search.SuggestLimit
	}

	records, err := s.cityService.SuggestCities(req.Query, req.Limit)
	if err != nil {
		slog.Error("Suggestion error", "error", err, "prefix", req.Query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

type weatherDetailRequest struct {
	Lat  *float64 `form:"lat" binding:"required"`
	Lon  *float64 `form:"lon" binding:"required"`
	Name string   `form:"name"`
}

func (s *Server) getWeatherDetail(c *gin.Context) {
	var req weatherDetailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, apperrors.NewInvalidLocationError("lat and lon parameters are required"))
		return
	}

	detail, err := s.weatherService.GetDetail(*req.Lat, *req.Lon, req.Name)
	if err != nil {
		slog.Error("Weather detail error", "error", err, "lat", *req.Lat, "lon", *req.Lon)
		s.handleError(c, err)
		return
	}

	annotated := gin.H{
		"city_name": detail.CityName,
		"current":   detail.Current,
		"daily":     annotateDaily(detail.Daily),
		"hourly":    detail.Hourly,
		"symbol":    SymbolFor(detail.Current.Icon),
	}

	c.JSON(http.StatusOK, annotated)
}

func (s *Server) getSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, s.summaryCache.All())
}

// annotateDaily attaches the display symbol to each daily summary.
func annotateDaily(daily []models.DailyForecast) []gin.H {
	result := make([]gin.H, 0, len(daily))
	for _, day := range daily {
		result = append(result, gin.H{
			"date":       day.Date,
			"min_temp_c": day.MinTempC,
			"max_temp_c": day.MaxTempC,
			"icon":       day.Icon,
			"symbol":     SymbolFor(day.Icon),
		})
	}
	return result
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError, apperrors.InvalidLocationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.UpstreamError, apperrors.MalformedResponseError:
			statusCode = http.StatusBadGateway
			message = "Upstream service error"
		case apperrors.NetworkError:
			statusCode = http.StatusServiceUnavailable
			message = "Upstream service unreachable"
		case apperrors.DatabaseError, apperrors.PersistedStateError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
