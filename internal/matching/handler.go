package matching

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/ridematch/pkg/common"
	"github.com/richxcame/ridematch/pkg/geo"
	"github.com/richxcame/ridematch/pkg/validation"
)

// Handler handles HTTP requests for ride search
type Handler struct {
	service *Service
}

// NewHandler creates a new search handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SearchRides searches shared rides between two places
func (h *Handler) SearchRides(c *gin.Context) {
	var req validation.SearchRequest
	if !common.BindQuery(c, &req) {
		return
	}
	driverID, ok := common.ParseUUIDQuery(c, "driverId")
	if !ok {
		return
	}

	var fromCoords, toCoords *geo.Point
	if req.HasFromCoords() {
		fromCoords = &geo.Point{Lat: *req.FromLat, Lng: *req.FromLng}
	}
	if req.HasToCoords() {
		toCoords = &geo.Point{Lat: *req.ToLat, Lng: *req.ToLng}
	}

	ctx := c.Request.Context()
	var results []MatchResult
	if req.Smart == nil || *req.Smart {
		results = h.service.SearchRidesSmart(ctx, SearchParams{
			From:       req.From,
			To:         req.To,
			FromCoords: fromCoords,
			ToCoords:   toCoords,
			RadiusKm:   req.RadiusKm,
			MaxResults: req.MaxResults,
		})
	} else {
		results = h.service.FindMatchingRides(ctx, req.From, req.To, FindOptions{
			MaxDistanceKm: req.RadiusKm,
			Limit:         req.MaxResults,
			FromCoords:    fromCoords,
			ToCoords:      toCoords,
		})
	}

	results = filtersFromRequest(req, driverID).Apply(results)
	common.SuccessResponse(c, SearchResponse{Rides: results, Total: len(results)})
}

// CalculateCompatibility scores one driver route against one passenger route
func (h *Handler) CalculateCompatibility(c *gin.Context) {
	var req validation.CompatibilityRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result := h.service.CalculateRouteCompatibility(c.Request.Context(),
		req.DriverFrom, req.DriverTo, req.PassengerFrom, req.PassengerTo)
	common.SuccessResponse(c, result)
}

// RegisterRoutes registers ride search routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rides := rg.Group("/rides")
	{
		rides.GET("/search", h.SearchRides)
		rides.POST("/compatibility", h.CalculateCompatibility)
	}
}

func filtersFromRequest(req validation.SearchRequest, driverID *uuid.UUID) Filters {
	return Filters{
		MinPrice:         req.MinPrice,
		MaxPrice:         req.MaxPrice,
		Seats:            req.Seats,
		VehicleType:      req.VehicleType,
		DriverID:         driverID,
		AllowNegotiation: req.AllowNegotiation,
	}
}
