package geography

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/ridematch/pkg/common"
	"github.com/richxcame/ridematch/pkg/logger"
	"github.com/richxcame/ridematch/pkg/validation"
	"go.uber.org/zap"
)

// ProvinceLister lists the persisted corridor table.
type ProvinceLister interface {
	ListProvinceOrdering(ctx context.Context) ([]ProvinceOrdering, error)
}

// ProvinceResponse describes one classified province
type ProvinceResponse struct {
	Province      Province `json:"province"`
	DisplayName   string   `json:"display_name"`
	Region        Region   `json:"region"`
	CorridorOrder int      `json:"corridor_order"`
	Source        Source   `json:"source,omitempty"`
}

// ToProvinceResponse converts a province to its API shape
func ToProvinceResponse(p Province, source Source) *ProvinceResponse {
	return &ProvinceResponse{
		Province:      p,
		DisplayName:   p.DisplayName(),
		Region:        p.Region(),
		CorridorOrder: p.Rank(),
		Source:        source,
	}
}

// Handler handles HTTP requests for province classification
type Handler struct {
	resolver *Resolver
	lister   ProvinceLister
}

// NewHandler creates a new geography handler. lister may be nil.
func NewHandler(resolver *Resolver, lister ProvinceLister) *Handler {
	return &Handler{resolver: resolver, lister: lister}
}

// DetectProvince classifies the address query parameter
func (h *Handler) DetectProvince(c *gin.Context) {
	var req validation.ProvinceDetectRequest
	if !common.BindQuery(c, &req) {
		return
	}

	p, source := h.resolver.ResolveWithSource(c.Request.Context(), req.Address)
	common.SuccessResponse(c, ToProvinceResponse(p, source))
}

// ListProvinces returns the corridor in order, from the database when available
func (h *Handler) ListProvinces(c *gin.Context) {
	if h.lister != nil {
		rows, err := h.lister.ListProvinceOrdering(c.Request.Context())
		if err == nil && len(rows) > 0 {
			common.SuccessResponse(c, rows)
			return
		}
		if err != nil {
			logger.WarnContext(c.Request.Context(), "listing provinces from database failed, using built-in table", zap.Error(err))
		}
	}

	out := make([]*ProvinceResponse, 0, len(knownProvinces))
	for _, p := range knownProvinces {
		out = append(out, ToProvinceResponse(p, ""))
	}
	common.SuccessResponse(c, out)
}

// ClearCache drops all memoized province resolutions
func (h *Handler) ClearCache(c *gin.Context) {
	h.resolver.ClearCache(c.Request.Context())
	c.JSON(http.StatusOK, common.Response{Success: true, Data: gin.H{"cleared": true}})
}

// RegisterRoutes registers province routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	provinces := rg.Group("/provinces")
	{
		provinces.GET("", h.ListProvinces)
		provinces.GET("/detect", h.DetectProvince)
	}

	rg.POST("/admin/province-cache/clear", h.ClearCache)
}
