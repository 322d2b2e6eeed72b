package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storeports "github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
)

// Statistics is the platform-wide revenue summary.
type Statistics struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalOrders  int64   `json:"totalOrders"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

type StatsAPI struct {
	service storeports.Service
}

func NewStatsAPI(service storeports.Service) StatsAPI {
	return StatsAPI{service: service}
}

// Get /api/stats
func (api *StatsAPI) Statistics(c *gin.Context) {
	stats, err := api.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := Statistics{TotalRevenue: stats.TotalRevenue.InexactFloat64(), TotalOrders: stats.TotalOrders}
	if !stats.UpdatedAt.IsZero() {
		out.UpdatedAt = stats.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	c.JSON(http.StatusOK, out)
}
