package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/climate"
	"github.com/Nano867/prediction-crop/pkg/recommend/controller"
	"github.com/Nano867/prediction-crop/pkg/recommend/service"
)

type RecommendCtrl struct{ svc service.RecommendService }

var _ controller.RecommendController = (*RecommendCtrl)(nil)

func New(svc service.RecommendService) *RecommendCtrl { return &RecommendCtrl{svc: svc} }

type recommendReq struct {
	Region string `json:"region"`
	Month  int    `json:"month"`
}

// Recommend handles GET /recommend?region=&month=.
func (h *RecommendCtrl) Recommend(c echo.Context) error {
	month, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("month")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "month must be an integer 1-12"})
	}
	return h.respond(c, c.QueryParam("region"), month)
}

// RecommendJSON handles POST /recommend.
func (h *RecommendCtrl) RecommendJSON(c echo.Context) error {
	var req recommendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	return h.respond(c, req.Region, req.Month)
}

func (h *RecommendCtrl) respond(c echo.Context, region string, month int) error {
	if strings.TrimSpace(region) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "region is required"})
	}
	rec, err := h.svc.Recommend(region, month)
	if errors.Is(err, climate.ErrInvalidMonth) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !rec.RegionKnown {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":          "unknown region",
			"recommendation": rec,
		})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecommendCtrl) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Regions())
}

type cropView struct {
	entities.Crop
	IdealRange   string   `json:"ideal_range"`
	SoilsDisplay string   `json:"soils_display"`
	MonthNames   []string `json:"month_names"`
}

func (h *RecommendCtrl) Crops(c echo.Context) error {
	crops := h.svc.Crops()
	out := make([]cropView, len(crops))
	for i, cr := range crops {
		out[i] = cropView{Crop: cr, IdealRange: cr.IdealRange(), SoilsDisplay: cr.SoilsDisplay(), MonthNames: cr.MonthNames()}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecommendCtrl) Zones(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Zones())
}

func (h *RecommendCtrl) Rules(c echo.Context) error {
	return c.String(http.StatusOK, h.svc.Rules())
}
