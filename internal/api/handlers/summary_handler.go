package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dquispe/sismed-analytics/internal/domain"
	"github.com/dquispe/sismed-analytics/internal/service"
)

type SummaryHandler struct {
	service *service.SummaryService
}

func NewSummaryHandler(service *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// parseQuery builds the domain query from the request parameters.
// start_period and end_period are required YYYYMM bounds; product_types and
// strategies accept both repeated params and comma-separated lists.
func (h *SummaryHandler) parseQuery(c *gin.Context) (domain.Query, error) {
	q := domain.Query{}

	start, err := domain.ParsePeriod("start_period", strings.TrimSpace(c.Query("start_period")))
	if err != nil {
		return q, err
	}
	end, err := domain.ParsePeriod("end_period", strings.TrimSpace(c.Query("end_period")))
	if err != nil {
		return q, err
	}
	q.StartPeriod = start
	q.EndPeriod = end

	q.ProductTypes = queryCodes(c, "product_types")
	q.Strategies = queryCodes(c, "strategies")

	if rt := strings.TrimSpace(c.Query("real_time")); rt != "" {
		if parsed, err := strconv.ParseBool(rt); err == nil {
			q.RealTime = parsed
		}
	}

	return q, nil
}

// queryCodes collects a code list supporting both styles:
//
//	?product_types=A&product_types=B
//	?product_types=A,B
//
// Values are trimmed and deduplicated, matching stays case-sensitive.
func queryCodes(c *gin.Context, param string) []string {
	raw := c.QueryArray(param)
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query(param)); single != "" {
			raw = []string{single}
		}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

func (h *SummaryHandler) GetSummary(c *gin.Context) {
	q, err := h.parseQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SummaryHandler) GetProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context(), queryCodes(c, "product_types"), queryCodes(c, "strategies"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(products), "data": products})
}

func (h *SummaryHandler) GetStock(c *gin.Context) {
	balances, err := h.service.Stock(c.Request.Context(), queryCodes(c, "product_codes"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(balances), "data": balances})
}

// respondError maps the domain error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		notFound *domain.NotFoundError
		schema   *domain.SchemaError
		invalid  *domain.InvalidRangeError
	)

	status := http.StatusInternalServerError
	message := "failed to compute summary"

	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		message = "invalid period range"
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = "source table not available"
	case errors.As(err, &schema):
		status = http.StatusUnprocessableEntity
		message = "source table schema mismatch"
	}

	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
