package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/homekeep-labs/homekeeper/internal/common"
	"github.com/homekeep-labs/homekeeper/internal/entity"
	"github.com/homekeep-labs/homekeeper/internal/export"
	"github.com/homekeep-labs/homekeeper/internal/extract"
	"github.com/homekeep-labs/homekeeper/internal/match"
	"github.com/homekeep-labs/homekeeper/internal/repository"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pipeline *extract.Pipeline
	matcher  *match.Matcher
	items    repository.ItemRepository
	export   *export.Service
	logger   *slog.Logger
}

func NewHandler(pipeline *extract.Pipeline, matcher *match.Matcher, items repository.ItemRepository, exp *export.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{pipeline: pipeline, matcher: matcher, items: items, export: exp, logger: logger}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "homekeeper",
	})
}

type extractRequest struct {
	ImageURI string `json:"image_uri" binding:"required"`
}

// ExtractReceipt runs the full OCR + parse pipeline for one image.
// Acquisition failures still return 200: the result carries the error.
func (h *Handler) ExtractReceipt(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_uri is required"})
		return
	}
	res := h.pipeline.ExtractReceipt(c.Request.Context(), req.ImageURI)
	c.JSON(http.StatusOK, res)
}

type extractTextRequest struct {
	Text       string `json:"text" binding:"required"`
	Confidence *int   `json:"confidence"`
}

// ExtractText runs parsing and selection over text the caller already has.
func (h *Handler) ExtractText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	confidence := 100
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	if confidence < 0 || confidence > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confidence must be in 0..100"})
		return
	}
	c.JSON(http.StatusOK, h.pipeline.ExtractFromText(req.Text, confidence))
}

type matchRequest struct {
	Query string `json:"query" binding:"required"`
}

// MatchInventory scores the query against every inventory item and returns
// the winner, or match: null when nothing clears the threshold.
func (h *Handler) MatchInventory(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list items", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": h.matcher.Match(req.Query, items)})
}

type itemRequest struct {
	Name               string     `json:"name" binding:"required"`
	StoreName          *string    `json:"store_name"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	PurchasePrice      *float64   `json:"purchase_price"`
	WarrantyYears      int        `json:"warranty_years"`
	WarrantyExpiration *time.Time `json:"warranty_expiration"`
}

func (r *itemRequest) toEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		Name:               r.Name,
		StoreName:          r.StoreName,
		PurchaseDate:       r.PurchaseDate,
		PurchasePrice:      r.PurchasePrice,
		WarrantyYears:      r.WarrantyYears,
		WarrantyExpiration: r.WarrantyExpiration,
	}
}

// CreateItem stores a new inventory item.
func (h *Handler) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	item := req.toEntity()
	if item.WarrantyYears <= 0 {
		item.WarrantyYears = 1
	}
	if err := h.items.Create(c.Request.Context(), item); err != nil {
		h.internalError(c, "create item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListItems returns every inventory item.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list items", err)
		return
	}
	if items == nil {
		items = []entity.InventoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetItem returns one item by id.
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	item, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.internalError(c, "get item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces the mutable fields of one item.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	item := req.toEntity()
	item.ID = id
	if item.WarrantyYears <= 0 {
		item.WarrantyYears = 1
	}
	if err := h.items.Update(c.Request.Context(), item); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.internalError(c, "update item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes one item by id.
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.internalError(c, "delete item", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportInventory streams the inventory as an XLSX workbook. Optional
// from/to query params (YYYY-MM-DD) bound the purchase-date window.
func (h *Handler) ExportInventory(c *gin.Context) {
	from, ok := h.dateParam(c, "from")
	if !ok {
		return
	}
	to, ok := h.dateParam(c, "to")
	if !ok {
		return
	}

	data, err := h.export.ExportInventoryXLSX(c.Request.Context(), from, to)
	if err != nil {
		h.internalError(c, "export inventory", err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) dateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
