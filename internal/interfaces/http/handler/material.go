package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/stockcast/backend/internal/application/inventory"
	"github.com/stockcast/backend/internal/interfaces/http/dto"
	"github.com/stockcast/backend/internal/interfaces/http/middleware"
)

// MaterialHandler handles raw material and lot API endpoints
type MaterialHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(inventoryService *inventoryapp.Service) *MaterialHandler {
	return &MaterialHandler{
		inventoryService: inventoryService,
	}
}

// CreateMaterialRequest represents a request to create a raw material
// @Description Request body for creating a raw material
type CreateMaterialRequest struct {
	Name             string  `json:"name" binding:"required,min=1,max=255" example:"Flour"`
	UnitName         string  `json:"unit_name" binding:"required,min=1,max=50" example:"kilogram"`
	UnitAbbreviation string  `json:"unit_abbreviation" binding:"required,min=1,max=10" example:"kg"`
	MinStock         float64 `json:"min_stock" binding:"gte=0" example:"20"`
}

// UpdateMaterialRequest represents a request to update a raw material
// @Description Request body for updating a raw material's details
type UpdateMaterialRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=255" example:"Bread Flour"`
	UnitName         string `json:"unit_name" binding:"required,min=1,max=50" example:"kilogram"`
	UnitAbbreviation string `json:"unit_abbreviation" binding:"required,min=1,max=10" example:"kg"`
}

// SetMinStockRequest represents a request to change the reorder floor
// @Description Request body for updating minimum stock
type SetMinStockRequest struct {
	MinStock float64 `json:"min_stock" binding:"gte=0" example:"25"`
}

// RegisterLotRequest represents a request to receive a lot into stock
// @Description Request body for registering a lot
type RegisterLotRequest struct {
	Code           string  `json:"code" binding:"required,min=1,max=100" example:"LOT-2026-001"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0" example:"50"`
	ExpirationDate *string `json:"expiration_date" example:"2026-10-15"`
}

// ConsumeMaterialRequest represents a request to record consumption
// @Description Request body for consuming material stock
type ConsumeMaterialRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0" example:"3.5"`
	Date     *string `json:"date" example:"2026-08-31"`
}

// Create godoc
// @Summary      Create a raw material
// @Description  Register a new raw material with its unit and minimum stock
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        request body CreateMaterialRequest true "Material creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	material, err := h.inventoryService.CreateMaterial(
		c.Request.Context(),
		req.Name,
		req.UnitName,
		req.UnitAbbreviation,
		decimal.NewFromFloat(req.MinStock),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, material)
}

// List godoc
// @Summary      List raw materials
// @Description  List all active raw materials
// @Tags         materials
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.inventoryService.ListMaterials(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, materials)
}

// GetByID godoc
// @Summary      Get raw material by ID
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id} [get]
func (h *MaterialHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	material, err := h.inventoryService.GetMaterial(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// Update godoc
// @Summary      Update a raw material
// @Description  Change a material's name and unit of measure
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        request body UpdateMaterialRequest true "Material update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	var req UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	material, err := h.inventoryService.UpdateMaterial(c.Request.Context(), id, req.Name, req.UnitName, req.UnitAbbreviation)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// SetMinStock godoc
// @Summary      Update minimum stock
// @Description  Change a material's reorder floor
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        request body SetMinStockRequest true "Minimum stock update"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id}/min-stock [put]
func (h *MaterialHandler) SetMinStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	var req SetMinStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	material, err := h.inventoryService.SetMinStock(c.Request.Context(), id, decimal.NewFromFloat(req.MinStock))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// Deactivate godoc
// @Summary      Deactivate a raw material
// @Description  Remove a material from active views; its history is kept
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id} [delete]
func (h *MaterialHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	if err := h.inventoryService.DeactivateMaterial(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Material deactivated successfully"})
}

// RegisterLot godoc
// @Summary      Register a lot
// @Description  Receive a lot into stock, growing the material's quantity
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        request body RegisterLotRequest true "Lot registration request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id}/lots [post]
func (h *MaterialHandler) RegisterLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	var req RegisterLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var expirationDate *time.Time
	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			h.BadRequest(c, "Invalid expiration date, expected YYYY-MM-DD")
			return
		}
		expirationDate = &parsed
	}

	lot, err := h.inventoryService.RegisterLot(
		c.Request.Context(),
		id,
		req.Code,
		expirationDate,
		decimal.NewFromFloat(req.Quantity),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lot)
}

// ListLots godoc
// @Summary      List a material's lots
// @Description  List active lots ordered by expiration date
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Success      200 {object} dto.Response
// @Router       /materials/{id}/lots [get]
func (h *MaterialHandler) ListLots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	lots, err := h.inventoryService.ListLots(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lots)
}

// Consume godoc
// @Summary      Consume material stock
// @Description  Record an outbound movement, depleting lots soonest-expiring first
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        request body ConsumeMaterialRequest true "Consumption request"
// @Success      201 {object} dto.Response
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /materials/{id}/consume [post]
func (h *MaterialHandler) Consume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	var req ConsumeMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	date := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	movement, err := h.inventoryService.ConsumeMaterial(c.Request.Context(), id, decimal.NewFromFloat(req.Quantity), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// ListMovements godoc
// @Summary      List a material's movements
// @Description  List a material's most recent inventory movements
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Param        limit query int false "Maximum number of movements" default(50)
// @Success      200 {object} dto.Response
// @Router       /materials/{id}/movements [get]
func (h *MaterialHandler) ListMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), id, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// DiscardLot godoc
// @Summary      Discard a lot
// @Description  Deactivate a lot and write off its remaining quantity
// @Tags         lots
// @Produce      json
// @Param        id path string true "Lot ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /lots/{id}/discard [post]
func (h *MaterialHandler) DiscardLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lot ID format")
		return
	}

	if err := h.inventoryService.DiscardLot(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Lot discarded successfully"})
}
