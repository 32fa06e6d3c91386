package inventory

import (
	"time"

	"github.com/stockcast/backend/internal/domain/inventory"
)

// MaterialResponse is the API shape of a raw material
type MaterialResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CurrentStock     float64   `json:"current_stock"`
	MinStock         float64   `json:"min_stock"`
	UnitName         string    `json:"unit_name"`
	UnitAbbreviation string    `json:"unit_abbreviation"`
	Active           bool      `json:"active"`
	BelowMinimum     bool      `json:"below_minimum"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LotResponse is the API shape of a lot
type LotResponse struct {
	ID              string  `json:"id"`
	RawMaterialID   string  `json:"raw_material_id"`
	Code            string  `json:"code"`
	ExpirationDate  *string `json:"expiration_date,omitempty"`
	CurrentQuantity float64 `json:"current_quantity"`
	Active          bool    `json:"active"`
}

// MovementResponse is the API shape of an inventory movement
type MovementResponse struct {
	ID            string    `json:"id"`
	RawMaterialID string    `json:"raw_material_id"`
	Type          string    `json:"type"`
	Quantity      float64   `json:"quantity"`
	Date          time.Time `json:"date"`
}

// ToMaterialResponse converts a domain material
func ToMaterialResponse(m *inventory.RawMaterial) MaterialResponse {
	return MaterialResponse{
		ID:               m.ID.String(),
		Name:             m.Name,
		CurrentStock:     m.CurrentStock.InexactFloat64(),
		MinStock:         m.MinStock.InexactFloat64(),
		UnitName:         m.UnitName,
		UnitAbbreviation: m.UnitAbbreviation,
		Active:           m.Active,
		BelowMinimum:     m.IsBelowMinimum(),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToLotResponse converts a domain lot
func ToLotResponse(l *inventory.Lot) LotResponse {
	resp := LotResponse{
		ID:              l.ID.String(),
		RawMaterialID:   l.RawMaterialID.String(),
		Code:            l.Code,
		CurrentQuantity: l.CurrentQuantity.InexactFloat64(),
		Active:          l.Active,
	}
	if l.ExpirationDate != nil {
		formatted := l.ExpirationDate.Format("2006-01-02")
		resp.ExpirationDate = &formatted
	}
	return resp
}

// ToMovementResponse converts a domain movement
func ToMovementResponse(m *inventory.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID.String(),
		RawMaterialID: m.RawMaterialID.String(),
		Type:          string(m.Type),
		Quantity:      m.Quantity.InexactFloat64(),
		Date:          m.Date,
	}
}
