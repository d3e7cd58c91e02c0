package model

type Material struct {
	BaseModel
	Name                string  `gorm:"type:varchar(100);not null" json:"name" validate:"max=100"`
	Description         string  `gorm:"type:varchar(200)" json:"description" validate:"max=200"`
	Quantity            int     `gorm:"not null;default:0" json:"quantity"`
	AlertRequisitionQty int     `gorm:"not null;default:0" json:"alert_requisition_qty"`
	AlertStockQty       int     `gorm:"not null;default:0" json:"alert_stock_qty"`
	QRCodeFile          *string `gorm:"type:varchar(100)" json:"qr_code_file"`

	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Alerts is a display hint derived from the thresholds. Nothing enforces it.
type Alerts struct {
	Requisition bool `json:"requisition_alert"`
	Stock       bool `json:"stock_alert"`
}

// Alerts reports which thresholds the current quantity has reached. A zero
// threshold is treated as unset.
func (m *Material) Alerts() Alerts {
	return Alerts{
		Requisition: m.AlertRequisitionQty > 0 && m.Quantity <= m.AlertRequisitionQty,
		Stock:       m.AlertStockQty > 0 && m.Quantity <= m.AlertStockQty,
	}
}

// MaterialResponse is the API shape of a material.
type MaterialResponse struct {
	Material
	QRCodeURL string `json:"qr_code_url,omitempty"`
	Alerts    Alerts `json:"alerts"`
}

// ToResponse converts Material to MaterialResponse. qrURL is the public
// address of the image, empty when none is stored.
func (m *Material) ToResponse(qrURL string) MaterialResponse {
	return MaterialResponse{
		Material:  *m,
		QRCodeURL: qrURL,
		Alerts:    m.Alerts(),
	}
}
