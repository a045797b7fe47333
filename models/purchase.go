package models

// PurchaseDetail 采购明细
type PurchaseDetail struct {
	ProductID int64   `json:"productId" binding:"required"`
	Rate      float64 `json:"rate"`
	Qty       float64 `json:"qty" binding:"required,gt=0"`
	Vat       float64 `json:"vat"`
	Tax       float64 `json:"tax"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// Purchase 采购单
type Purchase struct {
	ID              int64            `json:"id,omitempty"`
	PurchaseDate    string           `json:"purchaseDate" binding:"required"`
	TotalAmount     float64          `json:"totalAmount"`
	TotalVat        float64          `json:"totalVat"`
	TotalTax        float64          `json:"totalTax"`
	TotalDiscount   float64          `json:"totalDiscount"`
	VendorID        int64            `json:"vendorId" binding:"required"`
	WarehouseID     int64            `json:"warehouseId" binding:"required"`
	CreatedBy       string           `json:"createdBy"`
	UpdatedBy       string           `json:"updatedBy"`
	PurchaseDetails []PurchaseDetail `json:"purchaseDetails" binding:"required,min=1,dive"`
}
