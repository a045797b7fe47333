package models

// Product 产品
type Product struct {
	ID         int64   `json:"id,omitempty"`
	Name       string  `json:"name" binding:"required"`
	Code       string  `json:"code"`
	CategoryID int64   `json:"categoryId"`
	ModelID    int64   `json:"modelId"`
	Price      float64 `json:"price"`
}

// Category 产品类别
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" binding:"required"`
}

// ProductModel 产品型号
type ProductModel struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name" binding:"required"`
	CategoryID int64  `json:"categoryId"`
}

// Vendor 供应商
type Vendor struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Location 仓库/库位
type Location struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name" binding:"required"`
	ParentID int64  `json:"parentId"`
}

// VoucherLine 凭证分录
type VoucherLine struct {
	CoaID  int64   `json:"coaId" binding:"required"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
	Note   string  `json:"note"`
}

// Voucher 付款/收款凭证
type Voucher struct {
	ID          int64         `json:"id,omitempty"`
	VoucherType string        `json:"voucherType" binding:"required"`
	VoucherDate string        `json:"voucherDate" binding:"required"`
	Narration   string        `json:"narration"`
	Lines       []VoucherLine `json:"lines" binding:"required,min=1,dive"`
}
