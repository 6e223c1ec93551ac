package models

import "time"

// Product is a catalog item. ProdStatus mirrors the dashboard's 0/1
// availability flag.
type Product struct {
	ID            int       `json:"id"`
	ProductName   string    `json:"product_name"`
	ProductLevels []string  `json:"product_levels"`
	Subjects      []string  `json:"subjects,omitempty"`
	Specs         []string  `json:"specs,omitempty"`
	UnitPrice     float64   `json:"unit_price"`
	ProdStatus    int       `json:"prod_status"` // 1 = available, 0 = discontinued
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	ProductName   string   `json:"product_name"`
	ProductLevels []string `json:"product_levels"`
	Subjects      []string `json:"subjects"`
	Specs         []string `json:"specs"`
	UnitPrice     float64  `json:"unit_price"`
}

type UpdateProductRequest struct {
	ProductLevels []string `json:"product_levels"`
	Subjects      []string `json:"subjects"`
	Specs         []string `json:"specs"`
	UnitPrice     *float64 `json:"unit_price"`
	ProdStatus    *int     `json:"prod_status"`
}

// StockItem is the warehouse quantity for one product.
type StockItem struct {
	ID               int       `json:"id"`
	ProductName      string    `json:"product_name"`
	Quantity         int       `json:"quantity"`
	ReservedQuantity int       `json:"reserved_quantity"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AdjustStockRequest struct {
	ProductName string `json:"product_name"`
	Delta       int    `json:"delta"`
	Reason      string `json:"reason"`
}

// StockReturn records goods coming back from a school.
type StockReturn struct {
	ID          int       `json:"id"`
	DCID        *int      `json:"dc_id,omitempty"`
	SchoolName  string    `json:"school_name"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"` // requested, received, restocked
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	StockReturnRequested = "requested"
	StockReturnReceived  = "received"
	StockReturnRestocked = "restocked"
)

type CreateStockReturnRequest struct {
	DCID        *int   `json:"dc_id"`
	SchoolName  string `json:"school_name"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}
