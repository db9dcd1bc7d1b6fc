package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func init() {
	// Amounts go over the wire as plain JSON numbers, matching what the
	// frontend already sends and expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer - The billed party. Soft-deleted, never physically removed.
type Customer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Pincode          string    `json:"pincode"`
	GST              string    `json:"gst"` // optional tax id, stored uppercased
	Mobile           string    `gorm:"size:10;index" json:"mobile"`
	MarginPercentage string    `json:"margin_percentage"`
	IsDeleted        bool      `gorm:"default:false" json:"isDeleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UnitMrp is one pack-size price entry. Unit is the pack weight in grams.
type UnitMrp struct {
	Unit int             `json:"unit"`
	Mrp  decimal.Decimal `json:"mrp"`
}

// Product - The Catalog
// Stock is held in kilograms; invoice lines deduct unit*qty/1000.
type Product struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `json:"name"`
	Image       string                      `json:"image"`
	Description string                      `json:"description"`
	Contents    string                      `json:"contents"`
	Benefits    datatypes.JSONSlice[string] `json:"benefits"`
	HsnNumber   string                      `json:"hsn_number"`
	UnitMrpList []UnitMrp                   `gorm:"serializer:json" json:"unitMrpList"`
	Category    string                      `gorm:"default:Muesli" json:"category"`
	Stock       decimal.Decimal             `gorm:"type:decimal(20,4)" json:"stock"`
	IsDeleted   bool                        `gorm:"default:false" json:"isDeleted"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// PaymentData is recorded against an invoice, optionally at creation and
// amended later as money actually arrives.
type PaymentData struct {
	ModeOfPayment string          `json:"modeOfPayment"`
	PaymentStatus string          `json:"paymentStatus"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
}

// Invoice - The Transaction Header
// Line items and totals are immutable after creation; only PaymentData is
// updated later.
type Invoice struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string          `gorm:"uniqueIndex;size:50" json:"invoiceNumber"`
	CustomerID     *uint           `json:"customerId"` // nil for walk-in invoices
	Customer       *Customer       `json:"customer,omitempty"`
	ProductDetails []LineItem      `gorm:"foreignKey:InvoiceID" json:"productDetails"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(20,4)" json:"totalAmount"`
	PaymentData    *PaymentData    `gorm:"serializer:json" json:"paymentData,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// LineItem - one product entry within an invoice. Amount is the
// caller-computed line total; the engine only sums these into TotalAmount.
type LineItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	InvoiceID uint            `json:"-"`
	ProductID uint            `json:"productId"`
	Product   Product         `json:"product"` // Preload product details
	Unit      int             `json:"unit"`    // grams per pack
	Mrp       decimal.Decimal `gorm:"type:decimal(20,4)" json:"mrp"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,4)" json:"rate"`
	Qty       int             `json:"qty"`
	Disc      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"disc"` // percent
	Amount    decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
}
