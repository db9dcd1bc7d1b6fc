package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"billing-backend/internal/database"
	"billing-backend/internal/invoice"
	"billing-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type lineItemRequest struct {
	ProductID uint            `json:"productId" binding:"required"`
	Unit      int             `json:"unit" binding:"required"`
	Mrp       decimal.Decimal `json:"mrp"`
	Rate      decimal.Decimal `json:"rate"`
	Qty       int             `json:"qty" binding:"required"`
	Disc      decimal.Decimal `json:"disc"`
	Amount    decimal.Decimal `json:"amount"`
}

type createInvoiceRequest struct {
	CustomerID     *uint               `json:"customerId"`
	InvoiceNumber  string              `json:"invoiceNumber" binding:"required"`
	ProductDetails []lineItemRequest   `json:"productDetails" binding:"required,min=1"`
	PaymentData    *models.PaymentData `json:"paymentData"`
}

// --- POST: Create an invoice ---
// Processes line items in input order: each product's stock is checked and
// decremented immediately. An abort mid-way leaves earlier decrements
// applied; there is no compensating rollback.
func CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	items := make([]models.LineItem, 0, len(req.ProductDetails))
	for _, p := range req.ProductDetails {
		items = append(items, models.LineItem{
			ProductID: p.ProductID,
			Unit:      p.Unit,
			Mrp:       p.Mrp,
			Rate:      p.Rate,
			Qty:       p.Qty,
			Disc:      p.Disc,
			Amount:    p.Amount,
		})
	}

	totalAmount := invoice.TotalAmount(items)

	for _, item := range items {
		var product models.Product
		err := database.DB.Where("id = ? AND is_deleted = ?", item.ProductID, false).
			First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": fmt.Sprintf("Product %d not found", item.ProductID),
			})
			return
		}
		if err != nil {
			serverError(c, err, "Failed to load product")
			return
		}

		deduct := invoice.QuantityToDeduct(item.Unit, item.Qty)
		if product.Stock.LessThan(deduct) {
			c.JSON(http.StatusConflict, gin.H{
				"message": "Insufficient stock for " + product.Name,
			})
			return
		}

		err = database.DB.Model(&product).
			Update("stock", product.Stock.Sub(deduct)).Error
		if err != nil {
			serverError(c, err, "Failed to update stock")
			return
		}
	}

	inv := models.Invoice{
		InvoiceNumber:  req.InvoiceNumber,
		CustomerID:     req.CustomerID,
		ProductDetails: items,
		TotalAmount:    totalAmount,
		PaymentData:    req.PaymentData,
	}

	if err := database.DB.Create(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "Invoice number already exists"})
			return
		}
		serverError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Invoice created successfully", "id": inv.ID})
}

// --- GET: Next invoice number ---
// Read-last-and-increment; the unique column constraint catches the rare
// concurrent collision.
func GenerateInvoiceNumber(c *gin.Context) {
	last, err := database.LastInvoice()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"invoiceNumber": invoice.FormatNumber(1)})
			return
		}
		serverError(c, err, "Failed to generate invoice number")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoiceNumber": invoice.NextNumber(last.InvoiceNumber)})
}

type paymentUpdateRequest struct {
	ID            uint             `json:"id" binding:"required"`
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
	PaymentStatus *string          `json:"paymentStatus"`
}

// --- PUT: Record a payment against an invoice ---
// Only supplied fields overwrite; omitted fields are left unchanged. The
// totals are never recomputed and overpayment is not rejected.
func UpdateInvoicePayment(c *gin.Context) {
	var req paymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	var inv models.Invoice
	if err := database.DB.First(&inv, req.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
		return
	}

	if inv.PaymentData == nil {
		inv.PaymentData = &models.PaymentData{}
	}
	if req.PaidAmount != nil {
		inv.PaymentData.PaidAmount = *req.PaidAmount
	}
	if req.PaymentStatus != nil {
		inv.PaymentData.PaymentStatus = *req.PaymentStatus
	}

	if err := database.DB.Save(&inv).Error; err != nil {
		serverError(c, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, inv)
}

type invoiceListRequest struct {
	Start  int    `json:"start"`
	Limit  int    `json:"limit"`
	Filter string `json:"filter"`
	Search string `json:"search"`
}

// --- POST: Invoice listing with pagination, search, filter ---
// The totalAmount/totalPaidAmount aggregates cover the returned page only,
// not the full filtered set.
func GetAllInvoices(c *gin.Context) {
	req := invoiceListRequest{Limit: 10}
	// An empty body just means defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Limit < 1 {
		req.Limit = 10
	}
	if req.Start < 0 {
		req.Start = 0
	}

	totalCount, err := database.CountInvoices(req.Filter, req.Search)
	if err != nil {
		serverError(c, err, "Failed to count invoices")
		return
	}
	totalPages := int(math.Ceil(float64(totalCount) / float64(req.Limit)))

	invoices, err := database.FindInvoices(req.Start, req.Limit, req.Filter, req.Search)
	if err != nil {
		serverError(c, err, "Failed to fetch invoices")
		return
	}

	totalAmount := decimal.Zero
	totalPaid := decimal.Zero
	data := make([]gin.H, 0, len(invoices))

	for _, inv := range invoices {
		totalAmount = totalAmount.Add(inv.TotalAmount)

		customerName := "Walk-in Customer"
		var customerID any
		if inv.Customer != nil {
			customerName = inv.Customer.Name
			customerID = inv.Customer.ID
		}

		var firstProductID any = ""
		if len(inv.ProductDetails) > 0 {
			firstProductID = inv.ProductDetails[0].ProductID
		}

		var modeOfPayment, paymentStatus any
		var paidAmount any
		if inv.PaymentData != nil {
			modeOfPayment = inv.PaymentData.ModeOfPayment
			paymentStatus = inv.PaymentData.PaymentStatus
			paidAmount = inv.PaymentData.PaidAmount
			totalPaid = totalPaid.Add(inv.PaymentData.PaidAmount)
		}

		data = append(data, gin.H{
			"id":            inv.ID,
			"invoiceNumber": inv.InvoiceNumber,
			"customerDetails": gin.H{
				"customerId":   customerID,
				"customerName": customerName,
			},
			"productDetails": gin.H{
				"productId":     firstProductID,
				"amount":        inv.TotalAmount,
				"gstAmount":     invoice.GSTAmount(inv.TotalAmount),
				"totalDiscount": invoice.TotalDiscount(inv.TotalAmount, inv.ProductDetails),
				"modeOfPayment": modeOfPayment,
				"paymentStatus": paymentStatus,
				"paidAmount":    paidAmount,
			},
			"date": inv.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            data,
		"totalAmount":     totalAmount.StringFixed(2),
		"totalPaidAmount": totalPaid.StringFixed(2),
		"metaData":        gin.H{"totalPages": totalPages},
	})
}
