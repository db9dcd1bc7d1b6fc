package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"billing-backend/internal/database"
	"billing-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, name string, stock float64) uint {
	t.Helper()
	p := models.Product{
		Name:        name,
		HsnNumber:   "190410",
		UnitMrpList: []models.UnitMrp{{Unit: 500, Mrp: decimal.NewFromInt(250)}},
		Stock:       decimal.NewFromFloat(stock),
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p.ID
}

func seedCustomer(t *testing.T, name string) uint {
	t.Helper()
	c := models.Customer{
		Name: name, Address: "12 Market Road", City: "Pune", State: "Maharashtra",
		Pincode: "411016", Mobile: "9876543210", MarginPercentage: "10",
	}
	require.NoError(t, database.DB.Create(&c).Error)
	return c.ID
}

func productStock(t *testing.T, id uint) decimal.Decimal {
	t.Helper()
	var p models.Product
	require.NoError(t, database.DB.First(&p, id).Error)
	return p.Stock
}

func lineItem(productID uint, unit, qty int, rate, amount float64) map[string]any {
	return map[string]any{
		"productId": productID,
		"unit":      unit,
		"mrp":       250,
		"rate":      rate,
		"qty":       qty,
		"disc":      0,
		"amount":    amount,
	}
}

func TestGenerateInvoiceNumberSequence(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)

	w := doJSON(t, r, http.MethodGet, "/api/invoice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-0001", decodeBody(t, w)["invoiceNumber"])

	w = doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/invoice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-0002", decodeBody(t, w)["invoiceNumber"])
}

func TestGenerateInvoiceNumberUnparseableSuffix(t *testing.T) {
	r := setupTest(t)

	require.NoError(t, database.DB.Create(&models.Invoice{
		InvoiceNumber: "INV-DRAFT",
		TotalAmount:   decimal.NewFromInt(100),
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/invoice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-0001", decodeBody(t, w)["invoiceNumber"])
}

func TestCreateInvoiceDeductsStock(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 10)
	customerID := seedCustomer(t, "Ravi Traders")

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"customerId":     customerID,
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 5, 200, 1000)},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	// 10 - 500*5/1000 = 7.5
	assert.True(t, productStock(t, productID).Equal(decimal.NewFromFloat(7.5)))

	var inv models.Invoice
	require.NoError(t, database.DB.Preload("ProductDetails").First(&inv, uint(id)).Error)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(1000)))
	require.Len(t, inv.ProductDetails, 1)
	assert.Equal(t, 5, inv.ProductDetails[0].Qty)
	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, customerID, *inv.CustomerID)
}

func TestCreateInvoiceValidation(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 10)

	// missing invoiceNumber
	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// empty productDetails
	w = doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInvoiceMissingProduct(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(999, 500, 1, 200, 200)},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product 999 not found", decodeBody(t, w)["message"])

	var count int64
	database.DB.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateInvoiceInsufficientStockPartialApplication(t *testing.T) {
	r := setupTest(t)
	aID := seedProduct(t, "Classic Muesli", 10)
	bID := seedProduct(t, "Choco Muesli", 1)

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber": "INV-0001",
		"productDetails": []any{
			lineItem(aID, 500, 5, 200, 1000), // deducts 2.5, succeeds
			lineItem(bID, 2000, 1, 400, 400), // needs 2, only 1 on hand
		},
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Insufficient stock for Choco Muesli", decodeBody(t, w)["message"])

	// The first line's decrement stays applied; no rollback is performed.
	assert.True(t, productStock(t, aID).Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, productStock(t, bID).Equal(decimal.NewFromInt(1)))

	var count int64
	database.DB.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)

	payload := map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
	}

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/invoice/create", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Invoice number already exists", decodeBody(t, w)["message"])
}

func TestUpdateInvoicePayment(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 5, 200, 1000)},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPut, "/api/invoice/", map[string]any{
		"id":         id,
		"paidAmount": 600,
	})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	pd := got["paymentData"].(map[string]any)
	assert.Equal(t, float64(600), pd["paidAmount"])

	// status-only update leaves the paid amount untouched
	w = doJSON(t, r, http.MethodPut, "/api/invoice/", map[string]any{
		"id":            id,
		"paymentStatus": "partial",
	})
	require.Equal(t, http.StatusOK, w.Code)
	pd = decodeBody(t, w)["paymentData"].(map[string]any)
	assert.Equal(t, "partial", pd["paymentStatus"])
	assert.Equal(t, float64(600), pd["paidAmount"])

	// totals are never recomputed
	assert.Equal(t, float64(1000), decodeBody(t, w)["totalAmount"])

	w = doJSON(t, r, http.MethodPut, "/api/invoice/", map[string]any{"id": 9999, "paidAmount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllInvoices(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)
	customerID := seedCustomer(t, "Ravi Traders")

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"customerId":     customerID,
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 5, 200, 1000)},
		"paymentData": map[string]any{
			"modeOfPayment": "UPI",
			"paymentStatus": "paid",
			"paidAmount":    1000,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// walk-in, unpaid
	w = doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0002",
		"productDetails": []any{lineItem(productID, 500, 2, 200, 400)},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/invoice/getAll",
		map[string]any{"start": 0, "limit": 10})
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)

	data := got["data"].([]any)
	require.Len(t, data, 2)

	// page-level aggregates, fixed-point strings
	assert.Equal(t, "1400.00", got["totalAmount"])
	assert.Equal(t, "1000.00", got["totalPaidAmount"])
	assert.Equal(t, float64(1), got["metaData"].(map[string]any)["totalPages"])

	// newest first: the walk-in invoice leads
	first := data[0].(map[string]any)
	assert.Equal(t, "INV-0002", first["invoiceNumber"])
	assert.Equal(t, "Walk-in Customer",
		first["customerDetails"].(map[string]any)["customerName"])

	second := data[1].(map[string]any)
	assert.Equal(t, "Ravi Traders",
		second["customerDetails"].(map[string]any)["customerName"])
	pd := second["productDetails"].(map[string]any)
	assert.Equal(t, float64(1000), pd["amount"])
	assert.Equal(t, float64(180), pd["gstAmount"]) // 1000 * 0.18
	assert.Equal(t, float64(0), pd["totalDiscount"])
	assert.Equal(t, "paid", pd["paymentStatus"])
}

func TestGetAllInvoicesFilterAndSearch(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)
	customerID := seedCustomer(t, "Ravi Traders")

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"customerId":     customerID,
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
		"paymentData": map[string]any{
			"modeOfPayment": "Cash", "paymentStatus": "paid", "paidAmount": 200,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0002",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
		"paymentData": map[string]any{
			"modeOfPayment": "Credit", "paymentStatus": "pending", "paidAmount": 0,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// exact payment-status filter
	w = doJSON(t, r, http.MethodPost, "/api/invoice/getAll",
		map[string]any{"filter": "paid"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "INV-0001", data[0].(map[string]any)["invoiceNumber"])

	// search matches the customer name
	w = doJSON(t, r, http.MethodPost, "/api/invoice/getAll",
		map[string]any{"search": "Ravi"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "INV-0001", data[0].(map[string]any)["invoiceNumber"])

	// search matches the invoice number
	w = doJSON(t, r, http.MethodPost, "/api/invoice/getAll",
		map[string]any{"search": "0002"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "INV-0002", data[0].(map[string]any)["invoiceNumber"])
}

func TestGetAllInvoicesEmptyBodyDefaults(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// An empty body falls back to start=0, limit=10.
	w = doJSON(t, r, http.MethodPost, "/api/invoice/getAll", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body["data"].([]any), 1)
	meta := body["metaData"].(map[string]any)
	assert.Equal(t, float64(1), meta["totalPages"])
}

func TestCreateInvoiceProductLoadFailure(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)

	// A broken store must surface as a server error, not a missing product.
	require.NoError(t, database.DB.Migrator().DropTable(&models.Product{}))

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 1, 200, 200)},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to load product", decodeBody(t, w)["message"])
}

func TestRenderInvoicePDFEndpoint(t *testing.T) {
	r := setupTest(t)
	productID := seedProduct(t, "Classic Muesli", 100)
	customerID := seedCustomer(t, "Ravi Traders")

	w := doJSON(t, r, http.MethodPost, "/api/invoice/create", map[string]any{
		"customerId":     customerID,
		"invoiceNumber":  "INV-0001",
		"productDetails": []any{lineItem(productID, 500, 5, 200, 1000)},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	req := doJSON(t, r, http.MethodGet, "/api/pdf/"+strconv.Itoa(int(id)), nil)
	require.Equal(t, http.StatusOK, req.Code)
	assert.Equal(t, "application/pdf", req.Header().Get("Content-Type"))
	assert.True(t, len(req.Body.Bytes()) > 0)
	assert.Equal(t, "%PDF", string(req.Body.Bytes()[:4]))

	notFound := doJSON(t, r, http.MethodGet, "/api/pdf/9999", nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
}
