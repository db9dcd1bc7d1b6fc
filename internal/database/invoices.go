package database

import (
	"billing-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// lineItemOrder keeps line items in their original input order.
func lineItemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// invoiceListQuery builds the restriction shared by the count and the page
// fetch. filter is an exact paymentStatus match; search is a case-insensitive
// substring over the invoice number or the customer name.
func invoiceListQuery(filter, search string) *gorm.DB {
	q := DB.Model(&models.Invoice{})

	if filter != "" {
		q = q.Where(datatypes.JSONQuery("payment_data").Equals(filter, "paymentStatus"))
	}

	if search != "" {
		var customerIDs []uint
		DB.Model(&models.Customer{}).
			Where("name LIKE ?", "%"+search+"%").
			Pluck("id", &customerIDs)

		q = q.Where("invoice_number LIKE ? OR customer_id IN ?",
			"%"+search+"%", customerIDs)
	}

	return q
}

// CountInvoices returns the number of invoices matching filter/search.
func CountInvoices(filter, search string) (int64, error) {
	var count int64
	err := invoiceListQuery(filter, search).Count(&count).Error
	return count, err
}

// FindInvoices fetches one page of invoices, newest first, with customer and
// line-item products resolved.
func FindInvoices(start, limit int, filter, search string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := invoiceListQuery(filter, search).
		Preload("Customer").
		Preload("ProductDetails", lineItemOrder).
		Order("created_at desc, id desc").
		Offset(start).
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

// LastInvoice returns the most recently created invoice, or
// gorm.ErrRecordNotFound when none exist yet.
func LastInvoice() (*models.Invoice, error) {
	var last models.Invoice
	if err := DB.Order("created_at desc, id desc").First(&last).Error; err != nil {
		return nil, err
	}
	return &last, nil
}

// FindInvoiceByID loads one invoice fully joined for rendering: customer plus
// each line item's product.
func FindInvoiceByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := DB.Preload("Customer").
		Preload("ProductDetails", lineItemOrder).
		Preload("ProductDetails.Product").
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
