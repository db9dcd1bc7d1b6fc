package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"billing-backend/internal/database"
	"billing-backend/internal/pdf"

	"github.com/gin-gonic/gin"
)

// --- GET: Render one invoice as a printable PDF ---
// Streams the two-copy document inline; nothing is persisted.
func RenderInvoicePDF(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid invoice id"})
		return
	}

	inv, err := database.FindInvoiceByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
		return
	}

	out, err := pdf.Render(inv)
	if err != nil {
		serverError(c, err, "Error generating invoice PDF")
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("inline; filename=invoice_%s.pdf", inv.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", out)
}
