package handlers

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"billing-backend/internal/config"
	"billing-backend/internal/database"
	"billing-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerRequest struct {
	Name             string `json:"name" binding:"required"`
	Address          string `json:"address" binding:"required"`
	City             string `json:"city" binding:"required"`
	State            string `json:"state" binding:"required"`
	Pincode          string `json:"pincode" binding:"required"`
	GST              string `json:"gst"`
	Mobile           string `json:"mobile" binding:"required,len=10,numeric"`
	MarginPercentage string `json:"margin_percentage" binding:"required"`
}

// --- POST: Create a new customer ---
func CreateCustomer(c *gin.Context) {
	var input CustomerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	// Duplicate check runs against live customers only; a soft-deleted
	// record does not block re-registration of the same number.
	var existing models.Customer
	err := database.DB.Where("mobile = ? AND is_deleted = ?", input.Mobile, false).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer with this mobile already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err, "Failed to check existing customer")
		return
	}

	customer := models.Customer{
		Name:             input.Name,
		Address:          input.Address,
		City:             input.City,
		State:            input.State,
		Pincode:          input.Pincode,
		GST:              strings.ToUpper(strings.TrimSpace(input.GST)),
		Mobile:           input.Mobile,
		MarginPercentage: input.MarginPercentage,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		serverError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

type customerListRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

// --- POST: Paginated customer listing with search ---
func GetCustomers(c *gin.Context) {
	req := customerListRequest{Page: 1, PageSize: 10}
	// An empty body just means defaults.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}

	// Fresh query per execution; a chained *gorm.DB must not be reused
	// after a finisher.
	listQuery := func() *gorm.DB {
		q := database.DB.Model(&models.Customer{}).Where("is_deleted = ?", false)
		if req.Search != "" {
			like := "%" + req.Search + "%"
			q = q.Where(
				"name LIKE ? OR city LIKE ? OR state LIKE ? OR mobile LIKE ?",
				like, like, like, like)
		}
		return q
	}

	var total int64
	if err := listQuery().Count(&total).Error; err != nil {
		serverError(c, err, "Failed to count customers")
		return
	}

	var customers []models.Customer
	err := listQuery().Order("created_at desc, id desc").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&customers).Error
	if err != nil {
		serverError(c, err, "Failed to fetch customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": int(math.Ceil(float64(total) / float64(req.PageSize))),
		"customers":   customers,
	})
}

// --- GET: Single customer by id (live records only) ---
func GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	err := database.DB.Where("id = ? AND is_deleted = ?", c.Param("id"), false).
		First(&customer).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

type customerUpdateRequest struct {
	Name             *string `json:"name"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	State            *string `json:"state"`
	Pincode          *string `json:"pincode"`
	GST              *string `json:"gst"`
	Mobile           *string `json:"mobile"`
	MarginPercentage *string `json:"margin_percentage"`
}

// --- PUT: Update a customer (only fields supplied are overwritten) ---
func UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	err := database.DB.Where("id = ? AND is_deleted = ?", c.Param("id"), false).
		First(&customer).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found or deleted"})
		return
	}

	var input customerUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.State != nil {
		customer.State = *input.State
	}
	if input.Pincode != nil {
		customer.Pincode = *input.Pincode
	}
	if input.GST != nil {
		customer.GST = strings.ToUpper(strings.TrimSpace(*input.GST))
	}
	if input.Mobile != nil {
		customer.Mobile = *input.Mobile
	}
	if input.MarginPercentage != nil {
		customer.MarginPercentage = *input.MarginPercentage
	}

	if err := database.DB.Save(&customer).Error; err != nil {
		serverError(c, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// --- DELETE: Soft delete (flag flip, the record persists) ---
func DeleteCustomer(c *gin.Context) {
	result := database.DB.Model(&models.Customer{}).
		Where("id = ?", c.Param("id")).
		Update("is_deleted", true)
	if result.Error != nil {
		serverError(c, result.Error, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer soft deleted successfully"})
}

// serverError logs the cause and returns the generic failure shape.
func serverError(c *gin.Context, err error, message string) {
	config.GetLogger().WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
}
