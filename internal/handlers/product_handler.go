package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"billing-backend/internal/database"
	"billing-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- POST: Add a new product (multipart, optional image file) ---
// benefits and unitMrpList arrive as JSON-encoded form fields because the
// request carries the image alongside them.
func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	hsnNumber := c.PostForm("hsn_number")
	if name == "" || hsnNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and hsn_number are required"})
		return
	}

	var unitMrpList []models.UnitMrp
	if raw := c.PostForm("unitMrpList"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &unitMrpList); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid unitMrpList"})
			return
		}
	}
	if len(unitMrpList) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "At least one price entry is required"})
		return
	}

	benefits := []string{}
	if raw := c.PostForm("benefits"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &benefits); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid benefits"})
			return
		}
	}

	stock := decimal.Zero
	if raw := c.PostForm("stock"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock"})
			return
		}
		stock = parsed
	}

	product := models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Contents:    c.PostForm("contents"),
		Benefits:    datatypes.NewJSONSlice(benefits),
		HsnNumber:   hsnNumber,
		UnitMrpList: unitMrpList,
		Category:    c.PostForm("category"),
		Stock:       stock,
	}

	// Optional product image, stored under the static uploads path
	if file, err := c.FormFile("image"); err == nil {
		filename := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
			serverError(c, err, "Failed to save image")
			return
		}
		product.Image = "/uploads/" + filename
	}

	if err := database.DB.Create(&product).Error; err != nil {
		serverError(c, err, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": product})
}

// --- GET: Paginated product listing with name search ---
func GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	search := c.Query("search")
	listQuery := func() *gorm.DB {
		q := database.DB.Model(&models.Product{}).Where("is_deleted = ?", false)
		if search != "" {
			q = q.Where("name LIKE ?", "%"+search+"%")
		}
		return q
	}

	var total int64
	if err := listQuery().Count(&total).Error; err != nil {
		serverError(c, err, "Failed to count products")
		return
	}

	var products []models.Product
	err := listQuery().Order("created_at desc, id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		serverError(c, err, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total_pages": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// --- GET: Single product by id (live records only) ---
func GetProductByID(c *gin.Context) {
	var product models.Product
	err := database.DB.Where("id = ? AND is_deleted = ?", c.Param("id"), false).
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type productUpdateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Contents    *string           `json:"contents"`
	Benefits    *[]string         `json:"benefits"`
	HsnNumber   *string           `json:"hsn_number"`
	UnitMrpList *[]models.UnitMrp `json:"unitMrpList"`
	Category    *string           `json:"category"`
	Stock       *decimal.Decimal  `json:"stock"`
}

// --- PUT: Update a product (only fields supplied are overwritten) ---
func UpdateProduct(c *gin.Context) {
	var product models.Product
	err := database.DB.Where("id = ? AND is_deleted = ?", c.Param("id"), false).
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found or deleted"})
		return
	}

	var input productUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Contents != nil {
		product.Contents = *input.Contents
	}
	if input.Benefits != nil {
		product.Benefits = datatypes.NewJSONSlice(*input.Benefits)
	}
	if input.HsnNumber != nil {
		product.HsnNumber = *input.HsnNumber
	}
	if input.UnitMrpList != nil {
		if len(*input.UnitMrpList) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "At least one price entry is required"})
			return
		}
		product.UnitMrpList = *input.UnitMrpList
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := database.DB.Save(&product).Error; err != nil {
		serverError(c, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// --- DELETE: Soft delete ---
func DeleteProduct(c *gin.Context) {
	result := database.DB.Model(&models.Product{}).
		Where("id = ?", c.Param("id")).
		Update("is_deleted", true)
	if result.Error != nil {
		serverError(c, result.Error, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product soft deleted successfully"})
}
