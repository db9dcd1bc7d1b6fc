package handlers

import (
	"time"

	"billing-backend/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var uploadDir = "./uploads"

// NewRouter wires up the HTTP API. Shared between cmd/server and the
// handler tests.
func NewRouter(cfg config.Config) *gin.Engine {
	if cfg.UploadDir != "" {
		uploadDir = cfg.UploadDir
	}
	if cfg.FrontendOrigin == "" {
		cfg.FrontendOrigin = "http://localhost:5173"
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		customers := api.Group("/customers")
		{
			customers.POST("/", CreateCustomer)
			customers.POST("/getAll", GetCustomers)
			customers.GET("/:id", GetCustomerByID)
			customers.PUT("/:id", UpdateCustomer)
			customers.DELETE("/:id", DeleteCustomer)
		}

		products := api.Group("/products")
		{
			products.POST("/create", CreateProduct)
			products.GET("/", GetProducts)
			products.GET("/:id", GetProductByID)
			products.PUT("/:id", UpdateProduct)
			products.DELETE("/:id", DeleteProduct)
		}

		invoices := api.Group("/invoice")
		{
			invoices.POST("/create", CreateInvoice)
			invoices.GET("/", GenerateInvoiceNumber)
			invoices.PUT("/", UpdateInvoicePayment)
			invoices.POST("/getAll", GetAllInvoices)
		}

		api.GET("/pdf/:id", RenderInvoicePDF)
	}

	return r
}
