package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/config"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/handler"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/middleware"
	"github.com/sangkips/ledgerly-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Customer     *handler.CustomerHandler
	Vendor       *handler.VendorHandler
	Product      *handler.ProductHandler
	Tax          *handler.TaxHandler
	Carrier      *handler.CarrierHandler
	Estimate     *handler.EstimateHandler
	SalesOrder   *handler.SalesOrderHandler
	DeliveryNote *handler.DeliveryNoteHandler
	Invoice      *handler.InvoiceHandler
	Bill         *handler.BillHandler
	Expense      *handler.ExpenseHandler
	Payment      *handler.PaymentHandler
	Inventory    *handler.InventoryHandler
	Sequence     *handler.SequenceHandler
	Status       *handler.StatusHandler
	Report       *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication plus company context required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireCompany())

		// Per-company rate limiter
		rateLimiter := middleware.NewCompanyRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		// Idempotency keys cover the mutating money and conversion endpoints
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/profile", h.Auth.Profile)

	registerCustomerRoutes(protected, h)
	registerVendorRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerTaxRoutes(protected, h)
	registerCarrierRoutes(protected, h)
	registerEstimateRoutes(protected, h)
	registerSalesOrderRoutes(protected, h)
	registerDeliveryNoteRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerBillRoutes(protected, h)
	registerExpenseRoutes(protected, h)
	registerPaymentRoutes(protected, h)
	registerInventoryRoutes(protected, h)
	registerSequenceRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerVendorRoutes(protected *gin.RouterGroup, h *Handlers) {
	vendors := protected.Group("/vendors")
	{
		vendors.GET("", h.Vendor.List)
		vendors.POST("", h.Vendor.Create)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.DELETE("/:id", h.Vendor.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.GET("/:id/ledger", h.Product.Ledger)
	}
}

func registerTaxRoutes(protected *gin.RouterGroup, h *Handlers) {
	taxes := protected.Group("/taxes")
	{
		taxes.GET("", h.Tax.List)
		taxes.POST("", h.Tax.Create)
		taxes.GET("/:id", h.Tax.Get)
		taxes.PUT("/:id", h.Tax.Update)
		taxes.DELETE("/:id", h.Tax.Delete)
	}
}

func registerCarrierRoutes(protected *gin.RouterGroup, h *Handlers) {
	carriers := protected.Group("/carriers")
	{
		carriers.GET("", h.Carrier.List)
		carriers.POST("", h.Carrier.Create)
		carriers.GET("/:id", h.Carrier.Get)
		carriers.PUT("/:id", h.Carrier.Update)
		carriers.DELETE("/:id", h.Carrier.Delete)
	}
}

func registerEstimateRoutes(protected *gin.RouterGroup, h *Handlers) {
	estimates := protected.Group("/estimates")
	{
		estimates.GET("", h.Estimate.List)
		estimates.POST("", h.Estimate.Create)
		estimates.GET("/:id", h.Estimate.Get)
		estimates.PUT("/:id", h.Estimate.Update)
		estimates.DELETE("/:id", h.Estimate.Delete)
		estimates.POST("/:id/convert-to-sales-order", h.Estimate.ConvertToSalesOrder)
		estimates.PATCH("/:id/status", h.Status.Transition(enum.DocumentTypeEstimate))
		estimates.GET("/:id/status/allowed", h.Status.AllowedTargets(enum.DocumentTypeEstimate))
		estimates.GET("/:id/history", h.Status.History(enum.DocumentTypeEstimate))
	}
}

func registerSalesOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/sales-orders")
	{
		orders.GET("", h.SalesOrder.List)
		orders.POST("", h.SalesOrder.Create)
		orders.GET("/:id", h.SalesOrder.Get)
		orders.PUT("/:id", h.SalesOrder.Update)
		orders.DELETE("/:id", h.SalesOrder.Delete)
		orders.POST("/:id/delivery-notes", h.SalesOrder.CreateDeliveryNote)
		orders.POST("/:id/invoices", h.SalesOrder.CreateInvoice)
		orders.PATCH("/:id/status", h.Status.Transition(enum.DocumentTypeSalesOrder))
		orders.GET("/:id/status/allowed", h.Status.AllowedTargets(enum.DocumentTypeSalesOrder))
		orders.GET("/:id/history", h.Status.History(enum.DocumentTypeSalesOrder))
	}
}

func registerDeliveryNoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	notes := protected.Group("/delivery-notes")
	{
		notes.GET("", h.DeliveryNote.List)
		notes.GET("/:id", h.DeliveryNote.Get)
		notes.PUT("/:id", h.DeliveryNote.Update)
		notes.DELETE("/:id", h.DeliveryNote.Delete)
		notes.POST("/:id/invoices", h.DeliveryNote.CreateInvoice)
		notes.PATCH("/:id/status", h.Status.Transition(enum.DocumentTypeDeliveryNote))
		notes.GET("/:id/status/allowed", h.Status.AllowedTargets(enum.DocumentTypeDeliveryNote))
		notes.GET("/:id/history", h.Status.History(enum.DocumentTypeDeliveryNote))
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		invoices.PATCH("/:id/status", h.Status.Transition(enum.DocumentTypeInvoice))
		invoices.GET("/:id/status/allowed", h.Status.AllowedTargets(enum.DocumentTypeInvoice))
		invoices.GET("/:id/history", h.Status.History(enum.DocumentTypeInvoice))
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", h.Bill.Update)
		bills.DELETE("/:id", h.Bill.Delete)
		bills.POST("/:id/payments", h.Bill.RecordPayment)
		bills.PATCH("/:id/status", h.Status.Transition(enum.DocumentTypeBill))
		bills.GET("/:id/status/allowed", h.Status.AllowedTargets(enum.DocumentTypeBill))
		bills.GET("/:id/history", h.Status.History(enum.DocumentTypeBill))
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.DELETE("/:id", h.Payment.Delete)
		payments.POST("/:id/allocations", h.Payment.Allocate)
		payments.GET("/:id/allocations", h.Payment.ListAllocations)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	inventory := protected.Group("/inventory")
	{
		inventory.POST("/adjustments", h.Inventory.Adjust)
		inventory.POST("/transfers", h.Inventory.Transfer)
		inventory.GET("/transactions", h.Inventory.ListTransactions)
	}
}

func registerSequenceRoutes(protected *gin.RouterGroup, h *Handlers) {
	sequences := protected.Group("/sequences")
	{
		sequences.GET("", h.Sequence.List)
		sequences.GET("/:type/next", h.Sequence.Peek)
		sequences.PUT("/:type", h.Sequence.Update)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/sales-summary", h.Report.SalesSummary)
		reports.GET("/receivables-aging", h.Report.ReceivablesAging)
		reports.GET("/stock-on-hand", h.Report.StockOnHand)
	}
}
