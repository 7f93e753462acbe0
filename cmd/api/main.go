package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/config"
	"github.com/sangkips/ledgerly-api/internal/infrastructure/database"
	"github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/handler"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/routes"
	"github.com/sangkips/ledgerly-api/pkg/email"
	"github.com/sangkips/ledgerly-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	carrierRepo := repository.NewCarrierRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	orderRepo := repository.NewSalesOrderRepository(db)
	noteRepo := repository.NewDeliveryNoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	billRepo := repository.NewBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	sequenceService := service.NewSequenceService(sequenceRepo)
	authService := service.NewAuthService(userRepo, companyRepo, txManager, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	vendorService := service.NewVendorService(vendorRepo)
	productService := service.NewProductService(productRepo, taxRepo)
	taxService := service.NewTaxService(taxRepo)
	carrierService := service.NewCarrierService(carrierRepo)
	estimateService := service.NewEstimateService(estimateRepo, customerRepo, sequenceService, txManager)
	orderService := service.NewSalesOrderService(orderRepo, customerRepo, sequenceService, txManager)
	noteService := service.NewDeliveryNoteService(noteRepo, carrierRepo, txManager)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, sequenceService, txManager)
	billService := service.NewBillService(billRepo, vendorRepo, sequenceService, txManager)
	expenseService := service.NewExpenseService(expenseRepo, vendorRepo, sequenceService, txManager)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo, billRepo, sequenceService, txManager)
	inventoryService := service.NewInventoryService(productRepo, inventoryRepo, txManager)
	notificationService := service.NewNotificationService(customerRepo, companyRepo, emailService)
	statusService := service.NewStatusService(
		estimateRepo, orderRepo, noteRepo, invoiceRepo, billRepo,
		historyRepo, inventoryService, notificationService, txManager,
	)
	conversionService := service.NewConversionService(
		estimateRepo, orderRepo, noteRepo, invoiceRepo, carrierRepo,
		historyRepo, sequenceService, txManager,
	)
	reportService := service.NewReportService(reportRepo, invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Customer:     handler.NewCustomerHandler(customerService),
		Vendor:       handler.NewVendorHandler(vendorService),
		Product:      handler.NewProductHandler(productService, inventoryService),
		Tax:          handler.NewTaxHandler(taxService),
		Carrier:      handler.NewCarrierHandler(carrierService),
		Estimate:     handler.NewEstimateHandler(estimateService, conversionService),
		SalesOrder:   handler.NewSalesOrderHandler(orderService, conversionService),
		DeliveryNote: handler.NewDeliveryNoteHandler(noteService, conversionService),
		Invoice:      handler.NewInvoiceHandler(invoiceService, paymentService),
		Bill:         handler.NewBillHandler(billService, paymentService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Sequence:     handler.NewSequenceHandler(sequenceService),
		Status:       handler.NewStatusHandler(statusService),
		Report:       handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Background sweep: flip sent invoices and open bills past due to overdue
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runOverdueSweep(sweepCtx, invoiceService, billService)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"service": cfg.App.Name,
			"port":    port,
			"env":     cfg.App.Env,
		}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("forced shutdown")
	}
	logrus.Info("server stopped")
}

func runOverdueSweep(ctx context.Context, invoices *service.InvoiceService, bills *service.BillService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := invoices.MarkOverdue(ctx); err != nil {
				logrus.WithError(err).Error("overdue invoice sweep failed")
			} else if n > 0 {
				logrus.WithField("count", n).Info("marked invoices overdue")
			}
			if n, err := bills.MarkOverdue(ctx); err != nil {
				logrus.WithError(err).Error("overdue bill sweep failed")
			} else if n > 0 {
				logrus.WithField("count", n).Info("marked bills overdue")
			}
		}
	}
}
