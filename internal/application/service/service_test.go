package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
)

// testEnv wires the full service stack onto an in-memory database with a
// single company and actor in the request context.
type testEnv struct {
	db        *gorm.DB
	ctx       context.Context
	companyID uuid.UUID

	sequences   *SequenceService
	customers   *CustomerService
	vendors     *VendorService
	products    *ProductService
	estimates   *EstimateService
	orders      *SalesOrderService
	notes       *DeliveryNoteService
	invoices    *InvoiceService
	bills       *BillService
	expenses    *ExpenseService
	payments    *PaymentService
	inventory   *InventoryService
	status      *StatusService
	conversions *ConversionService
	reports     *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Company{}, &entity.User{},
		&entity.Customer{}, &entity.Vendor{}, &entity.Tax{}, &entity.Carrier{},
		&entity.Product{}, &entity.ProductStockLocation{},
		&entity.Sequence{},
		&entity.Estimate{}, &entity.EstimateItem{},
		&entity.SalesOrder{}, &entity.SalesOrderItem{},
		&entity.DeliveryNote{}, &entity.DeliveryNoteItem{},
		&entity.Invoice{}, &entity.InvoiceItem{},
		&entity.Bill{}, &entity.BillItem{},
		&entity.Expense{}, &entity.ExpenseItem{},
		&entity.Payment{}, &entity.PaymentAllocation{},
		&entity.InventoryTransaction{}, &entity.StatusHistory{},
		&entity.IdempotencyKey{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	companyID := uuid.New()
	userID := uuid.New()
	company := &entity.Company{
		ID:       companyID,
		Name:     "Test Co",
		Slug:     "test-co",
		OwnerID:  userID,
		Settings: entity.DefaultCompanySettings(),
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}

	ctx := infraRepo.WithCompany(context.Background(), companyID)
	ctx = infraRepo.WithActor(ctx, userID, "Test User")

	txManager := infraRepo.NewTxManager(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	vendorRepo := infraRepo.NewVendorRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	taxRepo := infraRepo.NewTaxRepository(db)
	carrierRepo := infraRepo.NewCarrierRepository(db)
	estimateRepo := infraRepo.NewEstimateRepository(db)
	orderRepo := infraRepo.NewSalesOrderRepository(db)
	noteRepo := infraRepo.NewDeliveryNoteRepository(db)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	billRepo := infraRepo.NewBillRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	inventoryRepo := infraRepo.NewInventoryRepository(db)
	sequenceRepo := infraRepo.NewSequenceRepository(db)
	historyRepo := infraRepo.NewStatusHistoryRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)

	env := &testEnv{db: db, ctx: ctx, companyID: companyID}
	env.sequences = NewSequenceService(sequenceRepo)
	env.customers = NewCustomerService(customerRepo)
	env.vendors = NewVendorService(vendorRepo)
	env.products = NewProductService(productRepo, taxRepo)
	env.estimates = NewEstimateService(estimateRepo, customerRepo, env.sequences, txManager)
	env.orders = NewSalesOrderService(orderRepo, customerRepo, env.sequences, txManager)
	env.notes = NewDeliveryNoteService(noteRepo, carrierRepo, txManager)
	env.invoices = NewInvoiceService(invoiceRepo, customerRepo, env.sequences, txManager)
	env.bills = NewBillService(billRepo, vendorRepo, env.sequences, txManager)
	env.expenses = NewExpenseService(expenseRepo, vendorRepo, env.sequences, txManager)
	env.payments = NewPaymentService(paymentRepo, invoiceRepo, billRepo, env.sequences, txManager)
	env.inventory = NewInventoryService(productRepo, inventoryRepo, txManager)
	env.status = NewStatusService(
		estimateRepo, orderRepo, noteRepo, invoiceRepo, billRepo,
		historyRepo, env.inventory, nil, txManager,
	)
	env.conversions = NewConversionService(
		estimateRepo, orderRepo, noteRepo, invoiceRepo, carrierRepo,
		historyRepo, env.sequences, txManager,
	)
	env.reports = NewReportService(reportRepo, invoiceRepo)

	return env
}

func (env *testEnv) createCustomer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	customer, err := env.customers.CreateCustomer(env.ctx, &CreateCustomerInput{Name: name})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func (env *testEnv) createVendor(t *testing.T, name string) *entity.Vendor {
	t.Helper()
	vendor, err := env.vendors.CreateVendor(env.ctx, &VendorInput{Name: name})
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	return vendor
}

func (env *testEnv) createTrackedProduct(t *testing.T, name string) *entity.Product {
	t.Helper()
	product, err := env.products.CreateProduct(env.ctx, &CreateProductInput{
		Name:           name,
		SellingPrice:   decimal.NewFromInt(100),
		TrackInventory: true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// stockUp gives a tracked product opening stock in the default location
func (env *testEnv) stockUp(t *testing.T, productID uuid.UUID, qty int64) {
	t.Helper()
	_, err := env.inventory.Adjust(env.ctx, &AdjustmentInput{
		ProductID: productID,
		Type:      enum.InventoryTxnOpeningStock,
		Quantity:  decimal.NewFromInt(qty),
	})
	if err != nil {
		t.Fatalf("opening stock: %v", err)
	}
}

func (env *testEnv) createEstimate(t *testing.T, customerID uuid.UUID, items []LineItemInput) *entity.Estimate {
	t.Helper()
	estimate, err := env.estimates.CreateEstimate(env.ctx, &CreateEstimateInput{
		CustomerID:   customerID,
		EstimateDate: time.Now(),
		Items:        items,
	})
	if err != nil {
		t.Fatalf("create estimate: %v", err)
	}
	return estimate
}

func (env *testEnv) createInvoice(t *testing.T, customerID uuid.UUID, items []LineItemInput) *entity.Invoice {
	t.Helper()
	invoice, err := env.invoices.CreateInvoice(env.ctx, &CreateInvoiceInput{
		CustomerID:  customerID,
		InvoiceDate: time.Now(),
		Items:       items,
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return invoice
}

func (env *testEnv) createBill(t *testing.T, vendorID uuid.UUID, items []LineItemInput) *entity.Bill {
	t.Helper()
	bill, err := env.bills.CreateBill(env.ctx, &CreateBillInput{
		VendorID: vendorID,
		BillDate: time.Now(),
		Items:    items,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return bill
}

func simpleLine(qty, rate int64) LineItemInput {
	return LineItemInput{
		Description: "Widget",
		Quantity:    decimal.NewFromInt(qty),
		Rate:        decimal.NewFromInt(rate),
	}
}

func wantAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", code)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %d, want %d (%s)", appErr.Code, code, appErr.Message)
	}
	return appErr
}

func wantConflict(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	return wantAppError(t, err, http.StatusConflict)
}

func wantDecimal(t *testing.T, got decimal.Decimal, want int64, label string) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s = %s, want %d", label, got.String(), want)
	}
}
