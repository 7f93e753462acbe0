package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []entity.InvoiceItem) error
	// ListOpenByCustomer returns sent or overdue invoices with an outstanding
	// balance, oldest invoice date first, for payment auto-allocation.
	ListOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error)
	// ListOutstanding returns unpaid and partially paid invoices for aging reports.
	ListOutstanding(ctx context.Context) ([]entity.Invoice, error)
	// MarkOverdue flips sent invoices past their due date to overdue and
	// returns the number of rows touched.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        string
	PaymentStatus *enum.PaymentStatus
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
