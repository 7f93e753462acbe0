package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/email"
)

// NotificationService emails counterparties when a document is sent to them.
// Delivery runs outside the request transaction and failures are logged, not
// surfaced; a lost email never blocks a status change.
type NotificationService struct {
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	email        *email.EmailService
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	emailService *email.EmailService,
) *NotificationService {
	return &NotificationService{
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		email:        emailService,
	}
}

// NotifyDocumentSent emails the customer behind an estimate or invoice that
// was just marked sent. Other document types are ignored.
func (s *NotificationService) NotifyDocumentSent(ctx context.Context, doc entity.Document) {
	var payload email.DocumentEmail
	var customerID string

	switch d := doc.(type) {
	case *entity.Estimate:
		payload = email.DocumentEmail{
			DocumentKind: "Estimate",
			DocumentNo:   d.DocumentNo,
			GrandTotal:   d.GrandTotal.StringFixed(2),
		}
		customerID = d.CustomerID.String()
	case *entity.Invoice:
		payload = email.DocumentEmail{
			DocumentKind: "Invoice",
			DocumentNo:   d.DocumentNo,
			GrandTotal:   d.GrandTotal.StringFixed(2),
		}
		customerID = d.CustomerID.String()
	default:
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"document_type": doc.GetDocumentType(),
		"document_no":   doc.GetDocumentNo(),
	})

	customer, err := s.lookupCustomer(ctx, doc)
	if err != nil {
		log.WithError(err).WithField("customer_id", customerID).Warn("failed to load customer for notification")
		return
	}
	if customer == nil || customer.Email == nil || *customer.Email == "" {
		return
	}

	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		log.WithError(err).Warn("failed to load company for notification")
		return
	}
	payload.CompanyName = company.Name
	payload.Currency = company.Settings.Currency

	if err := s.email.SendDocumentEmail(*customer.Email, payload); err != nil {
		log.WithError(err).Warn("failed to send document notification")
	}
}

func (s *NotificationService) lookupCustomer(ctx context.Context, doc entity.Document) (*entity.Customer, error) {
	switch d := doc.(type) {
	case *entity.Estimate:
		return s.customerRepo.GetByID(ctx, d.CustomerID)
	case *entity.Invoice:
		return s.customerRepo.GetByID(ctx, d.CustomerID)
	}
	return nil, nil
}
