package enum

// Document statuses are stored as strings; the transition tables in the
// statemachine package define which moves are legal per document type.

// Estimate statuses
const (
	EstimateStatusDraft     = "draft"
	EstimateStatusSent      = "sent"
	EstimateStatusAccepted  = "accepted"
	EstimateStatusRejected  = "rejected"
	EstimateStatusExpired   = "expired"
	EstimateStatusConverted = "converted"
	EstimateStatusCancelled = "cancelled"
)

// Sales order statuses
const (
	SalesOrderStatusDraft      = "draft"
	SalesOrderStatusConfirmed  = "confirmed"
	SalesOrderStatusInProgress = "in_progress"
	SalesOrderStatusCompleted  = "completed"
	SalesOrderStatusCancelled  = "cancelled"
)

// Delivery note statuses
const (
	DeliveryNoteStatusDraft       = "draft"
	DeliveryNoteStatusReadyToShip = "ready_to_ship"
	DeliveryNoteStatusShipped     = "shipped"
	DeliveryNoteStatusInTransit   = "in_transit"
	DeliveryNoteStatusDelivered   = "delivered"
	DeliveryNoteStatusCancelled   = "cancelled"
)

// Invoice statuses
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusVoid    = "void"
)

// Bill statuses
const (
	BillStatusDraft   = "draft"
	BillStatusOpen    = "open"
	BillStatusOverdue = "overdue"
	BillStatusVoid    = "void"
)

// StatusDraft is the shared initial status every flowing document starts in
const StatusDraft = "draft"

// PaymentStatus tracks how much of a payable document has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// FulfillmentStatus tracks how much of a sales order has been delivered
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled        FulfillmentStatus = "unfulfilled"
	FulfillmentStatusPartiallyFulfilled FulfillmentStatus = "partially_fulfilled"
	FulfillmentStatusFulfilled          FulfillmentStatus = "fulfilled"
)

// PaymentKind distinguishes money received from money paid out
type PaymentKind string

const (
	PaymentKindCustomer PaymentKind = "customer"
	PaymentKindVendor   PaymentKind = "vendor"
)
