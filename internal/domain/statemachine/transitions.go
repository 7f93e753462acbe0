package statemachine

import "github.com/sangkips/ledgerly-api/internal/domain/enum"

// transitions maps, per document type, each status to the set of statuses it
// may move to. Absent statuses are terminal. One table drives all document
// types instead of a hand-rolled state machine per type.
var transitions = map[enum.DocumentType]map[string][]string{
	enum.DocumentTypeEstimate: {
		enum.EstimateStatusDraft:    {enum.EstimateStatusSent, enum.EstimateStatusCancelled},
		enum.EstimateStatusSent:     {enum.EstimateStatusAccepted, enum.EstimateStatusRejected, enum.EstimateStatusExpired, enum.EstimateStatusCancelled},
		enum.EstimateStatusAccepted: {enum.EstimateStatusConverted, enum.EstimateStatusExpired},
	},
	enum.DocumentTypeSalesOrder: {
		enum.SalesOrderStatusDraft:      {enum.SalesOrderStatusConfirmed, enum.SalesOrderStatusCancelled},
		enum.SalesOrderStatusConfirmed:  {enum.SalesOrderStatusInProgress, enum.SalesOrderStatusCancelled},
		enum.SalesOrderStatusInProgress: {enum.SalesOrderStatusCompleted, enum.SalesOrderStatusCancelled},
	},
	enum.DocumentTypeDeliveryNote: {
		enum.DeliveryNoteStatusDraft:       {enum.DeliveryNoteStatusReadyToShip, enum.DeliveryNoteStatusCancelled},
		enum.DeliveryNoteStatusReadyToShip: {enum.DeliveryNoteStatusShipped, enum.DeliveryNoteStatusDraft, enum.DeliveryNoteStatusCancelled},
		enum.DeliveryNoteStatusShipped:     {enum.DeliveryNoteStatusInTransit, enum.DeliveryNoteStatusCancelled},
		enum.DeliveryNoteStatusInTransit:   {enum.DeliveryNoteStatusDelivered},
	},
	enum.DocumentTypeInvoice: {
		enum.InvoiceStatusDraft:   {enum.InvoiceStatusSent, enum.InvoiceStatusVoid},
		enum.InvoiceStatusSent:    {enum.InvoiceStatusOverdue, enum.InvoiceStatusVoid},
		enum.InvoiceStatusOverdue: {enum.InvoiceStatusVoid},
	},
	enum.DocumentTypeBill: {
		enum.BillStatusDraft:   {enum.BillStatusOpen, enum.BillStatusVoid},
		enum.BillStatusOpen:    {enum.BillStatusOverdue, enum.BillStatusVoid},
		enum.BillStatusOverdue: {enum.BillStatusVoid},
	},
}

// CanTransition reports whether a document of the given type may move from
// one status to another.
func CanTransition(docType enum.DocumentType, from, to string) bool {
	table, ok := transitions[docType]
	if !ok {
		return false
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses a document may move to from its
// current status. Terminal statuses return an empty slice.
func AllowedTargets(docType enum.DocumentType, from string) []string {
	table, ok := transitions[docType]
	if !ok {
		return nil
	}
	return table[from]
}

// HasStateMachine reports whether the document type participates in the
// status transition engine. Expenses are plain records without a lifecycle.
func HasStateMachine(docType enum.DocumentType) bool {
	_, ok := transitions[docType]
	return ok
}
