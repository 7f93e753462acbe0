package enum

// DocumentType identifies one of the document aggregates
type DocumentType string

const (
	DocumentTypeEstimate      DocumentType = "estimate"
	DocumentTypeSalesOrder    DocumentType = "sales_order"
	DocumentTypeDeliveryNote  DocumentType = "delivery_note"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypeBill          DocumentType = "bill"
	DocumentTypeExpense       DocumentType = "expense"
	DocumentTypePayment       DocumentType = "payment"
	DocumentTypeVendorPayment DocumentType = "vendor_payment"
)

// DefaultSequencePrefix returns the default document-number prefix for a type
func (t DocumentType) DefaultSequencePrefix() string {
	switch t {
	case DocumentTypeEstimate:
		return "EST"
	case DocumentTypeSalesOrder:
		return "SO"
	case DocumentTypeDeliveryNote:
		return "DN"
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypeBill:
		return "BILL"
	case DocumentTypeExpense:
		return "EXP"
	case DocumentTypePayment:
		return "PAY"
	case DocumentTypeVendorPayment:
		return "VPAY"
	}
	return "DOC"
}

// Valid reports whether t names a known document type
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeEstimate, DocumentTypeSalesOrder, DocumentTypeDeliveryNote,
		DocumentTypeInvoice, DocumentTypeBill, DocumentTypeExpense,
		DocumentTypePayment, DocumentTypeVendorPayment:
		return true
	}
	return false
}
