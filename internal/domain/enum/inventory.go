package enum

// InventoryTransactionType classifies ledger movements
type InventoryTransactionType string

const (
	InventoryTxnOpeningStock  InventoryTransactionType = "opening_stock"
	InventoryTxnAdjustmentIn  InventoryTransactionType = "adjustment_in"
	InventoryTxnAdjustmentOut InventoryTransactionType = "adjustment_out"
	InventoryTxnTransferIn    InventoryTransactionType = "transfer_in"
	InventoryTxnTransferOut   InventoryTransactionType = "transfer_out"
	InventoryTxnDeliveryNote  InventoryTransactionType = "delivery_note"
	InventoryTxnWriteOff      InventoryTransactionType = "write_off"
)

// Inbound reports whether the type increases stock
func (t InventoryTransactionType) Inbound() bool {
	switch t {
	case InventoryTxnOpeningStock, InventoryTxnAdjustmentIn, InventoryTxnTransferIn:
		return true
	}
	return false
}

// Valid reports whether t is a known movement type
func (t InventoryTransactionType) Valid() bool {
	switch t {
	case InventoryTxnOpeningStock, InventoryTxnAdjustmentIn, InventoryTxnAdjustmentOut,
		InventoryTxnTransferIn, InventoryTxnTransferOut,
		InventoryTxnDeliveryNote, InventoryTxnWriteOff:
		return true
	}
	return false
}
