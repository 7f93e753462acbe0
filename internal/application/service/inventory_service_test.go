package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestAdjustInboundAndOutbound(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")

	txn, err := env.inventory.Adjust(env.ctx, &AdjustmentInput{
		ProductID: product.ID,
		Type:      enum.InventoryTxnOpeningStock,
		Quantity:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("opening stock: %v", err)
	}
	wantDecimal(t, txn.Quantity, 10, "opening quantity")
	wantDecimal(t, txn.BalanceBefore, 0, "balance before")
	wantDecimal(t, txn.BalanceAfter, 10, "balance after")

	txn, err = env.inventory.Adjust(env.ctx, &AdjustmentInput{
		ProductID: product.ID,
		Type:      enum.InventoryTxnAdjustmentOut,
		Quantity:  decimal.NewFromInt(3),
	})
	if err != nil {
		t.Fatalf("adjustment out: %v", err)
	}
	wantDecimal(t, txn.Quantity, -3, "outbound quantity should be negative")
	wantDecimal(t, txn.BalanceAfter, 7, "balance after deduction")

	reloaded, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	wantDecimal(t, reloaded.CurrentStock, 7, "cached stock")
}

func TestAdjustNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")
	env.stockUp(t, product.ID, 5)

	_, err := env.inventory.Adjust(env.ctx, &AdjustmentInput{
		ProductID: product.ID,
		Type:      enum.InventoryTxnWriteOff,
		Quantity:  decimal.NewFromInt(6),
	})
	wantConflict(t, err)

	// Stock is untouched after the rejected movement
	reloaded, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	wantDecimal(t, reloaded.CurrentStock, 5, "stock after rejected deduction")
}

func TestAdjustRejectsSystemTypes(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")

	for _, txnType := range []enum.InventoryTransactionType{
		enum.InventoryTxnTransferIn,
		enum.InventoryTxnTransferOut,
		enum.InventoryTxnDeliveryNote,
	} {
		if _, err := env.inventory.Adjust(env.ctx, &AdjustmentInput{
			ProductID: product.ID,
			Type:      txnType,
			Quantity:  decimal.NewFromInt(1),
		}); err == nil {
			t.Errorf("type %s should not be accepted as a manual adjustment", txnType)
		}
	}
}

func TestTransferCreatesPairedMovements(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")
	env.stockUp(t, product.ID, 10)

	txns, err := env.inventory.Transfer(env.ctx, &TransferInput{
		ProductID:    product.ID,
		Quantity:     decimal.NewFromInt(4),
		FromLocation: "default",
		ToLocation:   "warehouse-b",
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("transfer produced %d movements, want 2", len(txns))
	}
	if txns[0].Type != enum.InventoryTxnTransferOut {
		t.Errorf("first movement = %s, want transfer_out", txns[0].Type)
	}
	if txns[1].Type != enum.InventoryTxnTransferIn {
		t.Errorf("second movement = %s, want transfer_in", txns[1].Type)
	}
	wantDecimal(t, txns[0].Quantity.Add(txns[1].Quantity), 0, "paired quantities should cancel")

	// Total stock is unchanged, per-location balances moved
	_, locations, err := env.inventory.ProductLedger(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("ProductLedger: %v", err)
	}
	byLocation := map[string]decimal.Decimal{}
	for _, loc := range locations {
		byLocation[loc.Location] = loc.QuantityOnHand
	}
	wantDecimal(t, byLocation["default"], 6, "default location")
	wantDecimal(t, byLocation["warehouse-b"], 4, "destination location")

	reloaded, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	wantDecimal(t, reloaded.CurrentStock, 10, "total stock after transfer")
}

func TestTransferRejectsInsufficientSource(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")
	env.stockUp(t, product.ID, 3)

	_, err := env.inventory.Transfer(env.ctx, &TransferInput{
		ProductID:    product.ID,
		Quantity:     decimal.NewFromInt(5),
		FromLocation: "default",
		ToLocation:   "warehouse-b",
	})
	wantConflict(t, err)
}

func TestLedgerReplayMatchesCachedStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Widget")

	env.stockUp(t, product.ID, 20)
	for _, move := range []struct {
		txnType enum.InventoryTransactionType
		qty     int64
	}{
		{enum.InventoryTxnAdjustmentOut, 5},
		{enum.InventoryTxnAdjustmentIn, 2},
		{enum.InventoryTxnWriteOff, 1},
	} {
		if _, err := env.inventory.Adjust(env.ctx, &AdjustmentInput{
			ProductID: product.ID,
			Type:      move.txnType,
			Quantity:  decimal.NewFromInt(move.qty),
		}); err != nil {
			t.Fatalf("adjust %s: %v", move.txnType, err)
		}
	}

	txns, _, err := env.inventory.ProductLedger(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("ProductLedger: %v", err)
	}

	replayed := decimal.Zero
	for _, txn := range txns {
		replayed = replayed.Add(txn.Quantity)
	}

	reloaded, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !replayed.Equal(reloaded.CurrentStock) {
		t.Errorf("ledger replay = %s, cached stock = %s", replayed, reloaded.CurrentStock)
	}
	wantDecimal(t, reloaded.CurrentStock, 16, "final stock")
}
