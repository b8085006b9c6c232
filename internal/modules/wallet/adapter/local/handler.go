package local

import (
	"context"

	"github.com/billyz31/slot_arcade/internal/modules/wallet/usecase"
	"github.com/billyz31/slot_arcade/pkg/service"
)

// Handler is the local adapter for the wallet (monolith mode). It implements
// service.WalletService for other modules in the same process.
type Handler struct {
	walletUC *usecase.WalletUseCase
}

// NewHandler creates a new local wallet handler
func NewHandler(walletUC *usecase.WalletUseCase) *Handler {
	return &Handler{walletUC: walletUC}
}

// Balance returns the player's balance
func (h *Handler) Balance(ctx context.Context, playerID string) (*service.BalanceResult, error) {
	balance, source, err := h.walletUC.Balance(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &service.BalanceResult{
		PlayerID: playerID,
		Balance:  balance,
		Source:   source,
	}, nil
}

// Credit adds amount to the player's balance
func (h *Handler) Credit(ctx context.Context, playerID string, amount int64, ref string) (*service.Receipt, error) {
	receipt, err := h.walletUC.Credit(ctx, playerID, amount, ref)
	if err != nil {
		return nil, err
	}
	return toReceipt(receipt.PlayerID, receipt.Balance, receipt.Delta, receipt.Ref, receipt.TxID), nil
}

// Debit subtracts amount from the player's balance
func (h *Handler) Debit(ctx context.Context, playerID string, amount int64, ref string) (*service.Receipt, error) {
	receipt, err := h.walletUC.Debit(ctx, playerID, amount, ref)
	if err != nil {
		return nil, err
	}
	return toReceipt(receipt.PlayerID, receipt.Balance, receipt.Delta, receipt.Ref, receipt.TxID), nil
}

func toReceipt(playerID string, balance, delta int64, ref, txID string) *service.Receipt {
	return &service.Receipt{
		PlayerID: playerID,
		Balance:  balance,
		Delta:    delta,
		Ref:      ref,
		TxID:     txID,
	}
}
