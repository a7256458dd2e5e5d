package queries

import (
	"context"

	"curia/contexts/assets/token-ledger/domain/entities"
	"curia/contexts/assets/token-ledger/ports"
)

type LedgerQueryUseCase struct {
	Ledger ports.LedgerRepository
}

func (uc LedgerQueryUseCase) BalanceOf(ctx context.Context, tokenID uint64, accountID string) (uint64, error) {
	return uc.Ledger.GetBalance(ctx, tokenID, accountID)
}

func (uc LedgerQueryUseCase) TokenInfo(ctx context.Context, tokenID uint64) (entities.Token, error) {
	return uc.Ledger.GetToken(ctx, tokenID)
}

func (uc LedgerQueryUseCase) IsOperator(ctx context.Context, ownerID string, operatorID string) (bool, error) {
	return uc.Ledger.IsOperator(ctx, ownerID, operatorID)
}
