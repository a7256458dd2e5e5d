package httpadapter

import (
	"context"
	"log/slog"

	"curia/contexts/assets/token-ledger/application/commands"
	"curia/contexts/assets/token-ledger/application/queries"
	httptransport "curia/contexts/assets/token-ledger/transport/http"
)

type Handler struct {
	Ledger  commands.LedgerUseCase
	Queries queries.LedgerQueryUseCase
	Logger  *slog.Logger
}

func (h Handler) MintHandler(ctx context.Context, callerID string, req httptransport.MintRequest) error {
	return h.Ledger.Mint(ctx, commands.MintCommand{
		MinterID: callerID,
		ToID:     req.To,
		TokenID:  req.TokenID,
		Amount:   req.Amount,
		URI:      []byte(req.URI),
	})
}

func (h Handler) MintBatchHandler(ctx context.Context, callerID string, req httptransport.MintBatchRequest) error {
	return h.Ledger.MintBatch(ctx, commands.MintBatchCommand{
		MinterID:   callerID,
		Recipients: req.Recipients,
		TokenID:    req.TokenID,
		Amounts:    req.Amounts,
		URI:        []byte(req.URI),
	})
}

func (h Handler) TransferHandler(ctx context.Context, callerID string, req httptransport.TransferRequest) error {
	return h.Ledger.Transfer(ctx, commands.TransferCommand{
		CallerID: callerID,
		FromID:   req.From,
		ToID:     req.To,
		TokenID:  req.TokenID,
		Amount:   req.Amount,
	})
}

func (h Handler) SetApprovalHandler(ctx context.Context, callerID string, req httptransport.ApprovalRequest) error {
	return h.Ledger.SetApprovalForAll(ctx, commands.ApprovalCommand{
		OwnerID:    callerID,
		OperatorID: req.Operator,
		Approved:   req.Approved,
	})
}

func (h Handler) BalanceHandler(ctx context.Context, tokenID uint64, accountID string) (httptransport.BalanceResponse, error) {
	amount, err := h.Queries.BalanceOf(ctx, tokenID, accountID)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		TokenID:   tokenID,
		AccountID: accountID,
		Amount:    amount,
	}, nil
}

func (h Handler) TokenHandler(ctx context.Context, tokenID uint64) (httptransport.TokenResponse, error) {
	token, err := h.Queries.TokenInfo(ctx, tokenID)
	if err != nil {
		return httptransport.TokenResponse{}, err
	}
	return httptransport.TokenResponse{
		TokenID:     token.TokenID,
		URI:         string(token.URI),
		TotalSupply: token.TotalSupply,
	}, nil
}
