package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	application "curia/contexts/assets/token-ledger/application"
	"curia/contexts/assets/token-ledger/domain/entities"
	domainerrors "curia/contexts/assets/token-ledger/domain/errors"
	"curia/contexts/assets/token-ledger/ports"
)

// MintCommand mints a fresh token id with its full supply on one account.
type MintCommand struct {
	MinterID string
	ToID     string
	TokenID  uint64
	Amount   uint64
	URI      []byte
}

// MintBatchCommand mints a fresh token id split across several accounts.
type MintBatchCommand struct {
	MinterID   string
	Recipients []string
	TokenID    uint64
	Amounts    []uint64
	URI        []byte
}

type TransferCommand struct {
	CallerID string
	FromID   string
	ToID     string
	TokenID  uint64
	Amount   uint64
}

type ApprovalCommand struct {
	OwnerID    string
	OperatorID string
	Approved   bool
}

// LedgerUseCase owns balance bookkeeping for every token id. A token id can
// be minted exactly once; transfers move existing supply between accounts.
type LedgerUseCase struct {
	Ledger ports.LedgerRepository
	Outbox ports.OutboxWriter
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc LedgerUseCase) Mint(ctx context.Context, cmd MintCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	toID := strings.TrimSpace(cmd.ToID)
	if toID == "" {
		return domainerrors.ErrInvalidAccount
	}
	if cmd.Amount == 0 {
		return domainerrors.ErrZeroAmount
	}

	exists, err := uc.Ledger.TokenExists(ctx, cmd.TokenID)
	if err != nil {
		return err
	}
	if exists {
		return domainerrors.ErrTokenAlreadyExists
	}
	if _, err := uc.Ledger.BumpTokensCount(ctx); err != nil {
		return err
	}

	if err := uc.credit(ctx, cmd.TokenID, toID, cmd.Amount); err != nil {
		return err
	}
	if err := uc.Ledger.SaveToken(ctx, entities.Token{
		TokenID:     cmd.TokenID,
		URI:         cmd.URI,
		TotalSupply: cmd.Amount,
	}); err != nil {
		return err
	}
	if err := uc.appendTokenEvent(ctx, "tokens.token_minted", cmd.TokenID, map[string]any{
		"to":     toID,
		"amount": cmd.Amount,
	}); err != nil {
		return err
	}

	logger.Info("token minted",
		"event", "ledger_token_minted",
		"module", "assets/token-ledger",
		"layer", "application",
		"token_id", cmd.TokenID,
		"to", toID,
		"amount", cmd.Amount,
	)
	return nil
}

// MintBatch mints one fresh token id across several recipients. The
// recorded supply is the sum of all minted amounts so the token reads as
// existing afterwards.
func (uc LedgerUseCase) MintBatch(ctx context.Context, cmd MintBatchCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if len(cmd.Recipients) != len(cmd.Amounts) {
		return domainerrors.ErrLengthMismatch
	}

	exists, err := uc.Ledger.TokenExists(ctx, cmd.TokenID)
	if err != nil {
		return err
	}
	if exists {
		return domainerrors.ErrTokenAlreadyExists
	}

	var supply uint64
	for i, recipient := range cmd.Recipients {
		if strings.TrimSpace(recipient) == "" {
			return domainerrors.ErrInvalidAccount
		}
		if cmd.Amounts[i] == 0 {
			return domainerrors.ErrZeroAmount
		}
		if supply > math.MaxUint64-cmd.Amounts[i] {
			return domainerrors.ErrOverflow
		}
		supply += cmd.Amounts[i]
	}
	if _, err := uc.Ledger.BumpTokensCount(ctx); err != nil {
		return err
	}

	for i, recipient := range cmd.Recipients {
		if err := uc.credit(ctx, cmd.TokenID, strings.TrimSpace(recipient), cmd.Amounts[i]); err != nil {
			return err
		}
	}
	if err := uc.Ledger.SaveToken(ctx, entities.Token{
		TokenID:     cmd.TokenID,
		URI:         cmd.URI,
		TotalSupply: supply,
	}); err != nil {
		return err
	}
	if err := uc.appendTokenEvent(ctx, "tokens.token_minted", cmd.TokenID, map[string]any{
		"recipients": cmd.Recipients,
		"amounts":    cmd.Amounts,
	}); err != nil {
		return err
	}

	logger.Info("token batch minted",
		"event", "ledger_token_batch_minted",
		"module", "assets/token-ledger",
		"layer", "application",
		"token_id", cmd.TokenID,
		"recipients", len(cmd.Recipients),
		"supply", supply,
	)
	return nil
}

// Transfer moves existing supply. The caller must be the holder or an
// approved operator of the holder's balances.
func (uc LedgerUseCase) Transfer(ctx context.Context, cmd TransferCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	fromID := strings.TrimSpace(cmd.FromID)
	toID := strings.TrimSpace(cmd.ToID)

	if callerID != fromID {
		approved, err := uc.Ledger.IsOperator(ctx, fromID, callerID)
		if err != nil {
			return err
		}
		if !approved {
			logger.Warn("transfer not allowed",
				"event", "ledger_transfer_not_allowed",
				"module", "assets/token-ledger",
				"layer", "application",
				"token_id", cmd.TokenID,
				"caller_id", callerID,
				"from", fromID,
			)
			return domainerrors.ErrNotAllowedToTransfer
		}
	}

	exists, err := uc.Ledger.TokenExists(ctx, cmd.TokenID)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.ErrTokenDoesNotExist
	}
	if cmd.Amount == 0 {
		return domainerrors.ErrZeroAmount
	}
	if toID == fromID {
		return domainerrors.ErrSameAddress
	}

	fromBalance, err := uc.Ledger.GetBalance(ctx, cmd.TokenID, fromID)
	if err != nil {
		return err
	}
	if fromBalance < cmd.Amount {
		return domainerrors.ErrInsufficientBalance
	}
	if err := uc.Ledger.SaveBalance(ctx, cmd.TokenID, fromID, fromBalance-cmd.Amount); err != nil {
		return err
	}
	if err := uc.credit(ctx, cmd.TokenID, toID, cmd.Amount); err != nil {
		return err
	}
	if err := uc.appendTokenEvent(ctx, "tokens.token_transferred", cmd.TokenID, map[string]any{
		"from":   fromID,
		"to":     toID,
		"amount": cmd.Amount,
	}); err != nil {
		return err
	}

	logger.Info("token transferred",
		"event", "ledger_token_transferred",
		"module", "assets/token-ledger",
		"layer", "application",
		"token_id", cmd.TokenID,
		"from", fromID,
		"to", toID,
		"amount", cmd.Amount,
	)
	return nil
}

// SetApprovalForAll grants or revokes blanket operator rights over every
// balance the owner holds.
func (uc LedgerUseCase) SetApprovalForAll(ctx context.Context, cmd ApprovalCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	ownerID := strings.TrimSpace(cmd.OwnerID)
	operatorID := strings.TrimSpace(cmd.OperatorID)
	if ownerID == "" || operatorID == "" {
		return domainerrors.ErrInvalidAccount
	}
	if ownerID == operatorID {
		return domainerrors.ErrSelfApproval
	}

	if err := uc.Ledger.SaveOperatorApproval(ctx, ownerID, operatorID, cmd.Approved); err != nil {
		return err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newApprovalEnvelope(eventID, ownerID, map[string]any{
		"owner_id":    ownerID,
		"operator_id": operatorID,
		"approved":    cmd.Approved,
	})
	if err != nil {
		return err
	}
	if err := uc.appendEnvelope(ctx, envelope); err != nil {
		return err
	}

	logger.Info("operator approval set",
		"event", "ledger_approval_set",
		"module", "assets/token-ledger",
		"layer", "application",
		"owner_id", ownerID,
		"operator_id", operatorID,
		"approved", cmd.Approved,
	)
	return nil
}

func (uc LedgerUseCase) credit(ctx context.Context, tokenID uint64, accountID string, amount uint64) error {
	balance, err := uc.Ledger.GetBalance(ctx, tokenID, accountID)
	if err != nil {
		return err
	}
	if balance > math.MaxUint64-amount {
		return domainerrors.ErrOverflow
	}
	return uc.Ledger.SaveBalance(ctx, tokenID, accountID, balance+amount)
}

func (uc LedgerUseCase) appendTokenEvent(ctx context.Context, eventType string, tokenID uint64, data map[string]any) error {
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newTokenEnvelope(eventID, eventType, tokenID, data)
	if err != nil {
		return err
	}
	return uc.appendEnvelope(ctx, envelope)
}

func (uc LedgerUseCase) appendEnvelope(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    time.Now().UTC(),
	})
}
