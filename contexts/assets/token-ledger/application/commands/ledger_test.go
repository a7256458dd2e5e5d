package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"curia/contexts/assets/token-ledger/domain/entities"
	domainerrors "curia/contexts/assets/token-ledger/domain/errors"
	"curia/contexts/assets/token-ledger/ports"
)

type balanceKey struct {
	tokenID   uint64
	accountID string
}

type approvalKey struct {
	ownerID    string
	operatorID string
}

type fakeLedger struct {
	tokens      map[uint64]entities.Token
	balances    map[balanceKey]uint64
	approvals   map[approvalKey]bool
	tokensCount uint64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		tokens:    make(map[uint64]entities.Token),
		balances:  make(map[balanceKey]uint64),
		approvals: make(map[approvalKey]bool),
	}
}

func (f *fakeLedger) SaveToken(_ context.Context, token entities.Token) error {
	f.tokens[token.TokenID] = token
	return nil
}

func (f *fakeLedger) GetToken(_ context.Context, tokenID uint64) (entities.Token, error) {
	token, ok := f.tokens[tokenID]
	if !ok {
		return entities.Token{}, domainerrors.ErrTokenDoesNotExist
	}
	return token, nil
}

func (f *fakeLedger) TokenExists(_ context.Context, tokenID uint64) (bool, error) {
	_, ok := f.tokens[tokenID]
	return ok, nil
}

func (f *fakeLedger) BumpTokensCount(_ context.Context) (uint64, error) {
	f.tokensCount++
	return f.tokensCount, nil
}

func (f *fakeLedger) GetBalance(_ context.Context, tokenID uint64, accountID string) (uint64, error) {
	return f.balances[balanceKey{tokenID: tokenID, accountID: accountID}], nil
}

func (f *fakeLedger) SaveBalance(_ context.Context, tokenID uint64, accountID string, amount uint64) error {
	f.balances[balanceKey{tokenID: tokenID, accountID: accountID}] = amount
	return nil
}

func (f *fakeLedger) IsOperator(_ context.Context, ownerID string, operatorID string) (bool, error) {
	return f.approvals[approvalKey{ownerID: ownerID, operatorID: operatorID}], nil
}

func (f *fakeLedger) SaveOperatorApproval(_ context.Context, ownerID string, operatorID string, approved bool) error {
	f.approvals[approvalKey{ownerID: ownerID, operatorID: operatorID}] = approved
	return nil
}

type fakeOutbox struct {
	messages []ports.OutboxMessage
}

func (f *fakeOutbox) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

type seqIDGen struct {
	next int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("event-%d", g.next), nil
}

func newLedgerFixture() (*fakeLedger, *fakeOutbox, LedgerUseCase) {
	ledger := newFakeLedger()
	outbox := &fakeOutbox{}
	useCase := LedgerUseCase{
		Ledger: ledger,
		Outbox: outbox,
		IDGen:  &seqIDGen{},
	}
	return ledger, outbox, useCase
}

func TestMintCreatesTokenOnce(t *testing.T) {
	ledger, outbox, useCase := newLedgerFixture()
	ctx := context.Background()

	err := useCase.Mint(ctx, MintCommand{MinterID: "alice", ToID: "bob", TokenID: 7, Amount: 100, URI: []byte("ipfs://doc")})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if got := ledger.balances[balanceKey{tokenID: 7, accountID: "bob"}]; got != 100 {
		t.Fatalf("expected balance 100, got %d", got)
	}
	token := ledger.tokens[7]
	if token.TotalSupply != 100 || string(token.URI) != "ipfs://doc" {
		t.Fatalf("unexpected token record: %+v", token)
	}
	if ledger.tokensCount != 1 {
		t.Fatalf("expected tokens count 1, got %d", ledger.tokensCount)
	}
	if len(outbox.messages) != 1 || outbox.messages[0].EventType != "tokens.token_minted" {
		t.Fatalf("expected token_minted event, got %+v", outbox.messages)
	}

	err = useCase.Mint(ctx, MintCommand{MinterID: "alice", ToID: "bob", TokenID: 7, Amount: 5, URI: nil})
	if !errors.Is(err, domainerrors.ErrTokenAlreadyExists) {
		t.Fatalf("expected ErrTokenAlreadyExists, got %v", err)
	}
}

func TestMintRejectsZeroAmount(t *testing.T) {
	_, _, useCase := newLedgerFixture()

	err := useCase.Mint(context.Background(), MintCommand{MinterID: "alice", ToID: "bob", TokenID: 1, Amount: 0})
	if !errors.Is(err, domainerrors.ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

func TestMintBatchSplitsSupply(t *testing.T) {
	ledger, _, useCase := newLedgerFixture()
	ctx := context.Background()

	err := useCase.MintBatch(ctx, MintBatchCommand{
		MinterID:   "edgar",
		Recipients: []string{"alice", "edgar"},
		TokenID:    1,
		Amounts:    []uint64{90, 10},
		URI:        []byte("doc-1"),
	})
	if err != nil {
		t.Fatalf("batch mint failed: %v", err)
	}
	if got := ledger.balances[balanceKey{tokenID: 1, accountID: "alice"}]; got != 90 {
		t.Fatalf("expected creator balance 90, got %d", got)
	}
	if got := ledger.balances[balanceKey{tokenID: 1, accountID: "edgar"}]; got != 10 {
		t.Fatalf("expected finalizer balance 10, got %d", got)
	}
	token := ledger.tokens[1]
	if token.TotalSupply != 100 {
		t.Fatalf("expected recorded supply 100, got %d", token.TotalSupply)
	}

	exists, _ := ledger.TokenExists(ctx, 1)
	if !exists {
		t.Fatalf("expected token to exist after batch mint")
	}
}

func TestMintBatchValidation(t *testing.T) {
	_, _, useCase := newLedgerFixture()
	ctx := context.Background()

	err := useCase.MintBatch(ctx, MintBatchCommand{
		MinterID:   "edgar",
		Recipients: []string{"alice", "edgar"},
		TokenID:    1,
		Amounts:    []uint64{90},
	})
	if !errors.Is(err, domainerrors.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	err = useCase.MintBatch(ctx, MintBatchCommand{
		MinterID:   "edgar",
		Recipients: []string{"alice", "edgar"},
		TokenID:    1,
		Amounts:    []uint64{90, 0},
	})
	if !errors.Is(err, domainerrors.ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

func TestTransferMovesBalance(t *testing.T) {
	ledger, outbox, useCase := newLedgerFixture()
	ctx := context.Background()
	if err := useCase.Mint(ctx, MintCommand{MinterID: "alice", ToID: "alice", TokenID: 1, Amount: 100}); err != nil {
		t.Fatalf("setup mint failed: %v", err)
	}

	err := useCase.Transfer(ctx, TransferCommand{CallerID: "alice", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 40})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if got := ledger.balances[balanceKey{tokenID: 1, accountID: "alice"}]; got != 60 {
		t.Fatalf("expected sender balance 60, got %d", got)
	}
	if got := ledger.balances[balanceKey{tokenID: 1, accountID: "bob"}]; got != 40 {
		t.Fatalf("expected recipient balance 40, got %d", got)
	}
	last := outbox.messages[len(outbox.messages)-1]
	if last.EventType != "tokens.token_transferred" {
		t.Fatalf("expected token_transferred event, got %s", last.EventType)
	}
}

func TestTransferValidation(t *testing.T) {
	_, _, useCase := newLedgerFixture()
	ctx := context.Background()
	if err := useCase.Mint(ctx, MintCommand{MinterID: "alice", ToID: "alice", TokenID: 1, Amount: 100}); err != nil {
		t.Fatalf("setup mint failed: %v", err)
	}

	err := useCase.Transfer(ctx, TransferCommand{CallerID: "alice", FromID: "alice", ToID: "bob", TokenID: 9, Amount: 10})
	if !errors.Is(err, domainerrors.ErrTokenDoesNotExist) {
		t.Fatalf("expected ErrTokenDoesNotExist, got %v", err)
	}
	err = useCase.Transfer(ctx, TransferCommand{CallerID: "alice", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 0})
	if !errors.Is(err, domainerrors.ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
	err = useCase.Transfer(ctx, TransferCommand{CallerID: "alice", FromID: "alice", ToID: "alice", TokenID: 1, Amount: 10})
	if !errors.Is(err, domainerrors.ErrSameAddress) {
		t.Fatalf("expected ErrSameAddress, got %v", err)
	}
	err = useCase.Transfer(ctx, TransferCommand{CallerID: "alice", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 500})
	if !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestTransferByOperator(t *testing.T) {
	ledger, _, useCase := newLedgerFixture()
	ctx := context.Background()
	if err := useCase.Mint(ctx, MintCommand{MinterID: "alice", ToID: "alice", TokenID: 1, Amount: 100}); err != nil {
		t.Fatalf("setup mint failed: %v", err)
	}

	err := useCase.Transfer(ctx, TransferCommand{CallerID: "carol", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 10})
	if !errors.Is(err, domainerrors.ErrNotAllowedToTransfer) {
		t.Fatalf("expected ErrNotAllowedToTransfer before approval, got %v", err)
	}

	if err := useCase.SetApprovalForAll(ctx, ApprovalCommand{OwnerID: "alice", OperatorID: "carol", Approved: true}); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := useCase.Transfer(ctx, TransferCommand{CallerID: "carol", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 10}); err != nil {
		t.Fatalf("operator transfer failed: %v", err)
	}
	if got := ledger.balances[balanceKey{tokenID: 1, accountID: "bob"}]; got != 10 {
		t.Fatalf("expected recipient balance 10, got %d", got)
	}

	if err := useCase.SetApprovalForAll(ctx, ApprovalCommand{OwnerID: "alice", OperatorID: "carol", Approved: false}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	err = useCase.Transfer(ctx, TransferCommand{CallerID: "carol", FromID: "alice", ToID: "bob", TokenID: 1, Amount: 10})
	if !errors.Is(err, domainerrors.ErrNotAllowedToTransfer) {
		t.Fatalf("expected ErrNotAllowedToTransfer after revoke, got %v", err)
	}
}

func TestSetApprovalForSelf(t *testing.T) {
	_, _, useCase := newLedgerFixture()

	err := useCase.SetApprovalForAll(context.Background(), ApprovalCommand{OwnerID: "alice", OperatorID: "alice", Approved: true})
	if !errors.Is(err, domainerrors.ErrSelfApproval) {
		t.Fatalf("expected ErrSelfApproval, got %v", err)
	}
}
