package httpserver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tokenledger "curia/contexts/assets/token-ledger"
	curationpipeline "curia/contexts/governance/curation-pipeline"
	curationerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	curationports "curia/contexts/governance/curation-pipeline/ports"
	membershipservice "curia/contexts/governance/membership-service"
	rolepromotion "curia/contexts/governance/role-promotion"
	roleserrors "curia/contexts/governance/role-promotion/domain/errors"
	rolesports "curia/contexts/governance/role-promotion/ports"
	votingengine "curia/contexts/governance/voting-engine"
)

type registryStub struct{}

func (registryStub) RecordVoteCast(context.Context, string) error { return nil }

type ballotStub struct{}

func (ballotStub) Open(context.Context, string, uint64) error { return nil }

func (ballotStub) Cast(context.Context, string, uint64, string, bool) error { return nil }
func (ballotStub) Finalize(context.Context, string, uint64) (curationports.BallotOutcome, error) {
	return curationports.BallotOutcomePassed, nil
}

type roleBallotStub struct{}

func (roleBallotStub) Open(context.Context, string, uint64) error { return nil }

func (roleBallotStub) Cast(context.Context, string, uint64, string, bool) error { return nil }
func (roleBallotStub) Finalize(context.Context, string, uint64) (rolesports.BallotOutcome, error) {
	return rolesports.BallotOutcomePassed, nil
}

type promoterStub struct{}

func (promoterStub) Promote(context.Context, string, string) error { return nil }

type minterStub struct{}

func (minterStub) MintBatch(context.Context, string, []string, uint64, []uint64, []byte) error {
	return nil
}

type curationDirectory struct {
	membership membershipservice.Module
}

func (d curationDirectory) GetMember(ctx context.Context, accountID string) (curationports.MemberView, error) {
	member, err := d.membership.Store.GetMember(ctx, accountID)
	if err != nil {
		return curationports.MemberView{}, curationerrors.ErrNotAMember
	}
	return curationports.MemberView{AccountID: member.AccountID, Role: string(member.Role)}, nil
}

type rolesDirectory struct {
	membership membershipservice.Module
}

func (d rolesDirectory) GetMember(ctx context.Context, accountID string) (rolesports.MemberView, error) {
	member, err := d.membership.Store.GetMember(ctx, accountID)
	if err != nil {
		return rolesports.MemberView{}, roleserrors.ErrNotAMember
	}
	return rolesports.MemberView{AccountID: member.AccountID, Role: string(member.Role)}, nil
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	membership := membershipservice.NewInMemoryModule("root", logger)
	voting := votingengine.NewInMemoryModule(registryStub{}, 0, logger)
	ledger := tokenledger.NewInMemoryModule(logger)
	curation := curationpipeline.NewInMemoryModule(
		ballotStub{},
		curationDirectory{membership: membership},
		minterStub{},
		logger,
	)
	roles := rolepromotion.NewInMemoryModule(
		roleBallotStub{},
		rolesDirectory{membership: membership},
		promoterStub{},
		logger,
	)
	return New(membership, voting, curation, roles, ledger, logger, ":0")
}

func TestJoinRequiresUserHeader(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/dao/v1/members/join", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestJoinAndReadMember(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/dao/v1/members/join", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "alice")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("join: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	read := httptest.NewRequest(http.MethodGet, "/dao/v1/members/alice", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, read)
	if rr.Code != http.StatusOK {
		t.Fatalf("read: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"role":"qualifier"`) {
		t.Fatalf("read body missing qualifier role: %s", rr.Body.String())
	}
}

func TestReadMemberNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/dao/v1/members/ghost", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUploadByNonContributorIsForbidden(t *testing.T) {
	server := newTestServer()
	join := httptest.NewRequest(http.MethodPost, "/dao/v1/members/join", bytes.NewReader([]byte(`{}`)))
	join.Header.Set("Content-Type", "application/json")
	join.Header.Set("X-User-Id", "alice")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, join)
	if rr.Code != http.StatusCreated {
		t.Fatalf("join: expected 201, got %d", rr.Code)
	}

	upload := httptest.NewRequest(http.MethodPost, "/dao/v1/uploads", bytes.NewReader([]byte(`{"content_hash":"deadbeef"}`)))
	upload.Header.Set("Content-Type", "application/json")
	upload.Header.Set("X-User-Id", "alice")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, upload)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMintRejectsZeroAmount(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/tokens/v1/mint", bytes.NewReader([]byte(`{"to":"alice","token_id":1,"amount":0}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "minter")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReadUnknownBallot(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/dao/v1/ballots/qualification/99", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
