package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ledgererrors "curia/contexts/assets/token-ledger/domain/errors"
	ledgerhttp "curia/contexts/assets/token-ledger/transport/http"
)

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{Code: code, Message: message})
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrTokenDoesNotExist):
		writeLedgerError(w, http.StatusNotFound, "token_does_not_exist", err.Error())
	case errors.Is(err, ledgererrors.ErrTokenAlreadyExists):
		writeLedgerError(w, http.StatusConflict, "token_already_exists", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientBalance):
		writeLedgerError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, ledgererrors.ErrNotAllowedToTransfer):
		writeLedgerError(w, http.StatusForbidden, "not_allowed_to_transfer", err.Error())
	case errors.Is(err, ledgererrors.ErrZeroAmount):
		writeLedgerError(w, http.StatusBadRequest, "zero_amount", err.Error())
	case errors.Is(err, ledgererrors.ErrSameAddress):
		writeLedgerError(w, http.StatusBadRequest, "same_address", err.Error())
	case errors.Is(err, ledgererrors.ErrSelfApproval):
		writeLedgerError(w, http.StatusBadRequest, "self_approval", err.Error())
	case errors.Is(err, ledgererrors.ErrLengthMismatch):
		writeLedgerError(w, http.StatusBadRequest, "length_mismatch", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidAccount):
		writeLedgerError(w, http.StatusBadRequest, "invalid_account", err.Error())
	case errors.Is(err, ledgererrors.ErrOverflow):
		writeLedgerError(w, http.StatusUnprocessableEntity, "overflow", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireLedgerCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return callerID, true
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireLedgerCaller(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.ledger.Handler.MintHandler(r.Context(), callerID, req); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMintBatch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireLedgerCaller(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.MintBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.ledger.Handler.MintBatchHandler(r.Context(), callerID, req); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireLedgerCaller(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.ledger.Handler.TransferHandler(r.Context(), callerID, req); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireLedgerCaller(w, r)
	if !ok {
		return
	}

	var req ledgerhttp.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.ledger.Handler.SetApprovalHandler(r.Context(), callerID, req); err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := parseUintPath(r, "token_id")
	if !ok {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "token_id must be an unsigned integer")
		return
	}

	resp, err := s.ledger.Handler.TokenHandler(r.Context(), tokenID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := parseUintPath(r, "token_id")
	if !ok {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "token_id must be an unsigned integer")
		return
	}
	accountID := strings.TrimSpace(r.PathValue("account_id"))
	if accountID == "" {
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", "account_id is required")
		return
	}

	resp, err := s.ledger.Handler.BalanceHandler(r.Context(), tokenID, accountID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
