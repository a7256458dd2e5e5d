package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	membershiperrors "curia/contexts/governance/membership-service/domain/errors"
	membershiphttp "curia/contexts/governance/membership-service/transport/http"
)

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershiphttp.ErrorResponse{Code: code, Message: message})
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membershiperrors.ErrAlreadyMember):
		writeMembershipError(w, http.StatusConflict, "already_member", err.Error())
	case errors.Is(err, membershiperrors.ErrNotAMember):
		writeMembershipError(w, http.StatusNotFound, "not_a_member", err.Error())
	case errors.Is(err, membershiperrors.ErrNotAuthorized):
		writeMembershipError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, membershiperrors.ErrInvalidAccount):
		writeMembershipError(w, http.StatusBadRequest, "invalid_account", err.Error())
	case errors.Is(err, membershiperrors.ErrOverflow):
		writeMembershipError(w, http.StatusUnprocessableEntity, "overflow", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireMembershipCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return callerID, true
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireMembershipCaller(w, r)
	if !ok {
		return
	}

	var req membershiphttp.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.membership.Handler.JoinHandler(r.Context(), callerID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSetMembership(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireMembershipCaller(w, r)
	if !ok {
		return
	}

	var req membershiphttp.SetMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.membership.Handler.SetMembershipHandler(r.Context(), callerID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	accountID := strings.TrimSpace(r.PathValue("account_id"))
	if accountID == "" {
		writeMembershipError(w, http.StatusBadRequest, "invalid_request", "account_id is required")
		return
	}

	resp, err := s.membership.Handler.GetMemberHandler(r.Context(), accountID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
