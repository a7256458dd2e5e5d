package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	roleserrors "curia/contexts/governance/role-promotion/domain/errors"
	roleshttp "curia/contexts/governance/role-promotion/transport/http"
)

func writeRolesError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, roleshttp.ErrorResponse{Code: code, Message: message})
}

func writeRolesDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roleserrors.ErrApplicationNotFound):
		writeRolesError(w, http.StatusNotFound, "application_not_found", err.Error())
	case errors.Is(err, roleserrors.ErrVoteNotFound):
		writeRolesError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, roleserrors.ErrNotAMember):
		writeRolesError(w, http.StatusForbidden, "not_a_member", err.Error())
	case errors.Is(err, roleserrors.ErrNotEligibleForVerifierRole):
		writeRolesError(w, http.StatusForbidden, "not_eligible_for_verifier_role", err.Error())
	case errors.Is(err, roleserrors.ErrNotEligibleForExpertRole):
		writeRolesError(w, http.StatusForbidden, "not_eligible_for_expert_role", err.Error())
	case errors.Is(err, roleserrors.ErrNotEligibleToVerify):
		writeRolesError(w, http.StatusForbidden, "not_eligible_to_verify", err.Error())
	case errors.Is(err, roleserrors.ErrNotAnExpert):
		writeRolesError(w, http.StatusForbidden, "not_an_expert", err.Error())
	case errors.Is(err, roleserrors.ErrWrongRoleApplied):
		writeRolesError(w, http.StatusBadRequest, "wrong_role_applied", err.Error())
	case errors.Is(err, roleserrors.ErrWrongVoteType):
		writeRolesError(w, http.StatusBadRequest, "wrong_vote_type", err.Error())
	case errors.Is(err, roleserrors.ErrVoteNotInProgress):
		writeRolesError(w, http.StatusConflict, "vote_not_in_progress", err.Error())
	case errors.Is(err, roleserrors.ErrVoteStillInProgress):
		writeRolesError(w, http.StatusConflict, "vote_still_in_progress", err.Error())
	case errors.Is(err, roleserrors.ErrAlreadyVoted):
		writeRolesError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, roleserrors.ErrVotingWindowNotValid):
		writeRolesError(w, http.StatusUnprocessableEntity, "voting_window_not_valid", err.Error())
	case errors.Is(err, roleserrors.ErrOverflow):
		writeRolesError(w, http.StatusUnprocessableEntity, "overflow", err.Error())
	default:
		writeRolesError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireRolesCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeRolesError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return callerID, true
}

func (s *Server) handleApplyForRole(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireRolesCaller(w, r)
	if !ok {
		return
	}

	var req roleshttp.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRolesError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.roles.Handler.ApplyHandler(r.Context(), callerID, req)
	if err != nil {
		writeRolesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCastRoleVote(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireRolesCaller(w, r)
	if !ok {
		return
	}

	var req roleshttp.RoleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRolesError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.roles.Handler.CastRoleVoteHandler(r.Context(), callerID, req); err != nil {
		writeRolesDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinalizeRoleVote(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireRolesCaller(w, r)
	if !ok {
		return
	}

	var req roleshttp.FinalizeRoleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRolesError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.roles.Handler.FinalizeRoleVoteHandler(r.Context(), callerID, req)
	if err != nil {
		writeRolesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := parseUintPath(r, "application_id")
	if !ok {
		writeRolesError(w, http.StatusBadRequest, "invalid_request", "application_id must be an unsigned integer")
		return
	}

	resp, err := s.roles.Handler.GetApplicationHandler(r.Context(), applicationID)
	if err != nil {
		writeRolesDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
