package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	curationerrors "curia/contexts/governance/curation-pipeline/domain/errors"
	curationhttp "curia/contexts/governance/curation-pipeline/transport/http"
)

func writeCurationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, curationhttp.ErrorResponse{Code: code, Message: message})
}

func writeCurationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, curationerrors.ErrUploadNotFound):
		writeCurationError(w, http.StatusNotFound, "upload_not_found", err.Error())
	case errors.Is(err, curationerrors.ErrVoteNotFound):
		writeCurationError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, curationerrors.ErrNotAMember):
		writeCurationError(w, http.StatusForbidden, "not_a_member", err.Error())
	case errors.Is(err, curationerrors.ErrNotEligibleToContribute):
		writeCurationError(w, http.StatusForbidden, "not_eligible_to_contribute", err.Error())
	case errors.Is(err, curationerrors.ErrNotEligibleToVerify):
		writeCurationError(w, http.StatusForbidden, "not_eligible_to_verify", err.Error())
	case errors.Is(err, curationerrors.ErrNotAnExpert):
		writeCurationError(w, http.StatusForbidden, "not_an_expert", err.Error())
	case errors.Is(err, curationerrors.ErrWrongVoteType):
		writeCurationError(w, http.StatusBadRequest, "wrong_vote_type", err.Error())
	case errors.Is(err, curationerrors.ErrInvalidUpload):
		writeCurationError(w, http.StatusBadRequest, "invalid_upload", err.Error())
	case errors.Is(err, curationerrors.ErrNotUnderExpertReview):
		writeCurationError(w, http.StatusConflict, "not_under_expert_review", err.Error())
	case errors.Is(err, curationerrors.ErrVoteNotInProgress):
		writeCurationError(w, http.StatusConflict, "vote_not_in_progress", err.Error())
	case errors.Is(err, curationerrors.ErrVoteStillInProgress):
		writeCurationError(w, http.StatusConflict, "vote_still_in_progress", err.Error())
	case errors.Is(err, curationerrors.ErrReviewStillInProgress):
		writeCurationError(w, http.StatusConflict, "review_still_in_progress", err.Error())
	case errors.Is(err, curationerrors.ErrAlreadyVoted):
		writeCurationError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, curationerrors.ErrVotingWindowNotValid):
		writeCurationError(w, http.StatusUnprocessableEntity, "voting_window_not_valid", err.Error())
	case errors.Is(err, curationerrors.ErrReviewWindowNotValid):
		writeCurationError(w, http.StatusUnprocessableEntity, "review_window_not_valid", err.Error())
	case errors.Is(err, curationerrors.ErrOverflow):
		writeCurationError(w, http.StatusUnprocessableEntity, "overflow", err.Error())
	default:
		writeCurationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireCurationCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerID := resolveCallerID(r)
	if callerID == "" {
		writeCurationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return callerID, true
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCurationCaller(w, r)
	if !ok {
		return
	}

	var req curationhttp.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.curation.Handler.UploadHandler(r.Context(), callerID, req)
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCastDocumentVote(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCurationCaller(w, r)
	if !ok {
		return
	}

	var req curationhttp.DocumentVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.curation.Handler.CastVoteHandler(r.Context(), callerID, req); err != nil {
		writeCurationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinalizeDocumentVote(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCurationCaller(w, r)
	if !ok {
		return
	}

	var req curationhttp.FinalizeDocumentVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.curation.Handler.FinalizeVoteHandler(r.Context(), callerID, req)
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRaiseObjection(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCurationCaller(w, r)
	if !ok {
		return
	}

	uploadID, ok := parseUintPath(r, "upload_id")
	if !ok {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "upload_id must be an unsigned integer")
		return
	}

	var req curationhttp.ObjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if err := s.curation.Handler.RaiseObjectionHandler(r.Context(), callerID, uploadID, req); err != nil {
		writeCurationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinalizeReview(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCurationCaller(w, r)
	if !ok {
		return
	}

	uploadID, ok := parseUintPath(r, "upload_id")
	if !ok {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "upload_id must be an unsigned integer")
		return
	}

	resp, err := s.curation.Handler.FinalizeReviewHandler(r.Context(), callerID, uploadID)
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	uploadID, ok := parseUintPath(r, "upload_id")
	if !ok {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "upload_id must be an unsigned integer")
		return
	}

	resp, err := s.curation.Handler.GetUploadHandler(r.Context(), uploadID)
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	uploadID, ok := parseUintPath(r, "upload_id")
	if !ok {
		writeCurationError(w, http.StatusBadRequest, "invalid_request", "upload_id must be an unsigned integer")
		return
	}

	resp, err := s.curation.Handler.GetReviewHandler(r.Context(), uploadID)
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListApprovedTokens(w http.ResponseWriter, r *http.Request) {
	resp, err := s.curation.Handler.ListApprovedTokensHandler(r.Context())
	if err != nil {
		writeCurationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
