package httpserver

import (
	"errors"
	"net/http"
	"strings"

	votingerrors "curia/contexts/governance/voting-engine/domain/errors"
	votinghttp "curia/contexts/governance/voting-engine/transport/http"
)

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrVoteNotFound):
		writeVotingError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrUnknownBallotType):
		writeVotingError(w, http.StatusBadRequest, "unknown_ballot_type", err.Error())
	case errors.Is(err, votingerrors.ErrVoteNotInProgress):
		writeVotingError(w, http.StatusConflict, "vote_not_in_progress", err.Error())
	case errors.Is(err, votingerrors.ErrVotingWindowNotValid):
		writeVotingError(w, http.StatusUnprocessableEntity, "voting_window_not_valid", err.Error())
	case errors.Is(err, votingerrors.ErrVoteStillInProgress):
		writeVotingError(w, http.StatusConflict, "vote_still_in_progress", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrOverflow):
		writeVotingError(w, http.StatusUnprocessableEntity, "overflow", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGetBallot(w http.ResponseWriter, r *http.Request) {
	ballotType := strings.TrimSpace(r.PathValue("ballot_type"))
	if ballotType == "" {
		writeVotingError(w, http.StatusBadRequest, "invalid_request", "ballot_type is required")
		return
	}
	ballotID, ok := parseUintPath(r, "ballot_id")
	if !ok {
		writeVotingError(w, http.StatusBadRequest, "invalid_request", "ballot_id must be an unsigned integer")
		return
	}

	resp, err := s.voting.Handler.GetBallotHandler(r.Context(), ballotType, ballotID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
