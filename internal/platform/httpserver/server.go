package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	tokenledger "curia/contexts/assets/token-ledger"
	curationpipeline "curia/contexts/governance/curation-pipeline"
	membershipservice "curia/contexts/governance/membership-service"
	rolepromotion "curia/contexts/governance/role-promotion"
	votingengine "curia/contexts/governance/voting-engine"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "curia/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	membership membershipservice.Module
	voting     votingengine.Module
	curation   curationpipeline.Module
	roles      rolepromotion.Module
	ledger     tokenledger.Module
}

func New(
	membership membershipservice.Module,
	voting votingengine.Module,
	curation curationpipeline.Module,
	roles rolepromotion.Module,
	ledger tokenledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		membership: membership,
		voting:     voting,
		curation:   curation,
		roles:      roles,
		ledger:     ledger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /dao/v1/members/join", s.handleJoin)
	s.mux.HandleFunc("POST /dao/v1/members", s.handleSetMembership)
	s.mux.HandleFunc("GET /dao/v1/members/{account_id}", s.handleGetMember)

	s.mux.HandleFunc("GET /dao/v1/ballots/{ballot_type}/{ballot_id}", s.handleGetBallot)

	s.mux.HandleFunc("POST /dao/v1/uploads", s.handleUpload)
	s.mux.HandleFunc("POST /dao/v1/uploads/votes", s.handleCastDocumentVote)
	s.mux.HandleFunc("POST /dao/v1/uploads/votes/finalize", s.handleFinalizeDocumentVote)
	s.mux.HandleFunc("GET /dao/v1/uploads/{upload_id}", s.handleGetUpload)
	s.mux.HandleFunc("GET /dao/v1/uploads/{upload_id}/review", s.handleGetReview)
	s.mux.HandleFunc("POST /dao/v1/uploads/{upload_id}/objections", s.handleRaiseObjection)
	s.mux.HandleFunc("POST /dao/v1/uploads/{upload_id}/review/finalize", s.handleFinalizeReview)
	s.mux.HandleFunc("GET /dao/v1/tokens/approved", s.handleListApprovedTokens)

	s.mux.HandleFunc("POST /dao/v1/roles/applications", s.handleApplyForRole)
	s.mux.HandleFunc("POST /dao/v1/roles/votes", s.handleCastRoleVote)
	s.mux.HandleFunc("POST /dao/v1/roles/votes/finalize", s.handleFinalizeRoleVote)
	s.mux.HandleFunc("GET /dao/v1/roles/applications/{application_id}", s.handleGetApplication)

	s.mux.HandleFunc("POST /tokens/v1/mint", s.handleMint)
	s.mux.HandleFunc("POST /tokens/v1/mint-batch", s.handleMintBatch)
	s.mux.HandleFunc("POST /tokens/v1/transfer", s.handleTransfer)
	s.mux.HandleFunc("POST /tokens/v1/approvals", s.handleSetApproval)
	s.mux.HandleFunc("GET /tokens/v1/{token_id}", s.handleGetToken)
	s.mux.HandleFunc("GET /tokens/v1/{token_id}/balances/{account_id}", s.handleGetBalance)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveCallerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func parseUintPath(r *http.Request, name string) (uint64, bool) {
	value, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
