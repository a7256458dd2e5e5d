package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tokenledger "curia/contexts/assets/token-ledger"
	ledgerpostgres "curia/contexts/assets/token-ledger/adapters/postgres"
	ledgerworkers "curia/contexts/assets/token-ledger/application/workers"
	curationpipeline "curia/contexts/governance/curation-pipeline"
	curationpostgres "curia/contexts/governance/curation-pipeline/adapters/postgres"
	curationworkers "curia/contexts/governance/curation-pipeline/application/workers"
	membershipservice "curia/contexts/governance/membership-service"
	membershippostgres "curia/contexts/governance/membership-service/adapters/postgres"
	membershipqueries "curia/contexts/governance/membership-service/application/queries"
	membershipworkers "curia/contexts/governance/membership-service/application/workers"
	rolepromotion "curia/contexts/governance/role-promotion"
	rolespostgres "curia/contexts/governance/role-promotion/adapters/postgres"
	rolesworkers "curia/contexts/governance/role-promotion/application/workers"
	votingengine "curia/contexts/governance/voting-engine"
	votingpostgres "curia/contexts/governance/voting-engine/adapters/postgres"
	votingworkers "curia/contexts/governance/voting-engine/application/workers"
	"curia/internal/platform/chainclock"
	"curia/internal/platform/config"
	"curia/internal/platform/db"
	"curia/internal/platform/httpserver"
	"curia/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// Modules bundles the five service modules after wiring.
type Modules struct {
	Membership membershipservice.Module
	Voting     votingengine.Module
	Curation   curationpipeline.Module
	Roles      rolepromotion.Module
	Ledger     tokenledger.Module
}

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres        *db.Postgres
	membershipRelay membershipworkers.OutboxRelay
	votingRelay     votingworkers.OutboxRelay
	curationRelay   curationworkers.OutboxRelay
	rolesRelay      rolesworkers.OutboxRelay
	ledgerRelay     ledgerworkers.OutboxRelay
	pollInterval    time.Duration
	logger          *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	modules := buildPostgresModules(cfg, pg, logger)
	server := httpserver.New(
		modules.Membership,
		modules.Voting,
		modules.Curation,
		modules.Roles,
		modules.Ledger,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	membershipRepo := membershippostgres.NewRepository(pg.DB, logger)
	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	curationRepo := curationpostgres.NewRepository(pg.DB, logger)
	rolesRepo := rolespostgres.NewRepository(pg.DB, logger)
	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		membershipRelay: membershipworkers.OutboxRelay{
			Outbox:    membershipRepo,
			Publisher: kafka,
			BatchSize: 100,
			Logger:    logger,
		},
		votingRelay: votingworkers.OutboxRelay{
			Outbox:    votingRepo,
			Publisher: kafka,
			BatchSize: 100,
			Logger:    logger,
		},
		curationRelay: curationworkers.OutboxRelay{
			Outbox:    curationRepo,
			Publisher: kafka,
			BatchSize: 100,
			Logger:    logger,
		},
		rolesRelay: rolesworkers.OutboxRelay{
			Outbox:    rolesRepo,
			Publisher: kafka,
			BatchSize: 100,
			Logger:    logger,
		},
		ledgerRelay: ledgerworkers.OutboxRelay{
			Outbox:    ledgerRepo,
			Publisher: kafka,
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func buildPostgresModules(cfg config.Config, pg *db.Postgres, logger *slog.Logger) Modules {
	clock := chainclock.New(cfg.GenesisUnix, cfg.BlockIntervalMS)

	membershipRepo := membershippostgres.NewRepository(pg.DB, logger)
	membershipModule := membershipservice.NewModule(membershipservice.Dependencies{
		Members:            membershipRepo,
		Outbox:             membershipRepo,
		Clock:              clock,
		IDGen:              membershippostgres.UUIDGenerator{},
		AdminAccountID:     cfg.AdminAccountID,
		PromotionThreshold: cfg.PromotionThreshold,
		Logger:             logger,
	})

	votingRepo := votingpostgres.NewRepository(pg.DB, logger)
	votingModule := votingengine.NewModule(votingengine.Dependencies{
		Ballots:      votingRepo,
		Voters:       membershipModule.Membership,
		Outbox:       votingRepo,
		Clock:        clock,
		IDGen:        votingpostgres.UUIDGenerator{},
		WindowBlocks: cfg.VotingWindowBlocks,
		Logger:       logger,
	})

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := tokenledger.NewModule(tokenledger.Dependencies{
		Ledger: ledgerRepo,
		Outbox: ledgerRepo,
		IDGen:  ledgerpostgres.UUIDGenerator{},
		Logger: logger,
	})

	memberQueries := membershipqueries.MemberQueryUseCase{Members: membershipRepo}

	curationRepo := curationpostgres.NewRepository(pg.DB, logger)
	curationModule := curationpipeline.NewModule(curationpipeline.Dependencies{
		Uploads:            curationRepo,
		Ballots:            curationBallots{engine: votingModule.Engine},
		Members:            curationMembers{queries: memberQueries},
		Minter:             rewardMinter{ledger: ledgerModule.Ledger},
		Outbox:             curationRepo,
		Clock:              clock,
		IDGen:              curationpostgres.UUIDGenerator{},
		ReviewWindowBlocks: cfg.ReviewWindowBlocks,
		CreatorShare:       cfg.CreatorShare,
		FinalizerShare:     cfg.FinalizerShare,
		Logger:             logger,
	})

	rolesRepo := rolespostgres.NewRepository(pg.DB, logger)
	rolesModule := rolepromotion.NewModule(rolepromotion.Dependencies{
		Applications: rolesRepo,
		Ballots:      rolesBallots{engine: votingModule.Engine},
		Members:      rolesMembers{queries: memberQueries},
		Promoter:     memberPromoter{membership: membershipModule.Membership},
		Outbox:       rolesRepo,
		IDGen:        rolespostgres.UUIDGenerator{},
		Logger:       logger,
	})

	return Modules{
		Membership: membershipModule,
		Voting:     votingModule,
		Curation:   curationModule,
		Roles:      rolesModule,
		Ledger:     ledgerModule,
	}
}

// BuildInMemoryModules wires the full DAO against in-memory stores. Local
// runs and integration tests use it to exercise the whole pipeline without
// Postgres or Kafka.
func BuildInMemoryModules(cfg config.Config, logger *slog.Logger) Modules {
	membershipModule := membershipservice.NewInMemoryModule(cfg.AdminAccountID, logger)
	votingModule := votingengine.NewInMemoryModule(membershipModule.Membership, cfg.VotingWindowBlocks, logger)
	ledgerModule := tokenledger.NewInMemoryModule(logger)

	memberQueries := membershipqueries.MemberQueryUseCase{Members: membershipModule.Store}
	curationModule := curationpipeline.NewInMemoryModule(
		curationBallots{engine: votingModule.Engine},
		curationMembers{queries: memberQueries},
		rewardMinter{ledger: ledgerModule.Ledger},
		logger,
	)
	rolesModule := rolepromotion.NewInMemoryModule(
		rolesBallots{engine: votingModule.Engine},
		rolesMembers{queries: memberQueries},
		memberPromoter{membership: membershipModule.Membership},
		logger,
	)

	return Modules{
		Membership: membershipModule,
		Voting:     votingModule,
		Curation:   curationModule,
		Roles:      rolesModule,
		Ledger:     ledgerModule,
	}
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.membershipRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.votingRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.curationRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.rolesRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.ledgerRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
