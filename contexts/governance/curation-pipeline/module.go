package curationpipeline

import (
	"log/slog"

	httpadapter "curia/contexts/governance/curation-pipeline/adapters/http"
	"curia/contexts/governance/curation-pipeline/adapters/memory"
	"curia/contexts/governance/curation-pipeline/application/commands"
	"curia/contexts/governance/curation-pipeline/application/queries"
	"curia/contexts/governance/curation-pipeline/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Pipeline commands.PipelineUseCase
	Store    *memory.Store
}

type Dependencies struct {
	Uploads            ports.UploadRepository
	Ballots            ports.BallotService
	Members            ports.MemberDirectory
	Minter             ports.TokenMinter
	Outbox             ports.OutboxWriter
	Clock              ports.Clock
	IDGen              ports.IDGenerator
	ReviewWindowBlocks uint64
	CreatorShare       uint64
	FinalizerShare     uint64
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	pipeline := commands.PipelineUseCase{
		Uploads:            deps.Uploads,
		Ballots:            deps.Ballots,
		Members:            deps.Members,
		Minter:             deps.Minter,
		Outbox:             deps.Outbox,
		Clock:              deps.Clock,
		IDGen:              deps.IDGen,
		ReviewWindowBlocks: deps.ReviewWindowBlocks,
		CreatorShare:       deps.CreatorShare,
		FinalizerShare:     deps.FinalizerShare,
		Logger:             deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Pipeline: pipeline,
			Queries:  queries.UploadQueryUseCase{Uploads: deps.Uploads},
			Logger:   deps.Logger,
		},
		Pipeline: pipeline,
	}
}

func NewInMemoryModule(
	ballots ports.BallotService,
	members ports.MemberDirectory,
	minter ports.TokenMinter,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Uploads: store,
		Ballots: ballots,
		Members: members,
		Minter:  minter,
		Outbox:  store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
