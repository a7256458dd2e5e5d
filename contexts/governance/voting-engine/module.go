package votingengine

import (
	"log/slog"

	httpadapter "curia/contexts/governance/voting-engine/adapters/http"
	"curia/contexts/governance/voting-engine/adapters/memory"
	"curia/contexts/governance/voting-engine/application/commands"
	"curia/contexts/governance/voting-engine/application/queries"
	"curia/contexts/governance/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Engine  commands.EngineUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ballots      ports.BallotRepository
	Voters       ports.VoterRegistry
	Outbox       ports.OutboxWriter
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	WindowBlocks uint64
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	engine := commands.EngineUseCase{
		Ballots:      deps.Ballots,
		Voters:       deps.Voters,
		Outbox:       deps.Outbox,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		WindowBlocks: deps.WindowBlocks,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Queries: queries.BallotQueryUseCase{Ballots: deps.Ballots},
			Logger:  deps.Logger,
		},
		Engine: engine,
	}
}

func NewInMemoryModule(voters ports.VoterRegistry, windowBlocks uint64, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Ballots:      store,
		Voters:       voters,
		Outbox:       store,
		Clock:        store,
		IDGen:        store,
		WindowBlocks: windowBlocks,
		Logger:       logger,
	})
	module.Store = store
	return module
}
