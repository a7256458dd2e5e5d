package rolepromotion

import (
	"log/slog"

	httpadapter "curia/contexts/governance/role-promotion/adapters/http"
	"curia/contexts/governance/role-promotion/adapters/memory"
	"curia/contexts/governance/role-promotion/application/commands"
	"curia/contexts/governance/role-promotion/application/queries"
	"curia/contexts/governance/role-promotion/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Promotion commands.PromotionUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Applications ports.ApplicationRepository
	Ballots      ports.BallotService
	Members      ports.MemberDirectory
	Promoter     ports.Promoter
	Outbox       ports.OutboxWriter
	IDGen        ports.IDGenerator
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	promotion := commands.PromotionUseCase{
		Applications: deps.Applications,
		Ballots:      deps.Ballots,
		Members:      deps.Members,
		Promoter:     deps.Promoter,
		Outbox:       deps.Outbox,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Promotion: promotion,
			Queries:   queries.ApplicationQueryUseCase{Applications: deps.Applications},
			Logger:    deps.Logger,
		},
		Promotion: promotion,
	}
}

func NewInMemoryModule(
	ballots ports.BallotService,
	members ports.MemberDirectory,
	promoter ports.Promoter,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Applications: store,
		Ballots:      ballots,
		Members:      members,
		Promoter:     promoter,
		Outbox:       store,
		IDGen:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
