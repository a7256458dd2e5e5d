package membershipservice

import (
	"log/slog"

	httpadapter "curia/contexts/governance/membership-service/adapters/http"
	"curia/contexts/governance/membership-service/adapters/memory"
	"curia/contexts/governance/membership-service/application/commands"
	"curia/contexts/governance/membership-service/application/queries"
	"curia/contexts/governance/membership-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Membership commands.MembershipUseCase
	Store      *memory.Store
}

type Dependencies struct {
	Members            ports.MemberRepository
	Outbox             ports.OutboxWriter
	Clock              ports.Clock
	IDGen              ports.IDGenerator
	AdminAccountID     string
	PromotionThreshold uint64
	Logger             *slog.Logger
}

func NewModule(deps Dependencies) Module {
	membershipUseCase := commands.MembershipUseCase{
		Members:            deps.Members,
		Outbox:             deps.Outbox,
		Clock:              deps.Clock,
		IDGen:              deps.IDGen,
		AdminAccountID:     deps.AdminAccountID,
		PromotionThreshold: deps.PromotionThreshold,
		Logger:             deps.Logger,
	}
	queryUseCase := queries.MemberQueryUseCase{
		Members: deps.Members,
	}
	return Module{
		Handler: httpadapter.Handler{
			Membership: membershipUseCase,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
		Membership: membershipUseCase,
	}
}

func NewInMemoryModule(adminAccountID string, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Members:        store,
		Outbox:         store,
		Clock:          store,
		IDGen:          store,
		AdminAccountID: adminAccountID,
		Logger:         logger,
	})
	module.Store = store
	return module
}
