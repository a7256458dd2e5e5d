package tokenledger

import (
	"log/slog"

	httpadapter "curia/contexts/assets/token-ledger/adapters/http"
	"curia/contexts/assets/token-ledger/adapters/memory"
	"curia/contexts/assets/token-ledger/application/commands"
	"curia/contexts/assets/token-ledger/application/queries"
	"curia/contexts/assets/token-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ledger  commands.LedgerUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ledger ports.LedgerRepository
	Outbox ports.OutboxWriter
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ledger := commands.LedgerUseCase{
		Ledger: deps.Ledger,
		Outbox: deps.Outbox,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ledger:  ledger,
			Queries: queries.LedgerQueryUseCase{Ledger: deps.Ledger},
			Logger:  deps.Logger,
		},
		Ledger: ledger,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Ledger: store,
		Outbox: store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
