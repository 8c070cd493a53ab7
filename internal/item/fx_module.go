package item

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/calltrace/pkg/calltrace"
	"github.com/Aleph-Alpha/calltrace/pkg/postgres"
)

// Component names the interceptor matches its name fragments against.
const (
	RepositoryName = "itemRepository"
	ServiceName    = "itemService"
	ControllerName = "itemController"
)

// FXModule provides the item Service, the controller and the HTTP handler,
// and puts the traced decorators in front of the repository, the service and
// the controller.
//
// Dependencies required by this module:
//   - a Repository, a TransactionManager and a DataSource (MemoryStorageModule
//     or PostgresStorageModule)
//   - calltrace.FXModule
//   - optionally a Logger for the service
var FXModule = fx.Module("item",
	fx.Provide(
		fx.Annotate(newService, fx.As(new(Service))),
		fx.Annotate(NewItemController, fx.As(new(ItemControllerAPI))),
		NewHandler,
	),
	calltrace.ProvideDecorator(NewTracedRepository),
	calltrace.ProvideDecorator(NewTracedService),
	calltrace.ProvideDecorator(NewTracedItemControllerAPI),
	calltrace.Decorate[Repository](RepositoryName),
	calltrace.Decorate[Service](ServiceName),
	calltrace.Decorate[ItemControllerAPI](ControllerName),
	fx.Invoke(RegisterRoutes),
)

type serviceParams struct {
	fx.In

	Repository   Repository
	Transactions TransactionManager
	Logger       Logger `optional:"true"`
}

func newService(p serviceParams) *ItemService {
	return NewItemService(p.Repository, p.Transactions).WithLogger(p.Logger)
}

// MemoryStorageModule keeps items in memory.
var MemoryStorageModule = fx.Module("item-memory",
	fx.Provide(
		NewMemoryRepository,
		func(r *MemoryRepository) Repository { return r },
		func(r *MemoryRepository) DataSource { return r },
		func() TransactionManager { return NoopTransactionManager{} },
	),
)

// PostgresStorageModule keeps items in PostgreSQL and migrates the item table
// on startup. It requires a postgres.Config and a postgres.Logger.
var PostgresStorageModule = fx.Module("item-postgres",
	postgres.FXModule,
	fx.Provide(
		fx.Annotate(NewPostgresRepository, fx.As(new(Repository))),
		func(db *postgres.Postgres) Database { return db },
		func(db *postgres.Postgres) TransactionManager { return db },
		func(db *postgres.Postgres) DataSource { return db },
	),
	fx.Invoke(MigrateItems),
)

// MigrateItems creates or updates the item table.
func MigrateItems(db *postgres.Postgres) error {
	return db.Migrate(&Item{})
}

// RegisterRoutes mounts the item routes on the application router.
func RegisterRoutes(router *gin.Engine, handler *Handler) {
	handler.RegisterRoutes(router)
}
