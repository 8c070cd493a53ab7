// Package postgres wraps a gorm connection to PostgreSQL with connection
// monitoring, reconnection, context-bound transactions and error translation.
//
// Basic Usage:
//
//	db, err := postgres.NewPostgres(postgres.Config{
//		Connection: postgres.Connection{
//			Host: "localhost", Port: "5432", User: "app", Password: "secret", DbName: "items",
//		},
//	}, log)
//
//	err = db.WithinTransaction(ctx, func(ctx context.Context) error {
//		// operations called with this ctx run inside the transaction
//		return db.Create(ctx, &item)
//	})
//
// Errors returned by the CRUD helpers are raw gorm/driver errors; use
// TranslateError to map them to the sentinels of this package.
package postgres
