// Package database handles catalog database connections and schema inspection.
//
// It wraps GORM and opens MySQL, PostgreSQL or SQLite depending on
// Config.Driver. SQLite runs on a single connection, which is what the tests
// and single-node deployments use.
//
// # Schema Inspection
//
// GetTableColumns returns the live column list of a table. The integrity
// feature compares it with the columns the catalog models expect.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "channels")
package database
