// Package database opens the node registry database and inspects its schema.
//
// Connect wraps GORM for MySQL and SQLite, applying timeouts, pool limits and
// an initial ping. GetTableColumns and MissingColumns let the registry check
// that a pre-existing table still carries the columns it needs before serving.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "cluster_nodes", []string{"id", "url"})
package database
