package calcsys

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bincalc.org/bincalc/calcsys/internal/dbutil"
)

func OpenDB(p string) (*sqlx.DB, error) {
	return dbutil.Open(p)
}

// SetupDB creates any tables which do not exist yet.
func SetupDB(ctx context.Context, db *sqlx.DB) error {
	return dbutil.DoTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range currentSchema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

var currentSchema = []string{
	`CREATE TABLE IF NOT EXISTS calculations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		cid BLOB NOT NULL UNIQUE,
		op TEXT NOT NULL,
		lhs TEXT NOT NULL,
		rhs TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}
