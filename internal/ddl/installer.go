package ddl

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/shadowschema/internal/registry"
	"github.com/rpattn/shadowschema/internal/repository"
)

// Installer executes generated DDL against Postgres and records every
// applied statement in the shadow schema ledger.
type Installer struct {
	pool      *pgxpool.Pool
	ledger    repository.LedgerRepository
	generator Generator
}

// NewInstaller creates an installer over the given connection pool.
func NewInstaller(pool *pgxpool.Pool) *Installer {
	return &Installer{
		pool:   pool,
		ledger: repository.NewLedgerRepository(pool),
	}
}

// Install applies the registry's derived schema. Statements use IF NOT
// EXISTS so re-running against an already-installed schema is harmless.
func (i *Installer) Install(ctx context.Context, reg *registry.Registry) error {
	statements := i.generator.Statements(reg)
	for _, stmt := range statements {
		if _, err := i.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply shadow DDL: %w", err)
		}
		if _, err := i.ledger.Record(ctx, stmt); err != nil {
			return err
		}
	}
	log.Printf("[DDL] installed %d shadow schema statements", len(statements))
	return nil
}
