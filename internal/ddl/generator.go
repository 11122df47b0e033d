// Package ddl renders and installs the physical schema for derived shadow
// tables and the transaction table.
package ddl

import (
	"fmt"
	"strings"

	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// Generator renders Postgres DDL for table definitions. It is pure: no
// connection required, so rendering is unit-testable and the output can be
// reviewed before installation.
type Generator struct{}

// pgType maps a logical column type to its Postgres type name.
func pgType(t domain.ColumnType) string {
	switch t {
	case domain.ColumnTypeText:
		return "TEXT"
	case domain.ColumnTypeInteger:
		return "INTEGER"
	case domain.ColumnTypeBigInt:
		return "BIGINT"
	case domain.ColumnTypeSmallInt:
		return "SMALLINT"
	case domain.ColumnTypeFloat:
		return "DOUBLE PRECISION"
	case domain.ColumnTypeBoolean:
		return "BOOLEAN"
	case domain.ColumnTypeTimestamp:
		return "TIMESTAMPTZ"
	case domain.ColumnTypeJSON:
		return "JSONB"
	case domain.ColumnTypeUUID:
		return "UUID"
	}
	return "TEXT"
}

// CreateTable renders a CREATE TABLE IF NOT EXISTS statement for the given
// table definition, including its composite primary key.
func (Generator) CreateTable(table *domain.TableDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table.QualifiedName())

	for _, col := range table.Columns {
		fmt.Fprintf(&b, "    %s %s", col.Name, pgType(col.Type))
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
		b.WriteString(",\n")
	}

	keys := make([]string, 0, 2)
	for _, col := range table.PrimaryKey() {
		keys = append(keys, col.Name)
	}
	fmt.Fprintf(&b, "    PRIMARY KEY (%s)\n", strings.Join(keys, ", "))
	b.WriteString(");")
	return b.String()
}

// Statements renders the full DDL for a derived registry: the transaction
// table first (shadow rows reference it), then every shadow table in
// derivation order.
func (g Generator) Statements(reg *registry.Registry) []string {
	var statements []string
	if tx := reg.TransactionType(); tx != nil && tx.Table != nil {
		statements = append(statements, g.CreateTable(tx.Table))
	}
	for _, entry := range reg.TableEntries() {
		statements = append(statements, g.CreateTable(entry.Table))
	}
	return statements
}
