package domain

// ColumnType represents the logical type of a column in a table definition
type ColumnType string

const (
	ColumnTypeText      ColumnType = "text"
	ColumnTypeInteger   ColumnType = "integer"
	ColumnTypeBigInt    ColumnType = "bigint"
	ColumnTypeSmallInt  ColumnType = "smallint"
	ColumnTypeFloat     ColumnType = "float"
	ColumnTypeBoolean   ColumnType = "boolean"
	ColumnTypeTimestamp ColumnType = "timestamp"
	ColumnTypeJSON      ColumnType = "json"
	ColumnTypeUUID      ColumnType = "uuid"
)

// Reserved column names injected into every shadow table. TransactionColumn
// joins the original primary key to form the composite shadow identity;
// OperationColumn records the change marker for the snapshot row.
const (
	TransactionColumn = "transaction_id"
	OperationColumn   = "operation_type"
)

// VersionTableSuffix is appended to the original table name when deriving
// its shadow counterpart.
const VersionTableSuffix = "_version"

// ColumnDefinition describes a single column of a backing table.
type ColumnDefinition struct {
	Name       string     `json:"name" mapstructure:"name"`
	Type       ColumnType `json:"type" mapstructure:"type"`
	Nullable   bool       `json:"nullable" mapstructure:"nullable"`
	PrimaryKey bool       `json:"primaryKey" mapstructure:"primary_key"`
	// Excluded marks a column that must not be carried into the shadow
	// table (large blobs, denormalized caches).
	Excluded bool `json:"excluded,omitempty" mapstructure:"excluded"`
	// Key is the mapped property name when it differs from the physical
	// column name. Shadow entities receive an alias property for such
	// columns during finalization.
	Key string `json:"key,omitempty" mapstructure:"key"`
}

// PropertyKey returns the mapped attribute name for the column.
func (c ColumnDefinition) PropertyKey() string {
	if c.Key != "" {
		return c.Key
	}
	return c.Name
}

// TableDefinition describes the physical backing table of an entity type.
type TableDefinition struct {
	Name    string             `json:"name" mapstructure:"name"`
	Schema  string             `json:"schema,omitempty" mapstructure:"schema"`
	Columns []ColumnDefinition `json:"columns" mapstructure:"columns"`
}

// PrimaryKey returns the primary key columns in declaration order.
func (t *TableDefinition) PrimaryKey() []ColumnDefinition {
	var key []ColumnDefinition
	for _, col := range t.Columns {
		if col.PrimaryKey {
			key = append(key, col)
		}
	}
	return key
}

// Column returns the column with the given name, if present.
func (t *TableDefinition) Column(name string) (ColumnDefinition, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDefinition{}, false
}

// HasColumn reports whether a column with the given name exists.
func (t *TableDefinition) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// QualifiedName returns the schema-qualified table name.
func (t *TableDefinition) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Clone creates a deep copy of the table definition so derived tables can be
// extended without mutating the source.
func (t *TableDefinition) Clone() *TableDefinition {
	columns := make([]ColumnDefinition, len(t.Columns))
	copy(columns, t.Columns)
	return &TableDefinition{
		Name:    t.Name,
		Schema:  t.Schema,
		Columns: columns,
	}
}
