// Package registry holds the evolving set of entity types awaiting shadow
// derivation together with the maps from original types to their derived
// shadow tables and shadow entity types. One Registry instance exists per
// configuration domain so independent schemas never cross-contaminate.
package registry

import (
	"github.com/rpattn/shadowschema/internal/domain"
)

// Options are the registry-wide versioning defaults. Each entity type may
// override them through its own TypeOptions.
type Options struct {
	Versioning   bool
	CreateTables bool
	CreateModels bool
}

// DefaultOptions enables versioning, table creation and model creation.
func DefaultOptions() Options {
	return Options{
		Versioning:   true,
		CreateTables: true,
		CreateModels: true,
	}
}

// ShadowEntry pairs an original entity type with its derived shadow type.
type ShadowEntry struct {
	Original *domain.EntityType
	Shadow   *domain.EntityType
}

// Registry is the mutable state shared by every derivation component.
type Registry struct {
	opts            Options
	pending         []*domain.EntityType
	order           []*domain.EntityType
	tables          map[*domain.EntityType]*domain.TableDefinition
	shadows         map[*domain.EntityType]*domain.EntityType
	transactionType *domain.EntityType
}

// New creates an empty registry with the given defaults.
func New(opts Options) *Registry {
	return &Registry{
		opts:    opts,
		tables:  make(map[*domain.EntityType]*domain.TableDefinition),
		shadows: make(map[*domain.EntityType]*domain.EntityType),
	}
}

// Register is the entity discovery hook: the hosting model layer calls it
// once per entity type at definition time. Types are appended to the pending
// set unless versioning is globally disabled, the type is already pending,
// or the type already has a shadow entity.
func (r *Registry) Register(entity *domain.EntityType) {
	if entity == nil || !r.opts.Versioning {
		return
	}
	if _, derived := r.shadows[entity]; derived {
		return
	}
	for _, pending := range r.pending {
		if pending == entity {
			return
		}
	}
	r.pending = append(r.pending, entity)
	r.order = append(r.order, entity)
}

// Pending returns a copy of the pending set in registration order.
func (r *Registry) Pending() []*domain.EntityType {
	out := make([]*domain.EntityType, len(r.pending))
	copy(out, r.pending)
	return out
}

// HasPending reports whether any entity types await derivation.
func (r *Registry) HasPending() bool {
	return len(r.pending) > 0
}

// DrainPending snapshots the pending set and clears it. The snapshot is the
// working copy later passes operate on; clearing first means a nested
// configuration event cannot reprocess the same entities.
func (r *Registry) DrainPending() []*domain.EntityType {
	drained := r.pending
	r.pending = nil
	return drained
}

// ClearPending empties the pending set without returning it.
func (r *Registry) ClearPending() {
	r.pending = nil
}

// VersioningEnabled reports the registry-wide versioning switch.
func (r *Registry) VersioningEnabled() bool {
	return r.opts.Versioning
}

// CreateModelsEnabled reports the registry-wide shadow-type creation switch.
func (r *Registry) CreateModelsEnabled() bool {
	return r.opts.CreateModels
}

// Versioning resolves the versioning option for one entity type.
func (r *Registry) Versioning(entity *domain.EntityType) bool {
	if entity.Options != nil && entity.Options.Versioning != nil {
		return *entity.Options.Versioning
	}
	return r.opts.Versioning
}

// CreateTables resolves the table creation option for one entity type.
func (r *Registry) CreateTables(entity *domain.EntityType) bool {
	if entity.Options != nil && entity.Options.CreateTables != nil {
		return *entity.Options.CreateTables
	}
	return r.opts.CreateTables
}

// CreateModels resolves the shadow-type creation option for one entity type.
func (r *Registry) CreateModels(entity *domain.EntityType) bool {
	if entity.Options != nil && entity.Options.CreateModels != nil {
		return *entity.Options.CreateModels
	}
	return r.opts.CreateModels
}

// Table returns the derived shadow table keyed by the given entity type.
func (r *Registry) Table(entity *domain.EntityType) (*domain.TableDefinition, bool) {
	table, ok := r.tables[entity]
	return table, ok
}

// SetTable stores a derived shadow table under the given key. Reassignment
// is only legal for inheritance merges, where the table for an ancestor key
// is extended by a subclass.
func (r *Registry) SetTable(entity *domain.EntityType, table *domain.TableDefinition) {
	r.tables[entity] = table
}

// DeleteTable removes a shadow table entry. Used by the orchestrator's
// rollback journal when a pass fails part-way.
func (r *Registry) DeleteTable(entity *domain.EntityType) {
	delete(r.tables, entity)
}

// Shadow returns the derived shadow entity type for an original type.
func (r *Registry) Shadow(entity *domain.EntityType) (*domain.EntityType, bool) {
	shadow, ok := r.shadows[entity]
	return shadow, ok
}

// SetShadow stores the derived shadow entity type for an original type.
func (r *Registry) SetShadow(entity, shadow *domain.EntityType) {
	r.shadows[entity] = shadow
}

// DeleteShadow removes a shadow entity entry. Used by the orchestrator's
// rollback journal when a pass fails part-way.
func (r *Registry) DeleteShadow(entity *domain.EntityType) {
	delete(r.shadows, entity)
}

// ShadowEntries returns every original/shadow pair in the originals'
// registration order, so callers iterating for output purposes stay
// deterministic.
func (r *Registry) ShadowEntries() []ShadowEntry {
	entries := make([]ShadowEntry, 0, len(r.shadows))
	for _, original := range r.order {
		if shadow, ok := r.shadows[original]; ok {
			entries = append(entries, ShadowEntry{Original: original, Shadow: shadow})
		}
	}
	return entries
}

// TransactionType returns the shared transaction entity type, if built.
func (r *Registry) TransactionType() *domain.EntityType {
	return r.transactionType
}

// SetTransactionType stores the shared transaction entity type. It is set
// at most once per registry lifetime.
func (r *Registry) SetTransactionType(entity *domain.EntityType) {
	if r.transactionType == nil {
		r.transactionType = entity
	}
}

// Reset clears all derivation state, returning the registry to its created
// condition. Intended for tests and schema teardown.
func (r *Registry) Reset() {
	r.pending = nil
	r.order = nil
	r.tables = make(map[*domain.EntityType]*domain.TableDefinition)
	r.shadows = make(map[*domain.EntityType]*domain.EntityType)
	r.transactionType = nil
}

// TableEntry pairs the entity type keying a shadow table with the table.
type TableEntry struct {
	KeyedBy *domain.EntityType
	Table   *domain.TableDefinition
}

// TableEntries returns every derived shadow table in the keys' registration
// order. A joined-table hierarchy contributes a single entry keyed by its
// common ancestor.
func (r *Registry) TableEntries() []TableEntry {
	entries := make([]TableEntry, 0, len(r.tables))
	for _, entity := range r.order {
		if table, ok := r.tables[entity]; ok {
			entries = append(entries, TableEntry{KeyedBy: entity, Table: table})
		}
	}
	return entries
}
