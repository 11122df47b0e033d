// Package builder implements the shadow-schema derivation engine: from the
// registry's pending entity types it derives shadow tables (with inheritance
// merge), the shared transaction entity, shadow entity types and their
// re-derived relationships, in a fixed, reentry-guarded sequence.
package builder

import (
	"log"
	"sort"

	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// Hooks are the post-build notifications fired during a configuration pass.
// Each fires exactly once per entity or pass as applicable. A hook that
// re-enters Configure synchronously is silently collapsed and must not
// expect to make forward progress.
type Hooks struct {
	AfterShadowEntityBuilt      func(original, shadow *domain.EntityType)
	AfterModelsBuilt            func()
	AfterTransactionEntityBuilt func(tx *domain.EntityType)
}

// Builder orchestrates the derivation steps over one registry.
type Builder struct {
	registry *registry.Registry
	mirror   AttributeMirror
	hooks    Hooks
	guard    passGuard
}

// Option customizes a Builder.
type Option func(*Builder)

// WithHooks installs post-build notification callbacks.
func WithHooks(hooks Hooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithMirror replaces the attribute mirroring collaborator.
func WithMirror(mirror AttributeMirror) Option {
	return func(b *Builder) {
		if mirror != nil {
			b.mirror = mirror
		}
	}
}

// New creates a builder over the given registry.
func New(reg *registry.Registry, opts ...Option) *Builder {
	b := &Builder{
		registry: reg,
		mirror:   DefaultMirror{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Configure runs one derivation pass over the registry's pending entity
// types. The hosting model layer calls it whenever mapping configuration
// changes; a nested call arriving while a pass is already running returns
// immediately with no effect. On a step failure the pass's registry
// mutations are rolled back and the error surfaces to the caller.
func (b *Builder) Configure() error {
	token, ok := b.guard.acquire()
	if !ok {
		// Reentrancy collapse: the outer pass will observe any state
		// this nested trigger would have acted on.
		return nil
	}
	defer b.guard.release(token)

	if !b.registry.VersioningEnabled() {
		return nil
	}

	journal := newPassJournal(b.registry)

	if err := b.buildTables(journal); err != nil {
		journal.rollback()
		return err
	}
	if err := b.buildTransactionType(); err != nil {
		journal.rollback()
		return err
	}

	if !b.registry.CreateModelsEnabled() {
		b.registry.ClearPending()
		return nil
	}

	b.buildModels(journal)

	// Snapshot the pending set before clearing it, so a nested
	// configuration event triggered by model construction cannot
	// reprocess the same entities. Relationships are derived over the
	// snapshot only after every shadow entity of this pass exists.
	working := b.registry.DrainPending()
	b.buildRelationships(working)
	b.enableActiveHistory(working)
	b.createColumnAliases(working)
	b.mirrorDerivedAttributes(working)

	return nil
}

// buildTables derives shadow tables for every pending entity with versioning
// and table creation enabled. When an already-processed type is a supertype
// sharing the same physical table, the derivation merges into that type's
// shadow table and the result is re-stored under the supertype key, so a
// joined-table hierarchy keeps exactly one shadow table.
func (b *Builder) buildTables(journal *passJournal) error {
	for _, entity := range ancestorsFirst(b.registry.Pending()) {
		if !b.registry.Versioning(entity) || !b.registry.CreateTables(entity) {
			continue
		}
		if entity.Table == nil {
			// Pure mixin with no backing table of its own.
			continue
		}

		var mergeKey *domain.EntityType
		var mergeBase *domain.TableDefinition
		candidates := append([]*domain.EntityType{entity}, entity.Ancestors()...)
		for _, candidate := range candidates {
			if table, ok := b.registry.Table(candidate); ok && entity.SharesTableWith(candidate) {
				mergeKey = candidate
				mergeBase = table
				break
			}
		}

		tableBuilder := NewTableBuilder(entity)
		if mergeBase != nil {
			merged, err := tableBuilder.Build(mergeBase)
			if err != nil {
				return err
			}
			journal.recordTable(mergeKey)
			b.registry.SetTable(mergeKey, merged)
			continue
		}

		table, err := tableBuilder.Build(nil)
		if err != nil {
			return err
		}
		journal.recordTable(entity)
		b.registry.SetTable(entity, table)
		log.Printf("[BUILDER] derived shadow table %s for entity type %s", table.QualifiedName(), entity.Name)
	}
	return nil
}

// ancestorsFirst orders entities by inheritance depth, shallowest first,
// keeping registration order within a depth. Processing ancestors before
// their subclasses makes table derivation independent of the order in which
// a hierarchy's members were registered: the subclass always finds its
// ancestor's shadow table to merge into.
func ancestorsFirst(entities []*domain.EntityType) []*domain.EntityType {
	ordered := make([]*domain.EntityType, len(entities))
	copy(ordered, entities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Ancestors()) < len(ordered[j].Ancestors())
	})
	return ordered
}

// ClosestTable resolves the most specific shadow table for an entity type:
// an exact table-map hit wins, otherwise the ancestor chain is walked most
// specific first. A nil result means the entity has no versioned table of
// its own (a pure mixin) and its model build is skipped.
func (b *Builder) ClosestTable(entity *domain.EntityType) *domain.TableDefinition {
	if table, ok := b.registry.Table(entity); ok {
		return table
	}
	for _, ancestor := range entity.Ancestors() {
		if table, ok := b.registry.Table(ancestor); ok {
			return table
		}
	}
	return nil
}

func (b *Builder) buildTransactionType() error {
	tx, created, err := NewTransactionBuilder(b.registry).Build()
	if err != nil {
		return err
	}
	if created {
		log.Printf("[BUILDER] built transaction entity over table %s", tx.Table.QualifiedName())
		if b.hooks.AfterTransactionEntityBuilt != nil {
			b.hooks.AfterTransactionEntityBuilt(tx)
		}
	}
	return nil
}

// buildModels constructs shadow entity types for every pending entity with a
// resolvable shadow table. The per-entity hook fires after the type is fully
// constructed and registered, before any relationship derivation.
func (b *Builder) buildModels(journal *passJournal) {
	if !b.registry.HasPending() {
		return
	}
	for _, entity := range ancestorsFirst(b.registry.Pending()) {
		if !b.registry.Versioning(entity) || !b.registry.CreateModels(entity) {
			continue
		}
		table := b.ClosestTable(entity)
		if table == nil {
			continue
		}
		shadow := NewModelBuilder(b.registry, entity).Build(table, b.registry.TransactionType())
		journal.recordShadow(entity)
		if b.hooks.AfterShadowEntityBuilt != nil {
			b.hooks.AfterShadowEntityBuilt(entity, shadow)
		}
	}
	if b.hooks.AfterModelsBuilt != nil {
		b.hooks.AfterModelsBuilt()
	}
}

func (b *Builder) buildRelationships(working []*domain.EntityType) {
	relationshipBuilder := NewRelationshipBuilder(b.registry)
	for _, entity := range working {
		if !b.registry.Versioning(entity) {
			continue
		}
		shadow, ok := b.registry.Shadow(entity)
		if !ok {
			continue
		}
		relationshipBuilder.Build(entity, shadow)
	}
}

// enableActiveHistory flags every versioned attribute of the originals so
// writes load the pre-change value the snapshot rows need.
func (b *Builder) enableActiveHistory(working []*domain.EntityType) {
	for _, entity := range working {
		if _, ok := b.registry.Shadow(entity); !ok {
			continue
		}
		for i := range entity.Properties {
			entity.Properties[i].ActiveHistory = true
		}
	}
}

// createColumnAliases mirrors renamed column keys from the originals onto
// their shadow entities.
func (b *Builder) createColumnAliases(working []*domain.EntityType) {
	for _, entity := range working {
		shadow, ok := b.registry.Shadow(entity)
		if !ok {
			continue
		}
		for alias, column := range b.mirror.ColumnAliases(entity) {
			if !shadow.Table.HasColumn(column) {
				continue
			}
			if _, exists := shadow.Property(alias); exists {
				continue
			}
			shadow.Properties = append(shadow.Properties, domain.Property{
				Name:   alias,
				Column: column,
				Kind:   domain.PropertyKindAlias,
			})
		}
	}
}

// mirrorDerivedAttributes copies proxy-like and computed attributes from the
// originals onto their shadow entities.
func (b *Builder) mirrorDerivedAttributes(working []*domain.EntityType) {
	for _, entity := range working {
		shadow, ok := b.registry.Shadow(entity)
		if !ok {
			continue
		}
		for _, name := range b.mirror.ProxyAttributes(entity) {
			if _, exists := shadow.Property(name); exists {
				continue
			}
			shadow.Properties = append(shadow.Properties, domain.Property{
				Name: name,
				Kind: domain.PropertyKindProxy,
			})
		}
		for _, name := range b.mirror.ComputedAttributes(entity) {
			if _, exists := shadow.Property(name); exists {
				continue
			}
			shadow.Properties = append(shadow.Properties, domain.Property{
				Name: name,
				Kind: domain.PropertyKindComputed,
			})
		}
	}
}
