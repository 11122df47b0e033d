// Package export renders the derived shadow schema for humans: a JSON
// snapshot served over the introspection endpoint and an xlsx workbook
// report.
package export

import (
	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// ColumnView describes one column of a derived table.
type ColumnView struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primaryKey"`
}

// TableView describes one derived table.
type TableView struct {
	Name    string       `json:"name"`
	Columns []ColumnView `json:"columns"`
}

// RelationshipView describes one derived relationship.
type RelationshipView struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
}

// PropertyView describes one mapped property of a shadow entity.
type PropertyView struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Column string `json:"column,omitempty"`
}

// EntityView pairs an original entity type with its derived shadow type.
type EntityView struct {
	Original      string             `json:"original"`
	Shadow        string             `json:"shadow"`
	Table         TableView          `json:"table"`
	Properties    []PropertyView     `json:"properties"`
	Relationships []RelationshipView `json:"relationships"`
}

// Snapshot is the full read-only view of a derived registry.
type Snapshot struct {
	Transaction *TableView   `json:"transaction,omitempty"`
	Entities    []EntityView `json:"entities"`
}

// BuildSnapshot renders the registry's derivation state. Iteration follows
// registration order, so repeated snapshots of the same registry are
// identical.
func BuildSnapshot(reg *registry.Registry) Snapshot {
	snapshot := Snapshot{Entities: []EntityView{}}

	if tx := reg.TransactionType(); tx != nil && tx.Table != nil {
		view := tableView(tx.Table)
		snapshot.Transaction = &view
	}

	for _, entry := range reg.ShadowEntries() {
		view := EntityView{
			Original: entry.Original.Name,
			Shadow:   entry.Shadow.Name,
			Table:    tableView(entry.Shadow.Table),
		}
		for _, prop := range entry.Shadow.Properties {
			view.Properties = append(view.Properties, PropertyView{
				Name:   prop.Name,
				Kind:   string(prop.Kind),
				Column: prop.Column,
			})
		}
		for _, rel := range entry.Shadow.Relationships {
			relView := RelationshipView{Name: rel.Name, Kind: string(rel.Kind)}
			if rel.Target != nil {
				relView.Target = rel.Target.Name
			}
			view.Relationships = append(view.Relationships, relView)
		}
		snapshot.Entities = append(snapshot.Entities, view)
	}

	return snapshot
}

func tableView(table *domain.TableDefinition) TableView {
	view := TableView{Name: table.QualifiedName()}
	for _, col := range table.Columns {
		view.Columns = append(view.Columns, ColumnView{
			Name:       col.Name,
			Type:       string(col.Type),
			Nullable:   col.Nullable,
			PrimaryKey: col.PrimaryKey,
		})
	}
	return view
}
