// Package model loads declarative entity-model documents and turns them into
// domain entity types ready for registration. The document plays the role of
// the hosting data-model layer: entity types appear in declaration order,
// exactly as a mapping runtime would discover them.
package model

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rpattn/shadowschema/internal/domain"
)

// RelationshipSpec declares a relationship property of an entity.
type RelationshipSpec struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"`
	Target  string `mapstructure:"target"`
	OrderBy string `mapstructure:"order_by"`
}

// EntitySpec declares one entity type of the model document.
type EntitySpec struct {
	Name          string                  `mapstructure:"name"`
	Parent        string                  `mapstructure:"parent"`
	Table         *domain.TableDefinition `mapstructure:"table"`
	Relationships []RelationshipSpec      `mapstructure:"relationships"`
	Proxies       []string                `mapstructure:"proxies"`
	Computed      []string                `mapstructure:"computed"`
	Options       *domain.TypeOptions     `mapstructure:"options"`
}

// Document is the root of an entity-model file.
type Document struct {
	Entities []EntitySpec `mapstructure:"entities"`
}

// Load reads and builds an entity model from a yaml document.
func Load(path string) ([]*domain.EntityType, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}

	entities, err := Build(doc)
	if err != nil {
		return nil, err
	}
	if err := Validate(entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// Build resolves a document into linked entity types, preserving declaration
// order. Parent and relationship target references resolve by name; a
// subclass declaring no table of its own, or re-declaring its parent's table
// name, shares the parent's physical table (the joined/single-table
// inheritance signal the table deriver looks for).
func Build(doc Document) ([]*domain.EntityType, error) {
	entities := make([]*domain.EntityType, 0, len(doc.Entities))
	byName := make(map[string]*domain.EntityType, len(doc.Entities))

	for _, spec := range doc.Entities {
		if spec.Name == "" {
			return nil, fmt.Errorf("entity declaration missing a name")
		}
		if _, dup := byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate entity type %q", spec.Name)
		}
		entity := &domain.EntityType{
			Name:    spec.Name,
			Table:   spec.Table,
			Options: spec.Options,
		}
		entities = append(entities, entity)
		byName[spec.Name] = entity
	}

	for i, spec := range doc.Entities {
		entity := entities[i]

		if spec.Parent != "" {
			parent, ok := byName[spec.Parent]
			if !ok {
				return nil, fmt.Errorf("entity type %q: unknown parent %q", spec.Name, spec.Parent)
			}
			entity.Parent = parent
			switch {
			case entity.Table == nil:
				entity.Table = parent.Table
			case parent.Table != nil && entity.Table.QualifiedName() == parent.Table.QualifiedName():
				entity.Table = parent.Table
			}
		}
		if entity.Table == nil {
			return nil, fmt.Errorf("entity type %q declares no backing table", spec.Name)
		}

		for _, col := range entity.Table.Columns {
			entity.Properties = append(entity.Properties, domain.Property{
				Name:   col.PropertyKey(),
				Column: col.Name,
				Kind:   domain.PropertyKindColumn,
			})
		}
		for _, name := range spec.Proxies {
			entity.Properties = append(entity.Properties, domain.Property{
				Name: name,
				Kind: domain.PropertyKindProxy,
			})
		}
		for _, name := range spec.Computed {
			entity.Properties = append(entity.Properties, domain.Property{
				Name: name,
				Kind: domain.PropertyKindComputed,
			})
		}

		for _, relSpec := range spec.Relationships {
			kind, err := parseKind(relSpec.Kind)
			if err != nil {
				return nil, fmt.Errorf("entity type %q, relationship %q: %w", spec.Name, relSpec.Name, err)
			}
			target, ok := byName[relSpec.Target]
			if !ok {
				return nil, fmt.Errorf("entity type %q, relationship %q: unknown target %q", spec.Name, relSpec.Name, relSpec.Target)
			}
			entity.Relationships = append(entity.Relationships, domain.Relationship{
				Name:    relSpec.Name,
				Kind:    kind,
				Target:  target,
				OrderBy: relSpec.OrderBy,
			})
		}
	}

	return entities, nil
}

func parseKind(kind string) (domain.RelationshipKind, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(kind, "-", "_"))
	switch domain.RelationshipKind(normalized) {
	case domain.OneToMany:
		return domain.OneToMany, nil
	case domain.ManyToOne:
		return domain.ManyToOne, nil
	case domain.ManyToMany:
		return domain.ManyToMany, nil
	}
	return "", fmt.Errorf("unknown relationship kind %q", kind)
}
