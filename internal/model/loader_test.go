package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/shadowschema/internal/domain"
)

func articleSpec() EntitySpec {
	return EntitySpec{
		Name: "Article",
		Table: &domain.TableDefinition{
			Name: "article",
			Columns: []domain.ColumnDefinition{
				{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true},
				{Name: "title", Type: domain.ColumnTypeText},
			},
		},
	}
}

func TestBuildResolvesParentAndSharesTable(t *testing.T) {
	doc := Document{Entities: []EntitySpec{
		articleSpec(),
		{Name: "BlogArticle", Parent: "Article"},
	}}

	entities, err := Build(doc)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	article, blog := entities[0], entities[1]
	assert.Same(t, article, blog.Parent)
	assert.Same(t, article.Table, blog.Table, "a subclass without its own table shares the parent's")
}

func TestBuildSharesTableByName(t *testing.T) {
	blog := EntitySpec{
		Name:   "BlogArticle",
		Parent: "Article",
		Table:  &domain.TableDefinition{Name: "article"},
	}
	doc := Document{Entities: []EntitySpec{articleSpec(), blog}}

	entities, err := Build(doc)
	require.NoError(t, err)
	assert.Same(t, entities[0].Table, entities[1].Table,
		"re-declaring the parent's table name shares the physical table")
}

func TestBuildSynthesizesProperties(t *testing.T) {
	spec := articleSpec()
	spec.Table.Columns = append(spec.Table.Columns, domain.ColumnDefinition{
		Name: "email", Type: domain.ColumnTypeText, Key: "emailAddress",
	})
	spec.Computed = []string{"word_count"}
	spec.Proxies = []string{"author_name"}

	entities, err := Build(Document{Entities: []EntitySpec{spec}})
	require.NoError(t, err)

	entity := entities[0]
	alias, ok := entity.Property("emailAddress")
	require.True(t, ok, "renamed columns map under their key")
	assert.Equal(t, "email", alias.Column)

	computed, ok := entity.Property("word_count")
	require.True(t, ok)
	assert.Equal(t, domain.PropertyKindComputed, computed.Kind)

	proxy, ok := entity.Property("author_name")
	require.True(t, ok)
	assert.Equal(t, domain.PropertyKindProxy, proxy.Kind)
}

func TestBuildResolvesRelationships(t *testing.T) {
	article := articleSpec()
	article.Relationships = []RelationshipSpec{
		{Name: "author", Kind: "many_to_one", Target: "User"},
	}
	user := EntitySpec{
		Name: "User",
		Table: &domain.TableDefinition{
			Name:    "users",
			Columns: []domain.ColumnDefinition{{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true}},
		},
	}

	entities, err := Build(Document{Entities: []EntitySpec{article, user}})
	require.NoError(t, err)

	rel, ok := entities[0].Relationship("author")
	require.True(t, ok)
	assert.Equal(t, domain.ManyToOne, rel.Kind)
	assert.Same(t, entities[1], rel.Target)
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	article := articleSpec()
	article.Relationships = []RelationshipSpec{
		{Name: "author", Kind: "many_to_one", Target: "Ghost"},
	}
	_, err := Build(Document{Entities: []EntitySpec{article}})
	assert.ErrorContains(t, err, "unknown target")

	orphan := EntitySpec{Name: "Orphan", Parent: "Ghost"}
	_, err = Build(Document{Entities: []EntitySpec{orphan}})
	assert.ErrorContains(t, err, "unknown parent")
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	article := articleSpec()
	article.Relationships = []RelationshipSpec{
		{Name: "author", Kind: "some_to_many", Target: "Article"},
	}
	_, err := Build(Document{Entities: []EntitySpec{article}})
	assert.ErrorContains(t, err, "unknown relationship kind")
}

func TestValidateRejectsReservedNames(t *testing.T) {
	entity := &domain.EntityType{
		Name: "Article",
		Table: &domain.TableDefinition{
			Name: "article",
			Columns: []domain.ColumnDefinition{
				{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true},
				{Name: domain.TransactionColumn, Type: domain.ColumnTypeBigInt},
			},
		},
	}
	assert.ErrorContains(t, Validate([]*domain.EntityType{entity}), "collides")

	withRel := &domain.EntityType{
		Name:  "Article",
		Table: &domain.TableDefinition{Name: "article"},
		Relationships: []domain.Relationship{
			{Name: domain.VersionsProperty, Kind: domain.OneToMany},
		},
	}
	assert.ErrorContains(t, Validate([]*domain.EntityType{withRel}), "reserved")
}

func TestValidateRejectsDuplicateColumns(t *testing.T) {
	entity := &domain.EntityType{
		Name: "Article",
		Table: &domain.TableDefinition{
			Name: "article",
			Columns: []domain.ColumnDefinition{
				{Name: "id", Type: domain.ColumnTypeBigInt, PrimaryKey: true},
				{Name: "id", Type: domain.ColumnTypeBigInt},
			},
		},
	}
	assert.ErrorContains(t, Validate([]*domain.EntityType{entity}), "duplicate column")
}

func TestLoadFromYAML(t *testing.T) {
	doc := `
entities:
  - name: Article
    table:
      name: article
      columns:
        - name: id
          type: bigint
          primary_key: true
        - name: title
          type: text
    relationships:
      - name: author
        kind: many_to_one
        target: User
  - name: User
    table:
      name: users
      columns:
        - name: id
          type: bigint
          primary_key: true
    options:
      versioning: false
`
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	entities, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	article := entities[0]
	assert.Equal(t, "Article", article.Name)
	assert.True(t, article.Table.Columns[0].PrimaryKey)

	rel, ok := article.Relationship("author")
	require.True(t, ok)
	assert.Same(t, entities[1], rel.Target)

	user := entities[1]
	require.NotNil(t, user.Options)
	require.NotNil(t, user.Options.Versioning)
	assert.False(t, *user.Options.Versioning)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
