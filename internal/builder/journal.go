package builder

import (
	"github.com/rpattn/shadowschema/internal/domain"
	"github.com/rpattn/shadowschema/internal/registry"
)

// passJournal records the registry mutations made during one configuration
// pass so a step failure can roll derived state back instead of leaving
// partially-shadowed entities behind for the process lifetime.
type passJournal struct {
	registry   *registry.Registry
	prevTables map[*domain.EntityType]*domain.TableDefinition
	hadTable   map[*domain.EntityType]bool
	shadows    []*domain.EntityType
}

func newPassJournal(reg *registry.Registry) *passJournal {
	return &passJournal{
		registry:   reg,
		prevTables: make(map[*domain.EntityType]*domain.TableDefinition),
		hadTable:   make(map[*domain.EntityType]bool),
	}
}

// recordTable notes the pre-pass value for a table-map key before the pass
// writes to it. Only the first write per key is recorded.
func (j *passJournal) recordTable(key *domain.EntityType) {
	if _, seen := j.hadTable[key]; seen {
		return
	}
	prev, ok := j.registry.Table(key)
	j.hadTable[key] = ok
	if ok {
		j.prevTables[key] = prev
	}
}

// recordShadow notes a shadow entity created during the pass.
func (j *passJournal) recordShadow(original *domain.EntityType) {
	j.shadows = append(j.shadows, original)
}

// rollback restores every journaled table-map entry and removes every shadow
// entity created during the pass.
func (j *passJournal) rollback() {
	for key, had := range j.hadTable {
		if had {
			j.registry.SetTable(key, j.prevTables[key])
		} else {
			j.registry.DeleteTable(key)
		}
	}
	for _, original := range j.shadows {
		j.registry.DeleteShadow(original)
	}
}
