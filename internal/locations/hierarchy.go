package locations

import (
	"sort"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
)

// Node is a location with its aliases and ordered children.
type Node struct {
	ID       int64
	Name     string
	Kind     enums.LocationKind
	Aliases  []string
	Children []*Node
}

// Hierarchy is the in-memory adjacency view of the locations table.
type Hierarchy struct {
	roots   []*Node
	byName  map[string]*Node
	byAlias map[string][]*Node
}

// NewHierarchy builds the tree from persisted rows. Rows are ordered by
// position and id so siblings keep their seed order.
func NewHierarchy(rows []models.Location, aliases []models.LocationAlias) *Hierarchy {
	h := &Hierarchy{
		byName:  make(map[string]*Node, len(rows)),
		byAlias: map[string][]*Node{},
	}

	sorted := append([]models.Location(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[int64]*Node, len(sorted))
	for _, row := range sorted {
		node := &Node{ID: row.ID, Name: normalize(row.Name), Kind: row.Kind}
		byID[row.ID] = node
		h.byName[node.Name] = node
	}
	for _, row := range sorted {
		node := byID[row.ID]
		if row.ParentID == nil {
			h.roots = append(h.roots, node)
			continue
		}
		parent, ok := byID[*row.ParentID]
		if !ok {
			h.roots = append(h.roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortedAliases := append([]models.LocationAlias(nil), aliases...)
	sort.SliceStable(sortedAliases, func(i, j int) bool {
		if sortedAliases[i].Position != sortedAliases[j].Position {
			return sortedAliases[i].Position < sortedAliases[j].Position
		}
		return sortedAliases[i].ID < sortedAliases[j].ID
	})
	for _, row := range sortedAliases {
		node, ok := byID[row.LocationID]
		if !ok {
			continue
		}
		alias := normalize(row.Alias)
		node.Aliases = append(node.Aliases, alias)
		h.byAlias[alias] = append(h.byAlias[alias], node)
	}
	return h
}

// FromSeed builds a hierarchy straight from seed nodes, assigning ids in
// depth-first order.
func FromSeed(nodes []SeedNode) *Hierarchy {
	rows, aliases := flatten(nodes)
	return NewHierarchy(rows, aliases)
}

func flatten(nodes []SeedNode) ([]models.Location, []models.LocationAlias) {
	var (
		rows    []models.Location
		aliases []models.LocationAlias
		nextID  int64
	)
	var walk func(list []SeedNode, parent *int64)
	walk = func(list []SeedNode, parent *int64) {
		for i, node := range list {
			nextID++
			id := nextID
			rows = append(rows, models.Location{ID: id, Name: node.Name, Kind: node.Kind, ParentID: parent, Position: i})
			for j, alias := range node.Aliases {
				aliases = append(aliases, models.LocationAlias{ID: int64(len(aliases) + 1), LocationID: id, Alias: alias, Position: j})
			}
			walk(node.Children, &id)
		}
	}
	walk(nodes, nil)
	return rows, aliases
}

// Len reports the number of nodes.
func (h *Hierarchy) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byName)
}

// Roots returns the top-level nodes in seed order.
func (h *Hierarchy) Roots() []*Node {
	if h == nil {
		return nil
	}
	return h.roots
}

// Resolve finds a node by name, falling back to an alias that belongs to exactly one node.
func (h *Hierarchy) Resolve(query string) (*Node, bool) {
	if h == nil {
		return nil, false
	}
	key := normalize(query)
	if node, ok := h.byName[key]; ok {
		return node, true
	}
	if owners := h.byAlias[key]; len(owners) == 1 {
		return owners[0], true
	}
	return nil, false
}
