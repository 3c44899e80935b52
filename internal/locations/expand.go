package locations

import "github.com/angelmondragon/talentconnect-backend/pkg/db"

// Expand returns the lower-case match tokens for a location filter: the
// resolved node's name and aliases followed by every descendant's, depth-first
// and without duplicates. Unknown input yields just the normalized query and
// blank input yields nil.
func Expand(h *Hierarchy, query string) []string {
	key := normalize(query)
	if key == "" {
		return nil
	}
	node, ok := h.Resolve(key)
	if !ok {
		return []string{key}
	}

	seen := map[string]struct{}{}
	tokens := make([]string, 0, 16)
	add := func(value string) {
		if _, dup := seen[value]; dup || value == "" {
			return
		}
		seen[value] = struct{}{}
		tokens = append(tokens, value)
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		add(n.Name)
		for _, alias := range n.Aliases {
			add(alias)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(node)
	return tokens
}

// Filter renders the OR-ed substring condition of the expanded query against
// column. An empty clause means no filter.
func Filter(h *Hierarchy, column, query string) (string, []any) {
	return db.AnyLike([]string{column}, Expand(h, query))
}
