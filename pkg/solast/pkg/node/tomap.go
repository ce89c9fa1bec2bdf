package node

// ToMap renders n's subtree as a generic, JSON-friendly shape: id, kind, src
// and a recursive children list. cmd/solast's "parse -f json" emits one of
// these per source unit (keyed by path), "query -f json"/"-f compact" emit
// one per match, and the "validate" command's schema describes a single
// one; it carries the structural skeleton every node exposes
// through Children(), not the kind-specific value attributes that only the
// typed node structs know about (those are reached through Raw() instead).
func ToMap(n Node) map[string]any {
	if n == nil {
		return nil
	}

	children := n.Children()
	kids := make([]map[string]any, 0, len(children))

	for _, c := range children {
		if c == nil {
			continue
		}

		kids = append(kids, ToMap(c))
	}

	return map[string]any{
		"id":       n.ID(),
		"kind":     string(n.Kind()),
		"src":      n.Src().String(),
		"children": kids,
	}
}
