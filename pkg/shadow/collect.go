package shadow

// Record is one pending change collected from a tagged node.
type Record struct {
	Effect   Effect
	Parent   *Node
	Node     *Node
	Position int // index among Parent's children

	// Move is set when an existing keyed node must be relocated among its
	// siblings. It may accompany EffectUpdate or EffectNone.
	Move bool
}

// Collect flattens n in pre-order into one Record per tagged node and
// clears the tags, so a second Collect over the same tree yields nothing
// for nodes already collected.
func Collect(n *Node) []Record {
	var out []Record
	collect(n, 0, &out)
	return out
}

func collect(n *Node, position int, out *[]Record) {
	if n == nil {
		return
	}
	if n.Effect != EffectNone || n.Moved {
		*out = append(*out, Record{
			Effect:   n.Effect,
			Parent:   n.Parent,
			Node:     n,
			Position: position,
			Move:     n.Moved,
		})
		n.Effect = EffectNone
		n.Moved = false
	}
	for i, child := range n.Children {
		collect(child, i, out)
	}
}

// Filter returns the records carrying effect e.
func Filter(records []Record, e Effect) []Record {
	var out []Record
	for _, r := range records {
		if r.Effect == e {
			out = append(out, r)
		}
	}
	return out
}
