package documents

// Bag holds at most one normalized document per type. When a claim has
// duplicates of a type, the most recently created one wins; the older record
// was superseded by a re-upload.
type Bag map[Type]*Document

// NewBag builds a bag from normalized documents, applying latest-wins per type.
func NewBag(docs []*Document) Bag {
	bag := Bag{}
	for _, d := range docs {
		if d == nil {
			continue
		}
		cur, ok := bag[d.Type]
		if !ok || d.CreatedAt.After(cur.CreatedAt) {
			bag[d.Type] = d
		}
	}
	return bag
}

// Has reports whether every given type is present.
func (b Bag) Has(types ...Type) bool {
	for _, t := range types {
		if _, ok := b[t]; !ok {
			return false
		}
	}
	return true
}

// Types returns the available types in the canonical order.
func (b Bag) Types() []Type {
	var out []Type
	for _, t := range AllTypes {
		if _, ok := b[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
