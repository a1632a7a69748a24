package domain

// Kind discriminates the two item variants that live in the collection tree.
type Kind int

const (
	KindFolder Kind = iota
	KindRequest
)

// String returns a human-readable name for logging.
func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "request"
}

// Identifiable is implemented by every tree item. IDs are assigned by the
// persistence layer and are unique within the variant's namespace.
type Identifiable interface {
	ItemID() int64
}
