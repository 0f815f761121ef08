// Package embedded computes identity-preserving changes to array-valued children.
//
// Bulk changes produce the full merged array. Single-item changes produce a
// Fragment that targets one child by identity and leaves the rest of the array
// untouched; the persistence layer translates a Fragment into a store update.
package embedded

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is an embedded child carrying an identity.
type Item[T any] interface {
	Identity() primitive.ObjectID
	WithIdentity(id primitive.ObjectID) T
}

// IDFunc generates a fresh identity.
type IDFunc func() primitive.ObjectID

// NewID is the default identity generator.
var NewID IDFunc = primitive.NewObjectID

// Mode selects how a change applies to the child array.
type Mode int

const (
	// ModeBulk appends submitted children to the existing ones.
	ModeBulk Mode = iota
	// ModeSet edits fields of one child in place.
	ModeSet
	// ModePull removes one child.
	ModePull
	// ModePush appends one child.
	ModePush
)

func (m Mode) String() string {
	switch m {
	case ModeBulk:
		return "bulk"
	case ModeSet:
		return "single-set"
	case ModePull:
		return "single-pull"
	case ModePush:
		return "single-push"
	default:
		return "unknown"
	}
}

// Field is one child field assignment of a single-set change.
type Field struct {
	Name  string
	Value any
}

// Fragment is a single-item change on one parent's child array.
type Fragment struct {
	Mode   Mode
	Parent primitive.ObjectID
	Child  primitive.ObjectID
	Fields []Field
	Item   any
}

// Create assigns a fresh identity to every submitted child.
func Create[T Item[T]](submitted []T, newID IDFunc) []T {
	if newID == nil {
		newID = NewID
	}
	out := make([]T, 0, len(submitted))
	for _, s := range submitted {
		out = append(out, s.WithIdentity(newID()))
	}
	return out
}

// Append keeps existing children verbatim and in order, then appends the
// submitted children. Submitted children without identity get a fresh one;
// those whose identity is already present are not duplicated.
// Appending nothing returns the existing children unchanged.
func Append[T Item[T]](existing, submitted []T, newID IDFunc) []T {
	if newID == nil {
		newID = NewID
	}
	seen := make(map[primitive.ObjectID]struct{}, len(existing))
	out := make([]T, 0, len(existing)+len(submitted))
	for _, e := range existing {
		seen[e.Identity()] = struct{}{}
		out = append(out, e)
	}
	for _, s := range submitted {
		id := s.Identity()
		if id.IsZero() {
			out = append(out, s.WithIdentity(newID()))
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SetFields targets child of parent for a field-scoped in-place edit.
// Fields with a nil value are skipped.
func SetFields(parent, child primitive.ObjectID, fields ...Field) Fragment {
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Value != nil {
			kept = append(kept, f)
		}
	}
	return Fragment{Mode: ModeSet, Parent: parent, Child: child, Fields: kept}
}

// Pull targets child of parent for removal.
func Pull(parent, child primitive.ObjectID) Fragment {
	return Fragment{Mode: ModePull, Parent: parent, Child: child}
}

// Push assigns a fresh identity to item unless it already has one and returns
// the identified item with the fragment appending it to parent.
func Push[T Item[T]](parent primitive.ObjectID, item T, newID IDFunc) (T, Fragment) {
	if newID == nil {
		newID = NewID
	}
	if item.Identity().IsZero() {
		item = item.WithIdentity(newID())
	}
	return item, Fragment{Mode: ModePush, Parent: parent, Child: item.Identity(), Item: item}
}

// Contains reports whether children hold id.
func Contains[T Item[T]](children []T, id primitive.ObjectID) bool {
	for _, c := range children {
		if c.Identity() == id {
			return true
		}
	}
	return false
}
