// Package filter classifies loosely-typed filter values.
// A value aimed at an identifier-typed field is an exact identity match when it has
// the store's 24-hex-character identity shape; everything else is a
// case-insensitive substring pattern. Malformed identities are never an error.
package filter

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind tells how a filter value must be matched.
type Kind int

const (
	// KindNone means the value was not supplied.
	KindNone Kind = iota
	// KindIdentity means exact match on an identity.
	KindIdentity
	// KindPattern means case-insensitive substring match.
	KindPattern
)

var identityShape = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Term is a classified filter value.
type Term struct {
	Kind    Kind
	ID      primitive.ObjectID
	Pattern string
}

// IsIdentity reports whether s has the canonical identity shape.
func IsIdentity(s string) bool {
	return identityShape.MatchString(s)
}

// Classify interprets value for a field. identifierTyped marks fields such as
// countryId, articleId or the child lookups city/subcat which may carry either an
// identity or a name.
func Classify(value string, identifierTyped bool) Term {
	value = strings.TrimSpace(value)
	if value == "" {
		return Term{Kind: KindNone}
	}
	if identifierTyped && IsIdentity(value) {
		id, err := primitive.ObjectIDFromHex(value)
		if err == nil {
			return Term{Kind: KindIdentity, ID: id}
		}
	}
	return Term{Kind: KindPattern, Pattern: value}
}

// Text classifies a display/text field value; it never yields an identity.
func Text(value string) Term {
	return Classify(value, false)
}

// Identifier classifies an identifier-typed field value.
func Identifier(value string) Term {
	return Classify(value, true)
}

// Regex returns the escaped pattern suitable for a case-insensitive substring match.
func (t Term) Regex() string {
	return regexp.QuoteMeta(t.Pattern)
}

// Supplied reports whether the value was present.
func (t Term) Supplied() bool {
	return t.Kind != KindNone
}
