package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClassify(t *testing.T) {
	id := primitive.NewObjectID()

	tests := []struct {
		name            string
		value           string
		identifierTyped bool
		wantKind        Kind
	}{
		{"empty is not supplied", "", true, KindNone},
		{"blank is not supplied", "   ", false, KindNone},
		{"hex on identifier field", id.Hex(), true, KindIdentity},
		{"upper hex on identifier field", "65A1B2C3D4E5F60718293A4B", true, KindIdentity},
		{"hex on text field stays pattern", id.Hex(), false, KindPattern},
		{"name on identifier field", "Kyoto", true, KindPattern},
		{"23 hex chars", id.Hex()[:23], true, KindPattern},
		{"25 hex chars", id.Hex() + "a", true, KindPattern},
		{"non-hex 24 chars", "zzzzzzzzzzzzzzzzzzzzzzzz", true, KindPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.value, tt.identifierTyped)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestClassify_IdentityCarriesObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got := Identifier(id.Hex())

	require.Equal(t, KindIdentity, got.Kind)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.Supplied())
}

func TestTerm_RegexEscapes(t *testing.T) {
	got := Text("St. John (East)")

	assert.Equal(t, `St\. John \(East\)`, got.Regex())
	assert.Equal(t, "St. John (East)", got.Pattern)
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, IsIdentity(primitive.NewObjectID().Hex()))
	assert.False(t, IsIdentity("JP"))
	assert.False(t, IsIdentity(""))
}
