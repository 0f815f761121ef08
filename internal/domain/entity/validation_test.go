package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"plain", "Japan", false},
		{"with space", "New Zealand", false},
		{"with hyphen", "Guinea-Bissau", false},
		{"extended latin", "Côte d", false},
		{"digits", "Area 51", true},
		{"punctuation", "Kyoto!", true},
		{"whitespace only", "   ", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DisplayName("name", "Name", tt.value)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "name", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestToken(t *testing.T) {
	assert.Nil(t, Token("value", "Value", "food-and-drink"))
	assert.Nil(t, Token("value", "Value", "halal2"))
	assert.NotNil(t, Token("value", "Value", "food drink"))
	assert.NotNil(t, Token("value", "Value", "food&drink"))
	assert.NotNil(t, Token("value", "Value", ""))
}

func TestTag(t *testing.T) {
	assert.Nil(t, Tag("tags", "Tag", "street food"))
	assert.Nil(t, Tag("tags", "Tag", "halal-friendly 2"))
	assert.NotNil(t, Tag("tags", "Tag", "#food"))
	assert.NotNil(t, Tag("tags", "Tag", "  "))
}

func TestLengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		min     int
		max     int
		wantMsg string
	}{
		{"exactly max", strings.Repeat("a", 100), 10, 100, ""},
		{"over max", strings.Repeat("a", 101), 10, 100, "must not exceed 100 characters"},
		{"under min", strings.Repeat("a", 9), 10, 100, "must be at least 10 characters"},
		{"exactly min", strings.Repeat("a", 10), 10, 100, ""},
		{"unbounded max", strings.Repeat("a", 500), 5, 0, ""},
		{"multibyte counted as runes", strings.Repeat("é", 10), 10, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LengthBounds("title", "Title", tt.value, tt.min, tt.max)
			if tt.wantMsg == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Contains(t, err.Message, tt.wantMsg)
		})
	}
}

func TestRequiredAndNotBlank(t *testing.T) {
	assert.NotNil(t, Required("code", "Country Code", ""))
	assert.Nil(t, Required("code", "Country Code", "JP"))

	assert.NotNil(t, NotBlank("address", "Address", " \t"))
	assert.Nil(t, NotBlank("address", "Address", ""))
	assert.Nil(t, NotBlank("address", "Address", "12 Main St"))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "Email", "a@example.com"))
	assert.Nil(t, Email("email", "Email", "first.last@sub.example.co"))
	assert.NotNil(t, Email("email", "Email", "a@example"))
	assert.NotNil(t, Email("email", "Email", "a example@x.com"))
	assert.NotNil(t, Email("email", "Email", "@example.com"))
}

func TestNumericRange(t *testing.T) {
	assert.Nil(t, NumericRange("lat", "Latitude", 35.0, -90, 90))
	assert.Nil(t, NumericRange("lat", "Latitude", -90, -90, 90))
	assert.NotNil(t, NumericRange("lat", "Latitude", 90.5, -90, 90))
	assert.NotNil(t, NumericRange("lng", "Longitude", -181, -180, 180))
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https URL", "https://example.com/photo.jpg", false},
		{"valid http URL", "http://example.com/photo.jpg", false},
		{"valid URL with port", "https://example.com:8080/p", false},
		{"empty URL", "", true},
		{"invalid scheme - ftp", "ftp://example.com/p", true},
		{"invalid scheme - javascript", "javascript:alert(1)", true},
		{"no host", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", maxURLLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestURL_WrapsLabel(t *testing.T) {
	err := URL("photos", "Photo URL", "ftp://example.com/p")
	require.NotNil(t, err)
	assert.Equal(t, "photos", err.Field)
	assert.Equal(t, "Photo URL must use http or https scheme", err.Message)
}
