package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("GOWHERE_TEST_STRING", "  value ")
	assert.Equal(t, "value", GetEnvString("GOWHERE_TEST_STRING", "default"))

	t.Setenv("GOWHERE_TEST_STRING", "   ")
	assert.Equal(t, "default", GetEnvString("GOWHERE_TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("GOWHERE_TEST_UNSET", "default"))
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", 5 * time.Second},
		{"valid", "1m30s", 90 * time.Second},
		{"invalid falls back", "ninety", 5 * time.Second},
		{"zero parses", "0s", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOWHERE_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("GOWHERE_TEST_DURATION", 5*time.Second))
		})
	}
}

func TestDurationValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"positive ok", ValidatePositiveDuration(time.Second), false},
		{"positive zero", ValidatePositiveDuration(0), true},
		{"range ok", ValidateDurationRange(time.Minute, time.Second, time.Hour), false},
		{"range below", ValidateDurationRange(time.Millisecond, time.Second, time.Hour), true},
		{"range above", ValidateDurationRange(2*time.Hour, time.Second, time.Hour), true},
		{"range inverted", ValidateDurationRange(time.Minute, time.Hour, time.Second), true},
		{"non-negative zero", ValidateNonNegativeDuration(0), false},
		{"non-negative negative", ValidateNonNegativeDuration(-time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.err)
			} else {
				assert.NoError(t, tt.err)
			}
		})
	}
}

func TestParsePrefixes(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []netip.Prefix
		wantErr bool
	}{
		{name: "none", entries: nil, want: nil},
		{
			name:    "cidr ranges",
			entries: []string{"10.0.0.0/8", " 2001:db8::/32 "},
			want:    []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("2001:db8::/32")},
		},
		{
			name:    "single addresses",
			entries: []string{"192.168.1.100", "::1"},
			want:    []netip.Prefix{netip.MustParsePrefix("192.168.1.100/32"), netip.MustParsePrefix("::1/128")},
		},
		{
			name:    "host bits are masked",
			entries: []string{"172.16.5.4/12"},
			want:    []netip.Prefix{netip.MustParsePrefix("172.16.0.0/12")},
		},
		{name: "blank entries skipped", entries: []string{"", "  "}, want: nil},
		{name: "garbage", entries: []string{"10.0.0.0/8", "proxy.local"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrefixes(tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
