package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesContent = `[csv]
delimiter = ,
extension = csv

[tsv]
delimiter = \t
extension = tsv

[pipe]
delimiter = "|delimiter|"
extension = txt

[semi]
delimiter = ;
extension = csv

[hash]
delimiter = #

[blank]
delimiter =
extension = csv

[empty]
`

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".flattencfg")
	require.NoError(t, os.WriteFile(path, []byte(profilesContent), 0o644))
	return path
}

func TestProfileRegistry_GetProfiles(t *testing.T) {
	registry, err := NewProfileRegistry(writeProfiles(t))
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"csv", "tsv", "pipe", "semi", "hash", "blank"}, profiles)
}

func TestProfileRegistry_GetProfile(t *testing.T) {
	registry, err := NewProfileRegistry(writeProfiles(t))
	require.NoError(t, err)

	tests := []struct {
		name     string
		expected Profile
		wantErr  bool
	}{
		{name: "csv", expected: Profile{Name: "csv", Delimiter: ",", Extension: "csv"}},
		{name: "tsv", expected: Profile{Name: "tsv", Delimiter: "\t", Extension: "tsv"}},
		{name: "pipe", expected: Profile{Name: "pipe", Delimiter: "|delimiter|", Extension: "txt"}},
		{name: "semi", expected: Profile{Name: "semi", Delimiter: ";", Extension: "csv"}},
		{name: "hash", expected: Profile{Name: "hash", Delimiter: "#"}},
		{name: "blank", wantErr: true},
		{name: "empty", wantErr: true},
		{name: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := registry.GetProfile(context.Background(), tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, profile)
		})
	}
}

func TestNewProfileRegistry_MissingFile_ReturnsError(t *testing.T) {
	_, err := NewProfileRegistry(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestProfileRegistry_SemicolonProfileAppliesToConfig(t *testing.T) {
	// Given
	registry, err := NewProfileRegistry(writeProfiles(t))
	require.NoError(t, err)
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// When
	profile, err := registry.GetProfile(context.Background(), "semi")
	require.NoError(t, err)
	cfg.ApplyProfile(profile)

	// Then
	assert.Equal(t, ";", cfg.Delimiter)
}
