package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryUpHasADown(t *testing.T) {
	entries, err := fs.ReadDir(files, ".")
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	require.NotEmpty(t, names)

	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			assert.True(t, names[strings.TrimSuffix(name, ".up.sql")+".down.sql"], name)
		}
	}
}

func TestInitCreatesEveryCollection(t *testing.T) {
	body, err := fs.ReadFile(files, "000001_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{
		"users", "caregivers", "caregiver_availability", "user_messages", "caregiver_messages",
		"appointments", "medical_notes", "service_requests", "authors", "books",
	} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
