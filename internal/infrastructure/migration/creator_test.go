package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Stock Items")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "_add_stock_items.up.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Stock Items")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Stock Items", "add_stock_items"},
		{"add-stock--items", "add_stock_items"},
		{"trailing space ", "trailing_space"},
		{"Mixed Case_123", "mixed_case_123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir + "/missing")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up migrations once", func(t *testing.T) {
		_, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Contains(t, migrations[0], "_first")
	})
}
