package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI(t *testing.T) {
	t.Setenv("INVENTORY_DB_DRIVER", "sqlite")
	t.Setenv("INVENTORY_DB_DSN", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("INVENTORY_BOOTSTRAP_ADMIN_USERNAME", "boss")
	t.Setenv("INVENTORY_BOOTSTRAP_ADMIN_PASSWORD", "initial")

	out, err := runCLI(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Categories created: 16")
	assert.Contains(t, out, "Administrator created: boss")

	out, err = runCLI(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Categories created: 0")
	assert.Contains(t, out, "Administrator already present.")

	out, err = runCLI(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "categories")
	assert.Contains(t, out, "materials")
	assert.Contains(t, out, "users")

	out, err = runCLI(t, "reset-password", "boss", "changed")
	require.NoError(t, err)
	assert.Contains(t, out, "Password for boss has been reset.")

	_, err = runCLI(t, "reset-password", "ghost", "x")
	assert.ErrorContains(t, err, "user not found")

	_, err = runCLI(t, "reset-password", "boss")
	assert.Error(t, err)

	out, err = runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")
}

func TestTablesLeavesSchemaAlone(t *testing.T) {
	t.Setenv("INVENTORY_DB_DRIVER", "sqlite")
	t.Setenv("INVENTORY_DB_DSN", filepath.Join(t.TempDir(), "fresh.db"))

	out, err := runCLI(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "No tables found.")

	out, err = runCLI(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "No tables found.", "listing tables must not create them")
	assert.NotContains(t, out, "materials")
}
