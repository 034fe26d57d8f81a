package database

import (
	"RestoPos/internal/database/model/pref"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchemaOnce(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data", DB_NAME)
	assert.False(t, Exists(name))

	db, err := Open(name)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.True(t, Exists(name))

	db, err = Open(name)
	require.NoError(t, err)
	defer db.Close()

	var versions []Version
	require.NoError(t, db.Select(&versions, "SELECT * FROM Version;"))
	require.Len(t, versions, 1)
	assert.Equal(t, SCHEMA_VERSION, versions[0].Version)
}

func TestPrefsNamespace(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), DB_NAME))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, pref.ReplaceNamespace(db, "a", map[string]string{"token": "t1", "role": "admin"}))
	require.NoError(t, pref.ReplaceNamespace(db, "b", map[string]string{"token": "other"}))
	require.NoError(t, pref.ReplaceNamespace(db, "a", map[string]string{"token": "t2"}))

	values, err := pref.SelectByNamespace(db, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "t2"}, values)

	require.NoError(t, pref.DeleteNamespace(db, "a"))
	values, err = pref.SelectByNamespace(db, "a")
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = pref.SelectByNamespace(db, "b")
	require.NoError(t, err)
	assert.Equal(t, "other", values["token"])
}
