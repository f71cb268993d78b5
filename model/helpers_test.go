package model

import (
	"testing"

	"github.com/ariebrainware/medical-forum/config"
	"github.com/stretchr/testify/require"
)

// setupTestEngine creates an in-memory engine with the schema created and
// the fixture data loaded. The engine is closed when the test ends.
func setupTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(config.MemoryPath)
	require.NoError(t, engine.CreateTables())
	require.NoError(t, engine.PopulateTables())
	t.Cleanup(func() {
		_ = engine.Close()
	})
	return engine
}

// assertTablePopulated checks the number of rows in table.
func assertTablePopulated(t *testing.T, engine *Engine, table string, expected int64) {
	t.Helper()
	n, err := engine.CountRows(table)
	require.NoError(t, err)
	require.Equalf(t, expected, n, "unexpected row count in %s", table)
}

// assertTableSchema checks column names and types, and that every declared
// foreign key is one of the expected ones.
func assertTableSchema(t *testing.T, engine *Engine, table string, names, types []string, fks []ForeignKey) {
	t.Helper()
	cols, err := engine.TableColumns(table)
	require.NoError(t, err)

	gotNames := make([]string, 0, len(cols))
	gotTypes := make([]string, 0, len(cols))
	for _, c := range cols {
		gotNames = append(gotNames, c.Name)
		gotTypes = append(gotTypes, c.Type)
	}
	require.Equal(t, names, gotNames)
	require.Equal(t, types, gotTypes)

	gotFKs, err := engine.ForeignKeys(table)
	require.NoError(t, err)
	require.Len(t, gotFKs, len(fks))
	for _, fk := range gotFKs {
		require.Contains(t, fks, fk)
	}
}
