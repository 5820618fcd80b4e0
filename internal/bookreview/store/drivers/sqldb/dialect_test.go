package sqldb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `UPDATE books SET title = ?, rating = ? WHERE id = ?`

	require.Equal(t, q, SQLite.Rebind(q))
	require.Equal(t, `UPDATE books SET title = $1, rating = $2 WHERE id = $3`, Postgres.Rebind(q))
	require.Equal(t, `SELECT 1`, Postgres.Rebind(`SELECT 1`))
}
