package query

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type inventoryRow struct {
	Name     string `gorm:"column:name"`
	Quantity int    `gorm:"column:quantity"`
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE inventory (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL
	)`).Error)
	require.NoError(t, conn.Exec(
		`INSERT INTO inventory (id, name, quantity) VALUES (?, ?, ?), (?, ?, ?)`,
		"a", "VIP Ticket", 99,
		"b", "Standard Ticket", 250,
	).Error)

	return conn
}

func TestScalar(t *testing.T) {
	ctx := context.Background()

	t.Run("BoundValue", func(t *testing.T) {
		conn := openDB(t)

		got, ok, err := Scalar[int](ctx, conn, `SELECT quantity FROM inventory WHERE id = ?`, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 99, got)
	})

	t.Run("NullIsAbsence", func(t *testing.T) {
		conn := openDB(t)

		got, ok, err := Scalar[int](ctx, conn, `SELECT NULL`)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, got)
	})

	t.Run("ZeroRows", func(t *testing.T) {
		conn := openDB(t)

		_, _, err := Scalar[int](ctx, conn, `SELECT quantity FROM inventory WHERE id = ?`, "missing")

		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 1, shapeErr.Expected)
		assert.Equal(t, 0, shapeErr.Got)
	})

	t.Run("MultipleRows", func(t *testing.T) {
		conn := openDB(t)

		_, _, err := Scalar[int](ctx, conn, `SELECT quantity FROM inventory ORDER BY id`)

		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 2, shapeErr.Got)
	})
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("HydratesByColumnName", func(t *testing.T) {
		conn := openDB(t)

		rows, err := Select[inventoryRow](ctx, conn,
			`SELECT name, quantity FROM inventory WHERE quantity > ? ORDER BY quantity`, 50)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, inventoryRow{Name: "VIP Ticket", Quantity: 99}, rows[0])
		assert.Equal(t, inventoryRow{Name: "Standard Ticket", Quantity: 250}, rows[1])
	})

	t.Run("EmptyResultIsEmptySlice", func(t *testing.T) {
		conn := openDB(t)

		rows, err := Select[inventoryRow](ctx, conn,
			`SELECT name, quantity FROM inventory WHERE quantity > ?`, 1000)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	conn := openDB(t)

	err := Exec(ctx, conn, `UPDATE inventory SET quantity = quantity + ? WHERE id = ?`, -10, "a")
	require.NoError(t, err)

	got, ok, err := Scalar[int](ctx, conn, `SELECT quantity FROM inventory WHERE id = ?`, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 89, got)
}

// Hostile input stays inert as a bound parameter: it matches nothing, alters
// nothing, and the statement text is never spliced.
func TestBoundParametersResistInjection(t *testing.T) {
	ctx := context.Background()
	conn := openDB(t)

	hostile := `a' OR '1'='1'; DROP TABLE inventory; --`

	_, _, err := Scalar[int](ctx, conn, `SELECT quantity FROM inventory WHERE id = ?`, hostile)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 0, shapeErr.Got)

	rows, err := Select[inventoryRow](ctx, conn, `SELECT name, quantity FROM inventory WHERE name = ?`, hostile)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// The hostile string round-trips as a plain literal.
	require.NoError(t, Exec(ctx, conn, `INSERT INTO inventory (id, name, quantity) VALUES (?, ?, ?)`, "c", hostile, 1))
	name, ok, err := Scalar[string](ctx, conn, `SELECT name FROM inventory WHERE id = ?`, "c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, hostile, name)

	count, ok, err := Scalar[int](ctx, conn, `SELECT COUNT(*) FROM inventory`)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, count)
}
