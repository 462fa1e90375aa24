package table_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcodigos/owid-grapher/table"
)

// day returns the UTC midnight n days after 2020-03-01, the fixture epoch.
func day(n int) time.Time {
	return time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// row builds a fixture row for one entity and day with a single "cases" cell.
func row(code string, n int, c table.Cell) table.Row {
	return table.Row{
		Code:  code,
		Name:  code,
		Date:  day(n),
		Cells: map[string]table.Cell{"cases": c},
	}
}

// TestCell_Normalization verifies that non-finite inputs become Absent and
// that Absent never reads back as data.
func TestCell_Normalization(t *testing.T) {
	assert.True(t, table.Value(math.NaN()).IsAbsent(), "NaN must normalize to Absent")
	assert.True(t, table.Value(math.Inf(1)).IsAbsent(), "+Inf must normalize to Absent")
	assert.True(t, table.Absent().IsAbsent(), "Absent is absent")

	v, ok := table.Value(0).Float()
	assert.True(t, ok, "explicit zero is data, not absence")
	assert.Equal(t, 0.0, v)

	_, ok = table.Absent().Float()
	assert.False(t, ok, "Absent must not read back as data")
}

// TestRow_Cell verifies that a slug missing from a row reads as Absent
// rather than a zero value or a panic.
func TestRow_Cell(t *testing.T) {
	r := row("AAA", 0, table.Value(3))
	assert.True(t, r.Cell("deaths").IsAbsent(), "unknown slug reads Absent")

	v, ok := r.Cell("cases").Float()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

// TestNew_RegistryOrder verifies that input column slugs register in sorted
// order so ColumnSlugs is reproducible across runs.
func TestNew_RegistryOrder(t *testing.T) {
	r := table.Row{Code: "AAA", Name: "AAA", Date: day(0), Cells: map[string]table.Cell{
		"deaths": table.Value(1),
		"cases":  table.Value(2),
		"tests":  table.Absent(),
	}}
	tbl := table.New([]table.Row{r})

	assert.Equal(t, []string{"cases", "deaths", "tests"}, tbl.ColumnSlugs())
	assert.True(t, tbl.HasColumn("tests"), "absent cells still populate the registry")
	assert.False(t, tbl.HasColumn("population"))
}

// TestNew_OwnsRows verifies the Table's exclusive ownership: mutating the
// caller's input or a Rows snapshot never reaches the stored cells.
func TestNew_OwnsRows(t *testing.T) {
	input := []table.Row{row("AAA", 0, table.Value(5))}
	tbl := table.New(input)

	input[0].Cells["cases"] = table.Value(99)
	snap := tbl.Rows()
	snap[0].Cells["cases"] = table.Value(77)

	v, ok := tbl.Rows()[0].Cell("cases").Float()
	require.True(t, ok)
	assert.Equal(t, 5.0, v, "stored cells must be isolated from caller slices")
}

// TestAddColumn_Errors exercises the dispatcher's error surface: bad
// descriptors, duplicate slugs, and missing sources.
func TestAddColumn_Errors(t *testing.T) {
	tbl := table.New([]table.Row{row("AAA", 0, table.Value(1))})

	err := tbl.AddColumn("", table.Rolling{Source: "cases", Window: 3})
	assert.ErrorIs(t, err, table.ErrBadDerivation, "empty slug must be rejected")

	err = tbl.AddColumn("x", nil)
	assert.ErrorIs(t, err, table.ErrBadDerivation, "nil descriptor must be rejected")

	err = tbl.AddColumn("x", table.Rolling{Source: "cases", Window: 0})
	assert.ErrorIs(t, err, table.ErrBadDerivation, "window < 1 must be rejected")

	err = tbl.AddColumn("x", table.Rolling{Source: "nope", Window: 3})
	assert.ErrorIs(t, err, table.ErrMissingColumn, "unknown source must be rejected")
	var missing *table.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nope", missing.Slug, "error must name the missing slug")
	assert.False(t, tbl.HasColumn("x"), "no partial column on error")

	require.NoError(t, tbl.AddColumn("x", table.Rolling{Source: "cases", Window: 3}))
	err = tbl.AddColumn("x", table.Rolling{Source: "cases", Window: 3})
	assert.ErrorIs(t, err, table.ErrColumnExists, "re-adding a slug must be rejected")
	assert.Equal(t, []string{"cases", "x"}, tbl.ColumnSlugs(), "registry must not duplicate slugs")
}

// TestAddColumn_AbsentMarkerNotOmitted verifies that rows with no derivable
// value carry an explicit Absent cell under the new slug, not a missing key.
func TestAddColumn_AbsentMarkerNotOmitted(t *testing.T) {
	tbl := table.New([]table.Row{
		row("AAA", 0, table.Absent()),
		row("AAA", 1, table.Absent()),
	})
	require.NoError(t, tbl.AddColumn("avg", table.Rolling{Source: "cases", Window: 2}))

	for _, r := range tbl.Rows() {
		c, ok := r.Cells["avg"]
		require.True(t, ok, "every row must carry the new key explicitly")
		assert.True(t, c.IsAbsent(), "no source data yields Absent, not zero")
	}
}
