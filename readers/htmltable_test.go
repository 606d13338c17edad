package readers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewwkimm/Barstool-Sports-Data-Pipeline/data"
)

func TestHTMLTableFiltersRowsByCellCount(t *testing.T) {
	assert := assert.New(t)

	// Header row plus rows of cell counts 4, 3, 4, 5: only the two 4-cell
	// rows survive.
	input := `<html><body><table>
		<tr><th>id</th><th>name</th><th>short</th><th>type</th></tr>
		<tr><td>1</td><td>Rundown</td><td>RD</td><td>show</td></tr>
		<tr><td>2</td><td>Short Row</td><td>SR</td></tr>
		<tr><td>3</td><td>Yak</td><td>YK</td><td>show</td></tr>
		<tr><td>4</td><td>Long Row</td><td>LR</td><td>show</td><td>extra</td></tr>
	</table></body></html>`

	table, err := HTMLTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(4, table.NumColumns())
	assert.Equal(2, table.NumRows())

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	assert.Equal([]string{"_ID", "NAME", "SHORT_NAME", "TYPE"}, names)

	id := table.Column("_ID")
	require.NotNil(t, id)
	assert.Equal([]data.Value{data.StringValue("1"), data.StringValue("3")}, id.Values)

	name := table.Column("NAME")
	require.NotNil(t, name)
	assert.Equal([]data.Value{data.StringValue("Rundown"), data.StringValue("Yak")}, name.Values)
}

func TestHTMLTableSkipsHeaderRow(t *testing.T) {
	assert := assert.New(t)

	// Header uses <td>, so only skipping the first row keeps it out.
	input := `<table>
		<tr><td>_ID</td><td>NAME</td><td>SHORT_NAME</td><td>TYPE</td></tr>
		<tr><td>1</td><td>a</td><td>b</td><td>c</td></tr>
	</table>`

	table, err := HTMLTable(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(1, table.NumRows())
}

func TestHTMLTableNoTableIsParseError(t *testing.T) {
	assert := assert.New(t)

	_, err := HTMLTable(strings.NewReader("<html><body><p>nothing here</p></body></html>"))

	var parseErr *data.ParseError
	assert.True(errors.As(err, &parseErr))
}

func TestHTMLTableEmptyTable(t *testing.T) {
	assert := assert.New(t)

	table, err := HTMLTable(strings.NewReader("<table><tr><th>h</th></tr></table>"))
	require.NoError(t, err)
	assert.Equal(4, table.NumColumns())
	assert.Equal(0, table.NumRows())
}

func TestHTMLTableTrimsCellText(t *testing.T) {
	assert := assert.New(t)

	input := `<table>
		<tr><th>h</th></tr>
		<tr><td> 1 </td><td> a
		</td><td>b</td><td>c</td></tr>
	</table>`

	table, err := HTMLTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())
	assert.Equal(data.StringValue("1"), table.Column("_ID").Values[0])
	assert.Equal(data.StringValue("a"), table.Column("NAME").Values[0])
}
