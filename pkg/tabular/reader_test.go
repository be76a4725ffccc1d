package tabular

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRead_CSV(t *testing.T) {
	data := []byte("SERIAL FISICO INTERNO,SERIAL FISICO EXTERNO\nABC123,DEF456\nGHI789,\n")

	table, err := Read("expected.csv", data)
	require.NoError(t, err)

	internal, err := table.Column("SERIAL FISICO INTERNO")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "GHI789"}, internal)

	external, err := table.Column("serial fisico externo")
	require.NoError(t, err)
	assert.Equal(t, []string{"DEF456", ""}, external)
}

func TestRead_CSV_RaggedRows(t *testing.T) {
	data := []byte("serial,note\nABC123\nDEF456,checked,extra\n")

	table, err := Read("expected.csv", data)
	require.NoError(t, err)

	serials, err := table.Column("serial")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "DEF456"}, serials)

	notes, err := table.Column("note")
	require.NoError(t, err)
	assert.Equal(t, []string{"checked"}, notes)
}

func TestTable_Columns(t *testing.T) {
	data := []byte("a,b\n1,2\n3,4\n")

	table, err := Read("expected.csv", data)
	require.NoError(t, err)

	values, err := table.Columns("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2", "4"}, values)
}

func TestTable_MissingColumn(t *testing.T) {
	table, err := Read("expected.csv", []byte("serial\nABC123\n"))
	require.NoError(t, err)

	_, err = table.Column("other")
	require.Error(t, err)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "other", missing.Column)
	assert.Equal(t, []string{"serial"}, missing.Available)
}

func TestRead_XLSX(t *testing.T) {
	file := excelize.NewFile()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]any{"serial", "note"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]any{"ABC123", "ok"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A3", &[]any{"DEF456", ""}))

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)

	table, err := Read("expected.xlsx", buffer.Bytes())
	require.NoError(t, err)

	serials, err := table.Column("SERIAL")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "DEF456"}, serials)
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("expected.pdf", []byte("whatever"))
	assert.Error(t, err)
}

func TestRead_EmptyFile(t *testing.T) {
	table, err := Read("expected.csv", nil)
	require.NoError(t, err)
	assert.Empty(t, table.Headers())

	_, err = table.Column("serial")
	assert.Error(t, err)
}
