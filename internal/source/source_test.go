package source

import (
	"archive/zip"
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLAS = `~Version Information
 VERS.                  2.0 : CWLS LOG ASCII STANDARD - VERSION 2.0
 WRAP.                   NO : One line per depth step
~Well Information
 STRT.M               100.0 : START DEPTH
 STOP.M               103.0 : STOP DEPTH
 NULL.              -999.25 : NULL VALUE
 DATE.   2024-01-02 10:00:00 : LOG DATE
~Curve Information
 DEPT.M                     : Measured depth
 TIME.s                     : Epoch seconds
 OBH .degC                  : Bottom hole temperature
~Parameter
 BHT .degC             35.5 : ignored
~A  DEPT TIME OBH
100.0 1700000000 41.2
101.0 1700000010 -999.25
# comment line
102.0 1700000020 43.0
103.0 1700000030 44.5
`

func TestReadLAS(t *testing.T) {
	l, err := ReadLAS(strings.NewReader(sampleLAS))
	require.NoError(t, err)

	assert.Equal(t, []string{"DEPT", "TIME", "OBH"}, l.Names())
	assert.Equal(t, "degC", l.Curves[2].Unit)
	assert.Equal(t, "Bottom hole temperature", l.Curves[2].Description)
	assert.Equal(t, 4, l.Len())

	obh, ok := l.Column("obh")
	require.True(t, ok)
	assert.Equal(t, 41.2, obh[0])
	assert.True(t, math.IsNaN(obh[1]), "NULL must become NaN")

	s, err := l.Series("DEPT", "OBH")
	require.NoError(t, err)
	assert.Equal(t, []float64{41.2, 43.0, 44.5}, s.Present())

	times, ok := l.Time()
	require.True(t, ok)
	assert.Equal(t, int64(1700000010), times[1].Unix())
}

func TestReadLASWrapped(t *testing.T) {
	doc := `~V
 VERS. 2.0 :
 WRAP. YES :
~W
 NULL. -9999 :
~C
 DEPT.FT :
 A.     :
 B.     :
~A
 10.0
 1.0 2.0
 11.0
 -9999 4.0
`
	l, err := ReadLAS(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	a, _ := l.Column("A")
	b, _ := l.Column("B")
	assert.Equal(t, 1.0, a[0])
	assert.True(t, math.IsNaN(a[1]))
	assert.Equal(t, []float64{2, 4}, b)
}

func TestReadLASRepeatedMnemonics(t *testing.T) {
	doc := `~C
 DEPT.M :
 GR  .API : first pass
 GR  .API : second pass
~A
100 1 10
101 2 20
`
	l, err := ReadLAS(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"DEPT", "GR:1", "GR:2"}, l.Names())
	assert.Equal(t, "DEPT", l.Index)
	assert.Equal(t, 2, l.Len())

	first, ok := l.Column("gr:1")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, first)
	second, _ := l.Column("GR:2")
	assert.Equal(t, []float64{10, 20}, second)

	s, err := l.Series("DEPT", "GR:1")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101}, s.Depth)
	assert.Equal(t, []float64{1, 2}, s.Value)

	_, err = l.Series("DEPT", "GR")
	assert.Error(t, err)
}

func TestReadLASWithoutCurves(t *testing.T) {
	_, err := ReadLAS(strings.NewReader("~V\n VERS. 2.0 :\n~A\n1 2 3\n"))
	assert.ErrorIs(t, err, ErrNoCurves)
}

func TestSeriesUnknownChannel(t *testing.T) {
	l, err := ReadLAS(strings.NewReader(sampleLAS))
	require.NoError(t, err)
	_, err = l.Series("DEPT", "ROP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: DEPT, TIME, OBH")
}

func TestDirNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	_, err := Dir{Path: dir, Ext: ".las"}.Log()
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, dir, nf.Dir)

	_, err = Dir{Path: filepath.Join(dir, "missing"), Ext: ".csv"}.Table()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirPicksFirstMatchInNameOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("Formation,Depth\nB,2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.CSV"), []byte("Formation,Depth\nA,1\n"), 0o644))

	path, err := Dir{Path: dir, Ext: ".csv"}.Find()
	require.NoError(t, err)
	assert.Equal(t, "a.CSV", filepath.Base(path))

	tops, err := ReadFormations(Dir{Path: dir, Ext: ".csv"})
	require.NoError(t, err)
	require.Len(t, tops, 1)
	assert.Equal(t, "A", tops[0].Name)
}

func TestReadRunsTrimsColumnNames(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "runs.csv")
	body := " bit model , depth in ,depth out \nPDC-1, 100 , 200\nTCI-2,200,350.5\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	runs, err := ReadRuns(TableFile(p))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "PDC-1", runs[0].BitModel)
	assert.Equal(t, 100.0, runs[0].DepthIn)
	assert.Equal(t, 200.0, runs[0].DepthOut)
	assert.Equal(t, 350.5, runs[1].DepthOut)
}

func TestReadRunsMissingColumn(t *testing.T) {
	src := StaticTable{T: &Table{Name: "runs.csv", Header: []string{"bit model", "depth in"}}}
	_, err := ReadRuns(src)
	var ce *ColumnError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ColDepthOut, ce.Column)
}

func TestSemicolonCSV(t *testing.T) {
	tbl, err := csvParser{}.Parse("tops.csv", []byte("Formation;Depth\nShale;1.234,5\nSand;n/a\n"))
	require.NoError(t, err)
	tops, err := ReadFormations(StaticTable{T: tbl})
	require.NoError(t, err)
	require.Len(t, tops, 2)
	assert.Equal(t, 1234.5, tops[0].Depth)
	assert.True(t, math.IsNaN(tops[1].Depth))
}

func TestParseNumber(t *testing.T) {
	tests := map[string]float64{
		"12":        12,
		" 12.5 ":    12.5,
		"1,5":       1.5,
		"1.234,5":   1234.5,
		"1,234.5":   1234.5,
		"-3.2e2":    -320,
		"1 000": 1000,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseNumber(in), "input %q", in)
	}
	assert.True(t, math.IsNaN(ParseNumber("")))
	assert.True(t, math.IsNaN(ParseNumber("abc")))
}

func TestXLSXFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.xlsx")
	require.NoError(t, os.WriteFile(path, buildXLSX(t), 0o644))

	runs, err := ReadRuns(TableFile(path))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "PDC-1", runs[0].BitModel)
	assert.Equal(t, 100.0, runs[0].DepthIn)
	assert.Equal(t, "TCI-2", runs[1].BitModel)
	assert.Equal(t, 420.0, runs[1].DepthOut)
}

func TestNormalizeRelPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeRelPath(tt.in))
	}
	assert.Equal(t, 0, colIndexFromRef("A1"))
	assert.Equal(t, 27, colIndexFromRef("AB12"))
}

func TestUnsupportedTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := ParseTableFile(path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

// buildXLSX writes a minimal workbook whose relationship target has a
// leading slash, with shared strings in the header and an inline string.
func buildXLSX(t *testing.T) []byte {
	t.Helper()
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Runs" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/data.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>bit model </t></si><si><t>depth in</t></si><si><r><t>depth </t></r><r><t>out</t></r></si><si><t>PDC-1</t></si>
</sst>`,
		"xl/worksheets/data.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
<row r="2"><c r="A2" t="s"><v>3</v></c><c r="B2"><v>100</v></c><c r="C2"><v>250</v></c></row>
<row r="3"><c r="A3" t="inlineStr"><is><t>TCI-2</t></is></c><c r="B3"><v>250</v></c><c r="C3"><v>420</v></c></row>
</sheetData></worksheet>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
