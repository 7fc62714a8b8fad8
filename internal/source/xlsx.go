package source

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// xlsxParser reads the first worksheet of a workbook.
type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return hasSuffixFold(filename, ".xlsx")
}

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		ID   int    `xml:"sheetId,attr"`
		RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type xlsxRels struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxShared struct {
	Items []struct {
		T    string `xml:"t"`
		Runs []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxSheet struct {
	Rows []struct {
		Cells []struct {
			Ref    string `xml:"r,attr"`
			Type   string `xml:"t,attr"`
			Value  string `xml:"v"`
			Inline string `xml:"is>t"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

func (xlsxParser) Parse(name string, content []byte) (*Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	var wb xlsxWorkbook
	if err := unmarshalZip(zr, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	var rels xlsxRels
	if err := unmarshalZip(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, err
	}
	var shared xlsxShared
	if err := unmarshalZip(zr, "xl/sharedStrings.xml", &shared); err != nil {
		return nil, err
	}

	target := "xl/worksheets/sheet1.xml"
	if len(wb.Sheets) > 0 {
		for _, r := range rels.Rels {
			if r.ID == wb.Sheets[0].RID {
				target = normalizeRelPath(r.Target)
				break
			}
		}
	}
	var sheet xlsxSheet
	if err := unmarshalZip(zr, target, &sheet); err != nil {
		return nil, err
	}

	strs := make([]string, len(shared.Items))
	for i, si := range shared.Items {
		if si.T != "" || len(si.Runs) == 0 {
			strs[i] = si.T
			continue
		}
		var b strings.Builder
		for _, r := range si.Runs {
			b.WriteString(r.T)
		}
		strs[i] = b.String()
	}

	t := &Table{Name: filepath.Base(name)}
	for ri, row := range sheet.Rows {
		var rec []string
		for ci, c := range row.Cells {
			idx := ci
			if c.Ref != "" {
				idx = colIndexFromRef(c.Ref)
			}
			if idx < 0 {
				continue
			}
			for len(rec) <= idx {
				rec = append(rec, "")
			}
			switch c.Type {
			case "s":
				if n := atoiSafe(c.Value); n >= 0 && n < len(strs) {
					rec[idx] = strs[n]
				}
			case "inlineStr":
				rec[idx] = c.Inline
			default:
				rec[idx] = c.Value
			}
		}
		if ri == 0 {
			t.Header = trimAll(rec)
			continue
		}
		if blank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// unmarshalZip decodes a workbook part. A missing part leaves v untouched.
func unmarshalZip(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := xml.Unmarshal(b, v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	}
	return nil
}

// colIndexFromRef maps a cell reference such as "C12" to a 0-based column.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// normalizeRelPath converts relationship targets ("/xl/worksheets/sheet1.xml",
// "worksheets/sheet1.xml") into zip entry names.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
