package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/runstats/internal/well"
)

// DefaultNull is the LAS null value used when ~W does not declare NULL.
const DefaultNull = -999.25

// ErrNoCurves is returned for LAS input without a ~C section.
var ErrNoCurves = errors.New("las: no curve definitions")

type lasHeaderLine struct {
	Mnemonic    string
	Unit        string
	Value       string
	Description string
}

// parseHeaderLine splits "MNEM.UNIT  VALUE : DESCRIPTION".
func parseHeaderLine(line string) (lasHeaderLine, bool) {
	dot := strings.Index(line, ".")
	if dot < 0 {
		return lasHeaderLine{}, false
	}
	h := lasHeaderLine{Mnemonic: strings.TrimSpace(line[:dot])}
	rest := line[dot+1:]
	// the unit runs up to the first space
	if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
		h.Unit = rest[:sp]
		rest = rest[sp:]
	} else {
		h.Unit = rest
		rest = ""
	}
	if colon := strings.LastIndex(rest, ":"); colon >= 0 {
		h.Description = strings.TrimSpace(rest[colon+1:])
		rest = rest[:colon]
	} else if colon := strings.Index(h.Unit, ":"); colon >= 0 {
		h.Unit = h.Unit[:colon]
	}
	h.Value = strings.TrimSpace(rest)
	return h, h.Mnemonic != ""
}

// ReadLAS parses a LAS 2.0 document. Wrapped and unwrapped data sections
// are both accepted; NULL readings become NaN.
func ReadLAS(r io.Reader) (*well.Log, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		section byte
		curves  []well.Curve
		null    = DefaultNull
		tokens  []string
		log     *well.Log
	)
	flush := func(force bool) {
		n := len(curves)
		for len(tokens) >= n {
			for i, c := range curves {
				log.Data[c.Mnemonic] = append(log.Data[c.Mnemonic], lasValue(tokens[i], null))
			}
			tokens = tokens[n:]
		}
		if force && len(tokens) > 0 {
			tokens = tokens[:0]
		}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line[0] == '~' {
			if len(line) < 2 {
				section = 0
				continue
			}
			section = upper(line[1])
			if section == 'A' {
				if len(curves) == 0 {
					return nil, ErrNoCurves
				}
				renameRepeats(curves)
				log = well.NewLog("", curves)
			}
			continue
		}
		switch section {
		case 'W':
			if h, ok := parseHeaderLine(line); ok && strings.EqualFold(h.Mnemonic, "NULL") {
				if v, err := strconv.ParseFloat(h.Value, 64); err == nil {
					null = v
				}
			}
		case 'C':
			if h, ok := parseHeaderLine(line); ok {
				curves = append(curves, well.Curve{Mnemonic: h.Mnemonic, Unit: h.Unit, Description: h.Description})
			}
		case 'A':
			tokens = append(tokens, strings.Fields(line)...)
			flush(false)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read las: %w", err)
	}
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	if log == nil {
		renameRepeats(curves)
		return well.NewLog("", curves), nil
	}
	flush(true)
	return log, nil
}

// renameRepeats numbers mnemonics that occur more than once, in file order:
// DEPT, GR, GR becomes DEPT, GR:1, GR:2.
func renameRepeats(curves []well.Curve) {
	total := map[string]int{}
	for _, c := range curves {
		total[c.Mnemonic]++
	}
	seen := map[string]int{}
	for i, c := range curves {
		if total[c.Mnemonic] < 2 {
			continue
		}
		seen[c.Mnemonic]++
		curves[i].Mnemonic = fmt.Sprintf("%s:%d", c.Mnemonic, seen[c.Mnemonic])
	}
}

func lasValue(tok string, null float64) float64 {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v == null {
		return math.NaN()
	}
	return v
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
