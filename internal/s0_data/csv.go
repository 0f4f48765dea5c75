package s0_data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/wonny/sleep-impact/internal/contracts"
)

// missingTokens 결측으로 취급하는 셀 값
var missingTokens = []string{"", "NA", "NaN", "nan", "<nil>", "null"}

var errNoHeader = errors.New("empty file: no header row")

// table CSV 한 파일을 문자열 컬럼으로 읽은 결과
// 타입 변환은 컬럼별로 호출자가 수행 (DataLoadError에 line/column을 싣기 위해)
type table struct {
	path    string
	columns []string
	df      dataframe.DataFrame
	rows    int
}

// readTable reads path as a headered CSV. Every column in required must be
// present. A file that holds only a header yields a table with zero rows.
func readTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &contracts.DataLoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, &contracts.DataLoadError{Path: path, Line: perr.Line, Err: perr.Err}
		}
		return nil, &contracts.DataLoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &contracts.DataLoadError{Path: path, Err: errNoHeader}
	}

	header := records[0]
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = name
	}

	t := &table{path: path, columns: header, rows: len(records) - 1}

	for _, col := range required {
		if !t.has(col) {
			return nil, &contracts.DataLoadError{
				Path:   path,
				Column: col,
				Err:    fmt.Errorf("missing required column (have %s)", strings.Join(header, ", ")),
			}
		}
	}

	if t.rows == 0 {
		return t, nil
	}

	t.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if t.df.Err != nil {
		return nil, &contracts.DataLoadError{Path: path, Err: t.df.Err}
	}

	return t, nil
}

func (t *table) has(col string) bool {
	for _, c := range t.columns {
		if c == col {
			return true
		}
	}
	return false
}

// line maps a 0-based data row to its 1-based line in the file.
func (t *table) line(row int) int {
	return row + 2
}

// cells returns the raw cells of col. ok[i] is false for missing cells.
func (t *table) cells(col string) (vals []string, ok []bool, err error) {
	vals = make([]string, t.rows)
	ok = make([]bool, t.rows)
	if t.rows == 0 {
		return vals, ok, nil
	}

	s := t.df.Col(col)
	if s.Err != nil {
		return nil, nil, &contracts.DataLoadError{Path: t.path, Column: col, Err: s.Err}
	}

	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := strings.TrimSpace(e.String())
		if isMissingToken(v) {
			continue
		}
		vals[i] = v
		ok[i] = true
	}
	return vals, ok, nil
}

// floats parses col as float64 values. Missing cells and NaN become
// contracts.Missing; ±Inf is a load error.
func (t *table) floats(col string) ([]contracts.Float, error) {
	vals, ok, err := t.cells(col)
	if err != nil {
		return nil, err
	}

	out := make([]contracts.Float, len(vals))
	for i, v := range vals {
		if !ok[i] {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &contracts.DataLoadError{
				Path:   t.path,
				Line:   t.line(i),
				Column: col,
				Err:    fmt.Errorf("parse %q as number", v),
			}
		}
		if math.IsNaN(f) {
			continue
		}
		if math.IsInf(f, 0) {
			return nil, &contracts.DataLoadError{
				Path:   t.path,
				Line:   t.line(i),
				Column: col,
				Err:    fmt.Errorf("non-finite value %q", v),
			}
		}
		out[i] = contracts.Some(f)
	}
	return out, nil
}

func isMissingToken(v string) bool {
	for _, tok := range missingTokens {
		if v == tok {
			return true
		}
	}
	return false
}
