package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var errMissingCell = errors.New("missing value")

// sheet is the first worksheet of a workbook with its header row indexed.
type sheet struct {
	cols map[string]int
	rows [][]string
}

// normalize folds "EMIs paid on Time" and "emis_paid_on_time" to the same key.
func normalize(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func readSheet(r io.Reader) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	// raw values keep dates as serial numbers whatever their display format
	rows, err := f.GetRows(names[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", names[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", names[0])
	}

	s := &sheet{cols: make(map[string]int, len(rows[0])), rows: rows[1:]}
	for i, h := range rows[0] {
		s.cols[normalize(h)] = i
	}
	return s, nil
}

// column resolves the first header present among names.
func (s *sheet) column(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := s.cols[normalize(n)]; ok {
			return i, true
		}
	}
	return 0, false
}

func (s *sheet) require(names ...string) (int, error) {
	i, ok := s.column(names...)
	if !ok {
		return 0, fmt.Errorf("missing column %q", names[0])
	}
	return i, nil
}

// row wraps one data row; a negative column index means "absent".
type row []string

func (r row) cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func (r row) blank() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r row) decimal(i int) (decimal.Decimal, error) {
	v := r.cell(i)
	if v == "" {
		return decimal.Zero, errMissingCell
	}
	return decimal.NewFromString(v)
}

func (r row) optDecimal(i int) (decimal.Decimal, error) {
	if r.cell(i) == "" {
		return decimal.Zero, nil
	}
	return r.decimal(i)
}

// integer accepts "12" as well as the "12.0" spreadsheets tend to produce.
func (r row) integer(i int) (int64, error) {
	d, err := r.decimal(i)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%s is not a whole number", d)
	}
	return d.IntPart(), nil
}

// digits renders numeric cells such as 9.629317944E9 as plain digits.
func (r row) digits(i int) string {
	v := r.cell(i)
	if d, err := decimal.NewFromString(v); err == nil && strings.ContainsAny(v, ".eE") {
		return d.String()
	}
	return v
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "01-02-06", "1/2/2006", "01/02/2006", "2/1/06"}

// date reads an Excel serial date or one of the common text layouts.
func (r row) date(i int) (time.Time, error) {
	v := r.cell(i)
	if v == "" {
		return time.Time{}, errMissingCell
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", v)
}
