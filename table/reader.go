package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/uyouii/groupstats/common"
	"github.com/uyouii/groupstats/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const DefaultDelimiter = ','

// Table is a header plus one map per data row, keyed by header name.
type Table struct {
	Header  []string
	Records []map[string]string
}

func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Records) == 0
}

// Fields returns every header name except keyField, in header order.
func (t *Table) Fields(keyField string) []string {
	res := make([]string, 0, len(t.Header))
	for _, name := range t.Header {
		if name != keyField {
			res = append(res, name)
		}
	}
	return res
}

func (t *Table) HasField(name string) bool {
	return slices.Contains(t.Header, name)
}

// Read loads path as an xlsx workbook when it ends in .xlsx, otherwise as
// delimited text.
func Read(ctx context.Context, path string, delimiter rune) (*Table, error) {
	logger := utils.GetLogger(ctx)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXlsx(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("open input failed", zap.String("path", path), zap.Error(err))
		return nil, common.ConfigurationError("open input: %w", err)
	}
	defer f.Close()

	return ReadFrom(f, delimiter)
}

// ReadFrom parses delimited text. Leading whitespace after a delimiter is dropped.
func ReadFrom(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, common.MalformedInput("read header", "", "", err)
	}

	t := &Table{Header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.MalformedInput("read row", "", "", err)
		}
		t.Records = append(t.Records, toRecord(header, row))
	}
	return t, nil
}

func readXlsx(ctx context.Context, path string) (*Table, error) {
	logger := utils.GetLogger(ctx)

	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Error("excelize.OpenFile failed", zap.String("path", path), zap.Error(err))
		return nil, common.ConfigurationError("open input: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, common.MalformedInput("read sheet", "", "", err)
	}
	return fromRows(rows)
}

// fromRows builds a Table from already split rows. Workbook rows drop trailing
// empty cells, so short rows are padded; long rows are an error.
func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return &Table{}, nil
	}
	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimLeft(name, " \t")
	}

	t := &Table{Header: header}
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if len(row) > len(header) {
			return nil, common.MalformedInput("read row", "", "",
				fmt.Errorf("row %d has %d cells, header has %d", i+2, len(row), len(header)))
		}
		t.Records = append(t.Records, toRecord(header, row))
	}
	return t, nil
}

func toRecord(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(row) {
			rec[name] = strings.TrimLeft(row[i], " \t")
		} else {
			rec[name] = ""
		}
	}
	return rec
}
