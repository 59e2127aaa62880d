package table

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/uyouii/groupstats/model"
	"github.com/uyouii/groupstats/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// Columns returns the output header: keyField first, then every column of the
// first row in byte order, so "x", "x_conf" and "y" interleave as they sort.
func Columns(keyField string, rows []model.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	names := maps.Keys(rows[0].Columns)
	sort.Strings(names)

	res := make([]string, 0, len(names)+1)
	res = append(res, keyField)
	for _, name := range names {
		if name != keyField {
			res = append(res, name)
		}
	}
	return res
}

// Write stores rows at path. Nothing is created when rows is empty. The table
// is written to a temporary file first and renamed into place.
func Write(ctx context.Context, path, keyField string, rows []model.Row, delimiter rune) (err error) {
	logger := utils.GetLogger(ctx)

	if len(rows) == 0 {
		logger.Info("no results, skip writing output", zap.String("path", path))
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		logger.Error("create output failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer func() {
		if err != nil {
			multierr.AppendInto(&err, os.Remove(tmp.Name()))
		}
	}()

	if err = WriteTo(tmp, keyField, rows, delimiter); err != nil {
		multierr.AppendInto(&err, tmp.Close())
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		multierr.AppendInto(&err, tmp.Close())
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		logger.Error("rename output failed", zap.String("path", path), zap.Error(err))
		return err
	}

	logger.Info("output written", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func WriteTo(w io.Writer, keyField string, rows []model.Row, delimiter rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	columns := Columns(keyField, rows)
	if err := writer.Write(columns); err != nil {
		return err
	}
	line := make([]string, len(columns))
	for _, row := range rows {
		line[0] = row.Key.String()
		for i, column := range columns[1:] {
			line[i+1] = row.Columns[column]
		}
		if err := writer.Write(line); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
