package accumulator

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/uyouii/groupstats/common"
	"github.com/uyouii/groupstats/model"
	"github.com/uyouii/groupstats/normal"
	"github.com/uyouii/groupstats/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// Group owns the statistics of every field for one key, plus the records
// that contributed to them.
type Group struct {
	Key model.Key

	fields  map[string]*FieldStatistics
	records []*model.Record
}

func NewGroup(key model.Key, fields []string) *Group {
	g := &Group{
		Key:    key,
		fields: make(map[string]*FieldStatistics, len(fields)),
	}
	for _, field := range fields {
		g.RegisterField(field)
	}
	return g
}

// RegisterField creates zeroed statistics for name if absent.
func (g *Group) RegisterField(name string) *FieldStatistics {
	if f, ok := g.fields[name]; ok {
		return f
	}
	f := NewFieldStatistics(name)
	g.fields[name] = f
	return f
}

func (g *Group) AddValue(field string, value float64) {
	g.RegisterField(field).AddValue(value)
}

// AddRecord keeps rec and adds every one of its values. A value that is not a
// number fails the whole record; "NaN" is a number and gets skipped.
func (g *Group) AddRecord(rec *model.Record) error {
	parsed := make(map[string]float64, len(rec.Values))
	for field, raw := range rec.Values {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return common.MalformedInput("add record", g.Key.String(), field, err)
		}
		parsed[field] = value
	}

	g.records = append(g.records, rec)
	for field, value := range parsed {
		g.AddValue(field, value)
	}
	return nil
}

// Finalize derives the statistics of every field at the confidence level.
func (g *Group) Finalize(ctx context.Context, confidence float64, q normal.Quantiler) error {
	logger := utils.GetLogger(ctx)

	for _, name := range g.Fields() {
		if err := g.fields[name].Finalize(g.Key, confidence, q); err != nil {
			logger.Error("Finalize field failed", zap.Stringer("key", g.Key),
				zap.String("field", name), zap.Error(err))
			return err
		}
	}
	return nil
}

// Fields returns the field names in byte order.
func (g *Group) Fields() []string {
	names := maps.Keys(g.fields)
	sort.Strings(names)
	return names
}

func (g *Group) Field(name string) (*FieldStatistics, bool) {
	f, ok := g.fields[name]
	return f, ok
}

func (g *Group) Records() []*model.Record {
	return g.records
}

// Row builds the output row: <field> is the mean, <field>_conf the interval half-width.
func (g *Group) Row() model.Row {
	columns := make(map[string]string, 2*len(g.fields))
	for name, f := range g.fields {
		columns[name] = f.FormattedMean()
		columns[name+model.ConfSuffix] = f.FormattedConfidenceInterval()
	}
	return model.Row{Key: g.Key, Columns: columns}
}

func (g *Group) Summaries() []model.FieldSummary {
	res := make([]model.FieldSummary, 0, len(g.fields))
	for _, name := range g.Fields() {
		res = append(res, g.fields[name].Summary())
	}
	return res
}

func errInsufficient(key model.Key, f *FieldStatistics) error {
	return common.InsufficientData(key.String(), f.Name, f.Count)
}
