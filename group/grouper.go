package group

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/uyouii/groupstats/accumulator"
	"github.com/uyouii/groupstats/common"
	"github.com/uyouii/groupstats/model"
	"github.com/uyouii/groupstats/normal"
	"github.com/uyouii/groupstats/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

type Option func(*Grouper)

func WithQuantiler(q normal.Quantiler) Option {
	return func(g *Grouper) {
		if q != nil {
			g.quantiler = q
		}
	}
}

// WithParallelism sets how many groups are finalized at once.
func WithParallelism(n int) Option {
	return func(g *Grouper) {
		if n > 0 {
			g.parallelism = n
		}
	}
}

// Grouper splits records by key into one accumulator.Group per key.
type Grouper struct {
	keyField    string
	fields      []string
	quantiler   normal.Quantiler
	parallelism int

	mu     sync.Mutex
	groups map[model.Key]*accumulator.Group
}

// NewGrouper returns a Grouper for records keyed by keyField. fields is the
// known schema, pre-registered on every new group; it may be empty.
func NewGrouper(keyField string, fields []string, opts ...Option) *Grouper {
	g := &Grouper{
		keyField:    keyField,
		fields:      fields,
		quantiler:   normal.Gonum{},
		parallelism: 1,
		groups:      map[model.Key]*accumulator.Group{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Grouper) KeyField() string {
	return g.keyField
}

func (g *Grouper) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.groups)
}

func (g *Grouper) group(key model.Key) *accumulator.Group {
	g.mu.Lock()
	defer g.mu.Unlock()

	grp, ok := g.groups[key]
	if !ok {
		grp = accumulator.NewGroup(key, g.fields)
		g.groups[key] = grp
	}
	return grp
}

// IngestRecord removes the key field from raw, normalizes it to a model.Key
// and adds the remaining values to that key's group.
func (g *Grouper) IngestRecord(raw map[string]string) error {
	rawKey, ok := raw[g.keyField]
	if !ok {
		return common.ConfigurationError("key field %q missing from record", g.keyField)
	}

	values := make(map[string]string, len(raw)-1)
	for field, value := range raw {
		if field != g.keyField {
			values[field] = value
		}
	}

	key := model.ParseKey(rawKey)
	return g.group(key).AddRecord(&model.Record{Key: key, Values: values})
}

func (g *Grouper) Ingest(ctx context.Context, records []map[string]string) error {
	logger := utils.GetLogger(ctx)

	for i, raw := range records {
		if err := g.IngestRecord(raw); err != nil {
			logger.Error("IngestRecord failed", zap.Int("record", i+1), zap.Error(err))
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	logger.Debug("ingest done", zap.Int("records", len(records)), zap.Int("groups", g.Len()))
	return nil
}

// FinalizeAll finalizes every group at the confidence level. Groups are
// independent, so they are sharded across up to parallelism goroutines.
func (g *Grouper) FinalizeAll(ctx context.Context, confidence float64) error {
	if err := normal.ValidConfidence(confidence); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelism)
	for _, grp := range g.Groups() {
		grp := grp
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return grp.Finalize(ctx, confidence, g.quantiler)
		})
	}
	return eg.Wait()
}

// Groups returns every group sorted by key.
func (g *Grouper) Groups() []*accumulator.Group {
	g.mu.Lock()
	groups := maps.Values(g.groups)
	g.mu.Unlock()

	slices.SortFunc(groups, func(a, b *accumulator.Group) int {
		return a.Key.Compare(b.Key)
	})
	return groups
}

// CollectResults builds one row per group, sorted by key.
func (g *Grouper) CollectResults() []model.Row {
	groups := g.Groups()
	rows := make([]model.Row, 0, len(groups))
	for _, grp := range groups {
		rows = append(rows, grp.Row())
	}
	return rows
}
