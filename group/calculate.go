package group

import (
	"context"
	"fmt"

	"github.com/uyouii/groupstats/common"
	"github.com/uyouii/groupstats/model"
	"github.com/uyouii/groupstats/table"
	"github.com/uyouii/groupstats/utils"
	"go.uber.org/zap"
)

// Calculate groups t by keyField, finalizes every group at the confidence
// level and returns the result rows sorted by key. Either every row is
// returned or an error is.
func Calculate(ctx context.Context, t *table.Table, keyField string, confidence float64,
	opts ...Option) (rows []model.Row, grouper *Grouper, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Calculate recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			rows, grouper, err = nil, nil, fmt.Errorf("calculate: %v", r)
		}
	}()

	if len(t.Header) > 0 && !t.HasField(keyField) {
		return nil, nil, common.ConfigurationError("key field %q not in header %v", keyField, t.Header)
	}

	grouper = NewGrouper(keyField, t.Fields(keyField), opts...)
	if err := grouper.Ingest(ctx, t.Records); err != nil {
		return nil, nil, err
	}
	if err := grouper.FinalizeAll(ctx, confidence); err != nil {
		logger.Error("FinalizeAll failed", zap.Error(err))
		return nil, nil, err
	}

	rows = grouper.CollectResults()
	logger.Info("statistics calculated", zap.Int("groups", len(rows)),
		zap.Int("records", len(t.Records)), zap.Float64("confidence", confidence))
	return rows, grouper, nil
}

// LogStatistics dumps every group's records and field statistics at debug level.
func LogStatistics(ctx context.Context, g *Grouper) {
	logger := utils.GetLogger(ctx)

	for _, grp := range g.Groups() {
		for _, rec := range grp.Records() {
			logger.Debug("record", zap.String("record", rec.DebugString()))
		}
		for _, s := range grp.Summaries() {
			logger.Debug("field statistics", zap.Stringer("key", grp.Key),
				zap.String("field", s.Field), zap.Int("count", s.Count),
				zap.Float64("sum", s.Sum), zap.Float64("square_sum", s.SumOfSquares),
				zap.Float64("mean", utils.RoundFloat(s.Mean, 6)),
				zap.Float64("variance", utils.RoundFloat(s.Variance, 6)),
				zap.Float64("standard_deviation", utils.RoundFloat(s.StdDeviation, 6)),
				zap.Float64("conf", utils.RoundFloat(s.ConfidenceInterval, 6)),
				zap.Any("bounds", s.Bounds))
		}
	}
}
