package model

import "fmt"

// ConfSuffix is appended to a field name for its confidence interval column.
const ConfSuffix = "_conf"

type ConfidenceInterval struct {
	Lower float64 `json:"l"`
	Upper float64 `json:"u"`
	Level float64 `json:"level"`
}

// Record is one input row with the key column already removed.
type Record struct {
	Key    Key
	Values map[string]string
}

func (r *Record) DebugString() string {
	return fmt.Sprintf("key: %v, values: %+v", r.Key, r.Values)
}

type FieldSummary struct {
	Field              string             `json:"field"`
	Count              int                `json:"count"`
	Sum                float64            `json:"sum"`
	SumOfSquares       float64            `json:"square_sum"`
	Mean               float64            `json:"mean"`
	Variance           float64            `json:"variance"`
	StdDeviation       float64            `json:"standard_deviation"`
	ConfidenceInterval float64            `json:"conf"`
	Bounds             ConfidenceInterval `json:"bounds"`
}

// Row is one output line: the group key and formatted column values.
type Row struct {
	Key     Key
	Columns map[string]string
}

func (r *Row) Get(column string) (string, bool) {
	if r == nil || r.Columns == nil {
		return "", false
	}
	v, ok := r.Columns[column]
	return v, ok
}

func (r *Row) IsEmpty() bool {
	if r == nil {
		return true
	}
	return len(r.Columns) == 0
}
