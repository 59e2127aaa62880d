package normal

import (
	"fmt"
	"math"

	"github.com/uyouii/groupstats/common"
	"gonum.org/v1/gonum/stat/distuv"
)

// Quantiler is the inverse of the standard normal CDF.
type Quantiler interface {
	Quantile(p float64) float64
}

type Gonum struct{}

func (Gonum) Quantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// CriticalZ returns the two-sided critical value for the confidence level,
// e.g. 0.95 -> 1.959964.
func CriticalZ(q Quantiler, confidence float64) float64 {
	if q == nil {
		q = Gonum{}
	}
	return q.Quantile(1 - (1-confidence)/2)
}

func ValidConfidence(confidence float64) error {
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 1 {
		return common.ConfigurationError("confidence level %v outside (0,1)", confidence)
	}
	return nil
}

func ByName(name string) (Quantiler, error) {
	switch name {
	case "", "gonum":
		return Gonum{}, nil
	case "acklam":
		return Acklam{}, nil
	default:
		return nil, common.ConfigurationError("unknown quantile implementation %q", name)
	}
}

func Name(q Quantiler) string {
	switch q.(type) {
	case Gonum, *Gonum:
		return "gonum"
	case Acklam, *Acklam:
		return "acklam"
	}
	return fmt.Sprintf("%T", q)
}
