package dataset

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// ChaosOutcome is the request tally of one fault-injection run. The only way to
// obtain a non-zero value is NewChaosOutcome, which enforces
// succeeded + failed == total.
type ChaosOutcome struct {
	total     int
	succeeded int
	failed    int
}

// NewChaosOutcome validates and returns a ChaosOutcome.
func NewChaosOutcome(total, succeeded, failed int) (ChaosOutcome, error) {
	var result *multierror.Error
	if total <= 0 {
		result = multierror.Append(result, fieldErr("chaos.total", "must be positive", "> 0", strconv.Itoa(total)))
	}
	if succeeded < 0 {
		result = multierror.Append(result, fieldErr("chaos.succeeded", "must not be negative", ">= 0", strconv.Itoa(succeeded)))
	}
	if failed < 0 {
		result = multierror.Append(result, fieldErr("chaos.failed", "must not be negative", ">= 0", strconv.Itoa(failed)))
	}
	if succeeded+failed != total {
		result = multierror.Append(result, fieldErr("chaos",
			"succeeded + failed must equal total",
			fmt.Sprintf("succeeded + failed = %d", total),
			fmt.Sprintf("%d + %d = %d", succeeded, failed, succeeded+failed)))
	}
	if err := result.ErrorOrNil(); err != nil {
		return ChaosOutcome{}, err
	}
	return ChaosOutcome{total: total, succeeded: succeeded, failed: failed}, nil
}

func (c ChaosOutcome) Total() int     { return c.total }
func (c ChaosOutcome) Succeeded() int { return c.succeeded }
func (c ChaosOutcome) Failed() int    { return c.failed }

// FailureRate returns failed/total as a percentage.
func (c ChaosOutcome) FailureRate() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.failed) / float64(c.total) * 100
}
