package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/fulfillment"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
)

// ResultPartitioner splits a fulfillment response into disjoint success and
// failure cohorts by status tag. Records carrying any other status value
// belong to neither cohort and are logged as a warning instead of being
// dropped silently.
type ResultPartitioner struct {
	logger *slog.Logger
}

// NewResultPartitioner creates a partitioner logging through the given logger.
func NewResultPartitioner(logger *slog.Logger) ResultPartitioner {
	return ResultPartitioner{
		logger: logger.With("component", "result_partitioner"),
	}
}

// Partition splits results into cohorts. For every input, success cohort,
// failure cohort, and the warn-logged unrecognized records together account
// for the full input, and the two cohorts never overlap.
func (p ResultPartitioner) Partition(
	ctx context.Context, rc kernel.RunContext, results []fulfillment.Result,
) fulfillment.Cohorts {
	var cohorts fulfillment.Cohorts
	unrecognized := make(map[fulfillment.Status]int)

	for _, r := range results {
		switch r.Status {
		case fulfillment.StatusSuccess:
			cohorts.Succeeded = append(cohorts.Succeeded, r)
		case fulfillment.StatusFailed:
			cohorts.Failed = append(cohorts.Failed, r)
		default:
			unrecognized[r.Status]++
		}
	}

	if len(unrecognized) > 0 {
		p.logger.WarnContext(ctx, "fulfillment results with unrecognized status excluded from cohorts",
			"job", rc.JobLabel(),
			"run_id", rc.RunID().String(),
			"statuses", fmt.Sprintf("%v", unrecognized),
		)
	}

	return cohorts
}
