package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/pkg/timeutil"
	"github.com/docbrief/docbrief/internal/service"
)

const backfillBatchSize = 10

// SummaryBackfillJob picks up documents whose inline summarization failed at
// upload time and attaches a summary. Uploads younger than delaySeconds are
// left alone so the job never races an in-flight request.
type SummaryBackfillJob struct {
	documents    *service.DocumentService
	delaySeconds int64
}

func NewSummaryBackfillJob(documents *service.DocumentService, delaySeconds int64) *SummaryBackfillJob {
	return &SummaryBackfillJob{documents: documents, delaySeconds: delaySeconds}
}

func (j *SummaryBackfillJob) Name() string {
	return "summary_backfill"
}

func (j *SummaryBackfillJob) Run(ctx context.Context) error {
	if j.documents == nil {
		return nil
	}
	cutoff := timeutil.NowUnix() - j.delaySeconds
	done, err := j.documents.ProcessPendingSummaries(ctx, backfillBatchSize, cutoff)
	if err != nil {
		return err
	}
	if done > 0 {
		logutil.GetLogger(ctx).Info("backfilled summaries", zap.Int("count", done))
	}
	return nil
}
