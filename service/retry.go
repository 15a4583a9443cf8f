package service

import (
	"context"
	"errors"

	"vod-packager/constant"
)

// RetryPolicy decides whether a failed job may be handed back to the
// trigger infrastructure for redelivery.
type RetryPolicy interface {
	Retryable(err error) bool
}

type stagePolicy struct {
	retryable map[constant.JobStage]bool
}

// DefaultRetryPolicy retries transient infrastructure failures and gives up
// on deterministic ones: a transcode that failed on bad input will fail the
// same way on every redelivery.
func DefaultRetryPolicy() RetryPolicy {
	return &stagePolicy{
		retryable: map[constant.JobStage]bool{
			constant.StageFetching:       true,
			constant.StagePublishing:     true,
			constant.StageCatalogWriting: true,
			constant.StageTranscoding:    false,
			constant.StageRewriting:      false,
		},
	}
}

func (p *stagePolicy) Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNonRetryable) {
		return false
	}
	// A job that blew its wall-clock budget will blow it again.
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StageError
	if errors.As(err, &se) {
		if r, ok := p.retryable[se.Stage]; ok {
			return r
		}
	}
	return true
}
