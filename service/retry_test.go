package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"vod-packager/constant"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	cause := errors.New("boom")

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"fetch failure", stageErr(constant.StageFetching, cause), true},
		{"publish failure", stageErr(constant.StagePublishing, cause), true},
		{"catalog failure", stageErr(constant.StageCatalogWriting, cause), true},
		{"codec failure", permanentStageErr(constant.StageTranscoding, cause), false},
		{"rewrite failure", permanentStageErr(constant.StageRewriting, cause), false},
		{"bare non-retryable", errors.Join(ErrNonRetryable, cause), false},
		{"budget exhausted", stageErr(constant.StagePublishing, context.DeadlineExceeded), false},
		{"unclassified error", cause, true},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, policy.Retryable(tt.err))
		})
	}
}

func TestStageOf(t *testing.T) {
	assert.Equal(t, constant.StagePublishing, stageOf(stageErr(constant.StagePublishing, errors.New("x"))))
	assert.Equal(t, constant.StageFailed, stageOf(errors.New("unclassified")))
}
