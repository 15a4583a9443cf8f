package service

import (
	"errors"
	"fmt"

	"vod-packager/constant"
)

// ErrNonRetryable marks failures that are deterministic for a given input,
// such as a corrupt upload. Redelivering the event would fail the same way.
var ErrNonRetryable = errors.New("non-retryable error")

// StageError records which pipeline stage a job died in.
type StageError struct {
	Stage constant.JobStage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage constant.JobStage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

func permanentStageErr(stage constant.JobStage, err error) error {
	return &StageError{Stage: stage, Err: errors.Join(ErrNonRetryable, err)}
}

func stageOf(err error) constant.JobStage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return constant.StageFailed
}
