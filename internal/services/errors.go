package services

import "errors"

var (
	// ErrNoData indicates no retrospective exports were loaded.
	ErrNoData = errors.New("no retrospective data available")
	// ErrQuestionNotFound indicates the question exists in no loaded period.
	ErrQuestionNotFound = errors.New("question not present in any loaded period")
	// ErrNoTrendData indicates the question exists but no period
	// produced a distribution for it.
	ErrNoTrendData = errors.New("no trend data available for question")
)
