// pkg/task/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package task

import "errors"

var (
	ErrIndexOutOfRange  = errors.New("task point index out of range")
	ErrNoStartPoint     = errors.New("task has no Start point")
	ErrMultipleStarts   = errors.New("task has more than one Start point")
	ErrMultipleFinishes = errors.New("task has more than one Finish point")
	ErrStartNotFirst    = errors.New("Start point must be first in task")
	ErrFinishNotLast    = errors.New("Finish point must be last in task")
	ErrWrongKindForAAT  = errors.New("intermediate point kind does not match task's AAT mode")
	ErrEmptyTask        = errors.New("task has no points")
	ErrInvalidFix       = errors.New("aircraft fix location is not valid")
	ErrPEVIgnored       = errors.New("pilot event ignored by start-gate rules")
	ErrNotAAT           = errors.New("task point is not an AAT point")
)

var errorStringToError = map[string]error{
	ErrIndexOutOfRange.Error():  ErrIndexOutOfRange,
	ErrNoStartPoint.Error():     ErrNoStartPoint,
	ErrMultipleStarts.Error():   ErrMultipleStarts,
	ErrMultipleFinishes.Error(): ErrMultipleFinishes,
	ErrStartNotFirst.Error():    ErrStartNotFirst,
	ErrFinishNotLast.Error():    ErrFinishNotLast,
	ErrWrongKindForAAT.Error():  ErrWrongKindForAAT,
	ErrEmptyTask.Error():        ErrEmptyTask,
	ErrInvalidFix.Error():       ErrInvalidFix,
	ErrPEVIgnored.Error():       ErrPEVIgnored,
	ErrNotAAT.Error():           ErrNotAAT,
}

// ErrorFromString looks up one of this package's sentinel errors by its
// message text, for callers (tests, RPC boundaries) that only have the
// string form.
func ErrorFromString(s string) (error, bool) {
	err, ok := errorStringToError[s]
	return err, ok
}
