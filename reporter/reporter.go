// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reporter provides the error/warning plumbing shared by every
// rule validator: a Handler through which validators report problems at a
// source position, without each validator needing to know what happens to
// the error afterwards (abort immediately, or keep collecting).
package reporter

import (
	"fmt"

	"github.com/truewebber/swift-protoparser-sub001/ast"
)

// ErrorReporter is invoked for each error encountered. If it returns nil,
// processing continues (useful for accumulating multiple errors). If it
// returns non-nil, that error is returned by the operation in progress and
// processing stops. Per spec.md §7, the validator's own ErrorReporter
// always returns the error unchanged: the core is fail-fast.
type ErrorReporter func(ErrorWithPos) error

// WarningReporter is invoked for each warning encountered. Warnings never
// abort processing.
type WarningReporter func(ErrorWithPos)

// Handler tracks error and warning reporters for a single operation (one
// call to Validate) and the first error produced, if any.
type Handler struct {
	errRep  ErrorReporter
	warnRep WarningReporter
	err     error
}

// NewHandler creates a Handler. A nil errRep defaults to fail-fast (return
// the error as given). A nil warnRep discards warnings.
func NewHandler(errRep ErrorReporter, warnRep WarningReporter) *Handler {
	return &Handler{errRep: errRep, warnRep: warnRep}
}

// HandleError reports err, which must carry a source position (use Error
// or Errorf to attach one to a plain error first). If a non-nil error is
// returned, the caller must stop and propagate it.
func (h *Handler) HandleError(err ErrorWithPos) error {
	if h.err != nil {
		// Already failed; fail-fast means nothing further is reported.
		return h.err
	}
	var reportErr error
	if h.errRep != nil {
		reportErr = h.errRep(err)
	} else {
		reportErr = err
	}
	if reportErr != nil {
		h.err = reportErr
	}
	return reportErr
}

// HandleErrorf is a convenience wrapper that builds the error with Errorf
// before reporting it.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleWarning reports a non-fatal condition.
func (h *Handler) HandleWarning(err ErrorWithPos) {
	if h.warnRep != nil {
		h.warnRep(err)
	}
}

// Error returns the first error reported, or nil if none has been.
func (h *Handler) Error() error {
	return h.err
}

// ErrInvalidSource is a sentinel for "one or more errors were reported
// through the Handler". Validate does not return it; it returns the first
// reported error instead.
var ErrInvalidSource = fmt.Errorf("parse failed: invalid proto source")
