// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmterr

import (
	"sync"

	"go.uber.org/multierr"
)

type (
	contextError struct {
		f    func(error) error
		errs error
	}

	// Errors is a set of errors.
	// It is safe to append errors from multiple goroutines.
	Errors struct {
		mut   sync.Mutex
		stack []contextError
		errs  error
	}
)

// Push a new context in the error stack.
// Errors appended until the matching Pop are transformed by f.
func (errs *Errors) Push(f func(error) error) {
	errs.mut.Lock()
	defer errs.mut.Unlock()
	errs.stack = append(errs.stack, contextError{f: f})
}

// Pop removes the last error context in the stack.
func (errs *Errors) Pop() {
	errs.mut.Lock()
	last := errs.stack[len(errs.stack)-1]
	errs.stack = errs.stack[:len(errs.stack)-1]
	errs.mut.Unlock()
	for _, err := range multierr.Errors(last.errs) {
		errs.Append(last.f(err))
	}
}

// Append an error to the list of errors.
// Returns false so that it can be used as a return value for failed checks.
func (errs *Errors) Append(err error) bool {
	if err == nil {
		return true
	}
	errs.mut.Lock()
	defer errs.mut.Unlock()
	if len(errs.stack) == 0 {
		errs.errs = multierr.Append(errs.errs, err)
	} else {
		top := &errs.stack[len(errs.stack)-1]
		top.errs = multierr.Append(top.errs, err)
	}
	return false
}

// Empty returns true if no error has been appended.
func (errs *Errors) Empty() bool {
	errs.mut.Lock()
	defer errs.mut.Unlock()
	if errs.errs != nil {
		return false
	}
	for _, st := range errs.stack {
		if st.errs != nil {
			return false
		}
	}
	return true
}

// Errors returns the list of all collected errors.
func (errs *Errors) Errors() []error {
	errs.mut.Lock()
	defer errs.mut.Unlock()
	all := multierr.Errors(errs.errs)
	for _, st := range errs.stack {
		for _, err := range multierr.Errors(st.errs) {
			all = append(all, st.f(err))
		}
	}
	return all
}

// ToError returns the errors as an error interface.
// It returns nil if no error has been appended.
func (errs *Errors) ToError() error {
	if errs == nil {
		return nil
	}
	return multierr.Combine(errs.Errors()...)
}
