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

// Package fmterr classifies and accumulates the errors raised while
// building tensor expressions.
//
// Every construction failure is either a shape error (incompatible ranks
// or dimensions), an index error (illegal index pattern), or an internal
// error (a bug in the engine). Internal errors are never caused by user
// input.
package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// PrefixWith returns a function to prefix errors with a formatted string.
// The kind of the error, if any, is preserved.
func PrefixWith(s string, o ...any) func(err error) error {
	prefix := fmt.Sprintf(s, o...)
	return func(err error) error {
		if err == nil {
			return nil
		}
		kind := KindOf(err)
		wrapped := errors.Wrap(unwrapKind(err), prefix)
		if kind == Unknown {
			return wrapped
		}
		return WithKind(kind, wrapped)
	}
}

func unwrapKind(err error) error {
	withKind, ok := err.(ErrorWithKind)
	if !ok {
		return err
	}
	return withKind.Err()
}
