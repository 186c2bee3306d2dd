// Copyright the gdlk-lang contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package spec

import (
	"fmt"
	"strings"
)

// Validatable is implemented by the descriptor records of this package.  The
// method is unexported on purpose: only types in this package can be wrapped
// by Valid, and only Validate can construct the wrapper.
type Validatable interface {
	validate() ValidationErrors
}

// Valid wraps a descriptor which has passed validation.  Downstream
// components (compiler, machine) accept only the wrapped form, so validation
// cannot be skipped or repeated inconsistently.  The zero value of Valid
// holds the zero descriptor, which is only obtainable through Validate for
// descriptors whose zero value actually validates; constructing a Valid any
// other way is not possible outside this package.
type Valid[T Validatable] struct {
	inner T
}

// Validate checks a descriptor against its field rules and wraps it on
// success. All fields are checked; errors are reported together rather than
// one at a time. Validating the inner value of an existing wrapper succeeds
// with an identical result.
func Validate[T Validatable](value T) (Valid[T], error) {
	if errs := value.validate(); len(errs) > 0 {
		return Valid[T]{}, errs
	}
	//
	return Valid[T]{value}, nil
}

// Inner returns the validated descriptor.
func (p Valid[T]) Inner() T {
	return p.inner
}

// ValidationErrors is the set of field-level problems found in one descriptor.
type ValidationErrors []FieldError

// Error implements the error interface, rendering one message per field.
func (p ValidationErrors) Error() string {
	msgs := make([]string, len(p))
	//
	for i, e := range p {
		msgs[i] = e.Error()
	}
	//
	return strings.Join(msgs, "\n")
}

func (p ValidationErrors) report(field, format string, args ...any) ValidationErrors {
	return append(p, FieldError{field, fmt.Sprintf(format, args...)})
}

// FieldError reports a single invalid field.
type FieldError struct {
	// Name of the offending field, in its serialized form.
	Field string
	// Human-readable constraint which was violated.
	Message string
}

// Error implements the error interface.
func (p FieldError) Error() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}
