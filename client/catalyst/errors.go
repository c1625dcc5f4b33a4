// Copyright 2024 ters-golemi
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package catalyst

import (
	"fmt"

	"github.com/pkg/errors"
)

// Authentication errors. A rejected token that survives one
// re-authentication attempt surfaces as ErrUnauthorized.
var (
	ErrInvalidCredentials = errors.New("catalyst: invalid credentials")
	ErrForbidden          = errors.New("catalyst: insufficient privileges")
	ErrUnauthorized       = errors.New("catalyst: token rejected after re-authentication")
)

// ErrTaskTimeout means the task did not reach a terminal state within the
// wait bound. The remote task may still be running; the outcome is unknown,
// not failed.
var ErrTaskTimeout = errors.New("catalyst: timed out waiting for task completion")

// TransportError wraps a connection or timeout failure talking to the
// controller.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalyst: transport error: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// OperationError is a terminal non-2xx response from the controller.
type OperationError struct {
	Status int
	Body   string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("catalyst: operation failed with status %d: %s",
		e.Status, e.Body)
}

// TaskError is a task that completed with its error flag set.
type TaskError struct {
	Reason string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("catalyst: task failed: %s", e.Reason)
}
