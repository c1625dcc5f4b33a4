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
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForTaskSuccess(t *testing.T) {
	t.Parallel()

	var polls int32
	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(taskURI+"task-1", func(w http.ResponseWriter, r *http.Request) {
		task := Task{ID: "task-1", StartTime: 1000, Progress: "working"}
		if atomic.AddInt32(&polls, 1) >= 3 {
			task.EndTime = 2000
			task.Data = "site-123"
		}
		_ = json.NewEncoder(w).Encode(taskResponse{Response: task})
	})

	client := stub.client(ClientOptions{PollInterval: time.Millisecond})
	data, err := client.WaitForTask(context.Background(), "task-1", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "site-123", data)
	assert.Equal(t, int32(3), atomic.LoadInt32(&polls))
}

func TestWaitForTaskFailure(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(taskURI+"task-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(taskResponse{Response: Task{
			ID:            "task-1",
			StartTime:     1000,
			EndTime:       2000,
			IsError:       true,
			FailureReason: "X",
		}})
	})

	client := stub.client(ClientOptions{PollInterval: time.Millisecond})
	_, err := client.WaitForTask(context.Background(), "task-1", time.Second)
	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "X", taskErr.Reason)
	assert.NotErrorIs(t, err, ErrTaskTimeout)
}

func TestWaitForTaskTimeout(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(taskURI+"task-1", func(w http.ResponseWriter, r *http.Request) {
		// never terminal
		_ = json.NewEncoder(w).Encode(taskResponse{Response: Task{
			ID:        "task-1",
			StartTime: 1000,
		}})
	})

	const maxWait = 50 * time.Millisecond
	client := stub.client(ClientOptions{PollInterval: 10 * time.Millisecond})

	start := time.Now()
	_, err := client.WaitForTask(context.Background(), "task-1", maxWait)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, ErrTaskTimeout)
	// the timeout outcome must not be reported early
	assert.GreaterOrEqual(t, elapsed, maxWait)
}

func TestWaitForTaskContextCanceled(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(taskURI+"task-1", func(w http.ResponseWriter, r *http.Request) {
		// never terminal
		_ = json.NewEncoder(w).Encode(taskResponse{Response: Task{
			ID:        "task-1",
			StartTime: 1000,
		}})
	})

	client := stub.client(ClientOptions{PollInterval: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := client.WaitForTask(ctx, "task-1", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	// an interrupted wait is not a failure to reach the controller
	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
	assert.NotErrorIs(t, err, ErrTaskTimeout)
}

func TestWaitForTaskPollError(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(taskURI+"task-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := stub.client(ClientOptions{PollInterval: time.Millisecond})
	_, err := client.WaitForTask(context.Background(), "task-1", time.Second)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusInternalServerError, opErr.Status)
}
