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
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
)

// WaitForTask polls the task until it reaches a terminal state or maxWait
// of wall-clock time has passed. A terminal task with the error flag set
// yields a TaskError with the recorded failure reason; exceeding maxWait
// yields ErrTaskTimeout. The remote task is never canceled on timeout.
// Progress strings are logged as they change, not stored.
func (c *client) WaitForTask(
	ctx context.Context,
	taskID string,
	maxWait time.Duration,
) (string, error) {
	l := log.FromContext(ctx)

	start := c.clock.Now()
	var lastProgress string
	for c.clock.Now().Sub(start) < maxWait {
		body, _, err := c.do(
			ctx, http.MethodGet, taskURI+taskID, nil, c.requestTimeout,
		)
		if err != nil {
			return "", errors.Wrapf(err, "status poll for task %s failed", taskID)
		}
		var rsp taskResponse
		if err := json.Unmarshal(body, &rsp); err != nil {
			return "", errors.Wrap(err, "error parsing task status response")
		}
		task := rsp.Response

		if task.Terminal() {
			if task.IsError {
				return "", &TaskError{Reason: task.FailureReason}
			}
			l.Infof("task %s completed", taskID)
			return task.Data, nil
		}
		if task.Progress != "" && task.Progress != lastProgress {
			l.Infof("task %s progress: %s", taskID, task.Progress)
			lastProgress = task.Progress
		}

		select {
		case <-ctx.Done():
			return "", errors.Wrapf(ctx.Err(),
				"poll for task %s interrupted", taskID)
		case <-time.After(c.pollInterval):
		}
	}
	l.Warnf("task %s still running after %s, outcome unknown",
		taskID, maxWait)
	return "", ErrTaskTimeout
}
