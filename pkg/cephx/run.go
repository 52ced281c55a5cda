/*
Copyright 2019 The Rook Authors. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cephx

import (
	"github.com/pkg/errors"
	"github.com/rook/cephx-key/pkg/clusterd"
	"github.com/rook/cephx-key/pkg/util/exec"
)

// CommandResult captures the outcome of one external command.
type CommandResult struct {
	Cmd    Command
	RC     int
	Stdout string
	Stderr string
}

// runCommands executes cmds in order and stops at the first one that exits
// non-zero, returning its result. Commands after the failing one are not run.
// On full success the last command's result is returned. The error return is
// reserved for commands that could not be run at all; a non-zero exit is
// reported through RC so callers can branch on it.
func runCommands(context *clusterd.Context, cmds []Command) (CommandResult, error) {
	var result CommandResult
	for _, cmd := range cmds {
		stdout, stderr, err := context.Executor.ExecuteCommandWithFullOutput(cmd.Name, cmd.Args...)
		result = CommandResult{Cmd: cmd, Stdout: stdout, Stderr: stderr}
		if err != nil {
			rc, ran := exec.ExitStatus(err)
			if !ran {
				return result, errors.Wrapf(err, "failed to run %q", cmd.String())
			}
			result.RC = rc
			return result, nil
		}
	}

	return result, nil
}
