/*
Copyright 2016 The Rook Authors. All rights reserved.

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

// Package exec runs external commands on the host.
package exec

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/coreos/pkg/capnslog"
)

var logger = capnslog.NewPackageLogger("github.com/rook/cephx-key", "exec")

// Executor is the interface for running external commands. The ceph tools are
// always invoked through this interface so tests can substitute a mock.
type Executor interface {
	ExecuteCommandWithOutput(command string, arg ...string) (string, error)
	ExecuteCommandWithFullOutput(command string, arg ...string) (string, string, error)
}

// CommandExecutor is the executor for running commands directly on the host.
type CommandExecutor struct{}

// ExecuteCommandWithOutput runs a command and returns its trimmed stdout.
func (*CommandExecutor) ExecuteCommandWithOutput(command string, arg ...string) (string, error) {
	cmd := exec.Command(command, arg...)
	logCommand(command, arg...)

	output, err := cmd.Output()
	return strings.TrimSpace(string(output)), err
}

// ExecuteCommandWithFullOutput runs a command and returns its trimmed stdout
// and stderr separately. The error is returned unwrapped so callers can
// recover the exit status with ExitStatus.
func (*CommandExecutor) ExecuteCommandWithFullOutput(command string, arg ...string) (string, string, error) {
	cmd := exec.Command(command, arg...)
	logCommand(command, arg...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err
}

func logCommand(command string, arg ...string) {
	logger.Debugf("Running command: %s %s", command, strings.Join(arg, " "))
}
