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
package exec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommandWithFullOutput(t *testing.T) {
	executor := &CommandExecutor{}

	stdout, stderr, err := executor.ExecuteCommandWithFullOutput("sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out", stdout)
	assert.Equal(t, "err", stderr)
}

func TestExecuteCommandWithFullOutputFailure(t *testing.T) {
	executor := &CommandExecutor{}

	stdout, stderr, err := executor.ExecuteCommandWithFullOutput("sh", "-c", "echo partial; echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "partial", stdout)
	assert.Equal(t, "broken", stderr)

	rc, ran := ExitStatus(err)
	assert.True(t, ran)
	assert.Equal(t, 3, rc)
}

func TestExitStatus(t *testing.T) {
	executor := &CommandExecutor{}

	_, err := executor.ExecuteCommandWithOutput("sh", "-c", "exit 5")
	rc, ran := ExitStatus(err)
	assert.True(t, ran)
	assert.Equal(t, 5, rc)

	// wrapped errors still expose their exit status
	rc, ran = ExitStatus(errors.Wrap(err, "wrapped"))
	assert.True(t, ran)
	assert.Equal(t, 5, rc)

	// a command that could not run at all has no exit status
	_, err = executor.ExecuteCommandWithOutput("/definitely/not/a/binary")
	_, ran = ExitStatus(err)
	assert.False(t, ran)
}
