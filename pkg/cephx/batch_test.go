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
	"os"
	"path/filepath"
	"testing"

	"github.com/rook/cephx-key/pkg/clusterd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBatchFile = `
- name: client.key
  key: AQAin8tUUK84ExAA/QgBtI7gEMWdmnvKBzlXdQ==
  caps: {mon: "allow rwx", mds: "allow *"}
  mode: "0600"
- name: client.cle
  caps: {mon: "allow r", osd: "allow *"}
  mode: "0400"
`

func TestLoadKeySpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testBatchFile), 0o600))

	specs, err := LoadKeySpecs(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "client.key", specs[0].Name)
	assert.Equal(t, "AQAin8tUUK84ExAA/QgBtI7gEMWdmnvKBzlXdQ==", specs[0].Key)
	assert.Equal(t, map[string]string{"mon": "allow rwx", "mds": "allow *"}, specs[0].Caps)

	assert.Equal(t, "client.cle", specs[1].Name)
	assert.Empty(t, specs[1].Key)
	assert.Equal(t, "0400", specs[1].Mode)
}

func TestLoadKeySpecsRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: client.a\n  nonsense: true\n"), 0o600))

	_, err := LoadKeySpecs(path)
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	var executed []Command
	context := &clusterd.Context{Executor: mockKeyExecutor(t, false, &executed)}

	base := DefaultConfig()
	base.ImportKey = false
	base.Dest = t.TempDir()

	specs := []KeySpec{
		{Name: "client.key", Key: "AQAin8tUUK84ExAA/QgBtI7gEMWdmnvKBzlXdQ==", Caps: map[string]string{"mon": "allow rwx"}},
		{Name: "client.cle", Caps: map[string]string{"mon": "allow r"}, Mode: "0400"},
	}

	results, err := RunBatch(context, base, specs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.True(t, results[1].Changed)
	assert.Equal(t, specs[0].Key, results[0].Key)

	// each key got its own file and mode
	info, err := os.Stat(KeyringPath(base.Dest, base.Cluster, "client.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	info, err = os.Stat(KeyringPath(base.Dest, base.Cluster, "client.cle"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())
}

func TestRunBatchInvalidMode(t *testing.T) {
	context := &clusterd.Context{Executor: mockKeyExecutor(t, false, &[]Command{})}

	base := DefaultConfig()
	base.ImportKey = false
	base.Dest = t.TempDir()

	_, err := RunBatch(context, base, []KeySpec{
		{Name: "client.a", Caps: map[string]string{"mon": "allow r"}, Mode: "not-octal"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestRunBatchStopsAtFirstFailure(t *testing.T) {
	var executed []Command
	context := &clusterd.Context{Executor: mockKeyExecutor(t, false, &executed)}

	base := DefaultConfig()
	base.ImportKey = false
	base.Dest = t.TempDir()

	specs := []KeySpec{
		{Name: "client.a"}, // no caps, fails before any command runs
		{Name: "client.b", Caps: map[string]string{"mon": "allow r"}},
	}

	_, err := RunBatch(context, base, specs)
	require.Error(t, err)
	assert.Empty(t, executed)
}
