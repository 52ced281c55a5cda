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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapsArgsAuthtool(t *testing.T) {
	caps := map[string]string{"mon": "allow rwx", "mds": "allow *"}
	args := capsArgs(CephAuthtool, caps)
	assert.Equal(t, []string{"--cap", "mds", "allow *", "--cap", "mon", "allow rwx"}, args)
}

func TestCapsArgsCeph(t *testing.T) {
	caps := map[string]string{"mon": "allow rwx", "mds": "allow *"}
	args := capsArgs(CephTool, caps)
	assert.Equal(t, []string{"mds", "allow *", "mon", "allow rwx"}, args)
}

func TestCapsArgsDropsEmptySubsystems(t *testing.T) {
	caps := map[string]string{"": "allow *", "osd": "allow rwx"}
	assert.Equal(t, []string{"osd", "allow rwx"}, capsArgs(CephTool, caps))
	assert.Equal(t, []string{"--cap", "osd", "allow rwx"}, capsArgs(CephAuthtool, caps))
}

func TestCapsArgsEmpty(t *testing.T) {
	assert.Empty(t, capsArgs(CephTool, nil))
	assert.Empty(t, capsArgs(CephAuthtool, map[string]string{}))
}
