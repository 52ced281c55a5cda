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

// Package clusterd holds the runtime context shared by the ceph helpers.
package clusterd

import (
	"github.com/rook/cephx-key/pkg/util/exec"
)

// Context for running the ceph tools against a cluster.
type Context struct {
	// Executor runs the external commands. Replaced with a mock in unit tests.
	Executor exec.Executor
}
