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

import "sort"

const (
	// CephTool is the name of the CLI tool for 'ceph'
	CephTool = "ceph"
	// CephAuthtool is the name of the CLI tool for 'ceph-authtool'
	CephAuthtool = "ceph-authtool"
)

// capsArgs flattens a capability set into command line tokens for the given
// tool. ceph-authtool wants each subsystem/grammar pair behind a --cap flag,
// the ceph auth subcommands take the bare pairs. Entries with an empty
// subsystem name are dropped. The grammar strings are passed through verbatim;
// validating them is the tools' job. Subsystems are emitted in sorted order so
// the generated command line is deterministic.
func capsArgs(tool string, caps map[string]string) []string {
	subsystems := make([]string, 0, len(caps))
	for subsystem := range caps {
		if subsystem == "" {
			continue
		}
		subsystems = append(subsystems, subsystem)
	}
	sort.Strings(subsystems)

	args := []string{}
	for _, subsystem := range subsystems {
		if tool == CephAuthtool {
			args = append(args, "--cap")
		}
		args = append(args, subsystem, caps[subsystem])
	}

	return args
}
