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
package main

import (
	"github.com/rook/cephx-key/pkg/cephx"
	"github.com/rook/cephx-key/pkg/clusterd"
	"github.com/rook/cephx-key/pkg/util/exec"
	"github.com/rook/cephx-key/pkg/util/flags"
	"github.com/spf13/cobra"
)

var batchConfig struct {
	cluster         string
	importKey       bool
	containerPrefix string
	dest            string
}

var batchCmd = &cobra.Command{
	Use:          "batch <file>",
	Short:        "Creates every key listed in a yaml batch file",
	Args:         cobra.ExactArgs(1),
	RunE:         runBatch,
	SilenceUsage: true,
}

func init() {
	batchCmd.Flags().StringVar(&batchConfig.cluster, "cluster", cephx.DefaultCluster, "ceph cluster name")
	batchCmd.Flags().BoolVar(&batchConfig.importKey, "import-key", true, "import the authored keyrings into the cluster")
	batchCmd.Flags().StringVar(&batchConfig.containerPrefix, "containerized", "",
		"container invocation to wrap every command in (e.g. 'docker exec ceph-mon')")
	batchCmd.Flags().StringVar(&batchConfig.dest, "dest", "/etc/ceph/", "destination directory for authored keyrings")

	flags.SetFlagsFromEnv(batchCmd.Flags(), EnvVarPrefix)
}

func runBatch(cmd *cobra.Command, args []string) error {
	setLogLevel()

	specs, err := cephx.LoadKeySpecs(args[0])
	if err != nil {
		return err
	}

	base := cephx.DefaultConfig()
	base.Cluster = batchConfig.cluster
	base.ImportKey = batchConfig.importKey
	base.ContainerPrefix = batchConfig.containerPrefix
	base.Dest = batchConfig.dest

	context := &clusterd.Context{Executor: &exec.CommandExecutor{}}
	results, err := cephx.RunBatch(context, base, specs)
	if len(results) > 0 {
		printResult(results)
	}
	return err
}
