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
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rook/cephx-key/pkg/cephx"
	"github.com/rook/cephx-key/pkg/clusterd"
	"github.com/rook/cephx-key/pkg/util/exec"
	"github.com/rook/cephx-key/pkg/util/flags"
	"github.com/spf13/cobra"
)

var keyConfig struct {
	cluster         string
	name            string
	state           string
	caps            []string
	secret          string
	importKey       bool
	containerPrefix string
	dest            string
	mode            string
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Creates, updates, deletes or inspects a CephX key",
	RunE:  runKey,
	// errors already carry the full context, don't print usage on top
	SilenceUsage: true,
}

func init() {
	keyCmd.Flags().StringVar(&keyConfig.cluster, "cluster", cephx.DefaultCluster, "ceph cluster name")
	keyCmd.Flags().StringVar(&keyConfig.name, "name", "", "entity name of the key (e.g. client.rgw)")
	keyCmd.Flags().StringVar(&keyConfig.state, "state", "",
		"desired state of the key: present, update, absent, info, list or fetch_initial_keys")
	keyCmd.Flags().StringArrayVar(&keyConfig.caps, "cap", nil,
		"capability as subsystem=grammar (e.g. mon='allow rwx'), repeatable")
	keyCmd.Flags().StringVar(&keyConfig.secret, "secret", "", "secret value of the key, generated when empty")
	keyCmd.Flags().BoolVar(&keyConfig.importKey, "import-key", true, "import the authored keyring into the cluster")
	keyCmd.Flags().StringVar(&keyConfig.containerPrefix, "containerized", "",
		"container invocation to wrap every command in (e.g. 'docker exec ceph-mon')")
	keyCmd.Flags().StringVar(&keyConfig.dest, "dest", "/etc/ceph/", "destination directory for authored keyrings")
	keyCmd.Flags().StringVar(&keyConfig.mode, "mode", "0600", "file mode of the authored keyring, in octal")

	flags.SetFlagsFromEnv(keyCmd.Flags(), EnvVarPrefix)
}

func runKey(cmd *cobra.Command, args []string) error {
	setLogLevel()

	if err := flags.VerifyRequiredFlags(cmd, []string{"state"}); err != nil {
		return err
	}

	state, err := cephx.ParseState(keyConfig.state)
	if err != nil {
		return err
	}
	caps, err := parseCapsFlag(keyConfig.caps)
	if err != nil {
		return err
	}
	mode, err := strconv.ParseUint(keyConfig.mode, 8, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid mode %q", keyConfig.mode)
	}

	cfg := cephx.Config{
		Cluster:         keyConfig.cluster,
		Name:            keyConfig.name,
		State:           state,
		Caps:            caps,
		Secret:          keyConfig.secret,
		ImportKey:       keyConfig.importKey,
		ContainerPrefix: keyConfig.containerPrefix,
		Dest:            keyConfig.dest,
		Mode:            os.FileMode(mode),
	}

	context := &clusterd.Context{Executor: &exec.CommandExecutor{}}
	result, err := cephx.Run(context, cfg)
	if result != nil {
		printResult(result)
	}
	return err
}

// parseCapsFlag turns repeated subsystem=grammar tokens into a capability set.
func parseCapsFlag(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	caps := map[string]string{}
	for _, pair := range raw {
		subsystem, grammar, found := strings.Cut(pair, "=")
		if !found || subsystem == "" {
			return nil, errors.Errorf("invalid capability %q, expected subsystem=grammar", pair)
		}
		caps[subsystem] = grammar
	}
	return caps, nil
}
