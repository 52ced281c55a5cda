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

// The cephx-key tool manages CephX keys from the command line by shelling out
// to ceph and ceph-authtool.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"
)

// EnvVarPrefix is the prefix of the environment variables that override flags.
const EnvVarPrefix = "CEPHX_KEY"

var (
	logLevelRaw string
	logger      = capnslog.NewPackageLogger("github.com/rook/cephx-key", "cmd")
)

var rootCmd = &cobra.Command{
	Use:   "cephx-key",
	Short: "Manages CephX authentication keys",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelRaw, "log-level", "INFO",
		"logging level for logging/tracing output (valid values: ERROR,WARNING,INFO,DEBUG)")
	rootCmd.AddCommand(keyCmd, batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setLogLevel() {
	level, err := capnslog.ParseLevel(strings.ToUpper(logLevelRaw))
	if err != nil {
		level = capnslog.INFO
	}
	capnslog.SetGlobalLogLevel(level)
}

// printResult writes a result record to stdout as json.
func printResult(v interface{}) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Errorf("failed to encode the result: %v", err)
		return
	}
	fmt.Println(string(encoded))
}
