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

// Package cephx manages CephX keys by driving the ceph and ceph-authtool
// command line tools: creating, updating, deleting and inspecting keys, and
// fetching the initial keys generated by the monitor.
package cephx

import (
	"fmt"
	"os"
	"time"

	"github.com/coreos/pkg/capnslog"
	"github.com/pkg/errors"
	"github.com/rook/cephx-key/pkg/clusterd"
)

var logger = capnslog.NewPackageLogger("github.com/rook/cephx-key", "cephx")

// State is the desired state of a key.
type State int

const (
	// StatePresent ensures the key exists with the given caps and secret.
	StatePresent State = iota
	// StateUpdate replaces the caps of an existing key.
	StateUpdate
	// StateAbsent removes the key from the cluster's auth registry.
	StateAbsent
	// StateInfo fetches the description of an existing key.
	StateInfo
	// StateList lists all keys in the auth registry.
	StateList
	// StateFetchInitialKeys writes the monitor-generated initial keys to disk.
	StateFetchInitialKeys
)

var stateNames = map[State]string{
	StatePresent:          "present",
	StateUpdate:           "update",
	StateAbsent:           "absent",
	StateInfo:             "info",
	StateList:             "list",
	StateFetchInitialKeys: "fetch_initial_keys",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown state %d", int(s))
}

// ParseState converts a state name to a State. Unknown names are a user input
// error.
func ParseState(name string) (State, error) {
	for state, stateName := range stateNames {
		if name == stateName {
			return state, nil
		}
	}
	return 0, errors.Errorf(
		"state must be one of 'present', 'update', 'absent', 'info', 'list' or 'fetch_initial_keys', got %q", name)
}

// Config is the configuration of a single key operation.
type Config struct {
	// Cluster is the ceph cluster name.
	Cluster string
	// Name is the entity name of the key (e.g. client.admin, mon.).
	Name string
	// State is the desired state of the key.
	State State
	// Caps maps subsystems to capability grammars (e.g. mon: "allow rwx").
	// Required for present and update.
	Caps map[string]string
	// Secret is the key's secret value. When empty a fresh one is generated
	// for present.
	Secret string
	// ImportKey imports the authored keyring into the cluster. Disable to only
	// generate keyring files.
	ImportKey bool
	// ContainerPrefix wraps every command in a container invocation, e.g.
	// "docker exec ceph-mon".
	ContainerPrefix string
	// Dest is the directory the authored keyring is written to.
	Dest string
	// Mode is the file mode applied to the authored keyring.
	Mode os.FileMode
}

// DefaultConfig returns a Config with the defaults filled in.
func DefaultConfig() Config {
	return Config{
		Cluster:   DefaultCluster,
		ImportKey: true,
		Dest:      etcCephDir,
		Mode:      0o600,
	}
}

func (c *Config) applyDefaults() {
	if c.Cluster == "" {
		c.Cluster = DefaultCluster
	}
	if c.Dest == "" {
		c.Dest = etcCephDir
	}
	if c.Mode == 0 {
		c.Mode = 0o600
	}
}

// Result is the record returned by every operation.
type Result struct {
	Cmd     string    `json:"cmd"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Delta   string    `json:"delta"`
	RC      int       `json:"rc"`
	Stdout  string    `json:"stdout"`
	Stderr  string    `json:"stderr"`
	Changed bool      `json:"changed"`
	// Key is the secret of the authored key, read back from the keyring file.
	Key string `json:"key,omitempty"`
}

// Run performs the operation described by cfg and returns its result. A
// non-zero exit from any external command is returned as an error alongside
// the populated result.
func Run(context *clusterd.Context, cfg Config) (*Result, error) {
	cfg.applyDefaults()

	result := &Result{Start: time.Now()}
	finish := func(res CommandResult, changed bool) {
		result.End = time.Now()
		result.Delta = result.End.Sub(result.Start).String()
		result.Cmd = res.Cmd.String()
		result.RC = res.RC
		result.Stdout = res.Stdout
		result.Stderr = res.Stderr
		result.Changed = changed
	}
	skip := func(message string) {
		finish(CommandResult{}, false)
		result.Stdout = message
	}

	if cfg.Name == "" && cfg.State != StateList && cfg.State != StateFetchInitialKeys {
		return nil, errors.Errorf("a key name must be provided when state is %q", cfg.State)
	}

	var res CommandResult
	var err error

	switch cfg.State {
	case StatePresent:
		if len(cfg.Caps) == 0 {
			return nil, errors.New("capabilities must be provided when state is 'present'")
		}

		// Recreating an existing key is only allowed when an explicit secret
		// was given, otherwise the import would silently rotate it.
		if cfg.ImportKey && cfg.Secret == "" {
			exists, checkErr := keyExists(context, cfg)
			if checkErr != nil {
				return nil, checkErr
			}
			if exists {
				skip(fmt.Sprintf("skipped, since %s already exists, use 'state: update' to update a key", cfg.Name))
				return result, nil
			}
		}

		res, err = runPresent(context, cfg)

	case StateUpdate:
		if len(cfg.Caps) == 0 {
			return nil, errors.New("capabilities must be provided when state is 'update'")
		}

		exists, checkErr := keyExists(context, cfg)
		if checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			skip(fmt.Sprintf("skipped, since %s does not exist", cfg.Name))
			return result, nil
		}

		res, err = runCommands(context, []Command{
			updateCapsCommand(cfg.Cluster, cfg.Name, cfg.Caps, cfg.ContainerPrefix),
		})

	case StateAbsent:
		// deletion is idempotent at the ceph tool's discretion
		res, err = runCommands(context, []Command{
			deleteKeyCommand(cfg.Cluster, cfg.Name, cfg.ContainerPrefix),
		})

	case StateInfo:
		exists, checkErr := keyExists(context, cfg)
		if checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			skip(fmt.Sprintf("skipped, since %s does not exist", cfg.Name))
			return result, nil
		}

		res, err = runCommands(context, []Command{
			infoKeyCommand(cfg.Cluster, cfg.Name, AdminUsername, AdminKeyringPath(cfg.Cluster), JSONFormat, "", cfg.ContainerPrefix),
		})

	case StateList:
		res, err = runCommands(context, []Command{
			listKeysCommand(cfg.Cluster, AdminUsername, AdminKeyringPath(cfg.Cluster), cfg.ContainerPrefix),
		})

	case StateFetchInitialKeys:
		res, err = FetchInitialKeys(context, cfg.Cluster, cfg.ContainerPrefix)

	default:
		return nil, errors.Errorf("unknown state %q", cfg.State)
	}

	finish(res, true)
	if err != nil {
		result.Changed = false
		return result, err
	}
	if result.RC != 0 {
		result.Changed = false
		return result, errors.Errorf("non-zero return code %d from %q: %s", result.RC, result.Cmd, result.Stderr)
	}

	if cfg.State == StatePresent {
		keyringPath := KeyringPath(cfg.Dest, cfg.Cluster, cfg.Name)
		if err := os.Chmod(keyringPath, cfg.Mode); err != nil {
			return result, errors.Wrapf(err, "failed to set the mode of %s", keyringPath)
		}
		if key, err := ExtractKey(keyringPath, cfg.Name); err != nil {
			logger.Warningf("could not read back the key for %s: %v", cfg.Name, err)
		} else {
			result.Key = key
		}
	}

	return result, nil
}

// keyExists checks the auth registry for the configured key. There is no
// guarantee a cluster is reachable when only authoring keyrings, which is why
// the check is skipped entirely for present without import.
func keyExists(context *clusterd.Context, cfg Config) (bool, error) {
	cmd := infoKeyCommand(cfg.Cluster, cfg.Name, AdminUsername, AdminKeyringPath(cfg.Cluster), JSONFormat, "", cfg.ContainerPrefix)
	res, err := runCommands(context, []Command{cmd})
	if err != nil {
		return false, err
	}
	return res.RC == 0, nil
}

// runPresent authors the keyring file and, when importing is enabled, loads
// it into the cluster's auth registry.
func runPresent(context *clusterd.Context, cfg Config) (CommandResult, error) {
	secret := cfg.Secret
	if secret == "" {
		var err error
		secret, err = GenerateSecret()
		if err != nil {
			return CommandResult{}, err
		}
	}

	cmds := []Command{
		authtoolCreateCommand(cfg.Cluster, cfg.Name, secret, cfg.Dest, cfg.Caps, cfg.ContainerPrefix),
	}
	if cfg.ImportKey {
		keyringPath := KeyringPath(cfg.Dest, cfg.Cluster, cfg.Name)
		cmds = append(cmds, importKeyringCommand(cfg.Cluster, keyringPath, cfg.ContainerPrefix))
	}

	return runCommands(context, cmds)
}
