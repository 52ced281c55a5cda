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
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// AdminUsername is the name of the admin user
	AdminUsername = "client.admin"
	// MonUsername is the name of the monitor's own user
	MonUsername = "mon."
	// DefaultCluster is the default ceph cluster name
	DefaultCluster = "ceph"

	// JSONFormat requests json output from the ceph tools
	JSONFormat = "json"
	// PlainFormat requests the native keyring output from the ceph tools
	PlainFormat = "plain"
)

// Conventional ceph directories. Vars so tests can redirect them.
var (
	etcCephDir    = "/etc/ceph"
	varLibCephDir = "/var/lib/ceph"
)

// Command is one external command invocation: the program name and its
// arguments, each passed as a discrete token without any shell involved.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// withContainerPrefix wraps the command in a container invocation (e.g.
// "docker exec ceph-mon") when one is configured. The prefix is split on
// whitespace, the same way a shell would split it; a blank prefix leaves the
// command untouched.
func (c Command) withContainerPrefix(prefix string) Command {
	tokens := strings.Fields(prefix)
	if len(tokens) == 0 {
		return c
	}

	args := append([]string{}, tokens[1:]...)
	args = append(args, c.Name)
	args = append(args, c.Args...)
	return Command{Name: tokens[0], Args: args}
}

// KeyringPath returns the conventional path of the keyring authored for name.
func KeyringPath(dest, cluster, name string) string {
	return filepath.Join(dest, fmt.Sprintf("%s.%s.keyring", cluster, name))
}

// AdminKeyringPath returns the path of the cluster's admin keyring.
func AdminKeyringPath(cluster string) string {
	return KeyringPath(etcCephDir, cluster, AdminUsername)
}

// MonKeyringPath returns the path of the monitor keyring for the given host.
func MonKeyringPath(cluster, hostname string) string {
	return filepath.Join(varLibCephDir, "mon", fmt.Sprintf("%s-%s", cluster, hostname), "keyring")
}

// authtoolCreateCommand builds the ceph-authtool invocation that writes a local
// keyring for name with the given secret and capabilities, overwriting any
// existing file at the destination.
func authtoolCreateCommand(cluster, name, secret, dest string, caps map[string]string, containerPrefix string) Command {
	args := []string{
		"--create-keyring", KeyringPath(dest, cluster, name),
		"--name", name,
		"--add-key", secret,
	}
	args = append(args, capsArgs(CephAuthtool, caps)...)

	return Command{Name: CephAuthtool, Args: args}.withContainerPrefix(containerPrefix)
}

// cephAuthCommand builds a 'ceph auth' invocation authenticated as user with
// the given keyring.
func cephAuthCommand(cluster, user, userKeyring string, args []string, containerPrefix string) Command {
	base := []string{
		"-n", user,
		"-k", userKeyring,
		"--cluster", cluster,
		"auth",
	}

	return Command{Name: CephTool, Args: append(base, args...)}.withContainerPrefix(containerPrefix)
}

// adminAuthCommand is cephAuthCommand authenticated as client.admin with the
// cluster's admin keyring.
func adminAuthCommand(cluster string, args []string, containerPrefix string) Command {
	return cephAuthCommand(cluster, AdminUsername, AdminKeyringPath(cluster), args, containerPrefix)
}

// importKeyringCommand builds the command that imports an authored keyring
// file into the cluster's auth registry.
func importKeyringCommand(cluster, keyringPath, containerPrefix string) Command {
	return adminAuthCommand(cluster, []string{"import", "-i", keyringPath}, containerPrefix)
}

// updateCapsCommand builds the command that replaces the capabilities of an
// existing entity.
func updateCapsCommand(cluster, name string, caps map[string]string, containerPrefix string) Command {
	args := append([]string{"caps", name}, capsArgs(CephTool, caps)...)
	return adminAuthCommand(cluster, args, containerPrefix)
}

// deleteKeyCommand builds the command that removes an entity from the
// cluster's auth registry.
func deleteKeyCommand(cluster, name, containerPrefix string) Command {
	return adminAuthCommand(cluster, []string{"del", name}, containerPrefix)
}

// infoKeyCommand builds the command that fetches a single entity's
// description in the requested format, optionally redirected to outputFile.
func infoKeyCommand(cluster, name, user, userKeyring, format, outputFile, containerPrefix string) Command {
	args := []string{"get", name, "-f", format}
	if outputFile != "" {
		args = append(args, "-o", outputFile)
	}
	return cephAuthCommand(cluster, user, userKeyring, args, containerPrefix)
}

// listKeysCommand builds the command that lists all entities in json form.
func listKeysCommand(cluster, user, userKeyring, containerPrefix string) Command {
	return cephAuthCommand(cluster, user, userKeyring, []string{"ls", "-f", JSONFormat}, containerPrefix)
}
