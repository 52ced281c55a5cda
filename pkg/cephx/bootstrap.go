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
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rook/cephx-key/pkg/clusterd"
)

// cephInitialEntities are the entities created by the monitor when a cluster
// is first deployed. fetch_initial_keys expects to find every one of them.
var cephInitialEntities = []string{
	"client.admin",
	"client.bootstrap-mds",
	"client.bootstrap-mgr",
	"client.bootstrap-osd",
	"client.bootstrap-rbd",
	"client.bootstrap-rbd-mirror",
	"client.bootstrap-rgw",
}

// cephOwnerIDs resolves the uid/gid of the ceph system account that owns the
// fetched keyrings. Var so tests can avoid requiring a real ceph user.
var cephOwnerIDs = func() (int, int, error) {
	u, err := user.Lookup("ceph")
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to look up the ceph user")
	}
	g, err := user.LookupGroup("ceph")
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to look up the ceph group")
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "unexpected uid %q for the ceph user", u.Uid)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "unexpected gid %q for the ceph group", g.Gid)
	}

	return uid, gid, nil
}

type authDumpEntry struct {
	Entity string `json:"entity"`
}

// lookupInitialEntities extracts the initial entities from 'ceph auth ls -f
// json' output. It fails when the output is not json, when the auth_dump
// field is missing, or when any of the expected entities is absent.
func lookupInitialEntities(out string) ([]string, error) {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		return nil, errors.Wrap(err, "failed to decode 'ceph auth ls' json output")
	}

	raw, ok := dump["auth_dump"]
	if !ok {
		return nil, errors.New("'auth_dump' key not present in 'ceph auth ls' json output")
	}

	var entries []authDumpEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "failed to decode the auth_dump entries")
	}

	found := map[string]bool{}
	for _, entry := range entries {
		found[entry.Entity] = true
	}

	entities := []string{}
	var missing []string
	for _, entity := range cephInitialEntities {
		if found[entity] {
			entities = append(entities, entity)
		} else {
			missing = append(missing, entity)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("failed to find initial entities %s, is the cluster fully deployed?",
			strings.Join(missing, ", "))
	}

	return entities, nil
}

// buildKeyPath returns the canonical destination of an initial entity's
// keyring. The admin key lives under /etc/ceph, bootstrap keys live in a per
// service directory under /var/lib/ceph. Bootstrap entities are named
// 'client.bootstrap-<svc>' while their directory is only 'bootstrap-<svc>',
// so the 'client.' segment is stripped.
func buildKeyPath(cluster, entity string) (string, error) {
	if strings.Contains(entity, "admin") {
		return KeyringPath(etcCephDir, cluster, entity), nil
	}
	if strings.Contains(entity, "bootstrap") {
		parts := strings.SplitN(entity, ".", 2)
		if len(parts) != 2 {
			return "", errors.Errorf("unexpected bootstrap entity name %q", entity)
		}
		return filepath.Join(varLibCephDir, parts[1], cluster+".keyring"), nil
	}
	return "", errors.Errorf("failed to build the key path for entity %q", entity)
}

// FetchInitialKeys lists the auth registry through the monitor's own keyring
// and writes the initial entities' keyrings to their conventional locations,
// owned by ceph:ceph with mode 0400. Entities whose keyring file already
// exists are left untouched. This can only run on a monitor node.
func FetchInitialKeys(context *clusterd.Context, cluster, containerPrefix string) (CommandResult, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return CommandResult{}, errors.Wrap(err, "failed to get the hostname")
	}
	monKeyring := MonKeyringPath(cluster, hostname)

	result, err := runCommands(context, []Command{listKeysCommand(cluster, MonUsername, monKeyring, containerPrefix)})
	if err != nil {
		return result, err
	}
	if result.RC != 0 {
		return result, errors.Errorf("failed to retrieve the ceph keys: %s", result.Stderr)
	}

	entities, err := lookupInitialEntities(result.Stdout)
	if err != nil {
		return result, err
	}

	uid, gid, err := cephOwnerIDs()
	if err != nil {
		return result, err
	}

	for _, entity := range entities {
		keyPath, err := buildKeyPath(cluster, entity)
		if err != nil {
			return result, err
		}
		if _, err := os.Stat(keyPath); err == nil {
			// already on the filesystem, no need to fetch it again
			logger.Debugf("keyring for %s already exists at %s", entity, keyPath)
			continue
		}

		cmd := infoKeyCommand(cluster, entity, MonUsername, monKeyring, PlainFormat, keyPath, containerPrefix)
		result, err = runCommands(context, []Command{cmd})
		if err != nil {
			return result, err
		}
		if result.RC != 0 {
			return result, errors.Errorf("failed to fetch the key for %s: %s", entity, result.Stderr)
		}

		if err := os.Chown(keyPath, uid, gid); err != nil {
			return result, errors.Wrapf(err, "failed to set the owner of %s", keyPath)
		}
		if err := os.Chmod(keyPath, 0o400); err != nil {
			return result, errors.Wrapf(err, "failed to set the permissions of %s", keyPath)
		}
	}

	return result, nil
}
