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
	"strconv"

	"github.com/pkg/errors"
	"github.com/rook/cephx-key/pkg/clusterd"
	yaml "gopkg.in/yaml.v2"
)

// KeySpec describes one key in a batch file:
//
//	- name: client.rgw
//	  caps: {mon: "allow rwx", osd: "allow *"}
//	  mode: "0600"
//	- name: client.cle
//	  key: AQAin8tUUK84ExAA/QgBtI7gEMWdmnvKBzlXdQ==
//	  caps: {mon: "allow r"}
type KeySpec struct {
	Name string            `yaml:"name"`
	Key  string            `yaml:"key,omitempty"`
	Caps map[string]string `yaml:"caps"`
	Mode string            `yaml:"mode,omitempty"`
}

// LoadKeySpecs reads a batch file of key specs.
func LoadKeySpecs(path string) ([]KeySpec, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the batch file %q", path)
	}

	var specs []KeySpec
	if err := yaml.UnmarshalStrict(contents, &specs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse the batch file %q", path)
	}

	return specs, nil
}

// RunBatch ensures every listed key is present, processing the specs in order
// and stopping at the first failure. The base config supplies the cluster,
// destination, import and container settings shared by all keys.
func RunBatch(context *clusterd.Context, base Config, specs []KeySpec) ([]*Result, error) {
	results := []*Result{}
	for _, spec := range specs {
		cfg := base
		cfg.State = StatePresent
		cfg.Name = spec.Name
		cfg.Secret = spec.Key
		cfg.Caps = spec.Caps
		if spec.Mode != "" {
			mode, err := strconv.ParseUint(spec.Mode, 8, 32)
			if err != nil {
				return results, errors.Wrapf(err, "invalid mode %q for key %q", spec.Mode, spec.Name)
			}
			cfg.Mode = os.FileMode(mode)
		}

		result, err := Run(context, cfg)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, errors.Wrapf(err, "failed to create key %q", spec.Name)
		}
	}

	return results, nil
}
