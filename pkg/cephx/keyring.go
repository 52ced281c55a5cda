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
	"github.com/pkg/errors"
	ini "gopkg.in/ini.v1"
)

// ExtractKey reads the secret for the named entity from the keyring file at
// path. Keyrings are ini files with one section per entity:
//
//	[client.admin]
//		key = AQD...
//		caps mon = "allow *"
func ExtractKey(path, name string) (string, error) {
	file, err := ini.Load(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load keyring %q", path)
	}

	section, err := file.GetSection(name)
	if err != nil {
		return "", errors.Wrapf(err, "no entry for %q in keyring %q", name, path)
	}

	key := section.Key("key").String()
	if key == "" {
		return "", errors.Errorf("no key for %q in keyring %q", name, path)
	}

	return key, nil
}
