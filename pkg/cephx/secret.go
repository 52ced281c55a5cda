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
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

// secretKeyLength is the number of random bytes in a CephX secret.
const secretKeyLength = 16

// secretHeader is the little-endian header ceph prepends to the raw key
// material in a serialized secret.
type secretHeader struct {
	Version int16 // always 1
	Created int32 // unix timestamp
	Expires int32 // reserved, always 0
	Length  int16 // length of the key material
}

// GenerateSecret creates a CephX secret with the same blob layout
// ceph-authtool produces: a fixed header followed by 16 random bytes, base64
// encoded.
func GenerateSecret() (string, error) {
	key := make([]byte, secretKeyLength)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Wrap(err, "failed to generate key material")
	}

	header := secretHeader{
		Version: 1,
		Created: int32(time.Now().Unix()),
		Length:  int16(len(key)),
	}

	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return "", errors.Wrap(err, "failed to serialize secret header")
	}
	buf.Write(key)

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
