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
	"encoding/base64"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(secret)
	require.NoError(t, err)
	// 12 byte header plus the key material
	require.Equal(t, 12+secretKeyLength, len(blob))

	var header secretHeader
	err = binary.Read(bytes.NewReader(blob), binary.LittleEndian, &header)
	require.NoError(t, err)
	assert.Equal(t, int16(1), header.Version)
	assert.Equal(t, int32(0), header.Expires)
	assert.Equal(t, int16(secretKeyLength), header.Length)
	assert.InDelta(t, time.Now().Unix(), int64(header.Created), 10)
}

func TestGenerateSecretUnique(t *testing.T) {
	first, err := GenerateSecret()
	require.NoError(t, err)
	second, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
