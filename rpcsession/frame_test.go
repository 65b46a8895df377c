// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcsession

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontograph/ontograph/columnar"
)

func TestWriteReadFrameRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))
	body, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), body)
}

func TestEncodeDecodeRequestRoundTrips(t *testing.T) {
	req := Request{
		Id: 42,
		Header: RequestHeader{
			ProtocolVersion: 3,
			Flags:           0x1,
			Service:         "graph",
			Procedure:       "resolve",
			Actor:           uuid.New(),
		},
		Payload: []byte(`{"q":1}`),
	}
	body, err := encodeRequest(req)
	require.NoError(t, err)

	decoded, err := decodeRequest(body)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}

func TestEncodeDecodeResponseRoundTrips(t *testing.T) {
	resp := Response{Id: 7, Status: StatusSuccess, Payload: []byte("ok"), Err: ""}
	body, err := encodeResponse(resp)
	require.NoError(t, err)

	decoded, err := decodeResponse(body)
	require.NoError(t, err)
	assert.Equal(t, resp, decoded)
}

func TestEncodeDecodeResponseCarriesErrorMessage(t *testing.T) {
	resp := Response{Id: 9, Status: StatusDeadlineExceeded, Err: "deadline exceeded"}
	body, err := encodeResponse(resp)
	require.NoError(t, err)

	decoded, err := decodeResponse(body)
	require.NoError(t, err)
	assert.Equal(t, resp.Err, decoded.Err)
	assert.Equal(t, StatusDeadlineExceeded, decoded.Status)
}

func TestDecodeRequestRejectsTruncatedBuffer(t *testing.T) {
	_, err := decodeRequest([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestEncodeDecodeMetaversionRoundTrips(t *testing.T) {
	m := columnar.Metaversion{Memory: 5, Batch: 9}
	buf := EncodeMetaversion(m)
	decoded, err := DecodeMetaversion(buf)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestDecodeMetaversionRejectsShortBuffer(t *testing.T) {
	_, err := DecodeMetaversion([]byte{1, 2, 3})
	assert.Error(t, err)
}
