// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcsession multiplexes many concurrent transactions over one bidirectional byte
// stream: a Connection owns a request delegate, a response delegate, and a garbage collector,
// and a TransactionCollection tracks every live (request, response) pair by RequestId.
package rpcsession

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/ontograph/ontograph/columnar"
)

// maxFrameSize guards against a corrupt or adversarial length prefix turning one bad frame
// into an unbounded allocation.
const maxFrameSize = 64 << 20

var (
	ErrFrameTooLarge = errors.New("rpcsession: frame exceeds maximum size")
	ErrFieldTooLarge = errors.New("rpcsession: header field exceeds 65535 bytes")
)

// RequestId addresses one transaction; it is unique for the lifetime of a Connection.
type RequestId uint64

// RequestHeader carries a request's out-of-band routing information: protocol version, flags,
// the target service/procedure, and the acting principal.
type RequestHeader struct {
	ProtocolVersion uint16
	Flags           uint8
	Service         string
	Procedure       string
	Actor           uuid.UUID
}

// Request is one framed call: a RequestId, its header, and an opaque payload.
type Request struct {
	Id      RequestId
	Header  RequestHeader
	Payload []byte
}

// ResponseStatus distinguishes a successful response from the session-level failure modes a
// caller observes without decoding the payload.
type ResponseStatus uint8

const (
	StatusSuccess ResponseStatus = iota
	StatusError
	StatusDeadlineExceeded
)

// Response is one framed reply, correlated to its Request by Id.
type Response struct {
	Id      RequestId
	Status  ResponseStatus
	Payload []byte
	Err     string
}

// WriteFrame writes body onto w prefixed by its little-endian uint32 length, in a single
// Write call so concurrent writers on the same connection can never interleave a partial
// frame — callers must still only ever have one goroutine calling WriteFrame on a given w.
func WriteFrame(w io.Writer, body []byte) error {
	if len(body) > maxFrameSize {
		return ErrFrameTooLarge
	}
	framed := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(framed[:4], uint32(len(body)))
	copy(framed[4:], body)
	_, err := w.Write(framed)
	return err
}

// ReadFrame reads one length-prefixed frame from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return nil, ErrFrameTooLarge
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func encodeRequest(req Request) ([]byte, error) {
	if len(req.Header.Service) > math.MaxUint16 || len(req.Header.Procedure) > math.MaxUint16 {
		return nil, ErrFieldTooLarge
	}
	if len(req.Payload) > maxFrameSize {
		return nil, ErrFrameTooLarge
	}

	size := 8 + 2 + 1 + 16 + 2 + len(req.Header.Service) + 2 + len(req.Header.Procedure) + 4 + len(req.Payload)
	buf := make([]byte, size)
	o := 0
	binary.LittleEndian.PutUint64(buf[o:], uint64(req.Id))
	o += 8
	binary.LittleEndian.PutUint16(buf[o:], req.Header.ProtocolVersion)
	o += 2
	buf[o] = req.Header.Flags
	o++
	copy(buf[o:o+16], req.Header.Actor[:])
	o += 16
	binary.LittleEndian.PutUint16(buf[o:], uint16(len(req.Header.Service)))
	o += 2
	o += copy(buf[o:], req.Header.Service)
	binary.LittleEndian.PutUint16(buf[o:], uint16(len(req.Header.Procedure)))
	o += 2
	o += copy(buf[o:], req.Header.Procedure)
	binary.LittleEndian.PutUint32(buf[o:], uint32(len(req.Payload)))
	o += 4
	copy(buf[o:], req.Payload)
	return buf, nil
}

func decodeRequest(buf []byte) (Request, error) {
	const fixed = 8 + 2 + 1 + 16
	if len(buf) < fixed {
		return Request{}, io.ErrUnexpectedEOF
	}
	o := 0
	id := RequestId(binary.LittleEndian.Uint64(buf[o:]))
	o += 8
	protocolVersion := binary.LittleEndian.Uint16(buf[o:])
	o += 2
	flags := buf[o]
	o++
	var actor uuid.UUID
	copy(actor[:], buf[o:o+16])
	o += 16

	service, o, err := readLenPrefixedString(buf, o)
	if err != nil {
		return Request{}, err
	}
	procedure, o, err := readLenPrefixedString(buf, o)
	if err != nil {
		return Request{}, err
	}
	if len(buf) < o+4 {
		return Request{}, io.ErrUnexpectedEOF
	}
	payloadLen := binary.LittleEndian.Uint32(buf[o:])
	o += 4
	if uint32(len(buf)-o) < payloadLen {
		return Request{}, io.ErrUnexpectedEOF
	}
	payload := append([]byte(nil), buf[o:o+int(payloadLen)]...)

	return Request{
		Id: id,
		Header: RequestHeader{
			ProtocolVersion: protocolVersion,
			Flags:           flags,
			Service:         service,
			Procedure:       procedure,
			Actor:           actor,
		},
		Payload: payload,
	}, nil
}

func readLenPrefixedString(buf []byte, o int) (string, int, error) {
	if len(buf) < o+2 {
		return "", o, io.ErrUnexpectedEOF
	}
	n := int(binary.LittleEndian.Uint16(buf[o:]))
	o += 2
	if len(buf) < o+n {
		return "", o, io.ErrUnexpectedEOF
	}
	return string(buf[o : o+n]), o + n, nil
}

func encodeResponse(resp Response) ([]byte, error) {
	if len(resp.Payload) > maxFrameSize {
		return nil, ErrFrameTooLarge
	}
	if len(resp.Err) > math.MaxUint16 {
		return nil, ErrFieldTooLarge
	}
	size := 8 + 1 + 4 + len(resp.Payload) + 2 + len(resp.Err)
	buf := make([]byte, size)
	o := 0
	binary.LittleEndian.PutUint64(buf[o:], uint64(resp.Id))
	o += 8
	buf[o] = byte(resp.Status)
	o++
	binary.LittleEndian.PutUint32(buf[o:], uint32(len(resp.Payload)))
	o += 4
	o += copy(buf[o:], resp.Payload)
	binary.LittleEndian.PutUint16(buf[o:], uint16(len(resp.Err)))
	o += 2
	copy(buf[o:], resp.Err)
	return buf, nil
}

func decodeResponse(buf []byte) (Response, error) {
	const fixed = 8 + 1 + 4
	if len(buf) < fixed {
		return Response{}, io.ErrUnexpectedEOF
	}
	o := 0
	id := RequestId(binary.LittleEndian.Uint64(buf[o:]))
	o += 8
	status := ResponseStatus(buf[o])
	o++
	payloadLen := binary.LittleEndian.Uint32(buf[o:])
	o += 4
	if uint32(len(buf)-o) < payloadLen {
		return Response{}, io.ErrUnexpectedEOF
	}
	payload := append([]byte(nil), buf[o:o+int(payloadLen)]...)
	o += int(payloadLen)

	errMsg, o, err := readLenPrefixedString(buf, o)
	if err != nil {
		return Response{}, err
	}
	_ = o

	return Response{
		Id:      id,
		Status:  status,
		Payload: payload,
		Err:     errMsg,
	}, nil
}

// EncodeMetaversion serializes m as an 8-byte little-endian (memory, batch) pair.
func EncodeMetaversion(m columnar.Metaversion) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], m.Memory)
	binary.LittleEndian.PutUint32(buf[4:8], m.Batch)
	return buf
}

// DecodeMetaversion is the inverse of EncodeMetaversion.
func DecodeMetaversion(buf []byte) (columnar.Metaversion, error) {
	if len(buf) < 8 {
		return columnar.Metaversion{}, fmt.Errorf("rpcsession: metaversion frame too short: %d bytes", len(buf))
	}
	return columnar.Metaversion{
		Memory: binary.LittleEndian.Uint32(buf[0:4]),
		Batch:  binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}
