// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import "fmt"

// SnapshotRestoreErrorKind distinguishes where in the restore pipeline a failure occurred.
type SnapshotRestoreErrorKind int

const (
	ErrKindRead SnapshotRestoreErrorKind = iota
	ErrKindWrite
)

// SnapshotRestoreError names the sub-stream that failed and wraps the underlying cause, so a
// caller can tell which table a restore needs to retry.
type SnapshotRestoreError struct {
	SubStream SubStreamKind
	Kind      SnapshotRestoreErrorKind
	Err       error
}

func (e *SnapshotRestoreError) Error() string {
	return fmt.Sprintf("snapshot: %s sub-stream: %v", e.SubStream, e.Err)
}

func (e *SnapshotRestoreError) Unwrap() error { return e.Err }
