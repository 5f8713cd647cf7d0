package service

import "context"

// SnapshotStorage persists exported snapshots and returns where they landed.
type SnapshotStorage interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
}
