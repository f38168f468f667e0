package storage

import "errors"

// ErrNotFound is returned when a write targets a record that does not exist.
// Reads report absence through their found result instead.
var ErrNotFound = errors.New("record not found")

// ErrTransient marks throughput, throttling and availability failures of the backing store.
// Callers recover by letting their queue or stream redeliver the event.
var ErrTransient = errors.New("transient store failure")

// ErrEmptyUpdate is returned when UpdateValues is called without any attribute to write.
var ErrEmptyUpdate = errors.New("no values to update")
