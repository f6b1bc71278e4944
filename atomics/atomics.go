package atomics

import "sync/atomic"

// Bool is an atomic boolean cell. The zero value is false and ready to use;
// a Bool must not be copied after first use. See the package documentation
// for the ordering contract shared by all cell types.
type Bool struct{ v atomic.Bool }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Bool) NoBarrierLoad() bool { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Bool) NoBarrierStore(val bool) { x.v.Store(val) }

// AcquireLoad returns the value; writes published before a ReleaseStore of
// this value are visible after the load.
func (x *Bool) AcquireLoad() bool { return x.v.Load() }

// ReleaseStore sets the value, publishing all prior writes with it.
func (x *Bool) ReleaseStore(val bool) { x.v.Store(val) }

// Int32 is an atomic int32 cell.
type Int32 struct{ v atomic.Int32 }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Int32) NoBarrierLoad() int32 { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Int32) NoBarrierStore(val int32) { x.v.Store(val) }

// AcquireLoad returns the value with acquire ordering.
func (x *Int32) AcquireLoad() int32 { return x.v.Load() }

// ReleaseStore sets the value with release ordering.
func (x *Int32) ReleaseStore(val int32) { x.v.Store(val) }

// Int64 is an atomic int64 cell.
type Int64 struct{ v atomic.Int64 }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Int64) NoBarrierLoad() int64 { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Int64) NoBarrierStore(val int64) { x.v.Store(val) }

// AcquireLoad returns the value with acquire ordering.
func (x *Int64) AcquireLoad() int64 { return x.v.Load() }

// ReleaseStore sets the value with release ordering.
func (x *Int64) ReleaseStore(val int64) { x.v.Store(val) }

// Uint32 is an atomic uint32 cell.
type Uint32 struct{ v atomic.Uint32 }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Uint32) NoBarrierLoad() uint32 { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Uint32) NoBarrierStore(val uint32) { x.v.Store(val) }

// AcquireLoad returns the value with acquire ordering.
func (x *Uint32) AcquireLoad() uint32 { return x.v.Load() }

// ReleaseStore sets the value with release ordering.
func (x *Uint32) ReleaseStore(val uint32) { x.v.Store(val) }

// Uint64 is an atomic uint64 cell.
type Uint64 struct{ v atomic.Uint64 }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Uint64) NoBarrierLoad() uint64 { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Uint64) NoBarrierStore(val uint64) { x.v.Store(val) }

// AcquireLoad returns the value with acquire ordering.
func (x *Uint64) AcquireLoad() uint64 { return x.v.Load() }

// ReleaseStore sets the value with release ordering.
func (x *Uint64) ReleaseStore(val uint64) { x.v.Store(val) }

// Uintptr is an atomic uintptr cell.
type Uintptr struct{ v atomic.Uintptr }

// NoBarrierLoad returns the value with no ordering promise.
func (x *Uintptr) NoBarrierLoad() uintptr { return x.v.Load() }

// NoBarrierStore sets the value with no ordering promise.
func (x *Uintptr) NoBarrierStore(val uintptr) { x.v.Store(val) }

// AcquireLoad returns the value with acquire ordering.
func (x *Uintptr) AcquireLoad() uintptr { return x.v.Load() }

// ReleaseStore sets the value with release ordering.
func (x *Uintptr) ReleaseStore(val uintptr) { x.v.Store(val) }

// Pointer is an atomic cell holding a *T. The zero value holds nil.
type Pointer[T any] struct{ v atomic.Pointer[T] }

// NoBarrierLoad returns the pointer with no ordering promise.
func (x *Pointer[T]) NoBarrierLoad() *T { return x.v.Load() }

// NoBarrierStore sets the pointer with no ordering promise.
func (x *Pointer[T]) NoBarrierStore(val *T) { x.v.Store(val) }

// AcquireLoad returns the pointer; the pointee's initialization is visible
// when it was published with ReleaseStore.
func (x *Pointer[T]) AcquireLoad() *T { return x.v.Load() }

// ReleaseStore sets the pointer, publishing the pointee's initialization
// with it.
func (x *Pointer[T]) ReleaseStore(val *T) { x.v.Store(val) }
