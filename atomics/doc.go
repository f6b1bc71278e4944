// Package atomics provides atomic cells whose method names carry the
// ordering intent of each access: NoBarrier for counters and flags where
// the caller promises nothing about ordering, and AcquireLoad/ReleaseStore
// for publication.
//
// # Ordering contract
//
// When one goroutine performs ReleaseStore on a cell and another observes
// that value with AcquireLoad, every write the storing goroutine made
// before the store is visible to the loading goroutine after the load.
// That is the publication pattern:
//
//	// producer                    // consumer
//	data = 42                      for !ready.AcquireLoad() { ... }
//	ready.ReleaseStore(true)       use(data) // sees 42
//
// NoBarrierLoad and NoBarrierStore promise only atomicity of the single
// access; callers must not rely on them to order any other memory
// operation.
//
// # Implementation note
//
// Go's memory model defines one flavor of atomic (sequentially consistent,
// strictly stronger than acquire/release) and has no relaxed accesses. All
// four methods therefore map onto sync/atomic loads and stores: the names
// document the ordering each call site NEEDS, the implementation may
// provide more. This also keeps every access visible to the race detector.
package atomics
