// Package sim provides the core round-robin scheduling engine for rrsched.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job lifecycle (pending → running → completed) and the reported triple
//   - queue.go: ExecutionQueue, the min-heap that decides who runs next
//   - index.go: JobIndex, the order-statistics red-black tree answering queries
//   - simulator.go: the scheduling loop that couples the two structures
//
// # Architecture
//
// The Simulator owns one ExecutionQueue and one JobIndex. Every live job sits
// in both; a job leaves the queue each time it is picked and returns after its
// quantum unless it has finished, in which case it also leaves the index.
//
// For every incoming command the loop fast-forwards the clock to the command's
// timestamp by running quanta (or idling on an empty queue), applies the
// command, then runs exactly one more quantum.
//
// Sub-packages:
//   - sim/trace/: per-quantum and per-completion trace records
//   - sim/workload/: command-file parsing, result writing and synthetic workloads
//
// The engine is deterministic: the queue breaks executed-time ties by lower
// job ID, so identical inputs produce identical answers and completion order.
package sim
