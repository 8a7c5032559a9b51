// Package signal implements a small algebra of periodic waveform generators
// and combinators, and renders signal trees into sample buffers.
//
// Leaves are [Sine], [Square] and [Triangle]. Combinators are [Sum],
// [FrequencyModulated] and [SelfModulated]. Signals are immutable values;
// a child may be shared by several parents, forming a DAG. The nil Signal is
// the zero signal and the identity of [Add].
//
// Every variant except SelfModulated is evaluated batch-wise over the whole
// time axis. SelfModulated feeds each output sample back into the phase of
// the next one and is evaluated strictly in increasing time order.
package signal
