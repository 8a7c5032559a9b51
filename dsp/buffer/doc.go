// Package buffer provides the time-stamped sample buffer that every stage of
// the synthesis engine reads or writes, plus the pure buffer transforms
// (normalization, DC-bias removal) shared by generators and effects.
//
// A [Buffer] holds samples ys[0..N), their time stamps ts[0..N) in seconds
// and the sample rate. It is exclusively owned by the caller that created
// it; filters and effects mutate it in place through [Buffer.Apply].
package buffer
