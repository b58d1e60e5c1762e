// Package monitor drives the display device from CPU usage samples.
//
// A Loop owns one device link for the life of one connection attempt. It
// moves through these states:
//
//	Starting  wait the warm-up delay, then send one interval frame
//	Running   sample, map to a color, send a color frame; repeat
//	Failed    a write failed; the loop is done and the link must be reopened
//	Stopped   the context was canceled
//
// # Pacing
//
// There is no ticker. The sampler measures CPU usage over the sampling
// interval and blocks for that long, which sets the cadence of the loop.
//
// # Interval Re-announcement
//
// The device stores the sampling interval so it can fade between colors.
// It may miss the first announcement or reset, so the loop repeats the
// interval frame after every AnnounceEvery color frames (default 10).
//
// # History
//
// History keeps recent samples in a ring buffer for the terminal sparkline.
package monitor
