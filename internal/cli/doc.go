// Package cli implements the cpuglow command-line interface.
//
// The root command takes a single serial device path and runs until
// interrupted:
//
//	cpuglow <serial-device>     - Stream CPU load to the device
//	cpuglow init                - Write a default config file
//	cpuglow version             - Print version information
//
// # Exit Status
//
// Run maps command results to exit codes. A wrong argument count prints
// usage to stderr and exits 1. SIGINT or SIGTERM cancels the context; the
// link supervisor treats that as a normal stop and the process exits 0.
// A device already driven by another live cpuglow process exits 1 before
// the link opens. Device I/O errors never reach this layer: the supervisor
// retries them.
//
// # Configuration
//
// Flags bind to config keys through config.Load, so --interval, --verbose,
// and --color override CPUGLOW_* environment variables and the config file.
package cli
