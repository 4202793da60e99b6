// Package multipass wraps the Multipass command line client behind
// narrow, capability-scoped interfaces. Lifecycle code depends on the
// capability it needs (Launcher, PowerManager, Querier, ...) rather than
// on the full client, and tests substitute mocks at that boundary.
//
// The concrete CLIClient shells out to the multipass binary. It never
// parses exit codes itself beyond zero/non-zero: failures carry the
// backend's stderr in a GatewayError so callers see what the backend
// said. State is observed, never cached; Query re-runs the backend list
// on every call.
package multipass
