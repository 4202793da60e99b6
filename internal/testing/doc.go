// Package testing provides shared mocks for unit tests.
//
// MockGateway stands in for the multipass backend client and MockConfirmer
// for the interactive confirmation gate. Both are testify mocks with With*
// helpers that script the common cases:
//
//	gw := testing.NewMockGateway().
//	    WithVMs(multipass.VMState{Name: "worker-01", State: multipass.StateRunning}).
//	    WithLaunchSuccess()
//
// Tests that need per-call behavior fall back to the raw On/Return API.
package testing
