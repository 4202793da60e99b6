package multipass

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// listPayload mirrors `multipass list --format json`.
type listPayload struct {
	List []struct {
		IPv4    []string `json:"ipv4"`
		Name    string   `json:"name"`
		Release string   `json:"release"`
		State   string   `json:"state"`
	} `json:"list"`
}

// Query re-fetches machine state from the backend. The result preserves
// backend-reported order. Requested names the backend does not know are
// simply absent from the result.
func (c *CLIClient) Query(ctx context.Context, names []string) ([]VMState, error) {
	stdout, stderr, exitCode, err := c.runner.Run(ctx, c.binary, "list", "--format", "json")
	if err != nil {
		return nil, &GatewayError{Op: "list", Stderr: string(stderr), Err: err}
	}
	if exitCode != 0 {
		return nil, &GatewayError{Op: "list", Stderr: string(stderr), Err: fmt.Errorf("exit status %d", exitCode)}
	}

	var payload listPayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		return nil, &GatewayError{Op: "list", Err: fmt.Errorf("unexpected backend output: %w", err)}
	}

	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}

	var states []VMState
	for _, entry := range payload.List {
		if len(names) > 0 && !requested[entry.Name] {
			continue
		}
		states = append(states, VMState{
			Name:  entry.Name,
			State: ParseState(entry.State),
			Raw:   strings.TrimSpace(entry.State),
			IPv4:  entry.IPv4,
			Image: entry.Release,
		})
	}

	return states, nil
}
