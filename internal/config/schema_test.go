package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFile() *File {
	return &File{
		ClusterName: "demo",
		Nodes: []NodeEntry{
			{Name: "ctrl-1", Role: NodeRoleController},
			{Name: "work-1", Role: NodeRoleWorker},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validFile().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "missing cluster name",
			mutate:  func(f *File) { f.ClusterName = "" },
			wantErr: "cluster_name is required",
		},
		{
			name:    "uppercase cluster name",
			mutate:  func(f *File) { f.ClusterName = "Demo" },
			wantErr: "cluster_name",
		},
		{
			name:    "empty inventory",
			mutate:  func(f *File) { f.Nodes = nil },
			wantErr: "nodes inventory is empty",
		},
		{
			name:    "node without name",
			mutate:  func(f *File) { f.Nodes[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "invalid node name",
			mutate:  func(f *File) { f.Nodes[0].Name = "1-ctrl" },
			wantErr: "must be lowercase alphanumeric",
		},
		{
			name: "duplicate node name",
			mutate: func(f *File) {
				f.Nodes = append(f.Nodes, NodeEntry{Name: "ctrl-1", Role: NodeRoleWorker})
			},
			wantErr: "duplicate name",
		},
		{
			name:    "unknown role",
			mutate:  func(f *File) { f.Nodes[0].Role = "conductor" },
			wantErr: "role must be one of",
		},
		{
			name: "config and overrides together",
			mutate: func(f *File) {
				f.Nodes[0].ConfigPath = "ctrl-1.yaml"
				f.Nodes[0].Overrides = FromMap(map[string]any{"image": "24.04"})
			},
			wantErr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(f)

			err := f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllIssues(t *testing.T) {
	f := &File{
		Nodes: []NodeEntry{
			{Name: "", Role: "conductor"},
		},
	}

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster_name is required")
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "role must be one of")
}

func TestRoleDefaults_ForRole(t *testing.T) {
	roles := RoleDefaults{
		Controller: FromMap(map[string]any{"memory": "8G"}),
		Worker:     FromMap(map[string]any{"cpus": 4}),
	}

	assert.NotNil(t, roles.ForRole(NodeRoleController))
	assert.NotNil(t, roles.ForRole(NodeRoleWorker))
	assert.Nil(t, roles.ForRole("conductor"))
}

func TestIsValidName(t *testing.T) {
	valid := []string{"a", "ctrl-1", "work-node-22", "n0"}
	for _, name := range valid {
		assert.True(t, isValidName(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "1node", "-node", "node-", "Node", "node_1", "node.a"}
	for _, name := range invalid {
		assert.False(t, isValidName(name), "expected %q to be invalid", name)
	}
}
