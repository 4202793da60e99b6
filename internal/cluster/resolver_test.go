package cluster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/resource"
)

func TestResolveNode_Precedence(t *testing.T) {
	clusterDefaults := config.FromMap(map[string]any{
		"image": "22.04",
		"resources": map[string]any{
			"cpus":   1,
			"memory": "1G",
			"disk":   "10G",
		},
	})
	roleDefaults := config.FromMap(map[string]any{
		"resources": map[string]any{
			"cpus":   2,
			"memory": "4G",
		},
	})
	override := config.FromMap(map[string]any{
		"resources": map[string]any{
			"cpus": 8,
		},
	})

	node, effective, err := ResolveNode("ctrl-1", RoleController, clusterDefaults, roleDefaults, override)
	require.NoError(t, err)

	assert.Equal(t, 8, node.CPUs, "override layer must win")
	assert.Equal(t, "4G", node.Memory.String(), "role layer must beat cluster layer")
	assert.Equal(t, "10G", node.Disk.String(), "cluster layer survives when unset above")
	assert.Equal(t, "22.04", node.Image)
	assert.Equal(t, RoleController, node.Role)

	cpus, ok := effective.GetPath("resources", "cpus")
	require.True(t, ok)
	n, _ := cpus.AsInt()
	assert.Equal(t, 8, n)
}

func TestResolveNode_Defaults(t *testing.T) {
	node, _, err := ResolveNode("work-1", RoleWorker, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultImage, node.Image)
	assert.Equal(t, DefaultCPUs, node.CPUs)
	assert.Equal(t, DefaultMemory, node.Memory.String())
	assert.Equal(t, DefaultDisk, node.Disk.String())
	assert.False(t, node.Network.Bridged)
}

func TestResolveNode_InvalidQuantity(t *testing.T) {
	override := config.FromMap(map[string]any{
		"resources": map[string]any{
			"memory": "4X",
		},
	})

	_, _, err := ResolveNode("work-1", RoleWorker, nil, nil, override)
	require.Error(t, err)
	assert.True(t, IsResolutionError(err))
	assert.True(t, resource.IsInvalidQuantity(err), "the parse failure must stay in the chain")
	assert.Contains(t, err.Error(), "work-1")
	assert.Contains(t, err.Error(), "4X")
}

func TestResolveNode_SuffixlessQuantity(t *testing.T) {
	// A bare number must not slip through as zero.
	override := config.FromMap(map[string]any{
		"resources": map[string]any{
			"disk": 40,
		},
	})

	_, _, err := ResolveNode("work-1", RoleWorker, nil, nil, override)
	require.Error(t, err)
	assert.True(t, resource.IsInvalidQuantity(err))
	assert.Contains(t, err.Error(), "resources.disk")
}

func TestResolveNode_ProjectsFullTree(t *testing.T) {
	override := config.FromMap(map[string]any{
		"image": 24.04,
		"resources": map[string]any{
			"cpus":   4,
			"memory": "8G",
			"disk":   "40G",
		},
		"network": map[string]any{
			"bridged":    true,
			"interfaces": []any{"name=eth1", "name=eth2"},
		},
		"mounts": []any{
			map[string]any{"source": "/srv/data", "target": "/data", "read_only": true},
			map[string]any{"source": "/srv/cache", "target": "/cache"},
		},
		"cloud_init": "cloud-init/worker.yaml",
		"system": map[string]any{
			"post_creation_scripts": []any{"scripts/install-k3s.sh"},
		},
		"extra_options": []any{"--timeout", "600"},
	})

	node, _, err := ResolveNode("work-1", RoleWorker, nil, nil, override)
	require.NoError(t, err)

	assert.Equal(t, "24.04", node.Image, "numeric image labels keep their text form")
	assert.Equal(t, 4, node.CPUs)
	assert.True(t, node.Network.Bridged)
	assert.Equal(t, []string{"name=eth1", "name=eth2"}, node.Network.Interfaces)
	require.Len(t, node.Mounts, 2)
	assert.Equal(t, Mount{Source: "/srv/data", Target: "/data", ReadOnly: true}, node.Mounts[0])
	assert.Equal(t, Mount{Source: "/srv/cache", Target: "/cache"}, node.Mounts[1])
	assert.Equal(t, "cloud-init/worker.yaml", node.CloudInitPath)
	assert.Equal(t, []string{"scripts/install-k3s.sh"}, node.PostCreationScripts)
	assert.Equal(t, []string{"--timeout", "600"}, node.ExtraOptions)
}

func TestResolveNode_CollectsAllFindings(t *testing.T) {
	override := config.FromMap(map[string]any{
		"resources": map[string]any{
			"cpus":   0,
			"memory": "4X",
		},
		"network": map[string]any{
			"bridged": "yes",
		},
		"mounts": []any{
			map[string]any{"source": "/srv/data"},
		},
	})

	_, _, err := ResolveNode("work-1", RoleWorker, nil, nil, override)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resources.cpus")
	assert.Contains(t, err.Error(), "resources.memory")
	assert.Contains(t, err.Error(), "network.bridged")
	assert.Contains(t, err.Error(), "source and target are required")
}

func inventoryFile() *config.File {
	return &config.File{
		ClusterName: "demo",
		Defaults: config.FromMap(map[string]any{
			"resources": map[string]any{
				"cpus":   2,
				"memory": "2G",
				"disk":   "10G",
			},
		}),
		Roles: config.RoleDefaults{
			Controller: config.FromMap(map[string]any{
				"resources": map[string]any{"memory": "4G"},
			}),
		},
		Nodes: []config.NodeEntry{
			{Name: "ctrl-1", Role: config.NodeRoleController},
			{Name: "work-1", Role: config.NodeRoleWorker},
			{Name: "work-2", Role: config.NodeRoleWorker},
		},
	}
}

func TestResolve_BuildsCluster(t *testing.T) {
	c, err := BuildCluster(inventoryFile())
	require.NoError(t, err)

	assert.Equal(t, "demo", c.Name())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"ctrl-1", "work-1", "work-2"}, c.Names())

	ctrl, ok := c.Get("ctrl-1")
	require.True(t, ok)
	assert.Equal(t, "4G", ctrl.Memory.String())

	worker, ok := c.Get("work-1")
	require.True(t, ok)
	assert.Equal(t, "2G", worker.Memory.String())
}

func TestResolve_IsolatesPerNodeFailures(t *testing.T) {
	f := inventoryFile()
	f.Nodes[1].Overrides = config.FromMap(map[string]any{
		"resources": map[string]any{"memory": "4Q"},
	})

	c, err := BuildCluster(f)
	require.Error(t, err)
	assert.True(t, IsResolutionError(err))
	assert.Contains(t, err.Error(), "work-1")

	// The bad node must not block the others.
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("ctrl-1")
	assert.True(t, ok)
	_, ok = c.Get("work-2")
	assert.True(t, ok)
	_, ok = c.Get("work-1")
	assert.False(t, ok)
}

func TestResolve_DuplicateName(t *testing.T) {
	f := inventoryFile()
	f.Nodes = append(f.Nodes, config.NodeEntry{Name: "ctrl-1", Role: config.NodeRoleWorker})

	c, err := BuildCluster(f)
	require.Error(t, err)
	assert.True(t, IsDuplicateNode(err))
	assert.Equal(t, 3, c.Len())
}

func TestResolve_UnknownRole(t *testing.T) {
	f := inventoryFile()
	f.Nodes[0].Role = "conductor"

	c, err := BuildCluster(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ctrl-1")
	assert.Contains(t, err.Error(), "conductor")
	assert.Equal(t, 2, c.Len())
}

func TestResolve_OverrideFiles(t *testing.T) {
	f := inventoryFile()
	f.Nodes[2].ConfigPath = "nodes/work-2.yaml"

	loaded := map[string]int{}
	loader := func(path string) (config.Tree, error) {
		loaded[path]++
		return config.FromMap(map[string]any{
			"resources": map[string]any{"disk": "50G"},
		}), nil
	}

	c, err := BuildCluster(f, WithOverrideLoader(loader))
	require.NoError(t, err)
	assert.Equal(t, 1, loaded["nodes/work-2.yaml"])

	n, ok := c.Get("work-2")
	require.True(t, ok)
	assert.Equal(t, "50G", n.Disk.String())
}

func TestResolve_OverrideFileError(t *testing.T) {
	f := inventoryFile()
	f.Nodes[2].ConfigPath = "nodes/work-2.yaml"

	loader := func(path string) (config.Tree, error) {
		return nil, fmt.Errorf("read %s: no such file", path)
	}

	c, err := BuildCluster(f, WithOverrideLoader(loader))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work-2")
	assert.Equal(t, 2, c.Len())
}

func TestResolve_SnapshotsOnlyValidatedNodes(t *testing.T) {
	f := inventoryFile()
	f.Nodes[1].Overrides = config.FromMap(map[string]any{
		"resources": map[string]any{"memory": "bad"},
	})

	var written []string
	writer := SnapshotWriterFunc(func(node string, effective config.Tree) error {
		written = append(written, node)

		// Snapshots carry the merged tree, not a single layer.
		memory, ok := effective.GetPath("resources", "memory")
		require.True(t, ok)
		s, _ := memory.AsString()
		assert.NotEmpty(t, s)
		return nil
	})

	_, err := BuildCluster(f, WithSnapshotWriter(writer))
	require.Error(t, err)
	assert.Equal(t, []string{"ctrl-1", "work-2"}, written, "failed nodes must never be snapshotted")
}

func TestResolve_SnapshotWriteFailure(t *testing.T) {
	writer := SnapshotWriterFunc(func(node string, effective config.Tree) error {
		if node == "work-1" {
			return errors.New("disk full")
		}
		return nil
	})

	c, err := BuildCluster(inventoryFile(), WithSnapshotWriter(writer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work-1")
	assert.Contains(t, err.Error(), "disk full")

	// The node itself resolved; only its snapshot failed.
	assert.Equal(t, 3, c.Len())
}
