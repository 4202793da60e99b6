package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OverrideWins(t *testing.T) {
	base := FromMap(map[string]any{
		"image": "22.04",
		"resources": map[string]any{
			"cpus":   2,
			"memory": "4G",
		},
	})
	override := FromMap(map[string]any{
		"resources": map[string]any{
			"memory": "8G",
		},
	})

	merged := Merge(base, override)

	memory, _ := merged.GetPath("resources", "memory")
	s, _ := memory.AsString()
	assert.Equal(t, "8G", s)

	// Keys absent from the override survive from the base.
	cpus, ok := merged.GetPath("resources", "cpus")
	require.True(t, ok)
	n, _ := cpus.AsInt()
	assert.Equal(t, 2, n)

	image, ok := merged.Get("image")
	require.True(t, ok)
	str, _ := image.AsString()
	assert.Equal(t, "22.04", str)
}

func TestMerge_SequencesReplaceWholesale(t *testing.T) {
	base := FromMap(map[string]any{
		"mounts": []any{
			map[string]any{"source": "/a", "target": "/a"},
			map[string]any{"source": "/b", "target": "/b"},
		},
	})
	override := FromMap(map[string]any{
		"mounts": []any{
			map[string]any{"source": "/c", "target": "/c"},
		},
	})

	merged := Merge(base, override)

	mounts, ok := merged.Get("mounts")
	require.True(t, ok)
	require.Equal(t, KindSequence, mounts.Kind)
	require.Len(t, mounts.Sequence, 1, "sequences must replace, not concatenate")

	source, _ := mounts.Sequence[0].Map["source"].AsString()
	assert.Equal(t, "/c", source)
}

func TestMerge_KindMismatchTakesOverride(t *testing.T) {
	base := FromMap(map[string]any{
		"network": map[string]any{"bridged": true},
	})
	override := FromMap(map[string]any{
		"network": "disabled",
	})

	merged := Merge(base, override)

	network, ok := merged.Get("network")
	require.True(t, ok)
	assert.Equal(t, KindScalar, network.Kind)
	s, _ := network.AsString()
	assert.Equal(t, "disabled", s)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := FromMap(map[string]any{
		"resources": map[string]any{"cpus": 2},
	})
	override := FromMap(map[string]any{
		"resources": map[string]any{"cpus": 8, "memory": "8G"},
	})

	merged := Merge(base, override)
	merged["resources"].Map["cpus"] = ScalarValue(99)
	merged["resources"].Map["disk"] = ScalarValue("50G")

	baseCPUs, _ := base.GetPath("resources", "cpus")
	n, _ := baseCPUs.AsInt()
	assert.Equal(t, 2, n, "merge mutated the base tree")

	overrideCPUs, _ := override.GetPath("resources", "cpus")
	n, _ = overrideCPUs.AsInt()
	assert.Equal(t, 8, n, "merge mutated the override tree")

	_, ok := override.GetPath("resources", "disk")
	assert.False(t, ok)
}

func TestMerge_EmptyTrees(t *testing.T) {
	base := FromMap(map[string]any{"image": "22.04"})

	merged := Merge(base, Tree{})
	image, ok := merged.Get("image")
	require.True(t, ok)
	s, _ := image.AsString()
	assert.Equal(t, "22.04", s)

	merged = Merge(Tree{}, base)
	_, ok = merged.Get("image")
	assert.True(t, ok)

	merged = Merge(nil, nil)
	assert.Empty(t, merged)
}

// Layered resolution is two sequential two-way merges. A key set in all
// three layers resolves to the most specific one, a key set in two layers
// resolves to the more specific of those, and a key set once passes
// through untouched.
func TestMerge_ThreeLayerPrecedence(t *testing.T) {
	clusterDefaults := FromMap(map[string]any{
		"image": "22.04",
		"resources": map[string]any{
			"cpus":   1,
			"memory": "1G",
			"disk":   "10G",
		},
	})
	roleDefaults := FromMap(map[string]any{
		"resources": map[string]any{
			"cpus":   2,
			"memory": "4G",
		},
	})
	nodeOverride := FromMap(map[string]any{
		"resources": map[string]any{
			"cpus": 4,
		},
	})

	effective := Merge(Merge(clusterDefaults, roleDefaults), nodeOverride)

	cpus, _ := effective.GetPath("resources", "cpus")
	n, _ := cpus.AsInt()
	assert.Equal(t, 4, n, "node override must beat role and cluster defaults")

	memory, _ := effective.GetPath("resources", "memory")
	s, _ := memory.AsString()
	assert.Equal(t, "4G", s, "role default must beat cluster default")

	disk, _ := effective.GetPath("resources", "disk")
	s, _ = disk.AsString()
	assert.Equal(t, "10G", s, "cluster default must survive when nothing overrides it")

	image, _ := effective.Get("image")
	s, _ = image.AsString()
	assert.Equal(t, "22.04", s)
}
