package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTree_UnmarshalYAML(t *testing.T) {
	input := []byte(`
image: 22.04
resources:
  cpus: 2
  memory: 4G
network:
  bridged: true
mounts:
  - source: /srv/data
    target: /data
    read_only: true
tags: [a, b, c]
`)

	var tree Tree
	require.NoError(t, yaml.Unmarshal(input, &tree))

	image, ok := tree.Get("image")
	require.True(t, ok)
	assert.Equal(t, KindScalar, image.Kind)

	resources, ok := tree.Get("resources")
	require.True(t, ok)
	assert.Equal(t, KindMap, resources.Kind)

	cpus, ok := tree.GetPath("resources", "cpus")
	require.True(t, ok)
	n, ok := cpus.AsInt()
	require.True(t, ok)
	assert.Equal(t, 2, n)

	memory, ok := tree.GetPath("resources", "memory")
	require.True(t, ok)
	s, ok := memory.AsString()
	require.True(t, ok)
	assert.Equal(t, "4G", s)

	bridged, ok := tree.GetPath("network", "bridged")
	require.True(t, ok)
	b, ok := bridged.AsBool()
	require.True(t, ok)
	assert.True(t, b)

	mounts, ok := tree.Get("mounts")
	require.True(t, ok)
	assert.Equal(t, KindSequence, mounts.Kind)
	require.Len(t, mounts.Sequence, 1)
	assert.Equal(t, KindMap, mounts.Sequence[0].Kind)

	tags, ok := tree.Get("tags")
	require.True(t, ok)
	names, ok := tags.AsStringSlice()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestValue_Accessors(t *testing.T) {
	t.Run("bool is strict", func(t *testing.T) {
		// Truthy strings and numbers must not pass as booleans.
		_, ok := ScalarValue("yes").AsBool()
		assert.False(t, ok)

		_, ok = ScalarValue(1).AsBool()
		assert.False(t, ok)

		b, ok := ScalarValue(true).AsBool()
		require.True(t, ok)
		assert.True(t, b)
	})

	t.Run("int accepts integral floats", func(t *testing.T) {
		n, ok := ScalarValue(float64(4)).AsInt()
		require.True(t, ok)
		assert.Equal(t, 4, n)

		_, ok = ScalarValue(4.5).AsInt()
		assert.False(t, ok)
	})

	t.Run("string slice rejects mixed sequences", func(t *testing.T) {
		mixed := SequenceValue(ScalarValue("a"), ScalarValue(1))
		_, ok := mixed.AsStringSlice()
		assert.False(t, ok)
	})

	t.Run("kind mismatches", func(t *testing.T) {
		_, ok := MapValue(Tree{}).AsString()
		assert.False(t, ok)
		_, ok = ScalarValue("x").AsStringSlice()
		assert.False(t, ok)
	})
}

func TestTree_GetPath(t *testing.T) {
	tree := FromMap(map[string]any{
		"system": map[string]any{
			"post_creation_scripts": []any{"setup.sh"},
		},
	})

	_, ok := tree.GetPath("system", "post_creation_scripts")
	assert.True(t, ok)

	_, ok = tree.GetPath("system", "missing")
	assert.False(t, ok)

	// Scalar in the middle of the path terminates the walk.
	_, ok = tree.GetPath("system", "post_creation_scripts", "nested")
	assert.False(t, ok)

	_, ok = tree.GetPath()
	assert.False(t, ok)
}

func TestTree_Clone(t *testing.T) {
	original := FromMap(map[string]any{
		"resources": map[string]any{"cpus": 2},
		"tags":      []any{"a"},
	})

	clone := original.Clone()
	clone["resources"].Map["cpus"] = ScalarValue(8)
	clone["tags"].Sequence[0] = ScalarValue("changed")

	cpus, _ := original.GetPath("resources", "cpus")
	n, _ := cpus.AsInt()
	assert.Equal(t, 2, n, "clone mutation leaked into the original")

	tags, _ := original.Get("tags")
	s, _ := tags.Sequence[0].AsString()
	assert.Equal(t, "a", s)
}

func TestTree_MarshalRoundTrip(t *testing.T) {
	original := FromMap(map[string]any{
		"image": "22.04",
		"resources": map[string]any{
			"cpus":   2,
			"memory": "4G",
		},
		"tags": []any{"a", "b"},
	})

	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	var decoded Tree
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	memory, ok := decoded.GetPath("resources", "memory")
	require.True(t, ok)
	s, _ := memory.AsString()
	assert.Equal(t, "4G", s)

	tags, ok := decoded.Get("tags")
	require.True(t, ok)
	names, _ := tags.AsStringSlice()
	assert.Equal(t, []string{"a", "b"}, names)
}
