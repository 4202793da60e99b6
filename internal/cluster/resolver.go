package cluster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yehuo/multipass-k3s-cli/internal/config"
	"github.com/yehuo/multipass-k3s-cli/internal/resource"
)

// Fallback values for settings no configuration layer provides. They
// mirror the backend's own launch defaults.
const (
	DefaultImage  = "22.04"
	DefaultCPUs   = 2
	DefaultMemory = "2G"
	DefaultDisk   = "10G"
)

// ResolutionError reports that one node's configuration could not be
// resolved into a usable node. It names the node so batch resolution can
// report exactly which inventory entries failed.
type ResolutionError struct {
	Node string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve node %s: %v", e.Node, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// IsResolutionError reports whether err is a per-node resolution failure.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

// SnapshotWriter persists a node's effective configuration tree. The
// resolver invokes it only after the node validated, never before.
type SnapshotWriter interface {
	WriteSnapshot(node string, effective config.Tree) error
}

// SnapshotWriterFunc adapts a function to SnapshotWriter.
type SnapshotWriterFunc func(node string, effective config.Tree) error

func (f SnapshotWriterFunc) WriteSnapshot(node string, effective config.Tree) error {
	return f(node, effective)
}

// OverrideLoader reads a node's override tree from its config path.
// Injected so inventory walking is testable without a filesystem.
type OverrideLoader func(path string) (config.Tree, error)

// Resolver builds cluster nodes from the layered configuration.
type Resolver struct {
	snapshots    SnapshotWriter
	loadOverride OverrideLoader
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithSnapshotWriter persists every node's effective tree through w once
// the node validates.
func WithSnapshotWriter(w SnapshotWriter) ResolverOption {
	return func(r *Resolver) { r.snapshots = w }
}

// WithOverrideLoader replaces the file-based override loader.
func WithOverrideLoader(l OverrideLoader) ResolverOption {
	return func(r *Resolver) { r.loadOverride = l }
}

// NewResolver creates a Resolver. By default override files are read from
// disk and no snapshots are written.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{loadOverride: config.LoadTree}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveNode resolves one node from its three configuration layers:
// cluster defaults first, role defaults over them, the per-node override
// last. The merged tree is validated and projected into a typed Node.
// The effective tree is returned alongside the node for snapshotting.
func ResolveNode(name string, role Role, clusterDefaults, roleDefaults, override config.Tree) (Node, config.Tree, error) {
	effective := config.Merge(config.Merge(clusterDefaults, roleDefaults), override)

	node, err := projectNode(name, role, effective)
	if err != nil {
		return Node{}, nil, &ResolutionError{Node: name, Err: err}
	}

	return node, effective, nil
}

// Resolve walks the inventory in declaration order and builds the cluster
// model. A node that fails to resolve does not block the others: failures
// are collected and returned joined, alongside the cluster holding every
// node that did resolve.
func (r *Resolver) Resolve(f *config.File) (*Cluster, error) {
	c := New(f.ClusterName)
	var errs []error

	for _, entry := range f.Nodes {
		role, err := ParseRole(entry.Role)
		if err != nil {
			errs = append(errs, &ResolutionError{Node: entry.Name, Err: err})
			continue
		}

		override := entry.Overrides
		if entry.ConfigPath != "" {
			override, err = r.loadOverride(entry.ConfigPath)
			if err != nil {
				errs = append(errs, &ResolutionError{Node: entry.Name, Err: err})
				continue
			}
		}

		node, effective, err := ResolveNode(entry.Name, role, f.Defaults, f.Roles.ForRole(entry.Role), override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := c.AddNode(node); err != nil {
			errs = append(errs, &ResolutionError{Node: entry.Name, Err: err})
			continue
		}

		if r.snapshots != nil {
			if err := r.snapshots.WriteSnapshot(node.Name, effective); err != nil {
				errs = append(errs, &ResolutionError{Node: entry.Name, Err: err})
			}
		}
	}

	return c, errors.Join(errs...)
}

// BuildCluster resolves every inventory node of f into a cluster model.
func BuildCluster(f *config.File, opts ...ResolverOption) (*Cluster, error) {
	return NewResolver(opts...).Resolve(f)
}

// projectNode validates the effective tree and projects it into a Node.
// All findings are joined so one pass reports every problem in the tree.
func projectNode(name string, role Role, effective config.Tree) (Node, error) {
	var errs []error

	node := Node{
		Name:   name,
		Role:   role,
		Image:  DefaultImage,
		CPUs:   DefaultCPUs,
		Config: effective,
	}

	if name == "" {
		errs = append(errs, errors.New("name is required"))
	}

	if v, ok := effective.Get("image"); ok {
		// Bare version numbers like 22.04 decode as floats; render the
		// text the user wrote.
		if s, ok := scalarText(v); ok && s != "" {
			node.Image = s
		} else {
			errs = append(errs, fmt.Errorf("image: expected an image name, got %s", v.Kind))
		}
	}

	if v, ok := effective.GetPath("resources", "cpus"); ok {
		n, err := countValue(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("resources.cpus: %w", err))
		} else {
			node.CPUs = n
		}
	}

	memory, err := quantityAt(effective, DefaultMemory, "resources", "memory")
	if err != nil {
		errs = append(errs, err)
	}
	node.Memory = memory

	disk, err := quantityAt(effective, DefaultDisk, "resources", "disk")
	if err != nil {
		errs = append(errs, err)
	}
	node.Disk = disk

	if v, ok := effective.GetPath("network", "bridged"); ok {
		b, ok := v.AsBool()
		if !ok {
			errs = append(errs, errors.New("network.bridged: expected true or false"))
		} else {
			node.Network.Bridged = b
		}
	}

	if v, ok := effective.GetPath("network", "interfaces"); ok {
		ifaces, ok := v.AsStringSlice()
		if !ok {
			errs = append(errs, errors.New("network.interfaces: expected a list of interface specs"))
		} else {
			node.Network.Interfaces = ifaces
		}
	}

	if v, ok := effective.Get("mounts"); ok {
		mounts, err := mountsFromValue(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			node.Mounts = mounts
		}
	}

	if v, ok := effective.Get("cloud_init"); ok {
		if s, ok := v.AsString(); ok {
			node.CloudInitPath = s
		} else {
			errs = append(errs, errors.New("cloud_init: expected a file path"))
		}
	}

	if v, ok := effective.GetPath("system", "post_creation_scripts"); ok {
		scripts, ok := v.AsStringSlice()
		if !ok {
			errs = append(errs, errors.New("system.post_creation_scripts: expected a list of script paths"))
		} else {
			node.PostCreationScripts = scripts
		}
	}

	if v, ok := effective.Get("extra_options"); ok {
		opts, ok := v.AsStringSlice()
		if !ok {
			errs = append(errs, errors.New("extra_options: expected a list of strings"))
		} else {
			node.ExtraOptions = opts
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Node{}, err
	}
	return node, nil
}

// quantityAt reads a resource quantity at the given path, applying the
// fallback when no layer set it. A present but malformed value is an
// error, never a silent default.
func quantityAt(t config.Tree, fallback string, path ...string) (resource.Quantity, error) {
	key := strings.Join(path, ".")

	v, ok := t.GetPath(path...)
	if !ok {
		return resource.Parse(fallback)
	}

	text, ok := scalarText(v)
	if !ok {
		return resource.Quantity{}, fmt.Errorf("%s: expected a quantity string, got %s", key, v.Kind)
	}

	q, err := resource.Parse(text)
	if err != nil {
		return resource.Quantity{}, fmt.Errorf("%s: %w", key, err)
	}
	return q, nil
}

// countValue reads a positive integer that may arrive as a YAML number
// or as a numeric string.
func countValue(v config.Value) (int, error) {
	if n, ok := v.AsInt(); ok {
		if n <= 0 {
			return 0, fmt.Errorf("count must be positive, got %d", n)
		}
		return n, nil
	}
	if s, ok := v.AsString(); ok {
		return resource.ParseCount(s)
	}
	return 0, errors.New("expected a positive integer")
}

// scalarText renders any scalar as text, so values YAML decodes as
// numbers still project cleanly.
func scalarText(v config.Value) (string, bool) {
	if v.Kind != config.KindScalar || v.Scalar == nil {
		return "", false
	}
	if s, ok := v.Scalar.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", v.Scalar), true
}

// mountsFromValue projects the mounts list. Entries are either mappings
// with source/target/read_only keys or compact "source:target[:ro]"
// strings. Findings are joined per entry so one pass reports them all.
func mountsFromValue(v config.Value) ([]Mount, error) {
	if v.Kind != config.KindSequence {
		return nil, errors.New("mounts: expected a list")
	}

	mounts := make([]Mount, 0, len(v.Sequence))
	var errs []error

	for i, item := range v.Sequence {
		var (
			m   Mount
			err error
		)
		switch item.Kind {
		case config.KindMap:
			m, err = mountFromTree(item.Map)
		case config.KindScalar:
			if s, ok := item.AsString(); ok {
				m, err = parseMountSpec(s)
			} else {
				err = errors.New("expected a mapping or a source:target spec")
			}
		default:
			err = errors.New("expected a mapping or a source:target spec")
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("mounts[%d]: %w", i, err))
			continue
		}
		mounts = append(mounts, m)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return mounts, nil
}

func mountFromTree(t config.Tree) (Mount, error) {
	var m Mount

	if v, ok := t.Get("source"); ok {
		m.Source, _ = v.AsString()
	}
	if v, ok := t.Get("target"); ok {
		m.Target, _ = v.AsString()
	}
	if m.Source == "" || m.Target == "" {
		return Mount{}, errors.New("source and target are required")
	}

	if v, ok := t.Get("read_only"); ok {
		ro, ok := v.AsBool()
		if !ok {
			return Mount{}, errors.New("read_only must be true or false")
		}
		m.ReadOnly = ro
	}

	return m, nil
}

// parseMountSpec splits a compact "source:target[:ro]" mount spec.
func parseMountSpec(s string) (Mount, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Mount{}, errors.New("source and target are required")
	}

	m := Mount{Source: parts[0], Target: parts[1]}
	if len(parts) == 3 {
		if parts[2] != "ro" {
			return Mount{}, fmt.Errorf("unknown mount flag %q, only ro is supported", parts[2])
		}
		m.ReadOnly = true
	} else if len(parts) > 3 {
		return Mount{}, errors.New("expected source:target or source:target:ro")
	}

	return m, nil
}
