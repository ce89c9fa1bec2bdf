package reader

import "github.com/solast-dev/solast/pkg/solast/pkg/node"

// Options configures one Read call: the extension points §4.3 reserves for
// callers that need to go beyond the core catalog.
type Options struct {
	// CustomBuilders registers additional tags (or overrides for existing
	// ones) on top of the schema's default registry, for project-specific
	// node kinds a deployment's compiler fork might emit.
	CustomBuilders Registry

	// OnNode, when set, is invoked once per node during the link pass
	// (Pass 2), after every required reference on that node has been
	// confirmed to resolve. It runs in a single pass over the finished
	// tree; node order follows Walk's pre-order traversal.
	OnNode func(node.Node)

	// Lenient, when true, downgrades a DanglingReference on a required
	// attribute from a build failure to a left-unresolved reference: the
	// RefID is kept as-is and the corresponding V* accessor returns nil.
	// Off by default, matching the constructors' ordinary strictness.
	Lenient bool
}

func mergedRegistry(base Registry, custom Registry) Registry {
	if len(custom) == 0 {
		return base
	}

	out := base.Clone()
	for k, v := range custom {
		out[k] = v
	}

	return out
}

// modernRegistry returns DefaultModernRegistry merged with any custom
// builders supplied in opts.
func modernRegistry(opts Options) Registry {
	return mergedRegistry(DefaultModernRegistry(), opts.CustomBuilders)
}

// legacyRegistry returns DefaultLegacyRegistry merged with any custom
// builders supplied in opts.
func legacyRegistry(opts Options) Registry {
	return mergedRegistry(DefaultLegacyRegistry(), opts.CustomBuilders)
}
