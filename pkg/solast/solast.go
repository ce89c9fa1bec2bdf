// Package solast composes the reader and sanity checker into the single
// entry point downstream callers use: Read turns raw Solidity compiler
// JSON into a sane, typed tree in one call.
package solast

import (
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
	"github.com/solast-dev/solast/pkg/solast/pkg/sanity"
)

// ReadOptions configures a Read call.
type ReadOptions struct {
	reader.Options

	// SkipSanityCheck disables the post-read sanity pass. Off by default:
	// a caller that needs the raw, unchecked tree even when malformed
	// should set this explicitly rather than get it silently.
	SkipSanityCheck bool
}

// Result is the output of a successful Read: every source unit built, and
// the context that owns them all.
type Result struct {
	Units []*node.SourceUnit
	Ctx   *node.Context
}

// Read parses raw Solidity compiler JSON into a typed tree, then runs the
// sanity checker over every unit unless SkipSanityCheck is set. A sanity
// violation aborts Read the same way a reader error does: it returns no
// usable tree.
func Read(raw []byte, opts ReadOptions) (*Result, error) {
	units, ctx, err := reader.Read(raw, opts.Options)
	if err != nil {
		return nil, err
	}

	if !opts.SkipSanityCheck {
		for _, unit := range units {
			if err := sanity.Check(ctx, unit); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Units: units, Ctx: ctx}, nil
}
