package node

import (
	"fmt"
	"strings"
)

// Print renders root's subtree as plain indented text, down to maxDepth
// levels (0 means unlimited; 1 prints only root's own line). cmd/solast
// uses it directly for parse's tree format, explore's tree command and
// diff's unified output.
func Print(root Node, maxDepth int) string {
	var b strings.Builder

	printNode(&b, root, 0, maxDepth)

	return b.String()
}

func printNode(b *strings.Builder, n Node, depth, maxDepth int) {
	if n == nil {
		return
	}

	fmt.Fprintf(b, "%s%s#%d [%s]\n", strings.Repeat("  ", depth), n.Kind(), n.ID(), n.Src())

	if maxDepth > 0 && depth+1 >= maxDepth {
		return
	}

	for _, c := range n.Children() {
		printNode(b, c, depth+1, maxDepth)
	}
}
