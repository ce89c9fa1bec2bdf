package node_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solast-dev/solast/pkg/solast/pkg/node"
)

func buildSampleBlock(f *node.Factory) (*node.Block, *node.Break, *node.Continue) {
	br := f.NewBreak(node.Src{})
	cont := f.NewContinue(node.Src{})
	block := f.NewBlock(node.Src{}, []node.Statement{br, cont})

	return block, br, cont
}

func TestWalk_VisitsRootAndEveryDescendantPreOrder(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	block, br, cont := buildSampleBlock(f)

	var seen []node.Node
	node.Walk(block, func(n node.Node) bool {
		seen = append(seen, n)

		return true
	})

	require.Equal(t, []node.Node{node.Node(block), node.Node(br), node.Node(cont)}, seen)
}

func TestWalk_ReturningFalseSkipsChildren(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	inner := f.NewBreak(node.Src{})
	innerBlock := f.NewBlock(node.Src{}, []node.Statement{inner})
	outer := f.NewBlock(node.Src{}, []node.Statement{innerBlock})

	var seen []node.Node
	node.Walk(outer, func(n node.Node) bool {
		seen = append(seen, n)

		return n != node.Node(innerBlock)
	})

	require.Equal(t, []node.Node{node.Node(outer), node.Node(innerBlock)}, seen)
}

func TestDescendants_ExcludesSelfWhenAsked(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	block, br, cont := buildSampleBlock(f)

	withSelf := node.Descendants(block, true)
	require.Len(t, withSelf, 3)

	withoutSelf := node.Descendants(block, false)
	require.Equal(t, []node.Node{node.Node(br), node.Node(cont)}, withoutSelf)
}

func TestFindByKind_ReturnsEveryMatchInPreOrder(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	br1 := f.NewBreak(node.Src{})
	br2 := f.NewBreak(node.Src{})
	cont := f.NewContinue(node.Src{})
	block := f.NewBlock(node.Src{}, []node.Statement{br1, cont, br2})

	matches := node.FindByKind(block, node.KindBreak)
	require.Equal(t, []node.Node{node.Node(br1), node.Node(br2)}, matches)
}

func TestFind_ReturnsFirstMatchOrNil(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	block, br, _ := buildSampleBlock(f)

	found := node.Find(block, func(n node.Node) bool { return n.Kind() == node.KindBreak })
	require.Equal(t, node.Node(br), found)

	notFound := node.Find(block, func(n node.Node) bool { return n.Kind() == node.KindThrow })
	require.Nil(t, notFound)
}

func TestCount_CountsMatchingNodes(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	block, _, _ := buildSampleBlock(f)

	require.Equal(t, 3, node.Count(block, func(node.Node) bool { return true }))
	require.Equal(t, 1, node.Count(block, func(n node.Node) bool { return n.Kind() == node.KindContinue }))
}

func TestPrint_RespectsMaxDepth(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	block, _, _ := buildSampleBlock(f)

	shallow := node.Print(block, 1)
	require.Equal(t, 1, strings.Count(shallow, "\n"))

	full := node.Print(block, 0)
	require.Equal(t, 3, strings.Count(full, "\n"))
}

func TestKind_MatchesConcreteNodeType(t *testing.T) {
	ctx := node.NewContext("test", 0)
	f := node.NewFactory(ctx)

	br := f.NewBreak(node.Src{})
	require.Equal(t, node.KindBreak, br.Kind())

	block := f.NewBlock(node.Src{}, nil)
	require.Equal(t, node.KindBlock, block.Kind())
}
