package dag

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func leaf(lit string) Node { return Node{Kind: NodeLeaf, Literal: lit} }

func op() Node { return Node{Kind: NodeBinaryOp} }

func TestAddEdgesKeepsTransitiveEdge(t *testing.T) {
	assert := require.New(t)

	// we add
	// ┌────A
	// │    │
	// │    ▼
	// │    B
	// │    │
	// │    ▼
	// └───►C
	d := New(3)
	a := d.AddNode(leaf("a"))
	b := d.AddNode(leaf("b"))
	d.AddEdges(b, []int{a})

	c := d.AddNode(op())
	d.AddEdges(c, []int{a, b})

	// AddEdges does no transitive reduction: C keeps both operands, A and
	// B, since a BinaryOp is evaluated from exactly its two parents.
	assert.Equal(0, len(d.parents[a]))
	assert.Equal(1, len(d.parents[b]))
	assert.Equal(2, len(d.parents[c]))

	assert.Equal(a, d.parents[b][0])
	assert.Equal(a, d.parents[c][0])
	assert.Equal(b, d.parents[c][1])

	assert.Equal(2, len(d.children[a]))
	assert.Equal(1, len(d.children[b]))
	assert.Equal(0, len(d.children[c]))

	assert.Equal(b, d.children[a][0])
	assert.Equal(c, d.children[a][1])
	assert.Equal(c, d.children[b][0])
}

func TestDAGReductionFork(t *testing.T) {
	assert := require.New(t)

	// the edges added below; AddEdges stores them as given
	d := New(5)
	a := d.AddNode(leaf("a"))
	b := d.AddNode(leaf("b"))
	c := d.AddNode(leaf("c"))
	dd := d.AddNode(op())
	d.AddEdges(dd, []int{b, c})

	e := d.AddNode(op())
	d.AddEdges(e, []int{a, dd})

	// the graph is
	// A     B     C
	// │     │     │
	// │     ▼     │
	// │     D ◄───┘
	// │     │
	// │     ▼
	// └────►E
	assert.Equal(0, len(d.parents[a]))
	assert.Equal(0, len(d.parents[b]))
	assert.Equal(0, len(d.parents[c]))
	assert.Equal(2, len(d.parents[dd]))
	assert.Equal(2, len(d.parents[e]))

	assert.Equal(b, d.parents[dd][0])
	assert.Equal(c, d.parents[dd][1])

	assert.Equal(a, d.parents[e][0])
	assert.Equal(dd, d.parents[e][1])

	assert.Equal(1, len(d.children[a]))
	assert.Equal(1, len(d.children[b]))
	assert.Equal(1, len(d.children[c]))
	assert.Equal(1, len(d.children[dd]))
	assert.Equal(0, len(d.children[e]))

	assert.Equal(e, d.children[a][0])
	assert.Equal(dd, d.children[b][0])
	assert.Equal(dd, d.children[c][0])
	assert.Equal(e, d.children[dd][0])

	// Check that levels are coherent
	d.Root = e
	levels := d.Levels()

	// we should have 3 levels: [A,B,C] [D] [E]
	assert.Equal(3, len(levels))
	assert.Equal(3, len(levels[0].Nodes))
	assert.Equal(1, len(levels[1].Nodes))
	assert.Equal(1, len(levels[2].Nodes))

	assert.ElementsMatch([]int{a, b, c}, levels[0].Nodes)
	assert.Equal(dd, levels[1].Nodes[0])
	assert.Equal(e, levels[2].Nodes[0])
}

func TestValidateCoversEveryNode(t *testing.T) {
	assert := require.New(t)

	d := New(3)
	a := d.AddNode(leaf("a"))
	b := d.AddNode(leaf("b"))
	c := d.AddNode(op())
	d.AddEdges(c, []int{a, b})
	d.Root = c

	assert.NoError(d.Validate())
}

func BenchmarkDAGReduction(b *testing.B) {
	rand.Seed(42)
	const nbNodes = 100000
	parents := make([]int, 0, nbNodes)
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		d := New(nbNodes)
		for j := 0; j < nbNodes/1000; j++ {
			d.AddNode(leaf("seed"))
		}
		b.StartTimer()
		for j := nbNodes / 1000; j < nbNodes; j++ {
			parents = parents[:0]
			for k := 0; k < 10; k++ {
				parents = append(parents, rand.Intn(j-1))
			}
			id := d.AddNode(op())
			d.AddEdges(id, parents)
		}
		d.Root = nbNodes - 1
		_ = d.Levels()
	}
}
