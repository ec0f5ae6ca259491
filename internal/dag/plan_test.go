package dag

import (
	"bytes"
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/query"
	"github.com/vchainplus/core/internal/setops"
)

func testResolver(t *testing.T, pk *keys.PublicKey) *index.MemResolver {
	t.Helper()
	r := index.NewMemResolver(pk)
	r.PutBlock(0, "a", setops.New(0, 1, 2))
	r.PutBlock(0, "b", setops.New(2, 3))
	return r
}

func TestPlanAndEvaluateAnd(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)
	resolve := testResolver(t, pk)

	spec := query.QuerySpec{
		StartBlk: 0,
		EndBlk:   0,
		Keyword:  query.And(query.Literal("a"), query.Literal("b")),
	}

	plan, err := Plan(context.Background(), spec, pk.Qmax, resolve, false)
	assert.NoError(err)
	assert.NoError(plan.Validate())

	result, err := Evaluate(context.Background(), plan, resolve, pk, false)
	assert.NoError(err)
	assert.True(result.Set.Equal(setops.New(2)))
	assert.Len(result.Chain, 1)
}

func TestPlanAndEvaluateNot(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)
	resolve := testResolver(t, pk)

	spec := query.QuerySpec{
		StartBlk: 0,
		EndBlk:   0,
		Keyword:  query.Not(query.Literal("b")),
	}

	plan, err := Plan(context.Background(), spec, pk.Qmax, resolve, false)
	assert.NoError(err)

	result, err := Evaluate(context.Background(), plan, resolve, pk, false)
	assert.NoError(err)
	assert.True(result.Set.Equal(setops.New(0, 1)))
}

func TestPlanOptimizePicksCheaperForm(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)
	resolve := testResolver(t, pk)

	spec := query.QuerySpec{
		StartBlk: 0,
		EndBlk:   0,
		Keyword:  query.And(query.Literal("a"), query.Or(query.Literal("a"), query.Literal("b"))),
	}

	plan, err := Plan(context.Background(), spec, pk.Qmax, resolve, true)
	assert.NoError(err)
	assert.GreaterOrEqual(plan.Root, 0)

	result, err := Evaluate(context.Background(), plan, resolve, pk, false)
	assert.NoError(err)
	assert.True(result.Set.Equal(setops.New(0, 1, 2)))
}

func TestEvaluatePruneEmptyIntersection(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)
	resolve := index.NewMemResolver(pk)
	resolve.PutBlock(0, "a", setops.New(0, 1))
	resolve.PutBlock(0, "missing", setops.New())

	spec := query.QuerySpec{
		StartBlk: 0,
		EndBlk:   0,
		Keyword:  query.And(query.Literal("a"), query.Literal("missing")),
	}

	plan, err := Plan(context.Background(), spec, pk.Qmax, resolve, false)
	assert.NoError(err)

	result, err := Evaluate(context.Background(), plan, resolve, pk, true)
	assert.NoError(err)
	assert.Equal(0, result.Set.Len())
	// Pruned: no proof was computed for the short-circuited node.
	assert.Len(result.Chain, 0)
}

func TestSavePlanLoadPlanRoundTrip(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)
	resolve := testResolver(t, pk)

	spec := query.QuerySpec{
		StartBlk: 0,
		EndBlk:   0,
		Keyword:  query.And(query.Literal("a"), query.Literal("b")),
	}
	plan, err := Plan(context.Background(), spec, pk.Qmax, resolve, false)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(SavePlan(&buf, plan))

	got, err := LoadPlan(&buf)
	assert.NoError(err)
	assert.Equal(plan.Root, got.Root)
	assert.Equal(len(plan.Nodes), len(got.Nodes))
	assert.NoError(got.Validate())
}
