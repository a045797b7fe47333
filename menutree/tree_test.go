package menutree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID     int64  `json:"id"`
	Parent int64  `json:"parentId"`
	Name   string `json:"name"`
}

func (i item) NodeID() int64       { return i.ID }
func (i item) ParentNodeID() int64 { return i.Parent }

func ids(nodes []*Node[item]) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Entry.ID)
	}
	return out
}

func TestBuild_OrphanDropped(t *testing.T) {
	entries := []item{
		{ID: 1, Parent: 0, Name: "Sales"},
		{ID: 2, Parent: 1, Name: "Invoices"},
		{ID: 3, Parent: 99, Name: "Orphan"},
	}

	tree := Build(entries, 0)

	require.Len(t, tree, 1)
	assert.Equal(t, int64(1), tree[0].Entry.ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, int64(2), tree[0].Children[0].Entry.ID)
	assert.Empty(t, tree[0].Children[0].Children)
	assert.Nil(t, Find(tree, 3))
}

func TestBuild_SiblingOrderFollowsInput(t *testing.T) {
	entries := []item{
		{ID: 9, Parent: 0},
		{ID: 4, Parent: 9},
		{ID: 2, Parent: 0},
		{ID: 7, Parent: 9},
		{ID: 5, Parent: 0},
		{ID: 1, Parent: 9},
	}

	tree := Build(entries, 0)

	assert.Equal(t, []int64{9, 2, 5}, ids(tree))
	assert.Equal(t, []int64{4, 7, 1}, ids(tree[0].Children))
}

func TestBuild_CustomRoot(t *testing.T) {
	entries := []item{
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 1},
	}

	tree := Build(entries, 1)

	assert.Equal(t, []int64{2, 4}, ids(tree))
	assert.Equal(t, []int64{3}, ids(tree[0].Children))
}

func TestBuild_EveryReachableEntryOnce(t *testing.T) {
	entries := []item{
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 0},
		{ID: 5, Parent: 4},
		{ID: 6, Parent: 42},
		{ID: 7, Parent: 6},
	}

	tree := Build(entries, 0)

	seen := map[int64]int{}
	for _, f := range Flatten(tree) {
		seen[f.Entry.ID]++
	}
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1}, seen)
	assert.Equal(t, 5, Count(tree))
}

func TestBuild_Idempotent(t *testing.T) {
	entries := []item{{ID: 1}, {ID: 2, Parent: 1}, {ID: 3, Parent: 1}, {ID: 4, Parent: 3}}
	snapshot := append([]item(nil), entries...)

	first := Build(entries, 0)
	second := Build(entries, 0)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, entries)
}

func TestBuild_CycleTerminates(t *testing.T) {
	entries := []item{
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 3},
		{ID: 3, Parent: 2},
		{ID: 4, Parent: 4},
	}

	forest, orphans := Partition(entries, 0)

	assert.Equal(t, []int64{1}, ids(forest))
	assert.Len(t, orphans, 3)
}

func TestBuild_Empty(t *testing.T) {
	tree := Build([]item(nil), 0)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestAssemble_SurfaceOrphans(t *testing.T) {
	entries := []item{
		{ID: 1, Parent: 0},
		{ID: 3, Parent: 99},
		{ID: 8, Parent: 3},
		{ID: 5, Parent: 6},
		{ID: 6, Parent: 5},
	}

	res := Assemble(entries, 0, OrphanSurface)

	assert.Equal(t, []int64{1}, ids(res.Forest))
	// 链顶 3 携带子节点 8；环 5<->6 在 5 处断开
	assert.Equal(t, []int64{3, 5}, ids(res.Orphans))
	assert.Equal(t, []int64{8}, ids(res.Orphans[0].Children))
	assert.Equal(t, []int64{6}, ids(res.Orphans[1].Children))
	assert.Equal(t, len(entries), Count(res.Forest)+Count(res.Orphans))
}

func TestAssemble_Drop(t *testing.T) {
	entries := []item{{ID: 1}, {ID: 3, Parent: 99}}
	res := Assemble(entries, 0, OrphanDrop)
	assert.Equal(t, []int64{1}, ids(res.Forest))
	assert.Empty(t, res.Orphans)
}

func TestParseOrphanPolicy(t *testing.T) {
	p, err := ParseOrphanPolicy("drop")
	require.NoError(t, err)
	assert.Equal(t, OrphanDrop, p)

	p, err = ParseOrphanPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OrphanSurface, p)
	assert.Equal(t, "surface", p.String())

	_, err = ParseOrphanPolicy("hide")
	assert.Error(t, err)
}

func TestDescendants(t *testing.T) {
	entries := []item{
		{ID: 1}, {ID: 2, Parent: 1}, {ID: 3, Parent: 2}, {ID: 4, Parent: 1}, {ID: 5},
	}
	assert.Equal(t, map[int64]bool{2: true, 3: true, 4: true}, Descendants(entries, 1))
	assert.Empty(t, Descendants(entries, 5))
}

func TestNode_MarshalJSON(t *testing.T) {
	tree := Build([]item{{ID: 1, Name: "Sales"}, {ID: 2, Parent: 1, Name: "Invoices"}}, 0)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"parentId":0,"name":"Sales","children":[
		{"id":2,"parentId":1,"name":"Invoices","children":[]}]}]`, string(data))
}

func TestFlatten_Depth(t *testing.T) {
	tree := Build([]item{{ID: 1}, {ID: 2, Parent: 1}, {ID: 3, Parent: 2}, {ID: 4}}, 0)
	flat := Flatten(tree)
	require.Len(t, flat, 4)
	assert.Equal(t, []int{0, 1, 2, 0}, []int{flat[0].Depth, flat[1].Depth, flat[2].Depth, flat[3].Depth})
}

func TestBuild_EntryWithRootIDDoesNotAbsorbSiblings(t *testing.T) {
	entries := []item{
		{ID: 0, Parent: 0, Name: "Self"},
		{ID: 1, Parent: 0},
		{ID: 2, Parent: 0},
		{ID: 3, Parent: 1},
	}

	tree, orphans := Partition(entries, 0)
	assert.Equal(t, []int64{1, 2}, ids(tree))
	assert.Equal(t, []int64{3}, ids(tree[0].Children))
	require.Len(t, orphans, 1)
	assert.Equal(t, int64(0), orphans[0].ID)

	res := Assemble(entries, 0, OrphanSurface)
	assert.Equal(t, []int64{1, 2}, ids(res.Forest))
	assert.Equal(t, []int64{0}, ids(res.Orphans))
	assert.Empty(t, res.Orphans[0].Children)
	assert.Equal(t, len(entries), Count(res.Forest)+Count(res.Orphans))

	// 非零根同理
	custom := []item{{ID: 7, Parent: 7}, {ID: 8, Parent: 7}, {ID: 9, Parent: 7}}
	assert.Equal(t, []int64{8, 9}, ids(Build(custom, 7)))
}
