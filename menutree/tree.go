// Package menutree 将带 parentId 的扁平列表组装为有序森林（菜单、会计科目共用）。
package menutree

import (
	"encoding/json"
	"fmt"
)

// Entry 可组装为树的扁平记录
type Entry interface {
	NodeID() int64
	ParentNodeID() int64
}

// Node 树节点，序列化时展开 Entry 字段并追加 children
type Node[T Entry] struct {
	Entry    T
	Children []*Node[T]
}

// MarshalJSON 输出 {...entry, "children": [...]}，children 恒为数组
func (n *Node[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(n.Entry)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("menutree: entry must marshal to an object: %w", err)
	}
	children := n.Children
	if children == nil {
		children = []*Node[T]{}
	}
	if fields["children"], err = json.Marshal(children); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// index 按 parent 分组，组内保持输入顺序
type index[T Entry] struct {
	byParent map[int64][]int
	entries  []T
}

func newIndex[T Entry](entries []T) index[T] {
	idx := index[T]{byParent: make(map[int64][]int, len(entries)), entries: entries}
	for i, e := range entries {
		p := e.ParentNodeID()
		idx.byParent[p] = append(idx.byParent[p], i)
	}
	return idx
}

// assemble 从 parent 开始组装，placed 记录已挂载的下标，保证每条记录最多出现一次
func (idx index[T]) assemble(parent int64, placed []bool) []*Node[T] {
	positions := idx.byParent[parent]
	if len(positions) == 0 {
		return nil
	}
	nodes := make([]*Node[T], 0, len(positions))
	for _, i := range positions {
		if placed[i] {
			continue
		}
		placed[i] = true
		node := &Node[T]{Entry: idx.entries[i]}
		node.Children = idx.assemble(idx.entries[i].NodeID(), placed)
		nodes = append(nodes, node)
	}
	return nodes
}

// assembleRoot 组装根层。ID 等于 root 的记录不挂到森林中，
// 组装后仍标记为未放置，由调用方按孤儿处理
func (idx index[T]) assembleRoot(root int64, placed []bool) []*Node[T] {
	var self []int
	for i, e := range idx.entries {
		if e.NodeID() == root {
			placed[i] = true
			self = append(self, i)
		}
	}
	forest := idx.assemble(root, placed)
	for _, i := range self {
		placed[i] = false
	}
	if forest == nil {
		forest = []*Node[T]{}
	}
	return forest
}

// Build 返回以 root 为父的有序森林，兄弟节点保持输入顺序。
// 父链不能终止于 root 的记录（孤儿、环）不出现在结果中；输入不会被修改。
func Build[T Entry](entries []T, root int64) []*Node[T] {
	forest, _ := Partition(entries, root)
	return forest
}

// Partition 同 Build，并按输入顺序返回不可达的记录
func Partition[T Entry](entries []T, root int64) ([]*Node[T], []T) {
	idx := newIndex(entries)
	placed := make([]bool, len(entries))
	forest := idx.assembleRoot(root, placed)
	var orphans []T
	for i, ok := range placed {
		if !ok {
			orphans = append(orphans, entries[i])
		}
	}
	return forest, orphans
}

// Descendants 返回 id 的全部子孙节点 ID（不含自身），用于防止将父级设为自身子孙
func Descendants[T Entry](entries []T, id int64) map[int64]bool {
	idx := newIndex(entries)
	set := make(map[int64]bool)
	var dfs func(parent int64)
	dfs = func(parent int64) {
		for _, i := range idx.byParent[parent] {
			child := entries[i].NodeID()
			if set[child] || child == id {
				continue
			}
			set[child] = true
			dfs(child)
		}
	}
	dfs(id)
	return set
}

// Walk 深度优先遍历，fn 返回 false 时不再进入该节点的子树
func Walk[T Entry](nodes []*Node[T], fn func(node *Node[T], depth int) bool) {
	var visit func(nodes []*Node[T], depth int)
	visit = func(nodes []*Node[T], depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				visit(n.Children, depth+1)
			}
		}
	}
	visit(nodes, 0)
}

// Flat 展开后的节点及其深度
type Flat[T Entry] struct {
	Entry T
	Depth int
}

// Flatten 按先序展开森林
func Flatten[T Entry](nodes []*Node[T]) []Flat[T] {
	var out []Flat[T]
	Walk(nodes, func(n *Node[T], depth int) bool {
		out = append(out, Flat[T]{Entry: n.Entry, Depth: depth})
		return true
	})
	return out
}

// Find 按 ID 查找节点
func Find[T Entry](nodes []*Node[T], id int64) *Node[T] {
	var found *Node[T]
	Walk(nodes, func(n *Node[T], _ int) bool {
		if found != nil {
			return false
		}
		if n.Entry.NodeID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count 统计节点总数
func Count[T Entry](nodes []*Node[T]) int {
	total := 0
	Walk(nodes, func(*Node[T], int) bool {
		total++
		return true
	})
	return total
}
