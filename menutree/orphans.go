package menutree

import "fmt"

// OrphanPolicy 父链不能到达根的记录如何处理
type OrphanPolicy int

const (
	// OrphanDrop 静默丢弃（旧行为）
	OrphanDrop OrphanPolicy = iota
	// OrphanSurface 作为独立子树返回，由调用方挂到“未分配”根下
	OrphanSurface
)

// ParseOrphanPolicy 解析配置值 drop / surface
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch s {
	case "drop":
		return OrphanDrop, nil
	case "surface", "":
		return OrphanSurface, nil
	}
	return OrphanDrop, fmt.Errorf("menutree: unknown orphan policy %q", s)
}

func (p OrphanPolicy) String() string {
	if p == OrphanDrop {
		return "drop"
	}
	return "surface"
}

// Result 组装结果
type Result[T Entry] struct {
	Forest []*Node[T]
	// Orphans 每条不可达父链的顶端及其子树；OrphanDrop 时为空
	Orphans []*Node[T]
}

// Assemble 按策略组装。OrphanSurface 时每条记录恰好出现一次（森林或孤儿子树中）。
func Assemble[T Entry](entries []T, root int64, policy OrphanPolicy) Result[T] {
	idx := newIndex(entries)
	placed := make([]bool, len(entries))
	res := Result[T]{Forest: idx.assembleRoot(root, placed)}
	if policy == OrphanDrop {
		return res
	}

	unplacedIDs := make(map[int64]bool)
	for i, ok := range placed {
		if !ok {
			unplacedIDs[entries[i].NodeID()] = true
		}
	}
	if len(unplacedIDs) == 0 {
		return res
	}

	adopt := func(i int) {
		placed[i] = true
		node := &Node[T]{Entry: entries[i]}
		node.Children = idx.assemble(entries[i].NodeID(), placed)
		res.Orphans = append(res.Orphans, node)
	}
	// 父级不存在的链顶
	for i, e := range entries {
		if !placed[i] && !unplacedIDs[e.ParentNodeID()] {
			adopt(i)
		}
	}
	// 剩余的只可能在环上，按输入顺序断开
	for i := range entries {
		if !placed[i] {
			adopt(i)
		}
	}
	return res
}
