package api

import (
	"ledgerconsole/menutree"
	"ledgerconsole/models"
)

// UnassignedID 孤儿节点挂载的虚拟根 ID
const UnassignedID int64 = -1

// UnassignedName 虚拟根名称
const UnassignedName = "未分配"

// TreeOptions 树组装参数
type TreeOptions struct {
	Root    int64
	Orphans menutree.OrphanPolicy
}

// menuForest 组装菜单树；OrphanSurface 时父级不存在的菜单挂到末尾的"未分配"节点下
func menuForest(menus []models.Menu, opts TreeOptions) []*menutree.Node[models.Menu] {
	res := menutree.Assemble(menus, opts.Root, opts.Orphans)
	if len(res.Orphans) == 0 {
		return res.Forest
	}
	return append(res.Forest, &menutree.Node[models.Menu]{
		Entry:    models.Menu{ID: UnassignedID, Name: UnassignedName},
		Children: res.Orphans,
	})
}

// coaForest 组装会计科目树，孤儿处理同 menuForest
func coaForest(list []models.Coa, opts TreeOptions) []*menutree.Node[models.Coa] {
	res := menutree.Assemble(list, opts.Root, opts.Orphans)
	if len(res.Orphans) == 0 {
		return res.Forest
	}
	return append(res.Forest, &menutree.Node[models.Coa]{
		Entry:    models.Coa{ID: UnassignedID, CoaName: UnassignedName, IsGroupHead: 1},
		Children: res.Orphans,
	})
}
