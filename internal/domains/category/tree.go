package category

import (
	"sort"

	"github.com/google/uuid"
)

// RootNode is a root category with its subcategories attached.
type RootNode struct {
	Category Category   `json:"category"`
	Children []Category `json:"children"`
}

// Tree is the read-only two-level hierarchy view. Subcategories whose
// parent row is missing land in Orphans so callers can detect the
// inconsistency instead of losing them silently.
type Tree struct {
	Roots   []RootNode `json:"roots"`
	Orphans []Category `json:"orphans,omitempty"`
}

// BuildTree assembles flat category rows into the two-level hierarchy.
// Roots and children are both ordered by sort order, then by
// primary-language name, then by creation time.
func BuildTree(categories []Category) Tree {
	byParent := make(map[uuid.UUID][]Category)
	rootIDs := make(map[uuid.UUID]bool)

	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			rootIDs[c.ID] = true
		}
	}
	for _, c := range categories {
		if c.ParentID != nil {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	sortCategories(roots)

	tree := Tree{Roots: make([]RootNode, 0, len(roots))}
	for _, root := range roots {
		children := byParent[root.ID]
		sortCategories(children)
		if children == nil {
			children = []Category{}
		}
		tree.Roots = append(tree.Roots, RootNode{Category: root, Children: children})
	}

	for parentID, children := range byParent {
		if !rootIDs[parentID] {
			tree.Orphans = append(tree.Orphans, children...)
		}
	}
	sortCategories(tree.Orphans)

	return tree
}

func sortCategories(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		ni, nj := cats[i].Name.Primary(), cats[j].Name.Primary()
		if ni != nj {
			return ni < nj
		}
		return cats[i].CreatedAt.Before(cats[j].CreatedAt)
	})
}
