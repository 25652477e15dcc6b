// Package navigation holds the admin shell's menu selection, expanded
// submenus and breadcrumb trail.
package navigation

// Node is one entry of the static menu tree
type Node struct {
	Key      string
	Label    string
	Route    string
	Children []Node
}

// Menu is a two-level menu tree
type Menu []Node

// RootCrumb is the fixed first entry of every rendered trail
const RootCrumb = "首頁"

// DefaultMenu returns the console menu
func DefaultMenu() Menu {
	return Menu{
		{Key: "sub1", Label: "活動管理", Children: []Node{
			{Key: "1", Label: "活動總覽", Route: "/events"},
			{Key: "2", Label: "標籤管理", Route: "/tags"},
		}},
		{Key: "sub2", Label: "會員管理", Children: []Node{
			{Key: "3", Label: "會員列表", Route: "/members"},
		}},
		{Key: "sub3", Label: "訂單管理", Children: []Node{
			{Key: "4", Label: "訂單列表"},
		}},
	}
}

// Find returns the node with key and the key of its parent, which is empty
// for top-level nodes
func (m Menu) Find(key string) (node Node, parent string, ok bool) {
	for _, top := range m {
		if top.Key == key {
			return top, "", true
		}
	}
	for _, top := range m {
		for _, child := range top.Children {
			if child.Key == key {
				return child, top.Key, true
			}
		}
	}
	return Node{}, "", false
}

// KeyPath returns the path from key up to the root, leaf first
func (m Menu) KeyPath(key string) []string {
	_, parent, ok := m.Find(key)
	if !ok {
		return nil
	}
	if parent == "" {
		return []string{key}
	}
	return []string{key, parent}
}

// title resolves one breadcrumb position: top-level label first, then a
// child label, else empty
func (m Menu) title(key string) string {
	node, _, ok := m.Find(key)
	if !ok {
		return ""
	}
	return node.Label
}
