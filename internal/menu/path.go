package menu

import "slices"

// Path returns the labels of the folders from below the root down to f.
func Path(f *Folder) []string {
	var labels []string
	for n := f; n != nil && n.Parent() != nil; n = n.Parent() {
		labels = append(labels, n.Label())
	}
	slices.Reverse(labels)
	return labels
}

// Walk descends from root through the folders labelled by path, entering
// each one. It stops at the deepest folder found and reports whether the
// whole path matched.
func Walk(root *Folder, path []string, enter func(f *Folder)) (*Folder, bool) {
	f := root
	for _, label := range path {
		i := f.Find(label)
		if i < 0 {
			return f, false
		}
		child, ok := f.Item(i).(*Folder)
		if !ok {
			return f, false
		}
		f = child
		if enter != nil {
			enter(f)
		}
	}
	return f, true
}
