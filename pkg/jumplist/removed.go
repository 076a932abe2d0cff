package jumplist

import (
	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/shell"
)

// RemovedItems translates the platform's removed-destinations feed into
// items so the list generator can react to it. The translation is
// read-only: a file reference becomes a file item and a shortcut becomes a
// task item with every queryable field reconstructed. Fields the platform
// cannot supply stay at their zero values rather than failing the whole
// translation.
func RemovedItems(objects []shell.Object) []item.Item {
	items := make([]item.Item, 0, len(objects))
	for _, o := range objects {
		switch v := o.(type) {
		case *shell.FileRef:
			items = append(items, item.Item{Type: item.TypeFile, Path: v.Path})
		case *shell.Link:
			if v.Separator {
				continue
			}
			it := item.Item{
				Type:        item.TypeTask,
				Program:     v.Path,
				Arguments:   v.Arguments,
				Title:       v.Title,
				Description: v.Description,
			}
			if v.IconPath != "" {
				index := v.IconIndex
				it.IconPath = v.IconPath
				it.IconIndex = &index
			}
			items = append(items, it)
		}
	}
	return items
}
