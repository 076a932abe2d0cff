package jumplist

import (
	"errors"
	"fmt"

	"tableflip.dev/jump/pkg/category"
	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/shell"
)

// appendCategories submits categories in caller order. As many categories
// as possible are appended even when some fail; the returned code is the
// fold of every per-category outcome under result.Combine.
func (s *Service) appendCategories(categories []category.Category, dest shell.DestinationList) result.Code {
	res := result.Success
	for i := range categories {
		c := categories[i]
		latest := result.Success
		switch c.Type {
		case category.TypeTasks, category.TypeCustom:
			latest = s.appendCategory(c, dest)
		case category.TypeFrequent:
			if err := dest.AppendKnownCategory(shell.KnownFrequent); err != nil {
				s.logf("jumplist: failed to append Frequent category: %v", err)
				latest = result.GenericError
			}
		case category.TypeRecent:
			if err := dest.AppendKnownCategory(shell.KnownRecent); err != nil {
				s.logf("jumplist: failed to append Recent category: %v", err)
				latest = result.GenericError
			}
		}
		// Keep the first non-generic error code as only one can be returned
		// from the call (so try to make it the most useful one).
		res = result.Combine(res, latest)
	}
	return res
}

// appendCategory converts one category's items into a destination
// collection and submits it. Item failures are recorded and skipped, not
// raised: a single bad item must not cost the user an otherwise valid
// category.
func (s *Service) appendCategory(c category.Category, dest shell.DestinationList) result.Code {
	if len(c.Items) == 0 {
		return result.Success
	}

	collection := shell.NewObjectCollection()
	res := result.Success
	// Keep track of how many items were actually appended to the category.
	appended := 0
	for i := range c.Items {
		it := c.Items[i]
		switch it.Type {
		case item.TypeSeparator:
			if c.Type == category.TypeTasks {
				collection.Add(&shell.Link{Separator: true})
				appended++
			} else {
				s.logf("jumplist: can't append separator to category %q; separators are only allowed in the standard Tasks category", c.Name)
				res = result.CustomCategorySeparatorError
			}
		case item.TypeFile:
			ref, err := s.fileRef(it)
			if err != nil {
				s.logf("jumplist: failed to append %q to category %q: %v", it.Path, c.Name, err)
				continue
			}
			collection.Add(ref)
			appended++
		default:
			// Anything that is not a separator or a file is treated as a
			// task, including items whose declared type failed validation.
			link, err := taskLink(it)
			if err != nil {
				s.logf("jumplist: failed to append task %q to category %q: %v", it.Title, c.Name, err)
				continue
			}
			collection.Add(link)
			appended++
		}
	}

	if appended == 0 {
		// Nothing to submit; make sure the caller still learns the category
		// was lost.
		if res == result.Success {
			res = result.GenericError
		}
		return res
	}

	if appended < len(c.Items) && res == result.Success {
		res = result.GenericError
	}

	if c.Type == category.TypeTasks {
		if err := dest.AddUserTasks(collection); err != nil {
			s.logf("jumplist: failed to append items to the standard Tasks category: %v", err)
			if res == result.Success {
				res = result.GenericError
			}
		}
		return res
	}

	if err := dest.AppendCategory(c.Name, collection); err != nil {
		switch {
		case errors.Is(err, shell.ErrFileTypeNotRegistered):
			s.logf("jumplist: failed to append custom category %q due to missing file type registration", c.Name)
			res = result.MissingFileTypeRegistrationError
		case errors.Is(err, shell.ErrAccessDenied):
			s.logf("jumplist: failed to append custom category %q due to system privacy settings", c.Name)
			res = result.CustomCategoryAccessDeniedError
		default:
			s.logf("jumplist: failed to append custom category %q: %v", c.Name, err)
			if res == result.Success {
				res = result.GenericError
			}
		}
	}
	return res
}

// taskLink builds a shortcut destination from a task item.
func taskLink(it item.Item) (*shell.Link, error) {
	if it.Type != item.TypeTask {
		return nil, fmt.Errorf("jumplist: not a task item (type %q)", it.Type)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	link := &shell.Link{
		Path:        it.Program,
		Arguments:   it.Arguments,
		Title:       it.Title,
		Description: it.Description,
	}
	if it.IconPath != "" {
		link.IconPath = it.IconPath
		link.IconIndex = *it.IconIndex
	}
	return link, nil
}

// fileRef resolves a file item to a destination file reference.
func (s *Service) fileRef(it item.Item) (*shell.FileRef, error) {
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return s.Shell.ResolveFile(it.Path)
}
