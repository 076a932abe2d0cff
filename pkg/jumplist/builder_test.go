package jumplist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/jump/pkg/category"
	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/shell"
)

func TestSeparatorAllowedInTasks(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		tasksOf(item.NewTask("app.exe", "Run"), item.NewSeparator()),
	))
	if code != result.Success {
		t.Fatalf("code = %q, want ok", code)
	}
	if d.userTasks[0].Len() != 2 {
		t.Fatalf("separator was not appended to the Tasks category")
	}
}

func TestSeparatorRejectedInCustom(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("Pinned", item.NewTask("app.exe", "Run"), item.NewSeparator()),
	))
	if code != result.CustomCategorySeparatorError {
		t.Fatalf("code = %q, want invalidSeparatorError", code)
	}
	// The valid task still went through.
	if len(d.categories) != 1 || d.categories[0].items.Len() != 1 {
		t.Fatalf("surviving items not submitted: %+v", d.categories)
	}
	if !d.committed {
		t.Fatalf("transaction must still commit")
	}
}

func TestPartialAppendIsGenericError(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("Pinned",
			item.NewTask("app.exe", "Run"),
			item.NewTask("", "No Program"),
		),
	))
	if code != result.GenericError {
		t.Fatalf("code = %q, want error", code)
	}
	if len(d.categories) != 1 || d.categories[0].items.Len() != 1 {
		t.Fatalf("valid item should still be submitted: %+v", d.categories)
	}
}

func TestEmptyCategoryIsSuccess(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(customOf("Pinned")))
	if code != result.Success {
		t.Fatalf("code = %q, want ok", code)
	}
	if len(d.categories) != 0 {
		t.Fatalf("an empty category must not be submitted")
	}
}

func TestAllItemsInvalidIsGenericError(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("Pinned", item.NewTask("", ""), item.NewFile("")),
	))
	if code != result.GenericError {
		t.Fatalf("code = %q, want error", code)
	}
	if len(d.categories) != 0 {
		t.Fatalf("a fully failed category must not be submitted")
	}
}

func TestFileTypeRegistrationError(t *testing.T) {
	d := &fakeDest{categoryErr: map[string]error{
		"Docs": fmt.Errorf("append: %w", shell.ErrFileTypeNotRegistered),
	}}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(customOf("Docs", item.NewFile("a.xyz"))))
	if code != result.MissingFileTypeRegistrationError {
		t.Fatalf("code = %q, want fileTypeRegistrationError", code)
	}
}

func TestAccessDeniedError(t *testing.T) {
	d := &fakeDest{categoryErr: map[string]error{
		"Pinned": fmt.Errorf("append: %w", shell.ErrAccessDenied),
	}}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(customOf("Pinned", item.NewFile("a.txt"))))
	if code != result.CustomCategoryAccessDeniedError {
		t.Fatalf("code = %q, want customCategoryAccessDeniedError", code)
	}
}

func TestSubmissionErrorOverridesItemSkips(t *testing.T) {
	// A specific submission failure replaces the generic code earned by
	// skipped items.
	d := &fakeDest{categoryErr: map[string]error{
		"Docs": fmt.Errorf("append: %w", shell.ErrFileTypeNotRegistered),
	}}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("Docs", item.NewFile("a.xyz"), item.NewTask("", "Broken")),
	))
	if code != result.MissingFileTypeRegistrationError {
		t.Fatalf("code = %q, want fileTypeRegistrationError", code)
	}
}

func TestFirstSpecificErrorWinsAcrossCategories(t *testing.T) {
	d := &fakeDest{categoryErr: map[string]error{
		"Docs": fmt.Errorf("append: %w", shell.ErrFileTypeNotRegistered),
	}}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("First", item.NewTask("app.exe", "Run"), item.NewSeparator()),
		customOf("Docs", item.NewFile("a.xyz")),
		customOf("Last", item.NewTask("app.exe", "Other")),
	))
	if code != result.CustomCategorySeparatorError {
		t.Fatalf("code = %q, want %q (first specific error wins)", code, result.CustomCategorySeparatorError)
	}
	// Later categories were still processed.
	found := false
	for _, c := range d.categories {
		if c.name == "Last" {
			found = true
		}
	}
	if !found {
		t.Fatalf("later categories must still be submitted: %+v", d.categories)
	}
}

func TestGenericErrorUpgradedBySpecific(t *testing.T) {
	d := &fakeDest{knownErr: errors.New("unavailable")}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(
		category.Category{Type: category.TypeFrequent},
		customOf("Pinned", item.NewTask("app.exe", "Run"), item.NewSeparator()),
	))
	if code != result.CustomCategorySeparatorError {
		t.Fatalf("code = %q, want the specific error to replace the generic one", code)
	}
}

func TestKnownCategoryFailure(t *testing.T) {
	d := &fakeDest{knownErr: errors.New("unavailable")}
	s := quiet(New(&fakeShell{dest: d}))

	code := s.SetJumpList(context.Background(), "app", gen(category.Category{Type: category.TypeRecent}))
	if code != result.GenericError {
		t.Fatalf("code = %q, want error", code)
	}
	if !d.committed {
		t.Fatalf("transaction must still commit")
	}
}

func TestUnresolvableFileSkipped(t *testing.T) {
	d := &fakeDest{}
	s := quiet(New(&fakeShell{dest: d, resolveErr: errors.New("no such file")}))

	code := s.SetJumpList(context.Background(), "app", gen(
		customOf("Docs", item.NewFile("missing.txt"), item.NewTask("app.exe", "Run")),
	))
	if code != result.GenericError {
		t.Fatalf("code = %q, want error for the skipped file", code)
	}
	if len(d.categories) != 1 || d.categories[0].items.Len() != 1 {
		t.Fatalf("the valid task should survive: %+v", d.categories)
	}
}

func TestRemovedItems(t *testing.T) {
	idx := 2
	objects := []shell.Object{
		&shell.FileRef{Path: "a.txt"},
		&shell.Link{Separator: true},
		&shell.Link{
			Path:      "app.exe",
			Arguments: "--new",
			Title:     "New Window",
			IconPath:  "icons.dll",
			IconIndex: idx,
		},
	}

	items := RemovedItems(objects)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (separators are dropped)", len(items))
	}
	if items[0].Type != item.TypeFile || items[0].Path != "a.txt" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Type != item.TypeTask || items[1].Program != "app.exe" || items[1].Title != "New Window" {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[1].IconIndex == nil || *items[1].IconIndex != 2 {
		t.Errorf("icon index not reconstructed: %+v", items[1].IconIndex)
	}
}
