package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/jump/pkg/settings"
	"tableflip.dev/jump/pkg/shell"
)

type testConfig struct {
	base string
}

func (c *testConfig) BasePath() string     { return c.base }
func (c *testConfig) MinSlots() int        { return 10 }
func (c *testConfig) DefaultAppID() string { return "test.app" }

func testPersistence(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&testConfig{base: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func begin(t *testing.T, p Persistence, appID string) shell.DestinationList {
	t.Helper()
	dest, err := p.DestinationList(appID)
	if err != nil {
		t.Fatalf("DestinationList: %v", err)
	}
	if _, _, err := dest.Begin(context.Background()); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return dest
}

func TestCommitAndRead(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	dest := begin(t, p, "app.one")
	tasks := shell.NewObjectCollection()
	tasks.Add(&shell.Link{Path: "app.exe", Title: "Run"})
	tasks.Add(&shell.Link{Separator: true})
	if err := dest.AddUserTasks(tasks); err != nil {
		t.Fatalf("AddUserTasks: %v", err)
	}
	if err := dest.AppendKnownCategory(shell.KnownRecent); err != nil {
		t.Fatalf("AppendKnownCategory: %v", err)
	}
	if err := dest.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	list, err := p.List(ctx, "app.one")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.AppID != "app.one" || list.MinSlots != 10 {
		t.Fatalf("list header = %+v", list)
	}
	if len(list.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(list.Categories))
	}
	if list.Categories[0].Type != "tasks" || len(list.Categories[0].Items) != 2 {
		t.Fatalf("tasks category = %+v", list.Categories[0])
	}
	if !list.Categories[0].Items[1].Separator {
		t.Fatalf("separator lost: %+v", list.Categories[0].Items[1])
	}
	if list.Categories[1].Type != "recent" {
		t.Fatalf("known category = %+v", list.Categories[1])
	}

	apps := p.Apps(ctx)
	if len(apps) != 1 || apps[0] != "app.one" {
		t.Fatalf("Apps = %v", apps)
	}
}

func TestAbortDiscards(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	dest := begin(t, p, "app.one")
	tasks := shell.NewObjectCollection()
	tasks.Add(&shell.Link{Path: "app.exe", Title: "Run"})
	if err := dest.AddUserTasks(tasks); err != nil {
		t.Fatalf("AddUserTasks: %v", err)
	}
	dest.Abort()

	if _, err := p.List(ctx, "app.one"); !errors.Is(err, ErrNoList) {
		t.Fatalf("err = %v, want ErrNoList", err)
	}
}

func TestTransactionOrdering(t *testing.T) {
	p := testPersistence(t)

	dest, err := p.DestinationList("app.one")
	if err != nil {
		t.Fatalf("DestinationList: %v", err)
	}

	// Appending before begin must fail.
	if err := dest.AppendKnownCategory(shell.KnownRecent); err == nil {
		t.Fatalf("append before begin should fail")
	}
	if err := dest.Commit(); err == nil {
		t.Fatalf("commit before begin should fail")
	}

	if _, _, err := dest.Begin(context.Background()); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, _, err := dest.Begin(context.Background()); err == nil {
		t.Fatalf("double begin should fail")
	}

	if err := dest.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := dest.Commit(); err == nil {
		t.Fatalf("commit after resolve should fail")
	}
}

func TestDeleteList(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	dest := begin(t, p, "app.one")
	if err := dest.AppendKnownCategory(shell.KnownFrequent); err != nil {
		t.Fatalf("AppendKnownCategory: %v", err)
	}
	if err := dest.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := p.RemoveDestination(ctx, "app.one", "stray.txt"); err != nil {
		t.Fatalf("RemoveDestination: %v", err)
	}

	if err := p.DeleteList(ctx, "app.one"); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if _, err := p.List(ctx, "app.one"); !errors.Is(err, ErrNoList) {
		t.Fatalf("list should be gone, got %v", err)
	}
	if removed := p.Removed(ctx, "app.one"); len(removed) != 0 {
		t.Fatalf("removed feed should be gone, got %v", removed)
	}

	// Deleting an app with no list is not an error.
	if err := p.DeleteList(ctx, "app.one"); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
}

func TestRemovedFeedRoundTrip(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	dest := begin(t, p, "app.one")
	tasks := shell.NewObjectCollection()
	tasks.Add(&shell.Link{Path: "app.exe", Arguments: "--new", Title: "New Window"})
	tasks.Add(&shell.Link{Path: "app.exe", Title: "Settings"})
	if err := dest.AddUserTasks(tasks); err != nil {
		t.Fatalf("AddUserTasks: %v", err)
	}
	if err := dest.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := p.RemoveDestination(ctx, "app.one", "New Window"); err != nil {
		t.Fatalf("RemoveDestination: %v", err)
	}

	// The entry left the committed list.
	list, err := p.List(ctx, "app.one")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Categories[0].Items) != 1 || list.Categories[0].Items[0].Title != "Settings" {
		t.Fatalf("committed list not pruned: %+v", list.Categories[0])
	}

	// And shows up in the next transaction's begin.
	dest2, err := p.DestinationList("app.one")
	if err != nil {
		t.Fatalf("DestinationList: %v", err)
	}
	_, removed, err := dest2.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("removed feed = %+v, want 1 entry", removed)
	}
	link, ok := removed[0].(*shell.Link)
	if !ok || link.Title != "New Window" || link.Arguments != "--new" {
		t.Fatalf("removed entry = %+v", removed[0])
	}
	dest2.Abort()

	// Removing the same destination again does not duplicate the feed.
	if err := p.RemoveDestination(ctx, "app.one", "New Window"); err != nil {
		t.Fatalf("RemoveDestination again: %v", err)
	}
	if removed := p.Removed(ctx, "app.one"); len(removed) != 1 {
		t.Fatalf("feed deduplication failed: %+v", removed)
	}

	if err := p.ClearRemoved("app.one"); err != nil {
		t.Fatalf("ClearRemoved: %v", err)
	}
	if removed := p.Removed(ctx, "app.one"); len(removed) != 0 {
		t.Fatalf("feed should be empty: %+v", removed)
	}
}

func TestAppendCategoryRequiresFileTypeRegistration(t *testing.T) {
	p := testPersistence(t)

	dest := begin(t, p, "app.one")
	items := shell.NewObjectCollection()
	items.Add(&shell.FileRef{Path: "notes.abc"})
	err := dest.AppendCategory("Pinned", items)
	if !errors.Is(err, shell.ErrFileTypeNotRegistered) {
		t.Fatalf("err = %v, want ErrFileTypeNotRegistered", err)
	}

	s := &settings.Settings{Registry: p.Registry()}
	if err := s.RegisterFileType("app.one", ".abc"); err != nil {
		t.Fatalf("RegisterFileType: %v", err)
	}
	if err := dest.AppendCategory("Pinned", items); err != nil {
		t.Fatalf("registered file type still rejected: %v", err)
	}
}

func TestAppendCategoryPrivacyPolicy(t *testing.T) {
	p := testPersistence(t)

	s := &settings.Settings{Registry: p.Registry()}
	if err := s.SetCustomCategoriesAllowed(false); err != nil {
		t.Fatalf("SetCustomCategoriesAllowed: %v", err)
	}

	dest := begin(t, p, "app.one")
	items := shell.NewObjectCollection()
	items.Add(&shell.Link{Path: "app.exe", Title: "Run"})
	err := dest.AppendCategory("Pinned", items)
	if !errors.Is(err, shell.ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}

	if err := s.SetCustomCategoriesAllowed(true); err != nil {
		t.Fatalf("SetCustomCategoriesAllowed: %v", err)
	}
	if err := dest.AppendCategory("Pinned", items); err != nil {
		t.Fatalf("allowed category rejected: %v", err)
	}
}

func TestAddUserTasksRejectsEmpty(t *testing.T) {
	p := testPersistence(t)

	dest := begin(t, p, "app.one")
	if err := dest.AddUserTasks(shell.NewObjectCollection()); err == nil {
		t.Fatalf("empty user tasks submission should fail")
	}
}

func TestResolveFile(t *testing.T) {
	p := testPersistence(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ref, err := p.ResolveFile(path)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	if ref.Path != filepath.Clean(path) {
		t.Fatalf("ref.Path = %q", ref.Path)
	}

	if _, err := p.ResolveFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("missing file should fail to resolve")
	}
	if _, err := p.ResolveFile(dir); err == nil {
		t.Fatalf("directory should fail to resolve")
	}
}

func TestRecentDocuments(t *testing.T) {
	p := testPersistence(t)

	if err := p.AddRecentDocument("app.one", "a.txt"); err != nil {
		t.Fatalf("AddRecentDocument: %v", err)
	}
	if err := p.AddRecentDocument("app.one", "b.txt"); err != nil {
		t.Fatalf("AddRecentDocument: %v", err)
	}
	if err := p.AddRecentDocument("app.one", "a.txt"); err != nil {
		t.Fatalf("AddRecentDocument: %v", err)
	}

	docs := p.RecentDocuments("app.one")
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Path != "a.txt" || docs[0].Count != 2 {
		t.Fatalf("docs[0] = %+v, want a.txt twice and most recent", docs[0])
	}

	if err := p.ClearRecentDocuments("app.one"); err != nil {
		t.Fatalf("ClearRecentDocuments: %v", err)
	}
	if docs := p.RecentDocuments("app.one"); len(docs) != 0 {
		t.Fatalf("history should be empty: %+v", docs)
	}
}

func TestAppIdentityKeysAreIsolated(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	for _, app := range []string{"com.example/one", "com.example.two"} {
		dest := begin(t, p, app)
		if err := dest.AppendKnownCategory(shell.KnownRecent); err != nil {
			t.Fatalf("AppendKnownCategory: %v", err)
		}
		if err := dest.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	apps := p.Apps(ctx)
	if len(apps) != 2 {
		t.Fatalf("Apps = %v, want both identities", apps)
	}
	if apps[0] != "com.example.two" && apps[1] != "com.example.two" {
		t.Fatalf("Apps = %v", apps)
	}
}
