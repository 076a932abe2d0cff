// Package jumplist drives the platform destination-list transaction: it
// translates a declarative category list into shell submissions, isolates
// per-item failures so a partially valid list still commits, and folds
// every independent failure into the one result code the caller sees.
package jumplist

import (
	"context"
	"log"
	"strings"
	"sync"

	"tableflip.dev/jump/pkg/category"
	"tableflip.dev/jump/pkg/item"
	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/shell"
)

// ListGenerator produces the desired category layout. It receives the
// platform's suggested slot budget and the destinations the user removed
// from the previously committed list; removed destinations should not be
// re-added. The generator is invoked exactly once per transaction and must
// not start another jump list transaction itself.
type ListGenerator func(minSlots int, removed []item.Item) ([]category.Category, error)

// Service orchestrates jump list transactions against a shell
// implementation. Calls are synchronous and block on the shell; run them
// off any latency-sensitive loop. At most one transaction per app identity
// may be in flight at a time.
type Service struct {
	Shell  shell.Shell
	Logger *log.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// New creates a Service on top of a shell implementation.
func New(sh shell.Shell) *Service {
	return &Service{Shell: sh}
}

func (s *Service) logf(format string, args ...interface{}) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

// acquire marks an app identity busy for the duration of one transaction.
func (s *Service) acquire(appID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight == nil {
		s.inFlight = make(map[string]bool)
	}
	if s.inFlight[appID] {
		return false
	}
	s.inFlight[appID] = true
	return true
}

func (s *Service) release(appID string) {
	s.mu.Lock()
	delete(s.inFlight, appID)
	s.mu.Unlock()
}

// Delete removes the app's jump list. The generator path is never involved
// and the outcome is never an argument error.
func (s *Service) Delete(ctx context.Context, appID string) result.Code {
	if s.Shell == nil {
		return result.GenericError
	}
	if err := s.Shell.DeleteList(ctx, appID); err != nil {
		s.logf("jumplist: failed to delete jump list for %s: %v", appID, err)
		return result.GenericError
	}
	return result.Success
}

// SetJumpList replaces the app's jump list with the layout produced by the
// generator, or deletes it when the generator is nil. Exactly one result
// code is returned no matter how many independent sub-operations failed;
// commit is always attempted once the transaction opened so a partially
// successful list is still presented to the user.
func (s *Service) SetJumpList(ctx context.Context, appID string, gen ListGenerator) result.Code {
	if gen == nil {
		return s.Delete(ctx, appID)
	}
	if s.Shell == nil {
		return result.GenericError
	}
	if strings.TrimSpace(appID) == "" {
		return result.ArgumentError
	}

	if !s.acquire(appID) {
		s.logf("jumplist: a transaction is already in flight for %s", appID)
		return result.GenericError
	}
	defer s.release(appID)

	dest, err := s.Shell.DestinationList(appID)
	if err != nil {
		s.logf("jumplist: failed to open destination list for %s: %v", appID, err)
		return result.GenericError
	}

	minSlots, removed, err := dest.Begin(ctx)
	if err != nil {
		s.logf("jumplist: failed to begin transaction for %s: %v", appID, err)
		return result.GenericError
	}

	// Let the app generate the categories to add to the jump list.
	categories, err := gen(minSlots, RemovedItems(removed))
	if err != nil {
		dest.Abort()
		s.logf("jumplist: generator failed for %s: %v", appID, err)
		return result.ArgumentError
	}
	for i := range categories {
		if err := categories[i].Normalize(); err != nil {
			dest.Abort()
			s.logf("jumplist: invalid category list for %s: %v", appID, err)
			return result.ArgumentError
		}
	}

	res := s.appendCategories(categories, dest)
	if err := dest.Commit(); err != nil {
		s.logf("jumplist: failed to commit jump list for %s: %v", appID, err)
		// The earlier code is more useful: it may indicate why the
		// transaction actually failed.
		if res == result.Success {
			res = result.GenericError
		}
	}
	return res
}

// SetUserTasks is the simplified one-shot path: it writes the standard
// Tasks category only, with no category typing and no removed-items
// feedback. Unlike SetJumpList it is strict, the first bad task fails the
// whole call.
func (s *Service) SetUserTasks(ctx context.Context, appID string, tasks []item.Item) bool {
	if s.Shell == nil || strings.TrimSpace(appID) == "" {
		return false
	}
	if !s.acquire(appID) {
		s.logf("jumplist: a transaction is already in flight for %s", appID)
		return false
	}
	defer s.release(appID)

	dest, err := s.Shell.DestinationList(appID)
	if err != nil {
		return false
	}
	if _, _, err := dest.Begin(ctx); err != nil {
		return false
	}
	committed := false
	defer func() {
		if !committed {
			dest.Abort()
		}
	}()

	collection := shell.NewObjectCollection()
	for _, t := range tasks {
		if t.Type == "" {
			t.Type = item.TypeTask
		}
		link, err := taskLink(t)
		if err != nil {
			s.logf("jumplist: invalid user task %q: %v", t.Title, err)
			return false
		}
		collection.Add(link)
	}

	// An empty submission can be rejected by the platform, so its status is
	// deliberately ignored.
	_ = dest.AddUserTasks(collection)

	if err := dest.Commit(); err != nil {
		s.logf("jumplist: failed to commit user tasks for %s: %v", appID, err)
		return false
	}
	committed = true
	return true
}
