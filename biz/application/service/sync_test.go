package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/remote"
)

func newTestSyncService(bm booklet.Mapper, um *fakeUserMapper, am *fakeAssignmentMapper, sm *fakeSubmissionMapper, rm *fakeRemoteMapper) *SyncService {
	cfg := new(config.Config)
	cfg.Sync.PageSize = 2
	return &SyncService{
		Config:           cfg,
		BookletMapper:    bm,
		UserMapper:       um,
		AssignmentMapper: am,
		SubmissionMapper: sm,
		RemoteMapper:     rm,
		outbox:           make(chan string, 4),
	}
}

func mustBookletRow(t *testing.T, b *booklet.Booklet) *remote.BookletRow {
	t.Helper()
	row, err := remote.BookletToRow(b)
	if err != nil {
		t.Fatalf("BookletToRow: %v", err)
	}
	return row
}

func TestNewerThan(t *testing.T) {
	if !newerThan(200, 100) {
		t.Error("200 should be newer than 100")
	}
	if newerThan(100, 100) {
		t.Error("equal stamps must not overwrite")
	}
	if newerThan(100, 200) {
		t.Error("100 should not be newer than 200")
	}
}

func TestPullBookletsLastWriteWins(t *testing.T) {
	bm := newFakeBookletMapper()
	_ = bm.Upsert(context.Background(), &booklet.Booklet{ID: "b1", Title: "old", UpdatedAt: 100})
	_ = bm.Upsert(context.Background(), &booklet.Booklet{ID: "b3", Title: "local newer", UpdatedAt: 500})

	rm := &fakeRemoteMapper{
		booklets: []*remote.BookletRow{
			mustBookletRow(t, &booklet.Booklet{ID: "b1", Title: "remote newer", UpdatedAt: 200}),
			mustBookletRow(t, &booklet.Booklet{ID: "b2", Title: "remote only", UpdatedAt: 150}),
			mustBookletRow(t, &booklet.Booklet{ID: "b3", Title: "remote stale", UpdatedAt: 400}),
		},
	}
	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), rm)

	applied, err := s.pullBooklets(context.Background())
	if err != nil {
		t.Fatalf("pullBooklets: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}

	b1, _ := bm.FindOne(context.Background(), "b1")
	if b1.Title != "remote newer" {
		t.Errorf("b1 title = %q, want remote version", b1.Title)
	}
	if _, err := bm.FindOne(context.Background(), "b2"); err != nil {
		t.Error("b2 should have been pulled")
	}
	b3, _ := bm.FindOne(context.Background(), "b3")
	if b3.Title != "local newer" {
		t.Errorf("b3 title = %q, local newer copy must survive", b3.Title)
	}
}

func TestPullBookletsPaging(t *testing.T) {
	bm := newFakeBookletMapper()
	rm := &fakeRemoteMapper{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		rm.booklets = append(rm.booklets, mustBookletRow(t, &booklet.Booklet{ID: id, UpdatedAt: 10}))
	}
	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), rm)

	applied, err := s.pullBooklets(context.Background())
	if err != nil {
		t.Fatalf("pullBooklets: %v", err)
	}
	if applied != 5 {
		t.Fatalf("applied = %d, want 5 across pages", applied)
	}
}

func TestDedupeBooklets(t *testing.T) {
	bm := newFakeBookletMapper()
	ctx := context.Background()
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "x1", Grade: "G5", Subject: "Math", Title: "Fractions", UpdatedAt: 100})
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "x2", Grade: " g5 ", Subject: "Math", Title: "Fractions", UpdatedAt: 300})
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "x3", Grade: "G5", Subject: "math", Title: "FRACTIONS ", UpdatedAt: 200})
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "y1", Grade: "G6", Subject: "Math", Title: "Fractions", UpdatedAt: 100})

	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), &fakeRemoteMapper{})

	kept, removed, err := s.dedupeBooklets(ctx)
	if err != nil {
		t.Fatalf("dedupeBooklets: %v", err)
	}
	if kept != 2 || removed != 2 {
		t.Fatalf("kept=%d removed=%d, want 2/2", kept, removed)
	}
	if _, err := bm.FindOne(ctx, "x2"); err != nil {
		t.Error("latest copy x2 must survive")
	}
	if _, err := bm.FindOne(ctx, "x1"); err == nil {
		t.Error("stale copy x1 must be removed")
	}
	if _, err := bm.FindOne(ctx, "y1"); err != nil {
		t.Error("different grade must be untouched")
	}
}

func TestDedupeTieBreaksOnID(t *testing.T) {
	bm := newFakeBookletMapper()
	ctx := context.Background()
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "bbb", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 100})
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "aaa", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 100})

	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), &fakeRemoteMapper{})
	if _, _, err := s.dedupeBooklets(ctx); err != nil {
		t.Fatalf("dedupeBooklets: %v", err)
	}
	if _, err := bm.FindOne(ctx, "aaa"); err != nil {
		t.Error("tie must keep the smallest id for convergence")
	}
	if _, err := bm.FindOne(ctx, "bbb"); err == nil {
		t.Error("tie loser must be removed")
	}
}

func TestDedupeSkipsConcurrentlyUpdatedCopy(t *testing.T) {
	bm := newFakeBookletMapper()
	ctx := context.Background()
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "x1", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 100})
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "x2", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 300})

	// x1在快照读出后被改成最新 删除条件对不上 本轮必须放过它
	racing := &racingBookletMapper{fakeBookletMapper: bm, bumpID: "x1", bumpTo: 500}
	s := newTestSyncService(racing, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), &fakeRemoteMapper{})

	_, removed, err := s.dedupeBooklets(ctx)
	if err != nil {
		t.Fatalf("dedupeBooklets: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, concurrently updated copy must survive", removed)
	}
	if _, err := bm.FindOne(ctx, "x1"); err != nil {
		t.Error("updated copy x1 must not be deleted on a stale stamp")
	}
	if _, err := bm.FindOne(ctx, "x2"); err != nil {
		t.Error("x2 must be untouched")
	}
}

func TestSyncAllStepIsolation(t *testing.T) {
	bm := newFakeBookletMapper()
	ctx := context.Background()
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "b1", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 100})

	rm := &fakeRemoteMapper{pullUsersErr: errors.New("remote users table gone")}
	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), rm)

	report := s.syncAll(ctx)
	if !report.Success {
		t.Error("partial failure still counts as success")
	}
	if report.Users.Error == "" {
		t.Error("users step error must land in the report")
	}
	if len(rm.pushedBooklets) == 0 {
		t.Error("booklet push must still run after users pull failed")
	}
	if report.Booklets.Pushed != 1 {
		t.Errorf("booklets pushed = %d, want 1", report.Booklets.Pushed)
	}
}

func TestSyncAllTotalFailure(t *testing.T) {
	dead := &deadRemoteMapper{err: errors.New("remote down")}
	s := newTestSyncService(newFakeBookletMapper(), newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), nil)
	s.RemoteMapper = dead

	report := s.syncAll(context.Background())
	if report.Success {
		t.Error("success must be false when every step failed")
	}
	if report.Booklets.Error == "" || report.Submissions.Error == "" {
		t.Error("every collection must carry its error")
	}
}

func TestSyncAllConvergence(t *testing.T) {
	bm := newFakeBookletMapper()
	rm := &fakeRemoteMapper{
		booklets: []*remote.BookletRow{
			mustBookletRow(t, &booklet.Booklet{ID: "b1", Grade: "G5", Subject: "Math", Title: "T", UpdatedAt: 100}),
		},
	}
	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), rm)

	ctx := context.Background()
	first := s.syncAll(ctx)
	if !first.Success || first.Booklets.Pulled != 1 {
		t.Fatalf("first round: success=%v pulled=%d", first.Success, first.Booklets.Pulled)
	}

	second := s.syncAll(ctx)
	if !second.Success {
		t.Error("second round must succeed")
	}
	if second.Booklets.Pulled != 0 {
		t.Errorf("second round pulled = %d, identical data must be a no-op", second.Booklets.Pulled)
	}
}

func TestEnqueueDoesNotBlock(t *testing.T) {
	s := &SyncService{outbox: make(chan string, 1)}

	done := make(chan struct{})
	go func() {
		s.Enqueue("booklets")
		s.Enqueue("booklets")
		s.Enqueue("users")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full outbox")
	}
	if len(s.outbox) != 1 {
		t.Errorf("outbox len = %d, overflow must be dropped", len(s.outbox))
	}
}

func TestFlushRetriesThenSucceeds(t *testing.T) {
	bm := newFakeBookletMapper()
	ctx := context.Background()
	_ = bm.Upsert(ctx, &booklet.Booklet{ID: "b1", UpdatedAt: 100})

	rm := &fakeRemoteMapper{failUpserts: 1}
	s := newTestSyncService(bm, newFakeUserMapper(), newFakeAssignmentMapper(), newFakeSubmissionMapper(), rm)

	s.flush(ctx, "booklets")
	if len(rm.pushedBooklets) != 1 {
		t.Fatalf("pushed batches = %d, want 1 after retry", len(rm.pushedBooklets))
	}
}
