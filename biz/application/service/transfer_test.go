package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/user"
)

func newTestTransferService() (*TransferService, *fakeBookletMapper, *fakeUserMapper, *fakeExportCache) {
	bm := newFakeBookletMapper()
	um := newFakeUserMapper()
	am := newFakeAssignmentMapper()
	sm := newFakeSubmissionMapper()
	ec := &fakeExportCache{}
	svc := &TransferService{
		BookletMapper:    bm,
		UserMapper:       um,
		AssignmentMapper: am,
		SubmissionMapper: sm,
		ExportCache:      ec,
		SyncService:      newTestSyncService(bm, um, am, sm, &fakeRemoteMapper{}),
	}
	return svc, bm, um, ec
}

func TestImportDataWithNoiseAndTrailingCommas(t *testing.T) {
	svc, bm, um, _ := newTestTransferService()
	ctx := context.Background()

	content := "导出内容如下:\n" +
		`{"booklets": [{"title": "G5 Math", "grade": "G5", "subject": "Math", "questions": [{"term": "T1", "max_marks": 5,},],},], ` +
		`"users": [{"name": "Ann", "email": " Ann@Example.com "}]}` +
		"\n-- end of paste --"

	resp, err := svc.ImportData(ctx, &show.ImportDataReq{Content: content})
	if err != nil {
		t.Fatalf("ImportData must never return an error, got %v", err)
	}
	if !resp.Success {
		t.Fatalf("import failed: %s", resp.Message)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	bs, _ := bm.FindAll(ctx)
	if len(bs) != 1 {
		t.Fatalf("booklets stored = %d, want 1", len(bs))
	}
	b := bs[0]
	if b.ID == "" {
		t.Error("imported booklet must get an id")
	}
	if len(b.Questions) != 1 || b.Questions[0].MaxMarks != 5 {
		t.Fatalf("question snake_case keys must decode, got %+v", b.Questions)
	}
	if b.Questions[0].Number != 1 {
		t.Errorf("question number = %d, import must assign numbers", b.Questions[0].Number)
	}

	us, _ := um.FindAll(ctx)
	if len(us) != 1 || us[0].Email != "ann@example.com" {
		t.Fatalf("user email must be normalized, got %+v", us)
	}
}

func TestImportDataArrayRoot(t *testing.T) {
	svc, bm, _, _ := newTestTransferService()
	ctx := context.Background()

	content := `[{"title": "A", "grade": "G1", "subject": "Sci"}, {"title": "B", "grade": "G2", "subject": "Sci"}]`
	resp, err := svc.ImportData(ctx, &show.ImportDataReq{Content: content})
	if err != nil || !resp.Success {
		t.Fatalf("array root import failed: err=%v resp=%+v", err, resp)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	bs, _ := bm.FindAll(ctx)
	if len(bs) != 2 {
		t.Errorf("booklets stored = %d, want 2", len(bs))
	}
}

func TestImportDataGarbage(t *testing.T) {
	svc, _, _, _ := newTestTransferService()

	resp, err := svc.ImportData(context.Background(), &show.ImportDataReq{Content: "just some prose, no payload"})
	if err != nil {
		t.Fatalf("ImportData must never return an error, got %v", err)
	}
	if resp.Success {
		t.Fatal("garbage input must not succeed")
	}
	if !strings.Contains(resp.Message, "invalid format") {
		t.Errorf("message = %q, want invalid format hint", resp.Message)
	}
}

func TestImportDataSyntaxErrorCarriesPosition(t *testing.T) {
	svc, _, _, _ := newTestTransferService()

	resp, err := svc.ImportData(context.Background(), &show.ImportDataReq{Content: `{"booklets": [{"title" "missing colon"}]}`})
	if err != nil {
		t.Fatalf("ImportData must never return an error, got %v", err)
	}
	if resp.Success {
		t.Fatal("malformed JSON must not succeed")
	}
	if !strings.Contains(resp.Message, "position") {
		t.Errorf("message = %q, want error position for debugging", resp.Message)
	}
}

func TestImportInvalidatesExportCache(t *testing.T) {
	svc, _, _, ec := newTestTransferService()
	ec.snapshot = &show.ExportDataResp{Version: consts.ExportVersion}

	resp, _ := svc.ImportData(context.Background(), &show.ImportDataReq{Content: `{"booklets": [{"title": "A", "grade": "G1", "subject": "Sci"}]}`})
	if !resp.Success {
		t.Fatalf("import failed: %s", resp.Message)
	}
	if ec.snapshot != nil || ec.deletes != 1 {
		t.Error("import must invalidate the export snapshot")
	}
}

func TestExportDataSnapshotCached(t *testing.T) {
	svc, bm, um, _ := newTestTransferService()
	ctx := context.Background()

	first, _ := svc.ImportData(ctx, &show.ImportDataReq{Content: `{"booklets": [{"title": "A", "grade": "G1", "subject": "Sci"}], "users": [{"name": "Ann", "email": "a@b.c"}]}`})
	if !first.Success {
		t.Fatalf("seed import failed: %s", first.Message)
	}

	resp, err := svc.ExportData(ctx, &show.ExportDataReq{})
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if len(resp.Booklets) != 1 || len(resp.Users) != 1 {
		t.Fatalf("snapshot booklets=%d users=%d, want 1/1", len(resp.Booklets), len(resp.Users))
	}
	if resp.Version != consts.ExportVersion || resp.ExportedAt == 0 {
		t.Error("snapshot must carry version and export time")
	}

	// 绕过导入直接改库 命中缓存时导出不变
	_ = bm.Upsert(ctx, bookletFixture("extra"))
	_ = um.Upsert(ctx, userFixture("extra"))
	again, err := svc.ExportData(ctx, &show.ExportDataReq{})
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if len(again.Booklets) != 1 {
		t.Errorf("second export booklets = %d, cached snapshot expected", len(again.Booklets))
	}
}

func TestExportRoundTripKeepsCredentials(t *testing.T) {
	src, bm, um, _ := newTestTransferService()
	ctx := context.Background()
	_ = bm.Upsert(ctx, bookletFixture("b1"))
	_ = um.Upsert(ctx, &user.User{
		ID:        "u1",
		Name:      "Ann",
		Email:     "ann@example.com",
		Password:  "hunter2",
		Role:      consts.RoleStaff,
		Status:    consts.StatusAuthorized,
		CreatedAt: 1,
	})

	snapshot, err := src.ExportData(ctx, &show.ExportDataReq{})
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}
	if len(snapshot.Users) != 1 || snapshot.Users[0].Password != "hunter2" {
		t.Fatalf("export must carry the full user record, got %+v", snapshot.Users)
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	dst, _, um2, _ := newTestTransferService()
	resp, err := dst.ImportData(ctx, &show.ImportDataReq{Content: string(raw)})
	if err != nil || !resp.Success {
		t.Fatalf("re-import failed: err=%v resp=%+v", err, resp)
	}
	restored, err := um2.FindByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatal("exported user must come back on import")
	}
	if restored.Password != "hunter2" {
		t.Errorf("password = %q, credentials must survive the round trip", restored.Password)
	}
	if restored.Role != consts.RoleStaff || restored.Status != consts.StatusAuthorized {
		t.Errorf("role/status must survive, got %s/%s", restored.Role, restored.Status)
	}
}

func TestCheckAndSeed(t *testing.T) {
	svc, bm, um, _ := newTestTransferService()
	ctx := context.Background()

	if err := svc.CheckAndSeed(ctx); err != nil {
		t.Fatalf("CheckAndSeed: %v", err)
	}
	n, _ := bm.Count(ctx)
	if n == 0 {
		t.Fatal("empty library must be seeded from the embedded backup")
	}

	// 已有数据时不重复灌入
	_ = um.Upsert(ctx, userFixture("u1"))
	before, _ := bm.Count(ctx)
	if err := svc.CheckAndSeed(ctx); err != nil {
		t.Fatalf("CheckAndSeed: %v", err)
	}
	if after, _ := bm.Count(ctx); after != before {
		t.Errorf("booklets %d -> %d, non-empty library must not be reseeded", before, after)
	}
}

func TestFactoryReset(t *testing.T) {
	svc, bm, um, ec := newTestTransferService()
	ctx := context.Background()
	_ = bm.Upsert(ctx, bookletFixture("b1"))
	_ = um.Upsert(ctx, userFixture("u1"))
	ec.snapshot = &show.ExportDataResp{}

	if _, err := svc.FactoryReset(ctx, &show.FactoryResetReq{Confirm: "yes?"}); err != consts.ErrInvalidParams {
		t.Errorf("wrong confirm word must be rejected, got %v", err)
	}

	resp, err := svc.FactoryReset(ctx, &show.FactoryResetReq{Confirm: "RESET"})
	if err != nil {
		t.Fatalf("FactoryReset: %v", err)
	}
	if resp.Msg != "ok" {
		t.Errorf("resp.Msg = %q, want ok ack", resp.Msg)
	}
	if n, _ := bm.Count(ctx); n != 0 {
		t.Error("booklets must be cleared")
	}
	if n, _ := um.Count(ctx); n != 0 {
		t.Error("users must be cleared")
	}
	if ec.snapshot != nil {
		t.Error("export snapshot must be invalidated")
	}
}
