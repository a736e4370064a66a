package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/lock"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/remote"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/repository/user"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/threading"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type ISyncService interface {
	SyncNow(ctx context.Context, req *show.SyncNowReq) (*show.SyncNowResp, error)
	SyncAll(ctx context.Context) *show.SyncReport
	Enqueue(collection string)
	StartOutbox()
	StartAutoSync()
	StopAutoSync()
}

// SyncService 本地库与远端库之间的双向同步
// 一轮全量同步 = 拉取 -> 册子去重 -> 推送 任一步失败不中断其余步骤
type SyncService struct {
	Config           *config.Config
	BookletMapper    booklet.Mapper
	UserMapper       user.Mapper
	AssignmentMapper assignment.Mapper
	SubmissionMapper submission.Mapper
	RemoteMapper     remote.Mapper
	Lock             *lock.SyncLock

	outbox   chan string
	autoMu   sync.Mutex
	autoStop chan struct{}
}

func NewSyncService(
	config *config.Config,
	bookletMapper booklet.Mapper,
	userMapper user.Mapper,
	assignmentMapper assignment.Mapper,
	submissionMapper submission.Mapper,
	remoteMapper remote.Mapper,
	syncLock *lock.SyncLock,
) *SyncService {
	return &SyncService{
		Config:           config,
		BookletMapper:    bookletMapper,
		UserMapper:       userMapper,
		AssignmentMapper: assignmentMapper,
		SubmissionMapper: submissionMapper,
		RemoteMapper:     remoteMapper,
		Lock:             syncLock,
		outbox:           make(chan string, consts.OutboxCapacity),
	}
}

var SyncServiceSet = wire.NewSet(
	NewSyncService,
	wire.Bind(new(ISyncService), new(*SyncService)),
)

// SyncNow 手动触发一轮全量同步 已有同步在跑时直接拒绝
func (s *SyncService) SyncNow(ctx context.Context, _ *show.SyncNowReq) (*show.SyncNowResp, error) {
	if !s.Lock.Acquire() {
		return nil, consts.ErrSyncBusy
	}
	defer s.Lock.Release()

	report := s.syncAll(ctx)
	return &show.SyncNowResp{Report: report}, nil
}

// SyncAll 启动时与定时器走这里 拿不到锁说明有同步在跑 直接跳过本轮
func (s *SyncService) SyncAll(ctx context.Context) *show.SyncReport {
	if !s.Lock.Acquire() {
		log.CtxInfo(ctx, "sync already in progress, skip this round")
		return &show.SyncReport{Success: false}
	}
	defer s.Lock.Release()
	return s.syncAll(ctx)
}

func (s *SyncService) syncAll(ctx context.Context) *show.SyncReport {
	tracer := otel.Tracer("booklet-show/sync")
	ctx, span := tracer.Start(ctx, "SyncAll")
	defer span.End()

	report := &show.SyncReport{StartedAt: time.Now().UnixMilli()}
	var okSteps int

	// 拉取阶段
	okSteps += runStep(ctx, &report.Booklets, "pull booklets", func() (int64, error) { return s.pullBooklets(ctx) }, true)
	okSteps += runStep(ctx, &report.Users, "pull users", func() (int64, error) { return s.pullUsers(ctx) }, true)
	okSteps += runStep(ctx, &report.Assignments, "pull assignments", func() (int64, error) { return s.pullAssignments(ctx) }, true)
	okSteps += runStep(ctx, &report.Submissions, "pull submissions", func() (int64, error) { return s.pullSubmissions(ctx) }, true)

	// 去重阶段 拉取可能带来自然键撞车的册子 推送前收敛
	kept, removed, err := s.dedupeBooklets(ctx)
	if err != nil {
		log.CtxError(ctx, "dedupe booklets fail, err=%v", err)
		if report.Booklets.Error == "" {
			report.Booklets.Error = err.Error()
		}
	}
	report.Dedupe = show.DedupeReport{Kept: kept, Removed: removed}

	// 推送阶段
	okSteps += runStep(ctx, &report.Booklets, "push booklets", func() (int64, error) { return s.pushBooklets(ctx) }, false)
	okSteps += runStep(ctx, &report.Users, "push users", func() (int64, error) { return s.pushUsers(ctx) }, false)
	okSteps += runStep(ctx, &report.Assignments, "push assignments", func() (int64, error) { return s.pushAssignments(ctx) }, false)
	okSteps += runStep(ctx, &report.Submissions, "push submissions", func() (int64, error) { return s.pushSubmissions(ctx) }, false)

	report.FinishedAt = time.Now().UnixMilli()
	// 部分成功也算成功 全军覆没才判失败
	report.Success = okSteps > 0

	span.SetAttributes(
		attribute.Bool("sync.success", report.Success),
		attribute.Int64("sync.dedupe.removed", removed),
	)
	log.CtxInfo(ctx, "sync round done, success=%v removed=%d", report.Success, removed)
	return report
}

// runStep 执行单个同步步骤 失败只记录到报告 返回1表示本步成功
func runStep(ctx context.Context, cr *show.CollectionReport, name string, fn func() (int64, error), pull bool) int {
	n, err := fn()
	if err != nil {
		log.CtxError(ctx, "%s fail, err=%v", name, err)
		cr.Error = err.Error()
		return 0
	}
	if pull {
		cr.Pulled = n
	} else {
		cr.Pushed = n
	}
	return 1
}

// newerThan 以毫秒时间戳做last-write-wins 只有严格更新才覆盖
func newerThan(incoming, existing int64) bool {
	return incoming > existing
}

func bookletStamp(b *booklet.Booklet) int64 {
	if b.UpdatedAt > 0 {
		return b.UpdatedAt
	}
	return b.CreatedAt
}

func (s *SyncService) pageSize() int64 {
	if s.Config.Sync.PageSize > 0 {
		return s.Config.Sync.PageSize
	}
	return consts.SyncPageSize
}

func (s *SyncService) pullBooklets(ctx context.Context) (int64, error) {
	var applied int64
	pageSize := s.pageSize()
	for page := int64(0); ; page++ {
		rows, err := s.RemoteMapper.PullBooklets(ctx, page, pageSize)
		if err != nil {
			return applied, err
		}
		for _, row := range rows {
			incoming, err := row.ToEntity()
			if err != nil {
				log.CtxError(ctx, "decode booklet row fail, id=%s err=%v", row.ID, err)
				continue
			}
			local, err := s.BookletMapper.FindOne(ctx, incoming.ID)
			if err == nil && local != nil && !newerThan(bookletStamp(incoming), bookletStamp(local)) {
				continue
			}
			if err = s.BookletMapper.Upsert(ctx, incoming); err != nil {
				return applied, err
			}
			applied++
		}
		if int64(len(rows)) < pageSize {
			return applied, nil
		}
	}
}

func (s *SyncService) pullUsers(ctx context.Context) (int64, error) {
	var applied int64
	pageSize := s.pageSize()
	for page := int64(0); ; page++ {
		rows, err := s.RemoteMapper.PullUsers(ctx, page, pageSize)
		if err != nil {
			return applied, err
		}
		for _, row := range rows {
			incoming, err := row.ToEntity()
			if err != nil {
				log.CtxError(ctx, "decode user row fail, id=%s err=%v", row.ID, err)
				continue
			}
			local, err := s.UserMapper.FindOne(ctx, incoming.ID)
			if err == nil && local != nil && !newerThan(incoming.CreatedAt, local.CreatedAt) {
				continue
			}
			if err = s.UserMapper.Upsert(ctx, incoming); err != nil {
				return applied, err
			}
			applied++
		}
		if int64(len(rows)) < pageSize {
			return applied, nil
		}
	}
}

func (s *SyncService) pullAssignments(ctx context.Context) (int64, error) {
	var applied int64
	pageSize := s.pageSize()
	for page := int64(0); ; page++ {
		rows, err := s.RemoteMapper.PullAssignments(ctx, page, pageSize)
		if err != nil {
			return applied, err
		}
		for _, row := range rows {
			incoming, err := row.ToEntity()
			if err != nil {
				log.CtxError(ctx, "decode assignment row fail, id=%s err=%v", row.ID, err)
				continue
			}
			local, err := s.AssignmentMapper.FindOne(ctx, incoming.ID)
			if err == nil && local != nil && !newerThan(incoming.CreatedAt, local.CreatedAt) {
				continue
			}
			if err = s.AssignmentMapper.Upsert(ctx, incoming); err != nil {
				return applied, err
			}
			applied++
		}
		if int64(len(rows)) < pageSize {
			return applied, nil
		}
	}
}

func (s *SyncService) pullSubmissions(ctx context.Context) (int64, error) {
	var applied int64
	pageSize := s.pageSize()
	for page := int64(0); ; page++ {
		rows, err := s.RemoteMapper.PullSubmissions(ctx, page, pageSize)
		if err != nil {
			return applied, err
		}
		for _, row := range rows {
			incoming, err := row.ToEntity()
			if err != nil {
				log.CtxError(ctx, "decode submission row fail, id=%s err=%v", row.ID, err)
				continue
			}
			local, err := s.SubmissionMapper.FindOne(ctx, incoming.ID)
			if err == nil && local != nil && !newerThan(incoming.SubmittedAt, local.SubmittedAt) {
				continue
			}
			if err = s.SubmissionMapper.Upsert(ctx, incoming); err != nil {
				return applied, err
			}
			applied++
		}
		if int64(len(rows)) < pageSize {
			return applied, nil
		}
	}
}

// naturalKey 年级|科目|标题 大小写与首尾空白不敏感
func naturalKey(b *booklet.Booklet) string {
	parts := []string{b.Grade, b.Subject, b.Title}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}

// dedupeBooklets 同自然键的册子只留最新的一份
// 平手时留id字典序最小者 保证各端收敛到同一份
func (s *SyncService) dedupeBooklets(ctx context.Context) (kept, removed int64, err error) {
	bs, err := s.BookletMapper.FindAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	groups := lo.GroupBy(bs, naturalKey)
	for _, group := range groups {
		winner := group[0]
		for _, b := range group[1:] {
			if newerThan(bookletStamp(b), bookletStamp(winner)) ||
				(bookletStamp(b) == bookletStamp(winner) && b.ID < winner.ID) {
				winner = b
			}
		}
		kept++
		for _, b := range group {
			if b.ID == winner.ID {
				continue
			}
			// 带快照时间戳的条件删除 FindAll之后被改过的副本逃过本轮 下一轮重新比
			n, err := s.BookletMapper.DeleteStale(ctx, b.ID, b.UpdatedAt)
			if err != nil {
				return kept, removed, err
			}
			removed += n
		}
	}
	return kept, removed, nil
}

func (s *SyncService) pushBooklets(ctx context.Context) (int64, error) {
	bs, err := s.BookletMapper.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	rows := make([]*remote.BookletRow, 0, len(bs))
	for _, b := range bs {
		row, err := remote.BookletToRow(b)
		if err != nil {
			log.CtxError(ctx, "encode booklet row fail, id=%s err=%v", b.ID, err)
			continue
		}
		rows = append(rows, row)
	}
	if err = s.RemoteMapper.UpsertBooklets(ctx, rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *SyncService) pushUsers(ctx context.Context) (int64, error) {
	us, err := s.UserMapper.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	rows := make([]*remote.UserRow, 0, len(us))
	for _, u := range us {
		row, err := remote.UserToRow(u)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if err = s.RemoteMapper.UpsertUsers(ctx, rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *SyncService) pushAssignments(ctx context.Context) (int64, error) {
	as, err := s.AssignmentMapper.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	rows := make([]*remote.AssignmentRow, 0, len(as))
	for _, a := range as {
		row, err := remote.AssignmentToRow(a)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if err = s.RemoteMapper.UpsertAssignments(ctx, rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *SyncService) pushSubmissions(ctx context.Context) (int64, error) {
	ss, err := s.SubmissionMapper.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	rows := make([]*remote.SubmissionRow, 0, len(ss))
	for _, sub := range ss {
		row, err := remote.SubmissionToRow(sub)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if err = s.RemoteMapper.UpsertSubmissions(ctx, rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

// Enqueue 本地写入后投递推送信号 队列满则丢弃 等下一轮全量同步兜底
func (s *SyncService) Enqueue(collection string) {
	if s == nil || s.outbox == nil {
		return
	}
	select {
	case s.outbox <- collection:
	default:
		log.Info("outbox full, drop push signal, collection=%s", collection)
	}
}

// StartOutbox 启动推送消费协程
func (s *SyncService) StartOutbox() {
	threading.GoSafe(func() {
		for collection := range s.outbox {
			s.flush(context.Background(), collection)
		}
	})
}

// flush 推送单个集合 重试若干次后放弃 等全量同步兜底
func (s *SyncService) flush(ctx context.Context, collection string) {
	var err error
	for attempt := 1; attempt <= consts.OutboxMaxAttempts; attempt++ {
		switch collection {
		case consts.CollBooklets:
			_, err = s.pushBooklets(ctx)
		case consts.CollUsers:
			_, err = s.pushUsers(ctx)
		case consts.CollAssignments:
			_, err = s.pushAssignments(ctx)
		case consts.CollSubmissions:
			_, err = s.pushSubmissions(ctx)
		default:
			log.Error("unknown outbox collection: %s", collection)
			return
		}
		if err == nil {
			return
		}
		log.Error("outbox push fail, collection=%s attempt=%d err=%v", collection, attempt, err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
}

// StartAutoSync 启动周期性全量同步 重复调用只生效一次
func (s *SyncService) StartAutoSync() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.autoStop != nil {
		return
	}
	stop := make(chan struct{})
	s.autoStop = stop

	interval := time.Duration(s.Config.Sync.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = consts.SyncIntervalSec * time.Second
	}

	threading.GoSafe(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SyncAll(context.Background())
			case <-stop:
				return
			}
		}
	})
}

func (s *SyncService) StopAutoSync() {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.autoStop != nil {
		close(s.autoStop)
		s.autoStop = nil
	}
}
