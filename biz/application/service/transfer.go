package service

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/cache"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/repository/user"
	"booklet-show/biz/infrastructure/util/jsonrepair"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/mapstructure"
)

//go:embed booklet_library_seed.json
var seedData []byte

type ITransferService interface {
	ImportData(ctx context.Context, req *show.ImportDataReq) (*show.ImportDataResp, error)
	ExportData(ctx context.Context, req *show.ExportDataReq) (*show.ExportDataResp, error)
	FactoryReset(ctx context.Context, req *show.FactoryResetReq) (*show.Response, error)
	CheckAndSeed(ctx context.Context) error
}

type TransferService struct {
	BookletMapper    booklet.Mapper
	UserMapper       user.Mapper
	AssignmentMapper assignment.Mapper
	SubmissionMapper submission.Mapper
	ExportCache      cache.IExportCacheMapper
	SyncService      *SyncService
}

var TransferServiceSet = wire.NewSet(
	wire.Struct(new(TransferService), "*"),
	wire.Bind(new(ITransferService), new(*TransferService)),
)

// importDoc 导入文档的规范结构 未知键直接忽略
type importDoc struct {
	Booklets    []*booklet.Booklet
	Users       []*user.User
	Assignments []*assignment.Assignment
	Submissions []*submission.Submission
}

// ImportData 容错导入 对外从不返回错误
// 失败时Success=false并带可读的失败原因 包含出错位置附近的片段
func (s *TransferService) ImportData(ctx context.Context, req *show.ImportDataReq) (*show.ImportDataResp, error) {
	repaired, err := jsonrepair.Repair(req.Content)
	if err != nil {
		return importFail(err), nil
	}
	root, err := jsonrepair.Parse(repaired)
	if err != nil {
		return importFail(err), nil
	}

	doc := new(importDoc)
	switch payload := root.(type) {
	case []any:
		// 裸数组按册子清单处理
		if err = decodeLoose(map[string]any{"booklets": payload}, doc); err != nil {
			return importFail(err), nil
		}
	case map[string]any:
		if err = decodeLoose(payload, doc); err != nil {
			return importFail(err), nil
		}
	default:
		return importFail(jsonrepair.ErrNoRoot), nil
	}

	count, err := s.applyImport(ctx, doc)
	if err != nil {
		log.CtxError(ctx, "apply import fail, err=%v", err)
		return importFail(err), nil
	}

	// 导入改库 旧导出快照作废
	if err = s.ExportCache.Delete(ctx); err != nil {
		log.CtxInfo(ctx, "invalidate export cache fail, err=%v", err)
	}

	log.CtxInfo(ctx, "import done, count=%d", count)
	return &show.ImportDataResp{Success: true, Count: count}, nil
}

func importFail(err error) *show.ImportDataResp {
	return &show.ImportDataResp{Success: false, Message: err.Error()}
}

// decodeLoose 宽松解码 键名大小写/下划线差异均可匹配 数字类型自动放宽
func decodeLoose(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return strings.EqualFold(strings.ReplaceAll(mapKey, "_", ""), fieldName)
		},
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// applyImport 落库 册子先补id和编号再写
func (s *TransferService) applyImport(ctx context.Context, doc *importDoc) (int64, error) {
	var count int64

	if len(doc.Booklets) > 0 {
		for _, b := range doc.Booklets {
			if b.ID == "" {
				b.ID = uuid.New().String()
			}
			for _, q := range b.Questions {
				if q.ID == "" {
					q.ID = uuid.New().String()
				}
			}
			booklet.Renumber(b)
		}
		if err := s.BookletMapper.BulkUpsert(ctx, doc.Booklets); err != nil {
			return count, err
		}
		count += int64(len(doc.Booklets))
		s.SyncService.Enqueue(consts.CollBooklets)
	}

	if len(doc.Users) > 0 {
		for _, u := range doc.Users {
			if u.ID == "" {
				u.ID = uuid.New().String()
			}
			u.Email = normalizeEmail(u.Email)
		}
		if err := s.UserMapper.BulkUpsert(ctx, doc.Users); err != nil {
			return count, err
		}
		count += int64(len(doc.Users))
		s.SyncService.Enqueue(consts.CollUsers)
	}

	if len(doc.Assignments) > 0 {
		for _, a := range doc.Assignments {
			if a.ID == "" {
				a.ID = uuid.New().String()
			}
		}
		if err := s.AssignmentMapper.BulkUpsert(ctx, doc.Assignments); err != nil {
			return count, err
		}
		count += int64(len(doc.Assignments))
		s.SyncService.Enqueue(consts.CollAssignments)
	}

	if len(doc.Submissions) > 0 {
		for _, sub := range doc.Submissions {
			if sub.ID == "" {
				sub.ID = uuid.New().String()
			}
		}
		if err := s.SubmissionMapper.BulkUpsert(ctx, doc.Submissions); err != nil {
			return count, err
		}
		count += int64(len(doc.Submissions))
		s.SyncService.Enqueue(consts.CollSubmissions)
	}

	return count, nil
}

// ExportData 整库导出 快照缓存一小时
func (s *TransferService) ExportData(ctx context.Context, _ *show.ExportDataReq) (*show.ExportDataResp, error) {
	if cached, err := s.ExportCache.Get(ctx); err == nil && cached != nil {
		log.CtxInfo(ctx, "export cache hit")
		return cached, nil
	}

	resp := &show.ExportDataResp{
		Booklets:    []*show.BookletInfo{},
		Users:       []*show.UserRecord{},
		Assignments: []*show.AssignmentInfo{},
		Submissions: []*show.SubmissionInfo{},
		Version:     consts.ExportVersion,
		ExportedAt:  time.Now().UnixMilli(),
	}

	bs, err := s.BookletMapper.FindAll(ctx)
	if err != nil {
		return nil, consts.ErrExport
	}
	if err = copier.Copy(&resp.Booklets, bs); err != nil {
		return nil, consts.ErrExport
	}

	us, err := s.UserMapper.FindAll(ctx)
	if err != nil {
		return nil, consts.ErrExport
	}
	if err = copier.Copy(&resp.Users, us); err != nil {
		return nil, consts.ErrExport
	}

	as, err := s.AssignmentMapper.FindAll(ctx)
	if err != nil {
		return nil, consts.ErrExport
	}
	if err = copier.Copy(&resp.Assignments, as); err != nil {
		return nil, consts.ErrExport
	}

	ss, err := s.SubmissionMapper.FindAll(ctx)
	if err != nil {
		return nil, consts.ErrExport
	}
	if err = copier.Copy(&resp.Submissions, ss); err != nil {
		return nil, consts.ErrExport
	}

	if err = s.ExportCache.Set(ctx, resp); err != nil {
		log.CtxInfo(ctx, "cache export snapshot fail, err=%v", err)
	}
	return resp, nil
}

// FactoryReset 清空本地四个集合 远端数据不动
func (s *TransferService) FactoryReset(ctx context.Context, req *show.FactoryResetReq) (*show.Response, error) {
	if req.Confirm != "RESET" {
		return nil, consts.ErrInvalidParams
	}

	if err := s.BookletMapper.Clear(ctx); err != nil {
		return nil, consts.ErrUpdate
	}
	if err := s.UserMapper.Clear(ctx); err != nil {
		return nil, consts.ErrUpdate
	}
	if err := s.AssignmentMapper.Clear(ctx); err != nil {
		return nil, consts.ErrUpdate
	}
	if err := s.SubmissionMapper.Clear(ctx); err != nil {
		return nil, consts.ErrUpdate
	}
	if err := s.ExportCache.Delete(ctx); err != nil {
		log.CtxInfo(ctx, "invalidate export cache fail, err=%v", err)
	}

	log.CtxInfo(ctx, "factory reset done")
	return &show.Response{Msg: "ok"}, nil
}

// CheckAndSeed 首次启动空库时灌入种子数据
func (s *TransferService) CheckAndSeed(ctx context.Context) error {
	if len(seedData) == 0 {
		return nil
	}

	bookletTotal, err := s.BookletMapper.Count(ctx)
	if err != nil {
		return err
	}
	userTotal, err := s.UserMapper.Count(ctx)
	if err != nil {
		return err
	}
	if bookletTotal > 0 || userTotal > 0 {
		return nil
	}

	log.CtxInfo(ctx, "empty library, seeding")
	resp, err := s.ImportData(ctx, &show.ImportDataReq{Content: string(seedData)})
	if err != nil {
		return err
	}
	if !resp.Success {
		log.CtxError(ctx, "seed import fail: %s", resp.Message)
	}
	return nil
}
