package service

import (
	"context"
	"fmt"
	"time"

	"booklet-show/biz/adaptor"
	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/util"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IBookletService interface {
	CreateBooklet(ctx context.Context, req *show.CreateBookletReq) (*show.CreateBookletResp, error)
	GetBooklet(ctx context.Context, req *show.GetBookletReq) (*show.GetBookletResp, error)
	ListBooklets(ctx context.Context, req *show.ListBookletsReq) (*show.ListBookletsResp, error)
	UpdateBooklet(ctx context.Context, req *show.UpdateBookletReq) (*show.GetBookletResp, error)
	UpdateBookletSubject(ctx context.Context, req *show.UpdateBookletSubjectReq) (*show.Response, error)
	AddQuestion(ctx context.Context, req *show.AddQuestionReq) (*show.GetBookletResp, error)
	UpdateQuestion(ctx context.Context, req *show.UpdateQuestionReq) (*show.GetBookletResp, error)
	RemoveQuestion(ctx context.Context, req *show.RemoveQuestionReq) (*show.GetBookletResp, error)
}

type BookletService struct {
	BookletMapper booklet.Mapper
	SyncService   *SyncService
}

var BookletServiceSet = wire.NewSet(
	wire.Struct(new(BookletService), "*"),
	wire.Bind(new(IBookletService), new(*BookletService)),
)

// CreateBooklet 创建空册子 标题由年级/科目/话题推导
func (s *BookletService) CreateBooklet(ctx context.Context, req *show.CreateBookletReq) (*show.CreateBookletResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)

	title := fmt.Sprintf("%s %s", req.Grade, req.Subject)
	if req.Topic != "" {
		title = fmt.Sprintf("%s - %s", title, req.Topic)
	}
	bookletType := req.Type
	if bookletType == "" {
		bookletType = consts.BookletReadingOnly
	}

	now := time.Now().UnixMilli()
	b := &booklet.Booklet{
		ID:        uuid.New().String(),
		Title:     title,
		Subject:   req.Subject,
		Grade:     req.Grade,
		Topic:     req.Topic,
		Type:      bookletType,
		Compiler:  meta.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Questions: []*booklet.Question{},
	}

	if err := s.BookletMapper.Upsert(ctx, b); err != nil {
		log.CtxError(ctx, "create booklet fail, err=%v", err)
		return nil, consts.ErrCreateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)

	return &show.CreateBookletResp{Booklet: bookletInfo(b)}, nil
}

func (s *BookletService) GetBooklet(ctx context.Context, req *show.GetBookletReq) (*show.GetBookletResp, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, err
	}
	return &show.GetBookletResp{Booklet: bookletInfo(b)}, nil
}

func (s *BookletService) ListBooklets(ctx context.Context, _ *show.ListBookletsReq) (*show.ListBookletsResp, error) {
	bs, err := s.BookletMapper.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]*show.BookletInfo, 0, len(bs))
	for _, b := range bs {
		infos = append(infos, bookletInfo(b))
	}
	return &show.ListBookletsResp{Booklets: infos, Total: int64(len(infos))}, nil
}

// UpdateBooklet 整册替换 缺号题目落库前补齐编号
func (s *BookletService) UpdateBooklet(ctx context.Context, req *show.UpdateBookletReq) (*show.GetBookletResp, error) {
	if req.Booklet == nil || req.Booklet.ID == "" {
		return nil, consts.ErrInvalidParams
	}
	b := new(booklet.Booklet)
	if err := copier.Copy(b, req.Booklet); err != nil {
		return nil, consts.ErrUpdateBooklet
	}
	booklet.Renumber(b)

	if err := s.BookletMapper.Upsert(ctx, b); err != nil {
		log.CtxError(ctx, "update booklet fail, err=%v", err)
		return nil, consts.ErrUpdateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)
	return &show.GetBookletResp{Booklet: bookletInfo(b)}, nil
}

func (s *BookletService) UpdateBookletSubject(ctx context.Context, req *show.UpdateBookletSubjectReq) (*show.Response, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, err
	}
	b.Subject = req.Subject
	b.UpdatedAt = time.Now().UnixMilli()
	if err = s.BookletMapper.Upsert(ctx, b); err != nil {
		return nil, consts.ErrUpdateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)
	return &show.Response{Msg: "ok"}, nil
}

// AddQuestion 话题内顺延编号追加题目
// 只传图片时先落一条处理中的占位题 再异步调用解题服务补全题干与解答
func (s *BookletService) AddQuestion(ctx context.Context, req *show.AddQuestionReq) (*show.GetBookletResp, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, err
	}

	q := &booklet.Question{
		ID:                uuid.New().String(),
		Term:              req.Term,
		MaxMarks:          req.MaxMarks,
		ImageUrls:         req.ImageUrls,
		ExtractedQuestion: req.ExtractedQuestion,
		CreatedAt:         time.Now().UnixMilli(),
	}
	needSolve := req.ExtractedQuestion == "" && len(req.ImageUrls) > 0
	q.IsProcessing = needSolve

	booklet.AppendQuestions(b, req.Topic, []*booklet.Question{q})

	if err = s.BookletMapper.Upsert(ctx, b); err != nil {
		log.CtxError(ctx, "add question fail, err=%v", err)
		return nil, consts.ErrUpdateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)

	if needSolve {
		s.solveAsync(req.BookletID, q.ID, req.ImageUrls, q.Number)
	}

	return &show.GetBookletResp{Booklet: bookletInfo(b)}, nil
}

// solveAsync 后台补全题干 失败时只摘掉处理中标记 留空题干待人工补录
func (s *BookletService) solveAsync(bookletID, questionID string, images []string, number int64) {
	gopool.Go(func() {
		ctx := context.Background()
		result, err := util.GetHttpClient().Solve(ctx, images, number)
		if err != nil {
			log.Error("solve question fail, bookletId=%s questionId=%s err=%v", bookletID, questionID, err)
			result = nil
		}

		b, err := s.BookletMapper.FindOne(ctx, bookletID)
		if err != nil {
			return
		}
		for _, q := range b.Questions {
			if q.ID != questionID {
				continue
			}
			if result != nil {
				q.ExtractedQuestion = result.QuestionText
				if result.Solution != "" {
					solution := result.Solution
					q.GeneratedSolution = &solution
				}
				if q.MaxMarks == 0 && result.Marks > 0 {
					q.MaxMarks = result.Marks
				}
			}
			q.IsProcessing = false
			break
		}
		b.UpdatedAt = time.Now().UnixMilli()
		if err = s.BookletMapper.Upsert(ctx, b); err != nil {
			log.Error("save solved question fail, bookletId=%s err=%v", bookletID, err)
			return
		}
		s.SyncService.Enqueue(consts.CollBooklets)
	})
}

// UpdateQuestion 编辑题目 换话题时在目标话题取新号 原编号作废不回收
func (s *BookletService) UpdateQuestion(ctx context.Context, req *show.UpdateQuestionReq) (*show.GetBookletResp, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, err
	}

	var target *booklet.Question
	for _, q := range b.Questions {
		if q.ID == req.QuestionID {
			target = q
			break
		}
	}
	if target == nil {
		return nil, consts.ErrQuestionNotFound
	}

	if req.Topic != nil && *req.Topic != target.Topic {
		target.Number = booklet.NextNumber(b, *req.Topic)
		target.Topic = *req.Topic
	}
	if req.Term != nil {
		target.Term = *req.Term
	}
	if req.MaxMarks != nil {
		target.MaxMarks = *req.MaxMarks
	}
	if req.ExtractedQuestion != nil {
		target.ExtractedQuestion = *req.ExtractedQuestion
	}
	if req.GeneratedSolution != nil {
		target.GeneratedSolution = req.GeneratedSolution
	}
	b.UpdatedAt = time.Now().UnixMilli()

	if err = s.BookletMapper.Upsert(ctx, b); err != nil {
		return nil, consts.ErrUpdateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)
	return &show.GetBookletResp{Booklet: bookletInfo(b)}, nil
}

// RemoveQuestion 删除题目 留下的编号空洞不回填
func (s *BookletService) RemoveQuestion(ctx context.Context, req *show.RemoveQuestionReq) (*show.GetBookletResp, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, err
	}

	kept := make([]*booklet.Question, 0, len(b.Questions))
	found := false
	for _, q := range b.Questions {
		if q.ID == req.QuestionID {
			found = true
			continue
		}
		kept = append(kept, q)
	}
	if !found {
		return nil, consts.ErrQuestionNotFound
	}
	b.Questions = kept
	b.UpdatedAt = time.Now().UnixMilli()

	if err = s.BookletMapper.Upsert(ctx, b); err != nil {
		return nil, consts.ErrUpdateBooklet
	}
	s.SyncService.Enqueue(consts.CollBooklets)
	return &show.GetBookletResp{Booklet: bookletInfo(b)}, nil
}

func bookletInfo(b *booklet.Booklet) *show.BookletInfo {
	info := new(show.BookletInfo)
	_ = copier.Copy(info, b)
	return info
}
