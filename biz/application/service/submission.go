package service

import (
	"context"
	"time"

	"booklet-show/biz/adaptor"
	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/util"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

// 批改服务不可用时落回的占位反馈
const markFallbackFeedback = "批改服务暂不可用，本题暂记0分，请等待教师人工复核"

type ISubmissionService interface {
	SubmitWork(ctx context.Context, req *show.SubmitWorkReq) (*show.SubmitWorkResp, error)
	ListSubmissions(ctx context.Context, req *show.ListSubmissionsReq) (*show.ListSubmissionsResp, error)
	OverrideMark(ctx context.Context, req *show.OverrideMarkReq) (*show.Response, error)
	AdvanceStatus(ctx context.Context, req *show.AdvanceStatusReq) (*show.Response, error)
}

type SubmissionService struct {
	SubmissionMapper submission.Mapper
	AssignmentMapper assignment.Mapper
	BookletMapper    booklet.Mapper
	SyncService      *SyncService
}

var SubmissionServiceSet = wire.NewSet(
	wire.Struct(new(SubmissionService), "*"),
	wire.Bind(new(ISubmissionService), new(*SubmissionService)),
)

// SubmitWork 学生提交作答 逐题调用批改服务评分
// 单题批改失败不阻塞整次提交 记0分并落占位反馈
func (s *SubmissionService) SubmitWork(ctx context.Context, req *show.SubmitWorkReq) (*show.SubmitWorkResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)

	a, err := s.AssignmentMapper.FindOne(ctx, req.AssignmentID)
	if err != nil {
		return nil, consts.ErrSubmitWork
	}
	b, err := s.BookletMapper.FindOne(ctx, a.BookletID)
	if err != nil {
		return nil, consts.ErrSubmitWork
	}
	questions := make(map[string]*booklet.Question, len(b.Questions))
	for _, q := range b.Questions {
		questions[q.ID] = q
	}

	sub := &submission.Submission{
		ID:           uuid.New().String(),
		AssignmentID: req.AssignmentID,
		StudentID:    meta.GetUserId(),
		StudentName:  meta.Name,
		Answers:      []*submission.Answer{},
		Status:       consts.SubmissionSubmitted,
		StartedAt:    req.StartedAt,
		SubmittedAt:  time.Now().UnixMilli(),
	}

	httpClient := util.GetHttpClient()
	for _, in := range req.Answers {
		q, ok := questions[in.QuestionID]
		if !ok {
			log.CtxInfo(ctx, "answer for unknown question, questionId=%s", in.QuestionID)
			continue
		}
		answer := &submission.Answer{
			QuestionID:    in.QuestionID,
			TextResponse:  in.TextResponse,
			ImageResponse: in.ImageResponse,
		}

		solution := ""
		if q.GeneratedSolution != nil {
			solution = *q.GeneratedSolution
		}
		result, err := httpClient.Mark(ctx, q.ExtractedQuestion, solution, in.TextResponse, q.MaxMarks, in.ImageResponse)
		if err != nil {
			log.CtxError(ctx, "mark answer fail, questionId=%s err=%v", in.QuestionID, err)
			answer.AiMark = 0
			answer.AiFeedback = markFallbackFeedback
		} else {
			answer.AiMark = result.Score
			answer.AiFeedback = result.Feedback
		}

		sub.Answers = append(sub.Answers, answer)
		sub.MaxScore += q.MaxMarks
	}
	sub.RecomputeTotal()
	sub.Status = consts.SubmissionMarked

	if err = s.SubmissionMapper.Upsert(ctx, sub); err != nil {
		log.CtxError(ctx, "save submission fail, err=%v", err)
		return nil, consts.ErrSubmitWork
	}
	s.SyncService.Enqueue(consts.CollSubmissions)

	return &show.SubmitWorkResp{Submission: submissionInfo(sub)}, nil
}

func (s *SubmissionService) ListSubmissions(ctx context.Context, req *show.ListSubmissionsReq) (*show.ListSubmissionsResp, error) {
	var ss []*submission.Submission
	var err error
	switch {
	case req.AssignmentID != nil && *req.AssignmentID != "":
		ss, err = s.SubmissionMapper.FindByAssignment(ctx, *req.AssignmentID)
	case req.StudentID != nil && *req.StudentID != "":
		ss, err = s.SubmissionMapper.FindByStudent(ctx, *req.StudentID)
	default:
		ss, err = s.SubmissionMapper.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	infos := make([]*show.SubmissionInfo, 0, len(ss))
	for _, sub := range ss {
		infos = append(infos, submissionInfo(sub))
	}
	return &show.ListSubmissionsResp{Submissions: infos, Total: int64(len(infos))}, nil
}

// OverrideMark 教师改分 覆盖AI评分并重算总分
func (s *SubmissionService) OverrideMark(ctx context.Context, req *show.OverrideMarkReq) (*show.Response, error) {
	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionID)
	if err != nil {
		return nil, consts.ErrOverrideMark
	}

	found := false
	for _, a := range sub.Answers {
		if a.QuestionID == req.QuestionID {
			mark := req.Mark
			a.TeacherMark = &mark
			found = true
			break
		}
	}
	if !found {
		return nil, consts.ErrOverrideMark
	}
	sub.RecomputeTotal()

	if err = s.SubmissionMapper.Upsert(ctx, sub); err != nil {
		return nil, consts.ErrOverrideMark
	}
	s.SyncService.Enqueue(consts.CollSubmissions)
	return &show.Response{Msg: "ok"}, nil
}

// AdvanceStatus 推进提交状态 回退直接拒绝
func (s *SubmissionService) AdvanceStatus(ctx context.Context, req *show.AdvanceStatusReq) (*show.Response, error) {
	sub, err := s.SubmissionMapper.FindOne(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if !submission.CanAdvance(sub.Status, req.Status) {
		return nil, consts.ErrStatusRollback
	}
	sub.Status = req.Status

	if err = s.SubmissionMapper.Upsert(ctx, sub); err != nil {
		return nil, consts.ErrUpdate
	}
	s.SyncService.Enqueue(consts.CollSubmissions)
	return &show.Response{Msg: "ok"}, nil
}

func submissionInfo(sub *submission.Submission) *show.SubmissionInfo {
	info := new(show.SubmissionInfo)
	_ = copier.Copy(info, sub)
	return info
}
