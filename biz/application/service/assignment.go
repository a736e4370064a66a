package service

import (
	"context"
	"time"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IAssignmentService interface {
	CreateAssignment(ctx context.Context, req *show.CreateAssignmentReq) (*show.CreateAssignmentResp, error)
	UpdateAssignment(ctx context.Context, req *show.UpdateAssignmentReq) (*show.GetAssignmentResp, error)
	GetAssignment(ctx context.Context, req *show.GetAssignmentReq) (*show.GetAssignmentResp, error)
	ListAssignments(ctx context.Context, req *show.ListAssignmentsReq) (*show.ListAssignmentsResp, error)
	DeleteAssignment(ctx context.Context, req *show.DeleteAssignmentReq) (*show.Response, error)
}

type AssignmentService struct {
	AssignmentMapper assignment.Mapper
	BookletMapper    booklet.Mapper
	SyncService      *SyncService
}

var AssignmentServiceSet = wire.NewSet(
	wire.Struct(new(AssignmentService), "*"),
	wire.Bind(new(IAssignmentService), new(*AssignmentService)),
)

// CreateAssignment 基于册子话题题号区间布置作业
// 只保存区间规格 题目增删后区间内已有编号不变
func (s *AssignmentService) CreateAssignment(ctx context.Context, req *show.CreateAssignmentReq) (*show.CreateAssignmentResp, error) {
	b, err := s.BookletMapper.FindOne(ctx, req.BookletID)
	if err != nil {
		return nil, consts.ErrCreateAssignment
	}

	a := new(assignment.Assignment)
	if err = copier.Copy(a, req); err != nil {
		return nil, consts.ErrCreateAssignment
	}
	a.ID = uuid.New().String()
	a.BookletTitle = b.Title
	if a.Grade == "" {
		a.Grade = b.Grade
	}
	a.CreatedAt = time.Now().UnixMilli()

	if err = s.AssignmentMapper.Upsert(ctx, a); err != nil {
		log.CtxError(ctx, "create assignment fail, err=%v", err)
		return nil, consts.ErrCreateAssignment
	}
	s.SyncService.Enqueue(consts.CollAssignments)

	return &show.CreateAssignmentResp{Assignment: assignmentInfo(a)}, nil
}

func (s *AssignmentService) UpdateAssignment(ctx context.Context, req *show.UpdateAssignmentReq) (*show.GetAssignmentResp, error) {
	if req.Assignment == nil || req.Assignment.ID == "" {
		return nil, consts.ErrInvalidParams
	}
	a := new(assignment.Assignment)
	if err := copier.Copy(a, req.Assignment); err != nil {
		return nil, consts.ErrUpdate
	}
	if err := s.AssignmentMapper.Upsert(ctx, a); err != nil {
		return nil, consts.ErrUpdate
	}
	s.SyncService.Enqueue(consts.CollAssignments)
	return &show.GetAssignmentResp{Assignment: assignmentInfo(a)}, nil
}

func (s *AssignmentService) GetAssignment(ctx context.Context, req *show.GetAssignmentReq) (*show.GetAssignmentResp, error) {
	a, err := s.AssignmentMapper.FindOne(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	return &show.GetAssignmentResp{Assignment: assignmentInfo(a)}, nil
}

// ListAssignments 学生端按年级过滤 教师端不传年级看全部
func (s *AssignmentService) ListAssignments(ctx context.Context, req *show.ListAssignmentsReq) (*show.ListAssignmentsResp, error) {
	var as []*assignment.Assignment
	var err error
	if req.Grade != nil && *req.Grade != "" {
		as, err = s.AssignmentMapper.FindByGrade(ctx, *req.Grade)
	} else {
		as, err = s.AssignmentMapper.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	infos := make([]*show.AssignmentInfo, 0, len(as))
	for _, a := range as {
		infos = append(infos, assignmentInfo(a))
	}
	return &show.ListAssignmentsResp{Assignments: infos, Total: int64(len(infos))}, nil
}

func (s *AssignmentService) DeleteAssignment(ctx context.Context, req *show.DeleteAssignmentReq) (*show.Response, error) {
	if err := s.AssignmentMapper.Delete(ctx, req.AssignmentID); err != nil {
		return nil, consts.ErrUpdate
	}
	s.SyncService.Enqueue(consts.CollAssignments)
	return &show.Response{Msg: "ok"}, nil
}

func assignmentInfo(a *assignment.Assignment) *show.AssignmentInfo {
	info := new(show.AssignmentInfo)
	_ = copier.Copy(info, a)
	return info
}
