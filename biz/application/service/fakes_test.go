package service

import (
	"context"
	"errors"
	"sort"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/remote"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/repository/user"
)

// 内存版mapper 按接口替换真实存储

type fakeBookletMapper struct {
	data map[string]*booklet.Booklet
}

func newFakeBookletMapper() *fakeBookletMapper {
	return &fakeBookletMapper{data: make(map[string]*booklet.Booklet)}
}

func (m *fakeBookletMapper) FindOne(_ context.Context, id string) (*booklet.Booklet, error) {
	b, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return b, nil
}

func (m *fakeBookletMapper) FindAll(_ context.Context) ([]*booklet.Booklet, error) {
	out := make([]*booklet.Booklet, 0, len(m.data))
	for _, b := range m.data {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *fakeBookletMapper) Upsert(_ context.Context, b *booklet.Booklet) error {
	m.data[b.ID] = b
	return nil
}

func (m *fakeBookletMapper) BulkUpsert(ctx context.Context, bs []*booklet.Booklet) error {
	for _, b := range bs {
		if err := m.Upsert(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (m *fakeBookletMapper) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *fakeBookletMapper) DeleteStale(_ context.Context, id string, stamp int64) (int64, error) {
	b, ok := m.data[id]
	if !ok || b.UpdatedAt != stamp {
		return 0, nil
	}
	delete(m.data, id)
	return 1, nil
}

func (m *fakeBookletMapper) Clear(_ context.Context) error {
	m.data = make(map[string]*booklet.Booklet)
	return nil
}

func (m *fakeBookletMapper) Count(_ context.Context) (int64, error) {
	return int64(len(m.data)), nil
}

type fakeUserMapper struct {
	data map[string]*user.User
}

func newFakeUserMapper() *fakeUserMapper {
	return &fakeUserMapper{data: make(map[string]*user.User)}
}

func (m *fakeUserMapper) FindOne(_ context.Context, id string) (*user.User, error) {
	u, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return u, nil
}

func (m *fakeUserMapper) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.data {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m *fakeUserMapper) FindAll(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.data))
	for _, u := range m.data {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *fakeUserMapper) Upsert(_ context.Context, u *user.User) error {
	m.data[u.ID] = u
	return nil
}

func (m *fakeUserMapper) BulkUpsert(ctx context.Context, us []*user.User) error {
	for _, u := range us {
		if err := m.Upsert(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (m *fakeUserMapper) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *fakeUserMapper) Clear(_ context.Context) error {
	m.data = make(map[string]*user.User)
	return nil
}

func (m *fakeUserMapper) Count(_ context.Context) (int64, error) {
	return int64(len(m.data)), nil
}

type fakeAssignmentMapper struct {
	data map[string]*assignment.Assignment
}

func newFakeAssignmentMapper() *fakeAssignmentMapper {
	return &fakeAssignmentMapper{data: make(map[string]*assignment.Assignment)}
}

func (m *fakeAssignmentMapper) FindOne(_ context.Context, id string) (*assignment.Assignment, error) {
	a, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return a, nil
}

func (m *fakeAssignmentMapper) FindAll(_ context.Context) ([]*assignment.Assignment, error) {
	out := make([]*assignment.Assignment, 0, len(m.data))
	for _, a := range m.data {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *fakeAssignmentMapper) FindByGrade(ctx context.Context, grade string) ([]*assignment.Assignment, error) {
	all, _ := m.FindAll(ctx)
	out := make([]*assignment.Assignment, 0, len(all))
	for _, a := range all {
		if a.Grade == grade {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *fakeAssignmentMapper) Upsert(_ context.Context, a *assignment.Assignment) error {
	m.data[a.ID] = a
	return nil
}

func (m *fakeAssignmentMapper) BulkUpsert(ctx context.Context, as []*assignment.Assignment) error {
	for _, a := range as {
		if err := m.Upsert(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (m *fakeAssignmentMapper) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *fakeAssignmentMapper) Clear(_ context.Context) error {
	m.data = make(map[string]*assignment.Assignment)
	return nil
}

type fakeSubmissionMapper struct {
	data map[string]*submission.Submission
}

func newFakeSubmissionMapper() *fakeSubmissionMapper {
	return &fakeSubmissionMapper{data: make(map[string]*submission.Submission)}
}

func (m *fakeSubmissionMapper) FindOne(_ context.Context, id string) (*submission.Submission, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	return s, nil
}

func (m *fakeSubmissionMapper) FindAll(_ context.Context) ([]*submission.Submission, error) {
	out := make([]*submission.Submission, 0, len(m.data))
	for _, s := range m.data {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *fakeSubmissionMapper) FindByAssignment(ctx context.Context, assignmentID string) ([]*submission.Submission, error) {
	all, _ := m.FindAll(ctx)
	out := make([]*submission.Submission, 0, len(all))
	for _, s := range all {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *fakeSubmissionMapper) FindByStudent(ctx context.Context, studentID string) ([]*submission.Submission, error) {
	all, _ := m.FindAll(ctx)
	out := make([]*submission.Submission, 0, len(all))
	for _, s := range all {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *fakeSubmissionMapper) Upsert(_ context.Context, s *submission.Submission) error {
	m.data[s.ID] = s
	return nil
}

func (m *fakeSubmissionMapper) BulkUpsert(ctx context.Context, ss []*submission.Submission) error {
	for _, s := range ss {
		if err := m.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *fakeSubmissionMapper) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *fakeSubmissionMapper) Clear(_ context.Context) error {
	m.data = make(map[string]*submission.Submission)
	return nil
}

// racingBookletMapper 模拟FindAll快照之后某条记录被并发改写
type racingBookletMapper struct {
	*fakeBookletMapper
	bumpID string
	bumpTo int64
}

func (m *racingBookletMapper) FindAll(ctx context.Context) ([]*booklet.Booklet, error) {
	out, err := m.fakeBookletMapper.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]*booklet.Booklet, len(out))
	for i, b := range out {
		cp := *b
		snapshot[i] = &cp
	}
	if b, ok := m.data[m.bumpID]; ok {
		b.UpdatedAt = m.bumpTo
	}
	return snapshot, nil
}

// fakeRemoteMapper 内存版远端 按页切片返回
type fakeRemoteMapper struct {
	booklets    []*remote.BookletRow
	users       []*remote.UserRow
	assignments []*remote.AssignmentRow
	submissions []*remote.SubmissionRow

	pushedBooklets    [][]*remote.BookletRow
	pushedUsers       [][]*remote.UserRow
	pushedAssignments [][]*remote.AssignmentRow
	pushedSubmissions [][]*remote.SubmissionRow

	pullUsersErr   error
	upsertUsersErr error
	failUpserts    int // 前N次推送失败 用于重试路径
}

func pageOf[T any](items []T, page, pageSize int64) []T {
	start := page * pageSize
	if start >= int64(len(items)) {
		return nil
	}
	end := start + pageSize
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}

func (m *fakeRemoteMapper) PullBooklets(_ context.Context, page, pageSize int64) ([]*remote.BookletRow, error) {
	return pageOf(m.booklets, page, pageSize), nil
}

func (m *fakeRemoteMapper) PullUsers(_ context.Context, page, pageSize int64) ([]*remote.UserRow, error) {
	if m.pullUsersErr != nil {
		return nil, m.pullUsersErr
	}
	return pageOf(m.users, page, pageSize), nil
}

func (m *fakeRemoteMapper) PullAssignments(_ context.Context, page, pageSize int64) ([]*remote.AssignmentRow, error) {
	return pageOf(m.assignments, page, pageSize), nil
}

func (m *fakeRemoteMapper) PullSubmissions(_ context.Context, page, pageSize int64) ([]*remote.SubmissionRow, error) {
	return pageOf(m.submissions, page, pageSize), nil
}

func (m *fakeRemoteMapper) UpsertBooklets(_ context.Context, rows []*remote.BookletRow) error {
	if m.failUpserts > 0 {
		m.failUpserts--
		return errors.New("remote unavailable")
	}
	m.pushedBooklets = append(m.pushedBooklets, rows)
	return nil
}

func (m *fakeRemoteMapper) UpsertUsers(_ context.Context, rows []*remote.UserRow) error {
	if m.upsertUsersErr != nil {
		return m.upsertUsersErr
	}
	m.pushedUsers = append(m.pushedUsers, rows)
	return nil
}

func (m *fakeRemoteMapper) UpsertAssignments(_ context.Context, rows []*remote.AssignmentRow) error {
	m.pushedAssignments = append(m.pushedAssignments, rows)
	return nil
}

func (m *fakeRemoteMapper) UpsertSubmissions(_ context.Context, rows []*remote.SubmissionRow) error {
	m.pushedSubmissions = append(m.pushedSubmissions, rows)
	return nil
}

func (m *fakeRemoteMapper) Close() error { return nil }

// deadRemoteMapper 所有远端操作都失败
type deadRemoteMapper struct {
	err error
}

func (m *deadRemoteMapper) PullBooklets(context.Context, int64, int64) ([]*remote.BookletRow, error) {
	return nil, m.err
}

func (m *deadRemoteMapper) PullUsers(context.Context, int64, int64) ([]*remote.UserRow, error) {
	return nil, m.err
}

func (m *deadRemoteMapper) PullAssignments(context.Context, int64, int64) ([]*remote.AssignmentRow, error) {
	return nil, m.err
}

func (m *deadRemoteMapper) PullSubmissions(context.Context, int64, int64) ([]*remote.SubmissionRow, error) {
	return nil, m.err
}

func (m *deadRemoteMapper) UpsertBooklets(context.Context, []*remote.BookletRow) error {
	return m.err
}

func (m *deadRemoteMapper) UpsertUsers(context.Context, []*remote.UserRow) error {
	return m.err
}

func (m *deadRemoteMapper) UpsertAssignments(context.Context, []*remote.AssignmentRow) error {
	return m.err
}

func (m *deadRemoteMapper) UpsertSubmissions(context.Context, []*remote.SubmissionRow) error {
	return m.err
}

func (m *deadRemoteMapper) Close() error { return nil }

func bookletFixture(id string) *booklet.Booklet {
	return &booklet.Booklet{ID: id, Grade: "G-" + id, Subject: "Sci", Title: "T-" + id, UpdatedAt: 1}
}

func userFixture(id string) *user.User {
	return &user.User{ID: id, Name: id, Email: id + "@example.com", CreatedAt: 1}
}

// fakeExportCache 内存版导出快照缓存
type fakeExportCache struct {
	snapshot *show.ExportDataResp
	deletes  int
}

func (c *fakeExportCache) Get(_ context.Context) (*show.ExportDataResp, error) {
	if c.snapshot == nil {
		return nil, errors.New("cache miss")
	}
	return c.snapshot, nil
}

func (c *fakeExportCache) Set(_ context.Context, data *show.ExportDataResp) error {
	c.snapshot = data
	return nil
}

func (c *fakeExportCache) Delete(_ context.Context) error {
	c.snapshot = nil
	c.deletes++
	return nil
}
