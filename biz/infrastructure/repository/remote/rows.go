package remote

import (
	"encoding/json"
	"fmt"

	"booklet-show/biz/infrastructure/repository/assignment"
	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/submission"
	"booklet-show/biz/infrastructure/repository/user"

	"github.com/jinzhu/copier"
)

// 远端行结构 列名为snake_case 嵌套结构序列化为JSON文本列

// BookletRow 对应远端 booklets 表
type BookletRow struct {
	ID            string
	Title         string
	Grade         string
	Subject       string
	Topic         string
	Type          string
	Compiler      string
	IsPublished   bool
	CreatedAt     int64
	UpdatedAt     int64
	QuestionsJSON []byte
}

// UserRow 对应远端 users 表
type UserRow struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	Status    string
	Grade     *string
	CreatedAt int64
}

// AssignmentRow 对应远端 assignments 表
type AssignmentRow struct {
	ID               string
	BookletID        string
	BookletTitle     string
	Topic            string
	TopicsJSON       []byte
	Grade            string
	StartNum         int64
	EndNum           int64
	IsPublished      bool
	OpenDate         *string
	CloseDate        *string
	DueDate          *string
	TimeLimitSeconds *int64
	CreatedAt        int64
}

// SubmissionRow 对应远端 submissions 表
type SubmissionRow struct {
	ID           string
	AssignmentID string
	StudentID    string
	StudentName  string
	AnswersJSON  []byte
	TotalScore   int64
	MaxScore     int64
	Status       string
	StartedAt    int64
	SubmittedAt  int64
}

// NeedsDirectPush 序列化后的questions超过阈值时绕开批量通道
func (r *BookletRow) NeedsDirectPush(threshold int64) bool {
	return int64(len(r.QuestionsJSON)) > threshold
}

func BookletToRow(b *booklet.Booklet) (*BookletRow, error) {
	row := new(BookletRow)
	if err := copier.Copy(row, b); err != nil {
		return nil, fmt.Errorf("map booklet to row: %w", err)
	}
	qs := b.Questions
	if qs == nil {
		qs = []*booklet.Question{}
	}
	data, err := json.Marshal(qs)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	row.QuestionsJSON = data
	return row, nil
}

func (r *BookletRow) ToEntity() (*booklet.Booklet, error) {
	b := new(booklet.Booklet)
	if err := copier.Copy(b, r); err != nil {
		return nil, fmt.Errorf("map row to booklet: %w", err)
	}
	b.Questions = []*booklet.Question{}
	if len(r.QuestionsJSON) > 0 {
		if err := json.Unmarshal(r.QuestionsJSON, &b.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions: %w", err)
		}
	}
	return b, nil
}

func UserToRow(u *user.User) (*UserRow, error) {
	row := new(UserRow)
	if err := copier.Copy(row, u); err != nil {
		return nil, fmt.Errorf("map user to row: %w", err)
	}
	return row, nil
}

func (r *UserRow) ToEntity() (*user.User, error) {
	u := new(user.User)
	if err := copier.Copy(u, r); err != nil {
		return nil, fmt.Errorf("map row to user: %w", err)
	}
	return u, nil
}

func AssignmentToRow(a *assignment.Assignment) (*AssignmentRow, error) {
	row := new(AssignmentRow)
	if err := copier.Copy(row, a); err != nil {
		return nil, fmt.Errorf("map assignment to row: %w", err)
	}
	topics := a.Topics
	if topics == nil {
		topics = []string{}
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}
	row.TopicsJSON = data
	return row, nil
}

func (r *AssignmentRow) ToEntity() (*assignment.Assignment, error) {
	a := new(assignment.Assignment)
	if err := copier.Copy(a, r); err != nil {
		return nil, fmt.Errorf("map row to assignment: %w", err)
	}
	if len(r.TopicsJSON) > 0 {
		if err := json.Unmarshal(r.TopicsJSON, &a.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
	}
	return a, nil
}

func SubmissionToRow(s *submission.Submission) (*SubmissionRow, error) {
	row := new(SubmissionRow)
	if err := copier.Copy(row, s); err != nil {
		return nil, fmt.Errorf("map submission to row: %w", err)
	}
	answers := s.Answers
	if answers == nil {
		answers = []*submission.Answer{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	row.AnswersJSON = data
	return row, nil
}

func (r *SubmissionRow) ToEntity() (*submission.Submission, error) {
	s := new(submission.Submission)
	if err := copier.Copy(s, r); err != nil {
		return nil, fmt.Errorf("map row to submission: %w", err)
	}
	s.Answers = []*submission.Answer{}
	if len(r.AnswersJSON) > 0 {
		if err := json.Unmarshal(r.AnswersJSON, &s.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	return s, nil
}
