package submission

// Submission 学生对某次作业任务的一次作答
type Submission struct {
	ID           string    `bson:"_id" json:"id"`
	AssignmentID string    `bson:"assignment_id" json:"assignmentId"`
	StudentID    string    `bson:"student_id" json:"studentId"`
	StudentName  string    `bson:"student_name" json:"studentName"`
	Answers      []*Answer `bson:"answers" json:"answers"`
	TotalScore   int64     `bson:"total_score" json:"totalScore"`
	MaxScore     int64     `bson:"max_score" json:"maxScore"`
	Status       string    `bson:"status" json:"status"` // SUBMITTED -> MARKED -> RECORDED
	StartedAt    int64     `bson:"started_at,omitempty" json:"startedAt,omitempty"`
	SubmittedAt  int64     `bson:"submitted_at" json:"submittedAt"`
}

// Answer 单题作答 AI评分之外教师可覆盖
type Answer struct {
	QuestionID    string  `bson:"question_id" json:"questionId"`
	TextResponse  string  `bson:"text_response" json:"textResponse"`
	ImageResponse *string `bson:"image_response,omitempty" json:"imageResponse,omitempty"`
	AiMark        int64   `bson:"ai_mark" json:"aiMark"`
	AiFeedback    string  `bson:"ai_feedback" json:"aiFeedback"`
	TeacherMark   *int64  `bson:"teacher_mark,omitempty" json:"teacherMark,omitempty"`
}

// EffectiveMark 教师改分优先于AI评分
func (a *Answer) EffectiveMark() int64 {
	if a.TeacherMark != nil {
		return *a.TeacherMark
	}
	return a.AiMark
}

// RecomputeTotal 按当前有效得分重算总分
func (s *Submission) RecomputeTotal() {
	var total int64
	for _, a := range s.Answers {
		total += a.EffectiveMark()
	}
	s.TotalScore = total
}

// statusRank 状态只能单向推进
var statusRank = map[string]int{
	"SUBMITTED": 1,
	"MARKED":    2,
	"RECORDED":  3,
}

// CanAdvance 判断状态迁移是否合法
func CanAdvance(from, to string) bool {
	f, ok1 := statusRank[from]
	t, ok2 := statusRank[to]
	return ok1 && ok2 && t >= f
}
