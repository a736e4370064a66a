package show

type AnswerInfo struct {
	QuestionID    string  `json:"questionId" form:"questionId" query:"questionId"`
	TextResponse  string  `json:"textResponse" form:"textResponse" query:"textResponse"`
	ImageResponse *string `json:"imageResponse,omitempty" form:"imageResponse" query:"imageResponse"`
	AiMark        int64   `json:"aiMark" form:"aiMark" query:"aiMark"`
	AiFeedback    string  `json:"aiFeedback" form:"aiFeedback" query:"aiFeedback"`
	TeacherMark   *int64  `json:"teacherMark,omitempty" form:"teacherMark" query:"teacherMark"`
}

type SubmissionInfo struct {
	ID           string        `json:"id" form:"id" query:"id"`
	AssignmentID string        `json:"assignmentId" form:"assignmentId" query:"assignmentId"`
	StudentID    string        `json:"studentId" form:"studentId" query:"studentId"`
	StudentName  string        `json:"studentName" form:"studentName" query:"studentName"`
	Answers      []*AnswerInfo `json:"answers" form:"answers" query:"answers"`
	TotalScore   int64         `json:"totalScore" form:"totalScore" query:"totalScore"`
	MaxScore     int64         `json:"maxScore" form:"maxScore" query:"maxScore"`
	Status       string        `json:"status" form:"status" query:"status"`
	StartedAt    int64         `json:"startedAt,omitempty" form:"startedAt" query:"startedAt"`
	SubmittedAt  int64         `json:"submittedAt" form:"submittedAt" query:"submittedAt"`
}

type SubmitWorkReq struct {
	AssignmentID string        `json:"assignmentId" form:"assignmentId" query:"assignmentId" vd:"len($)>0"`
	StartedAt    int64         `json:"startedAt,omitempty" form:"startedAt" query:"startedAt"`
	Answers      []*AnswerInfo `json:"answers" form:"answers" query:"answers"`
}

type SubmitWorkResp struct {
	Submission *SubmissionInfo `json:"submission"`
}

type ListSubmissionsReq struct {
	AssignmentID *string `json:"assignmentId,omitempty" form:"assignmentId" query:"assignmentId"`
	StudentID    *string `json:"studentId,omitempty" form:"studentId" query:"studentId"`
}

type ListSubmissionsResp struct {
	Submissions []*SubmissionInfo `json:"submissions"`
	Total       int64             `json:"total"`
}

type OverrideMarkReq struct {
	SubmissionID string `json:"submissionId" form:"submissionId" query:"submissionId" vd:"len($)>0"`
	QuestionID   string `json:"questionId" form:"questionId" query:"questionId" vd:"len($)>0"`
	Mark         int64  `json:"mark" form:"mark" query:"mark"`
}

type AdvanceStatusReq struct {
	SubmissionID string `json:"submissionId" form:"submissionId" query:"submissionId" vd:"len($)>0"`
	Status       string `json:"status" form:"status" query:"status" vd:"len($)>0"`
}
