package show

type AssignmentInfo struct {
	ID               string   `json:"id" form:"id" query:"id"`
	BookletID        string   `json:"bookletId" form:"bookletId" query:"bookletId"`
	BookletTitle     string   `json:"bookletTitle" form:"bookletTitle" query:"bookletTitle"`
	Topic            string   `json:"topic" form:"topic" query:"topic"`
	Topics           []string `json:"topics,omitempty" form:"topics" query:"topics"`
	Grade            string   `json:"grade" form:"grade" query:"grade"`
	StartNum         int64    `json:"startNum" form:"startNum" query:"startNum"`
	EndNum           int64    `json:"endNum" form:"endNum" query:"endNum"`
	IsPublished      bool     `json:"isPublished" form:"isPublished" query:"isPublished"`
	OpenDate         *string  `json:"openDate,omitempty" form:"openDate" query:"openDate"`
	CloseDate        *string  `json:"closeDate,omitempty" form:"closeDate" query:"closeDate"`
	DueDate          *string  `json:"dueDate,omitempty" form:"dueDate" query:"dueDate"`
	TimeLimitSeconds *int64   `json:"timeLimitSeconds,omitempty" form:"timeLimitSeconds" query:"timeLimitSeconds"`
	CreatedAt        int64    `json:"createdAt" form:"createdAt" query:"createdAt"`
}

type CreateAssignmentReq struct {
	BookletID        string   `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
	Topic            string   `json:"topic" form:"topic" query:"topic"`
	Topics           []string `json:"topics,omitempty" form:"topics" query:"topics"`
	Grade            string   `json:"grade" form:"grade" query:"grade"`
	StartNum         int64    `json:"startNum" form:"startNum" query:"startNum"`
	EndNum           int64    `json:"endNum" form:"endNum" query:"endNum"`
	IsPublished      bool     `json:"isPublished" form:"isPublished" query:"isPublished"`
	OpenDate         *string  `json:"openDate,omitempty" form:"openDate" query:"openDate"`
	CloseDate        *string  `json:"closeDate,omitempty" form:"closeDate" query:"closeDate"`
	DueDate          *string  `json:"dueDate,omitempty" form:"dueDate" query:"dueDate"`
	TimeLimitSeconds *int64   `json:"timeLimitSeconds,omitempty" form:"timeLimitSeconds" query:"timeLimitSeconds"`
}

type CreateAssignmentResp struct {
	Assignment *AssignmentInfo `json:"assignment"`
}

type UpdateAssignmentReq struct {
	Assignment *AssignmentInfo `json:"assignment"`
}

type GetAssignmentReq struct {
	AssignmentID string `json:"assignmentId" form:"assignmentId" query:"assignmentId" vd:"len($)>0"`
}

type GetAssignmentResp struct {
	Assignment *AssignmentInfo `json:"assignment"`
}

type ListAssignmentsReq struct {
	Grade *string `json:"grade,omitempty" form:"grade" query:"grade"`
}

type ListAssignmentsResp struct {
	Assignments []*AssignmentInfo `json:"assignments"`
	Total       int64             `json:"total"`
}

type DeleteAssignmentReq struct {
	AssignmentID string `json:"assignmentId" form:"assignmentId" query:"assignmentId" vd:"len($)>0"`
}
