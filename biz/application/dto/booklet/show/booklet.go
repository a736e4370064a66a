package show

type QuestionInfo struct {
	ID                string   `json:"id" form:"id" query:"id"`
	Topic             string   `json:"topic" form:"topic" query:"topic"`
	Term              string   `json:"term" form:"term" query:"term"`
	Number            int64    `json:"number" form:"number" query:"number"`
	MaxMarks          int64    `json:"maxMarks" form:"maxMarks" query:"maxMarks"`
	ImageUrls         []string `json:"imageUrls" form:"imageUrls" query:"imageUrls"`
	ExtractedQuestion string   `json:"extractedQuestion" form:"extractedQuestion" query:"extractedQuestion"`
	GeneratedSolution *string  `json:"generatedSolution,omitempty" form:"generatedSolution" query:"generatedSolution"`
	IsProcessing      bool     `json:"isProcessing" form:"isProcessing" query:"isProcessing"`
	CreatedAt         int64    `json:"createdAt" form:"createdAt" query:"createdAt"`
}

type BookletInfo struct {
	ID          string          `json:"id" form:"id" query:"id"`
	Title       string          `json:"title" form:"title" query:"title"`
	Subject     string          `json:"subject" form:"subject" query:"subject"`
	Grade       string          `json:"grade" form:"grade" query:"grade"`
	Topic       string          `json:"topic" form:"topic" query:"topic"`
	Type        string          `json:"type" form:"type" query:"type"`
	Compiler    string          `json:"compiler" form:"compiler" query:"compiler"`
	IsPublished bool            `json:"isPublished" form:"isPublished" query:"isPublished"`
	CreatedAt   int64           `json:"createdAt" form:"createdAt" query:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt" form:"updatedAt" query:"updatedAt"`
	Questions   []*QuestionInfo `json:"questions" form:"questions" query:"questions"`
}

type CreateBookletReq struct {
	Subject string `json:"subject" form:"subject" query:"subject" vd:"len($)>0"`
	Grade   string `json:"grade" form:"grade" query:"grade" vd:"len($)>0"`
	Topic   string `json:"topic" form:"topic" query:"topic"`
	Type    string `json:"type" form:"type" query:"type"`
}

type CreateBookletResp struct {
	Booklet *BookletInfo `json:"booklet"`
}

type GetBookletReq struct {
	BookletID string `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
}

type GetBookletResp struct {
	Booklet *BookletInfo `json:"booklet"`
}

type ListBookletsReq struct {
}

type ListBookletsResp struct {
	Booklets []*BookletInfo `json:"booklets"`
	Total    int64          `json:"total"`
}

type UpdateBookletReq struct {
	Booklet *BookletInfo `json:"booklet"`
}

type UpdateBookletSubjectReq struct {
	BookletID string `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
	Subject   string `json:"subject" form:"subject" query:"subject" vd:"len($)>0"`
}

type AddQuestionReq struct {
	BookletID         string   `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
	Topic             string   `json:"topic" form:"topic" query:"topic"`
	Term              string   `json:"term" form:"term" query:"term"`
	MaxMarks          int64    `json:"maxMarks" form:"maxMarks" query:"maxMarks"`
	ImageUrls         []string `json:"imageUrls" form:"imageUrls" query:"imageUrls"`
	ExtractedQuestion string   `json:"extractedQuestion" form:"extractedQuestion" query:"extractedQuestion"`
}

type UpdateQuestionReq struct {
	BookletID         string  `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
	QuestionID        string  `json:"questionId" form:"questionId" query:"questionId" vd:"len($)>0"`
	Topic             *string `json:"topic,omitempty" form:"topic" query:"topic"`
	Term              *string `json:"term,omitempty" form:"term" query:"term"`
	MaxMarks          *int64  `json:"maxMarks,omitempty" form:"maxMarks" query:"maxMarks"`
	ExtractedQuestion *string `json:"extractedQuestion,omitempty" form:"extractedQuestion" query:"extractedQuestion"`
	GeneratedSolution *string `json:"generatedSolution,omitempty" form:"generatedSolution" query:"generatedSolution"`
}

type RemoveQuestionReq struct {
	BookletID  string `json:"bookletId" form:"bookletId" query:"bookletId" vd:"len($)>0"`
	QuestionID string `json:"questionId" form:"questionId" query:"questionId" vd:"len($)>0"`
}
