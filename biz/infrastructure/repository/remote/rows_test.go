package remote

import (
	"testing"

	"booklet-show/biz/infrastructure/repository/booklet"
	"booklet-show/biz/infrastructure/repository/submission"
)

func TestBookletRowRoundTrip(t *testing.T) {
	solution := "x = 2"
	b := &booklet.Booklet{
		ID:          "b1",
		Title:       "Grade 10 Mathematics - Algebra",
		Subject:     "Mathematics",
		Grade:       "Grade 10",
		Topic:       "Algebra",
		Type:        "with-solutions",
		Compiler:    "staff",
		IsPublished: true,
		CreatedAt:   1000,
		UpdatedAt:   2000,
		Questions: []*booklet.Question{
			{ID: "q1", Topic: "Algebra", Number: 1, MaxMarks: 5, ExtractedQuestion: "solve 2x=4", GeneratedSolution: &solution, CreatedAt: 1000},
		},
	}

	row, err := BookletToRow(b)
	if err != nil {
		t.Fatal(err)
	}
	if row.ID != b.ID || row.UpdatedAt != b.UpdatedAt || !row.IsPublished {
		t.Fatalf("scalar fields lost: %+v", row)
	}

	back, err := row.ToEntity()
	if err != nil {
		t.Fatal(err)
	}
	if back.Title != b.Title || len(back.Questions) != 1 {
		t.Fatalf("round trip lost data: %+v", back)
	}
	if back.Questions[0].Number != 1 || *back.Questions[0].GeneratedSolution != solution {
		t.Fatalf("question fields lost: %+v", back.Questions[0])
	}
}

func TestBookletRowNilQuestions(t *testing.T) {
	row, err := BookletToRow(&booklet.Booklet{ID: "b1"})
	if err != nil {
		t.Fatal(err)
	}
	if string(row.QuestionsJSON) != "[]" {
		t.Fatalf("nil questions should serialize as empty array, got %s", row.QuestionsJSON)
	}

	back, err := (&BookletRow{ID: "b1"}).ToEntity()
	if err != nil {
		t.Fatal(err)
	}
	if back.Questions == nil || len(back.Questions) != 0 {
		t.Fatalf("empty questions column should map to empty slice, got %v", back.Questions)
	}
}

func TestNeedsDirectPush(t *testing.T) {
	small := &BookletRow{QuestionsJSON: make([]byte, 100)}
	large := &BookletRow{QuestionsJSON: make([]byte, 2048)}
	if small.NeedsDirectPush(1024) {
		t.Fatal("small payload routed to direct path")
	}
	if !large.NeedsDirectPush(1024) {
		t.Fatal("large payload not routed to direct path")
	}
}

func TestSubmissionRowRoundTrip(t *testing.T) {
	override := int64(4)
	s := &submission.Submission{
		ID:           "s1",
		AssignmentID: "a1",
		StudentID:    "u1",
		StudentName:  "студент",
		Answers: []*submission.Answer{
			{QuestionID: "q1", TextResponse: "answer", AiMark: 3, AiFeedback: "ok", TeacherMark: &override},
		},
		TotalScore:  3,
		MaxScore:    5,
		Status:      "MARKED",
		SubmittedAt: 123,
	}
	row, err := SubmissionToRow(s)
	if err != nil {
		t.Fatal(err)
	}
	back, err := row.ToEntity()
	if err != nil {
		t.Fatal(err)
	}
	if back.Status != "MARKED" || len(back.Answers) != 1 || *back.Answers[0].TeacherMark != 4 {
		t.Fatalf("round trip lost data: %+v", back)
	}
}
