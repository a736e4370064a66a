package submission

import "testing"

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"SUBMITTED", "MARKED", true},
		{"MARKED", "RECORDED", true},
		{"SUBMITTED", "RECORDED", true},
		{"SUBMITTED", "SUBMITTED", true},
		{"MARKED", "SUBMITTED", false},
		{"RECORDED", "MARKED", false},
		{"RECORDED", "SUBMITTED", false},
		{"SUBMITTED", "DRAFT", false},
		{"", "MARKED", false},
	}
	for _, c := range cases {
		if got := CanAdvance(c.from, c.to); got != c.want {
			t.Errorf("CanAdvance(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestEffectiveMark(t *testing.T) {
	a := &Answer{AiMark: 3}
	if a.EffectiveMark() != 3 {
		t.Errorf("EffectiveMark = %d, want ai mark", a.EffectiveMark())
	}
	override := int64(5)
	a.TeacherMark = &override
	if a.EffectiveMark() != 5 {
		t.Errorf("EffectiveMark = %d, teacher mark must win", a.EffectiveMark())
	}
	zero := int64(0)
	a.TeacherMark = &zero
	if a.EffectiveMark() != 0 {
		t.Error("explicit zero override must count")
	}
}

func TestRecomputeTotal(t *testing.T) {
	override := int64(4)
	s := &Submission{
		Answers: []*Answer{
			{AiMark: 3},
			{AiMark: 2, TeacherMark: &override},
			{AiMark: 1},
		},
	}
	s.RecomputeTotal()
	if s.TotalScore != 8 {
		t.Errorf("TotalScore = %d, want 8", s.TotalScore)
	}
}
