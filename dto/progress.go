package dto

type RecordProgressRequest struct {
	LessonID    string `json:"lesson_id" validate:"required" example:"0190f1c2-5b7a-7c1e-b7aa-2f3d4e5f6a7b"`
	CourseID    string `json:"course_id" validate:"required" example:"0190f1c2-9a3b-7d2f-8c1d-3e4f5a6b7c8d"`
	IsCompleted bool   `json:"is_completed" example:"true"`
	StarsEarned int    `json:"stars_earned" validate:"gte=0" example:"3"`
	CoinsEarned int    `json:"coins_earned" validate:"gte=0" example:"10"`
}

func (r RecordProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}
