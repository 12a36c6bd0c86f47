package dto

type CreateCourseRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200" example:"Shapes 101"`
	Description  string `json:"description,omitempty" example:"Circles, squares and triangles for beginners"`
	Language     string `json:"language,omitempty" validate:"omitempty,oneof=english hindi odia telugu bangla malayalam kannada" example:"english"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

func (r CreateCourseRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateLessonRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200" example:"Counting corners"`
	Content      string `json:"content,omitempty"`
	LessonType   string `json:"lesson_type" validate:"required,oneof=story game quiz video" example:"quiz"`
	OrderIndex   int    `json:"order_index" validate:"gte=0"`
	PointsReward int    `json:"points_reward,omitempty" validate:"gte=0"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ThumbnailUploadResponse struct {
	CourseID     string `json:"course_id"`
	ThumbnailURL string `json:"thumbnail_url"`
	Size         int64  `json:"size"`
}
