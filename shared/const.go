package shared

const (
	UserID          = "user_id"
	CurrentUser     = "current_user"
	IdentityProfile = "identity_profile"

	SessionCookieName = "edugram_session_token"

	RoleChild   = "child"
	RoleTeacher = "teacher"

	LessonTypeStory = "story"
	LessonTypeGame  = "game"
	LessonTypeQuiz  = "quiz"
	LessonTypeVideo = "video"
)
