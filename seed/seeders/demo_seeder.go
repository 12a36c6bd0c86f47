package seeders

import (
	"log"
	"time"

	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
	"gorm.io/gorm"
)

// DemoSeeder seeds a demo teacher with a small published course catalog
type DemoSeeder struct {
	db *gorm.DB
}

func NewDemoSeeder(db *gorm.DB) *DemoSeeder {
	return &DemoSeeder{db: db}
}

const demoTeacherID = "seed_demo_teacher"

func (s *DemoSeeder) SeedDemoContent() error {
	if err := s.seedDemoTeacher(); err != nil {
		return err
	}

	courses := s.getDemoCourses()
	for _, entry := range courses {
		var existing model.Course
		if err := s.db.Where("id = ?", entry.course.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&entry.course).Error; err != nil {
					log.Printf("Error creating course %s: %v", entry.course.Title, err)
					return err
				}
				for _, lesson := range entry.lessons {
					if err := s.db.Create(&lesson).Error; err != nil {
						log.Printf("Error creating lesson %s: %v", lesson.Title, err)
						return err
					}
				}
				log.Printf("Created course: %s (%d lessons)", entry.course.Title, len(entry.lessons))
			} else {
				return err
			}
		} else {
			log.Printf("Course %s already exists, skipping", entry.course.Title)
		}
	}

	log.Println("Demo content seeding completed successfully")
	return nil
}

func (s *DemoSeeder) seedDemoTeacher() error {
	now := time.Now()

	teacher := model.User{
		ID:        demoTeacherID,
		Email:     "demo.teacher@edugram.app",
		Name:      "Edugram Academy",
		UserType:  shared.RoleTeacher,
		AvatarID:  "👨‍🏫",
		Language:  "english",
		Theme:     "light",
		GoogleSub: "seed_demo_teacher",
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existing model.User
	if err := s.db.Where("id = ?", teacher.ID).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&teacher).Error; err != nil {
				return err
			}
			log.Printf("Created demo teacher: %s", teacher.Name)
			return nil
		}
		return err
	}

	log.Println("Demo teacher already exists, skipping")
	return nil
}

type demoCourse struct {
	course  model.Course
	lessons []model.Lesson
}

func (s *DemoSeeder) getDemoCourses() []demoCourse {
	now := time.Now()

	return []demoCourse{
		{
			course: model.Course{
				ID:          "seed_course_numbers",
				Title:       "Counting Adventures",
				Description: "Learn numbers from 1 to 100 through stories and games",
				TeacherID:   demoTeacherID,
				Language:    "english",
				IsPublished: true,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			lessons: []model.Lesson{
				{
					ID:           "seed_lesson_numbers_1",
					CourseID:     "seed_course_numbers",
					Title:        "Meet the Numbers",
					Content:      "A story introducing numbers one to ten",
					LessonType:   shared.LessonTypeStory,
					OrderIndex:   0,
					PointsReward: 10,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
				{
					ID:           "seed_lesson_numbers_2",
					CourseID:     "seed_course_numbers",
					Title:        "Count the Animals",
					Content:      "A counting game with farm animals",
					LessonType:   shared.LessonTypeGame,
					OrderIndex:   1,
					PointsReward: 15,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
				{
					ID:           "seed_lesson_numbers_3",
					CourseID:     "seed_course_numbers",
					Title:        "Numbers Quiz",
					Content:      "Quick quiz on numbers one to twenty",
					LessonType:   shared.LessonTypeQuiz,
					OrderIndex:   2,
					PointsReward: 20,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
			},
		},
		{
			course: model.Course{
				ID:          "seed_course_alphabets",
				Title:       "Alphabet Safari",
				Description: "Explore letters and sounds with jungle friends",
				TeacherID:   demoTeacherID,
				Language:    "hindi",
				IsPublished: true,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			lessons: []model.Lesson{
				{
					ID:           "seed_lesson_alphabets_1",
					CourseID:     "seed_course_alphabets",
					Title:        "The Letter Jungle",
					Content:      "A story walk through the first letters",
					LessonType:   shared.LessonTypeStory,
					OrderIndex:   0,
					PointsReward: 10,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
				{
					ID:           "seed_lesson_alphabets_2",
					CourseID:     "seed_course_alphabets",
					Title:        "Letter Sounds",
					Content:      "A video lesson on letter pronunciation",
					LessonType:   shared.LessonTypeVideo,
					OrderIndex:   1,
					PointsReward: 15,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
			},
		},
		{
			course: model.Course{
				ID:          "seed_course_draft",
				Title:       "Shapes and Colors (Draft)",
				Description: "Work in progress course on shapes and colors",
				TeacherID:   demoTeacherID,
				Language:    "english",
				IsPublished: false,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			lessons: []model.Lesson{
				{
					ID:           "seed_lesson_draft_1",
					CourseID:     "seed_course_draft",
					Title:        "Circle Time",
					Content:      "Draft lesson on circles",
					LessonType:   shared.LessonTypeStory,
					OrderIndex:   0,
					PointsReward: 10,
					CreatedAt:    now,
					UpdatedAt:    now,
				},
			},
		},
	}
}
