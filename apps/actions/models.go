package actions

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

// Amount is a money or numeric value the API sends either as a number or as a string ("120.00", "$120").
type Amount float64

func (am *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*am = 0
		return nil
	}
	if data[0] != '"' {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*am = Amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f = 0
	}
	*am = Amount(f)
	return nil
}

type (
	Teacher struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email,omitempty"`
		RoleID    *int   `json:"role_id,omitempty"`
		CreatedAt string `json:"created_at,omitempty"`
		UpdatedAt string `json:"updated_at,omitempty"`
	}

	// Category is a learning path grouping courses.
	Category struct {
		ID        int    `json:"id"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at,omitempty"`
		UpdatedAt string `json:"updated_at,omitempty"`
	}

	Course struct {
		ID               int       `json:"id"`
		Title            string    `json:"title"`
		Description      string    `json:"description,omitempty"`
		Photo            *string   `json:"photo,omitempty"`
		Price            Amount    `json:"price"`
		CourseDuration   string    `json:"course_duration,omitempty"`
		NumberOfStudents int       `json:"number_of_students,omitempty"`
		Rating           float64   `json:"rating,omitempty"`
		SalesCount       int       `json:"sales_count,omitempty"`
		IsEnrolled       bool      `json:"is_enrolled,omitempty"`
		IsWishlisted     bool      `json:"is_wishlisted,omitempty"`
		Progress         float64   `json:"progress,omitempty"`
		TeacherID        int       `json:"teacher_id,omitempty"`
		PathID           int       `json:"path_id,omitempty"`
		Teacher          *Teacher  `json:"teacher,omitempty"`
		Path             *Category `json:"path,omitempty"`
		Lessons          []Lesson  `json:"lessons,omitempty"`
		CreatedAt        string    `json:"created_at,omitempty"`
		UpdatedAt        string    `json:"updated_at,omitempty"`
	}

	// TeacherCourse is a course as listed on the teacher dashboard.
	TeacherCourse struct {
		Course
		StudentsCount int `json:"students_count,omitempty"`
		LessonsCount  int `json:"lessons_count,omitempty"`
	}

	CourseWithExams struct {
		Course
		Questions []Question `json:"questions,omitempty"`
	}

	Lesson struct {
		ID        int        `json:"id"`
		CourseID  int        `json:"course_id,omitempty"`
		Title     string     `json:"title"`
		Order     int        `json:"order,omitempty"`
		VideoURL  string     `json:"video_url,omitempty"`
		Content   *string    `json:"content,omitempty"`
		Questions []Question `json:"questions,omitempty"`
		Comments  []Comment  `json:"comments,omitempty"`
		CreatedAt string     `json:"created_at,omitempty"`
		UpdatedAt string     `json:"updated_at,omitempty"`
	}

	Question struct {
		ID       int      `json:"id,omitempty"`
		LessonID int      `json:"lesson_id,omitempty"`
		Type     string   `json:"type" validate:"oneof=mcq true_false"`
		Question string   `json:"question" validate:"required"`
		Options  []string `json:"options"`
		Answer   string   `json:"answer,omitempty"` // only in generated drafts
	}

	SubmitAnswer struct {
		QuestionID int    `json:"question_id" validate:"gt=0"`
		Answer     string `json:"answer" validate:"required"`
	}

	QuizResult struct {
		Correct int     `json:"correct"`
		Total   int     `json:"total"`
		Score   float64 `json:"score"`
		Status  string  `json:"status"` // passed | failed
	}

	CommentAuthor struct {
		ID    int     `json:"id"`
		Name  string  `json:"name"`
		Photo *string `json:"photo,omitempty"`
	}

	Comment struct {
		ID           int            `json:"id"`
		UserID       int            `json:"user_id,omitempty"`
		LessonID     int            `json:"lesson_id,omitempty"`
		ParentID     *int           `json:"parent_id,omitempty"`
		Content      string         `json:"content,omitempty"`
		Body         string         `json:"body,omitempty"`
		IsTeacher    bool           `json:"is_teacher,omitempty"`
		User         *CommentAuthor `json:"user,omitempty"`
		Replies      []Comment      `json:"replies,omitempty"`
		RepliesCount int            `json:"replies_count,omitempty"`
		CreatedAt    string         `json:"created_at,omitempty"`
		UpdatedAt    string         `json:"updated_at,omitempty"`
	}

	Career struct {
		ID           int     `json:"id"`
		Title        string  `json:"title"`
		Description  string  `json:"description,omitempty"`
		Salary       string  `json:"salary,omitempty"`
		CompanyName  string  `json:"company_name,omitempty"`
		CompanyEmail string  `json:"company_email,omitempty"`
		JobType      string  `json:"job_type,omitempty"`
		WorkingHours string  `json:"working_hours,omitempty"`
		CreatedAt    *string `json:"created_at,omitempty"`
		UpdatedAt    *string `json:"updated_at,omitempty"`
	}

	Feature struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Icon        string `json:"icon,omitempty"`
		CreatedAt   string `json:"created_at,omitempty"`
		UpdatedAt   string `json:"updated_at,omitempty"`
	}

	// Slide is a home page slider ad.
	Slide struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		Image       string `json:"image,omitempty"`
		Link        string `json:"link,omitempty"`
		Active      bool   `json:"active"`
		CreatedAt   string `json:"created_at,omitempty"`
		UpdatedAt   string `json:"updated_at,omitempty"`
	}

	ContactSettings struct {
		ID             int     `json:"id"`
		Location       string  `json:"location"`
		PhonePrimary   string  `json:"phone_primary"`
		PhoneSecondary *string `json:"phone_secondary,omitempty"`
		Whatsapp       string  `json:"whatsapp,omitempty"`
		Email          string  `json:"email,omitempty"`
		MapLink        *string `json:"map_link,omitempty"`
	}

	Transaction struct {
		ID          int    `json:"id"`
		WalletID    int    `json:"wallet_id,omitempty"`
		Amount      Amount `json:"amount"`
		Type        string `json:"type,omitempty"` // deposit | withdrawal | purchase
		Status      string `json:"status,omitempty"`
		Description string `json:"description,omitempty"`
		CreatedAt   string `json:"created_at,omitempty"`
	}

	WithdrawResult struct {
		Success    bool    `json:"success"`
		Message    string  `json:"message,omitempty"`
		NewBalance *Amount `json:"new_balance,omitempty"`
	}

	// Stats are the admin dashboard counters, as sent by the API.
	Stats map[string]interface{}

	Student = user.User
)
