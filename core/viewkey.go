package core

import "strconv"

// ViewKey identifies a renderable data view by logical path.
type ViewKey string

func (k ViewKey) String() string { return string(k) }

const (
	ViewHome                 ViewKey = "home"
	ViewCoursesList          ViewKey = "courses-list"
	ViewBestSellingCourses   ViewKey = "best-selling-courses"
	ViewCategoriesList       ViewKey = "categories-list"
	ViewCareersList          ViewKey = "careers-list"
	ViewFeaturesList         ViewKey = "features-list"
	ViewSlidesList           ViewKey = "slides-list"
	ViewContactSettings      ViewKey = "contact-settings"
	ViewStats                ViewKey = "dashboard-stats"
	ViewAdminCareersList     ViewKey = "admin-careers-list"
	ViewAdminCategoriesList  ViewKey = "admin-categories-list"
	ViewAdminFeaturesList    ViewKey = "admin-features-list"
	ViewAdminSlidersList     ViewKey = "admin-sliders-list"
	ViewAdminContactSettings ViewKey = "admin-contact-settings"
	ViewTeacherCourses       ViewKey = "teacher-courses"
	ViewTeacherComments      ViewKey = "teacher-comments"
	ViewTeacherExams         ViewKey = "teacher-exams"
)

func viewKey(prefix string, id int) ViewKey {
	return ViewKey(prefix + ":" + strconv.Itoa(id))
}

func ViewCourseDetail(courseID int) ViewKey   { return viewKey("course-detail", courseID) }
func ViewCareerDetail(careerID int) ViewKey   { return viewKey("career-detail", careerID) }
func ViewCategoryCourses(pathID int) ViewKey  { return viewKey("category-courses", pathID) }
func ViewLessonComments(lessonID int) ViewKey { return viewKey("lesson-comments", lessonID) }
func ViewCourseComments(courseID int) ViewKey { return viewKey("course-comments", courseID) }
func ViewLessonQuestions(lessonID int) ViewKey {
	return viewKey("lesson-questions", lessonID)
}
func ViewTeacherLessons(courseID int) ViewKey { return viewKey("teacher-lessons", courseID) }

// per-user views

func ViewProfile(userID int) ViewKey   { return viewKey("profile", userID) }
func ViewMyCourses(userID int) ViewKey { return viewKey("my-courses", userID) }
func ViewWishlist(userID int) ViewKey  { return viewKey("wishlist", userID) }

// ViewAdminUsers is the admin listing of users having role.
func ViewAdminUsers(role string) ViewKey { return ViewKey("admin-users:" + role) }
