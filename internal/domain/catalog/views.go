package catalog

// CourseSummary is a course with its headline rating numbers.
type CourseSummary struct {
	Course *Course
	Stats  RatingStats
}

// CourseDetail is a course with teacher ids, active lessons (by id) and full stats.
type CourseDetail struct {
	Course     *Course
	TeacherIDs []uint
	Lessons    []*Lesson
	Stats      RatingStats
}
