package services

// Services defined in this package:
// - AuthService: login, logout and admin user creation
// - CourseService: the course catalog
// - MentorService: mentors and their course buckets
// - StudentCourseMentorService: student/course/mentor mapping records
