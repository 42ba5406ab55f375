package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DomainEventsTotal counts catalog, bucket, mapping and login outcomes
	DomainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_domain_events_total",
			Help: "Total number of LMS domain events",
		},
		[]string{"event"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lms_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)

// Domain event labels
const (
	EventCourseCreated          = "course_created"
	EventCourseUpdated          = "course_updated"
	EventCourseDeleted          = "course_deleted"
	EventMentorCoursesAssigned  = "mentor_courses_assigned"
	EventMentorCourseRemoved    = "mentor_course_removed"
	EventMappingCreated         = "mapping_created"
	EventMappingUpdated         = "mapping_updated"
	EventMappingBucketViolation = "mapping_bucket_violation"
	EventLoginSucceeded         = "login_succeeded"
	EventLoginFailed            = "login_failed"
)

// Record increments the counter for event
func Record(event string) {
	DomainEventsTotal.WithLabelValues(event).Inc()
}
