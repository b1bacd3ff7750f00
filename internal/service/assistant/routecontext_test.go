package assistant

import (
	"strings"
	"testing"
)

func TestRouteHint(t *testing.T) {
	tests := []struct {
		name     string
		pathname string
		contains string
	}{
		{"dashboard", "/tenant-1/dashboard", "main dashboard overview"},
		{"tenant root", "/tenant-1", "main dashboard overview"},
		{"chores", "/tenant-1/chores", "Chores board"},
		{"events", "/tenant-1/events", "Events calendar"},
		{"incidents", "/tenant-1/incidents", "Incident Log"},
		{"rides", "/tenant-1/rides", "Transportation page"},
		{"lms library", "/tenant-1/lms", "LMS course library"},
		{"course builder", "/tenant-1/lms/course-9/builder", "Course Builder"},
		{"course detail", "/tenant-1/lms/course-9", "specific LMS course"},
		{"event detail", "/tenant-1/events/evt-3", "event details"},
		{"resident profile", "/tenant-1/residents/res-7", "resident profile"},
		{"unknown page", "/tenant-1/billing", "HVG dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RouteHint(tt.pathname)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("RouteHint(%q) = %q, want it to contain %q", tt.pathname, got, tt.contains)
			}
		})
	}
}
