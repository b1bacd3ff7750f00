package assistant

import "strings"

// exactRouteHints 页面路径到提示语的精确映射
var exactRouteHints = map[string]string{
	"/dashboard":     "The user is on the main dashboard overview.",
	"/":              "The user is on the main dashboard overview.",
	"/events":        "The user is viewing the Events calendar. Upcoming events and scheduling are relevant.",
	"/chores":        "The user is on the Chores board. Pending chore assignments are relevant. Offer to assign pending chores or review completion.",
	"/incidents":     "The user is on the Incident Log. Recent incident reports may be relevant. Offer to draft a structured report.",
	"/rides":         "The user is on the Transportation page. Active and pending ride requests are relevant. Offer to optimize transport routes.",
	"/houses":        "The user is managing house properties and bed assignments.",
	"/lms":           "The user is browsing the LMS course library. Offer to scaffold a new course.",
	"/join-requests": "The user is reviewing new resident join requests.",
	"/staff":         "The user is managing staff members.",
}

// RouteHint 将前端路径翻译为注入系统提示词的情境提示
// 路径首段是租户 ID，先剥掉再匹配
func RouteHint(pathname string) string {
	normalized := pathname
	if idx := strings.Index(strings.TrimPrefix(pathname, "/"), "/"); idx >= 0 {
		normalized = strings.TrimPrefix(pathname, "/")[idx:]
	} else {
		normalized = "/dashboard"
	}

	if hint, ok := exactRouteHints[normalized]; ok {
		return hint
	}

	// 子路由按前缀匹配
	switch {
	case strings.HasPrefix(normalized, "/lms/") && strings.Contains(normalized, "/builder"):
		return "The user is in the Course Builder, actively editing lesson content. Help with scaffolding modules or drafting content."
	case strings.HasPrefix(normalized, "/lms/"):
		return "The user is viewing a specific LMS course. Course details and lesson progress are relevant."
	case strings.HasPrefix(normalized, "/events/"):
		return "The user is viewing event details. The event title, location, and schedule are relevant."
	case strings.HasPrefix(normalized, "/residents/"):
		return "The user is viewing a resident profile. Resident history and status are relevant."
	}

	return "The user is in the HVG dashboard."
}
