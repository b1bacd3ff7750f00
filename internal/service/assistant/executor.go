package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"

	"github.com/hvglabs/hvg-assist/internal/model"
)

// TenantData 租户域数据访问接口
// 接口定义使执行器可以轻松 mock 进行单元测试
type TenantData interface {
	UpcomingEvents(tenantID string, from, to time.Time) ([]*model.Event, error)
	PendingChores(tenantID string) ([]*model.Chore, error)
	ChoresAssignedTo(tenantID, residentID string) ([]*model.Chore, error)
	PendingRides(tenantID string) ([]*model.Ride, error)
	PendingJoinRequests(tenantID string) ([]*model.JoinRequest, error)
	CreateEvent(event *model.Event) error
	CreateChore(chore *model.Chore) error
	CreateCourse(course *model.Course) error
	CreateIncident(incident *model.Incident) error
}

// UserData 用户域数据访问接口
type UserData interface {
	ActiveTenantIDs(residentID string) ([]string, error)
	CreateMoodLog(entry *model.MoodLog) error
}

// Executor 工具执行器
// 把模型请求的函数调用分发到租户/用户作用域的数据操作上。
// 未知工具不报错而是返回 error 负载，单个坏调用不影响整轮对话
type Executor struct {
	tenants TenantData
	users   UserData
	now     func() time.Time
}

// NewExecutor 创建工具执行器
func NewExecutor(tenants TenantData, users UserData) *Executor {
	return &Executor{
		tenants: tenants,
		users:   users,
		now:     time.Now,
	}
}

// Execute 执行一次工具调用，返回 JSON 安全的结果对象
func (e *Executor) Execute(ctx context.Context, persona Persona, name, rawArgs string, caller *CallerContext, tenantID string) map[string]interface{} {
	if persona == PersonaOperator {
		return e.executeOperatorTool(name, rawArgs, caller, tenantID)
	}
	return e.executeRecoveryTool(name, rawArgs, caller)
}

// ========== recovery 工具 ==========

// getUpcomingEventsArgs get_upcoming_events 参数
type getUpcomingEventsArgs struct {
	Days float64 `json:"days"`
}

// logMoodArgs log_mood 参数
type logMoodArgs struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

func (e *Executor) executeRecoveryTool(name, rawArgs string, caller *CallerContext) map[string]interface{} {
	now := e.now()

	switch name {
	case ToolGetSobrietyStats:
		if caller.SobrietyDate == nil {
			return map[string]interface{}{"message": "No sobriety date set in profile"}
		}
		days := int(now.Sub(*caller.SobrietyDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		return map[string]interface{}{
			"daysSober":    days,
			"years":        days / 365,
			"months":       (days % 365) / 30,
			"sobrietyDate": caller.SobrietyDate.Format(time.RFC3339),
		}

	case ToolGetChoreStatus:
		tenantIDs, err := e.users.ActiveTenantIDs(caller.UID)
		if err != nil {
			return errorPayload("failed to resolve enrollments: %v", err)
		}
		chores := make([]map[string]interface{}, 0)
		for _, tid := range tenantIDs {
			found, err := e.tenants.ChoresAssignedTo(tid, caller.UID)
			if err != nil {
				return errorPayload("failed to load chores: %v", err)
			}
			for _, c := range found {
				entry := map[string]interface{}{
					"id":       c.ID,
					"tenantId": tid,
					"title":    c.Title,
					"status":   c.Status,
					"priority": c.Priority,
					"dueDate":  nil,
				}
				if c.DueDate != nil {
					entry["dueDate"] = c.DueDate.Format(time.RFC3339)
				}
				chores = append(chores, entry)
			}
		}
		return map[string]interface{}{"chores": chores}

	case ToolGetUpcomingEvents:
		args, err := decodeArgs[getUpcomingEventsArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		days := args.Days
		if days <= 0 {
			days = 7
		}
		cutoff := now.Add(time.Duration(days*24) * time.Hour)

		tenantIDs, err := e.users.ActiveTenantIDs(caller.UID)
		if err != nil {
			return errorPayload("failed to resolve enrollments: %v", err)
		}
		events := make([]map[string]interface{}, 0)
		for _, tid := range tenantIDs {
			found, err := e.tenants.UpcomingEvents(tid, now, cutoff)
			if err != nil {
				return errorPayload("failed to load events: %v", err)
			}
			for _, ev := range found {
				events = append(events, map[string]interface{}{
					"id":          ev.ID,
					"tenantId":    tid,
					"title":       ev.Title,
					"scheduledAt": ev.ScheduledAt.Format(time.RFC3339),
					"location":    ev.Location,
					"type":        ev.Type,
				})
			}
		}
		return map[string]interface{}{"events": events}

	case ToolLogMood:
		args, err := decodeArgs[logMoodArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		entry := &model.MoodLog{
			ID:       uuid.New().String(),
			UserID:   caller.UID,
			Mood:     args.Mood,
			Note:     args.Note,
			LoggedAt: now,
		}
		if err := e.users.CreateMoodLog(entry); err != nil {
			return errorPayload("failed to log mood: %v", err)
		}
		return map[string]interface{}{"success": true, "message": "Mood logged successfully"}
	}

	return map[string]interface{}{"error": fmt.Sprintf("Unknown tool: %s", name)}
}

// ========== operator 工具 ==========

// createEventArgs create_event 参数
type createEventArgs struct {
	Title       string `json:"title"`
	ScheduledAt string `json:"scheduledAt"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// assignChoreArgs assign_chore 参数
type assignChoreArgs struct {
	Title       string   `json:"title"`
	ResidentIDs []string `json:"residentIds"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
}

// buildCourseArgs build_lms_course 参数
type buildCourseArgs struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Modules     []string `json:"modules"`
}

// incidentReportArgs draft_incident_report 参数
type incidentReportArgs struct {
	Summary           string   `json:"summary"`
	IncidentDate      string   `json:"incidentDate"`
	InvolvedResidents []string `json:"involvedResidents"`
}

func (e *Executor) executeOperatorTool(name, rawArgs string, caller *CallerContext, tenantID string) map[string]interface{} {
	now := e.now()

	switch name {
	case ToolGetUpcomingEvents:
		args, err := decodeArgs[getUpcomingEventsArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		days := args.Days
		if days <= 0 {
			days = 7
		}
		cutoff := now.Add(time.Duration(days*24) * time.Hour)

		found, err := e.tenants.UpcomingEvents(tenantID, now, cutoff)
		if err != nil {
			return errorPayload("failed to load events: %v", err)
		}
		events := make([]map[string]interface{}, 0, len(found))
		for _, ev := range found {
			events = append(events, map[string]interface{}{
				"id":          ev.ID,
				"title":       ev.Title,
				"scheduledAt": ev.ScheduledAt.Format(time.RFC3339),
				"location":    ev.Location,
			})
		}
		return map[string]interface{}{"events": events}

	case ToolGetPendingChores:
		found, err := e.tenants.PendingChores(tenantID)
		if err != nil {
			return errorPayload("failed to load chores: %v", err)
		}
		chores := make([]map[string]interface{}, 0, len(found))
		for _, c := range found {
			assignees := []string(c.AssigneeIDs)
			if assignees == nil {
				assignees = []string{}
			}
			chores = append(chores, map[string]interface{}{
				"id":          c.ID,
				"title":       c.Title,
				"status":      c.Status,
				"priority":    c.Priority,
				"assigneeIds": assignees,
			})
		}
		return map[string]interface{}{"chores": chores}

	case ToolGetRideRequests:
		found, err := e.tenants.PendingRides(tenantID)
		if err != nil {
			return errorPayload("failed to load rides: %v", err)
		}
		rides := make([]map[string]interface{}, 0, len(found))
		for _, r := range found {
			rides = append(rides, map[string]interface{}{
				"id":          r.ID,
				"residentId":  r.ResidentID,
				"scheduledAt": r.ScheduledAt.Format(time.RFC3339),
				"destination": r.Destination,
				"status":      r.Status,
			})
		}
		return map[string]interface{}{"rides": rides}

	case ToolGetJoinRequests:
		found, err := e.tenants.PendingJoinRequests(tenantID)
		if err != nil {
			return errorPayload("failed to load join requests: %v", err)
		}
		requests := make([]map[string]interface{}, 0, len(found))
		for _, jr := range found {
			requests = append(requests, map[string]interface{}{
				"id":          jr.ID,
				"name":        jr.DisplayName,
				"email":       jr.Email,
				"submittedAt": jr.CreatedAt.Format(time.RFC3339),
			})
		}
		return map[string]interface{}{"requests": requests}

	case ToolCreateEvent:
		args, err := decodeArgs[createEventArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		scheduledAt, err := parseTimestamp(args.ScheduledAt)
		if err != nil {
			return errorPayload("invalid scheduledAt: %v", err)
		}
		event := &model.Event{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			Title:       args.Title,
			Description: args.Description,
			Location:    args.Location,
			Type:        "general",
			ScheduledAt: scheduledAt,
			CreatedBy:   caller.UID,
			CreatedAt:   now,
		}
		if err := e.tenants.CreateEvent(event); err != nil {
			return errorPayload("failed to create event: %v", err)
		}
		return map[string]interface{}{
			"success":     true,
			"eventId":     event.ID,
			"title":       event.Title,
			"scheduledAt": event.ScheduledAt.Format(time.RFC3339),
		}

	case ToolAssignChore:
		args, err := decodeArgs[assignChoreArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		priority := args.Priority
		if priority == "" {
			priority = "medium"
		}
		// residentIds 为空是合法的全员家务，不是错误
		assignees := args.ResidentIDs
		if assignees == nil {
			assignees = []string{}
		}
		chore := &model.Chore{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			Title:       args.Title,
			AssigneeIDs: model.StringList(assignees),
			Priority:    priority,
			Status:      model.StatusPending,
			CreatedBy:   caller.UID,
			CreatedAt:   now,
		}
		if args.DueDate != "" {
			due, err := parseTimestamp(args.DueDate)
			if err != nil {
				return errorPayload("invalid dueDate: %v", err)
			}
			chore.DueDate = &due
		}
		if err := e.tenants.CreateChore(chore); err != nil {
			return errorPayload("failed to assign chore: %v", err)
		}
		return map[string]interface{}{
			"success":     true,
			"choreId":     chore.ID,
			"title":       chore.Title,
			"assigneeIds": assignees,
		}

	case ToolBuildLMSCourse:
		args, err := decodeArgs[buildCourseArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		course := &model.Course{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			Title:       args.Title,
			Description: args.Description,
			Modules:     model.StringList(args.Modules),
			Status:      model.StatusDraft,
			CreatedBy:   caller.UID,
			CreatedAt:   now,
		}
		if err := e.tenants.CreateCourse(course); err != nil {
			return errorPayload("failed to draft course: %v", err)
		}
		return map[string]interface{}{
			"success":  true,
			"courseId": course.ID,
			"title":    course.Title,
			"message":  "LMS course drafted successfully",
		}

	case ToolOptimizeTransportRoutes:
		// 占位算法：把待处理接送固定拆成两组，不做真正的地理/时间窗优化
		found, err := e.tenants.PendingRides(tenantID)
		if err != nil {
			return errorPayload("failed to load rides: %v", err)
		}
		rides := make([]map[string]interface{}, 0, len(found))
		for _, r := range found {
			rides = append(rides, map[string]interface{}{
				"id":          r.ID,
				"destination": r.Destination,
				"time":        r.ScheduledAt.Format(time.RFC3339),
			})
		}
		split := 2
		if len(rides) < split {
			split = len(rides)
		}
		return map[string]interface{}{
			"success": true,
			"optimizedGroups": []map[string]interface{}{
				{"zone": "North Route", "rides": rides[:split]},
				{"zone": "South Route", "rides": rides[split:]},
			},
		}

	case ToolDraftIncidentReport:
		args, err := decodeArgs[incidentReportArgs](rawArgs)
		if err != nil {
			return errorPayload("invalid arguments: %v", err)
		}
		incidentDate := now
		if args.IncidentDate != "" {
			if parsed, err := parseTimestamp(args.IncidentDate); err == nil {
				incidentDate = parsed
			}
		}
		incident := &model.Incident{
			ID:                uuid.New().String(),
			TenantID:          tenantID,
			Summary:           args.Summary,
			IncidentDate:      incidentDate,
			InvolvedResidents: model.StringList(args.InvolvedResidents),
			Status:            model.StatusReviewPending,
			CreatedBy:         caller.UID,
			CreatedAt:         now,
		}
		if err := e.tenants.CreateIncident(incident); err != nil {
			return errorPayload("failed to draft incident report: %v", err)
		}
		snippet := args.Summary
		if len(snippet) > 50 {
			snippet = snippet[:50]
		}
		return map[string]interface{}{
			"success":        true,
			"incidentId":     incident.ID,
			"summarySnippet": snippet + "...",
		}
	}

	return map[string]interface{}{"error": fmt.Sprintf("Unknown tool: %s", name)}
}

// ========== 参数解析 ==========

// decodeArgs 解析模型生成的工具参数
// 模型偶尔产出非法 JSON，先直接解析，失败再用 jsonrepair 修复重试
func decodeArgs[T any](raw string) (T, error) {
	var args T
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args, nil
	}
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return args, fmt.Errorf("malformed tool arguments: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return args, fmt.Errorf("malformed tool arguments: %w", err)
	}
	return args, nil
}

// parseTimestamp 解析 ISO 8601 时间，容忍纯日期
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func errorPayload(format string, args ...interface{}) map[string]interface{} {
	return map[string]interface{}{"error": fmt.Sprintf(format, args...)}
}
