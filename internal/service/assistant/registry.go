package assistant

import "github.com/cloudwego/eino/schema"

// 工具名称
const (
	ToolGetUpcomingEvents       = "get_upcoming_events"
	ToolGetChoreStatus          = "get_chore_status"
	ToolGetSobrietyStats        = "get_sobriety_stats"
	ToolLogMood                 = "log_mood"
	ToolGetPendingChores        = "get_pending_chores"
	ToolGetRideRequests         = "get_ride_requests"
	ToolGetJoinRequests         = "get_join_requests"
	ToolCreateEvent             = "create_event"
	ToolAssignChore             = "assign_chore"
	ToolBuildLMSCourse          = "build_lms_course"
	ToolOptimizeTransportRoutes = "optimize_transport_routes"
	ToolDraftIncidentReport     = "draft_incident_report"
)

// 心情枚举
var moodValues = []string{"great", "good", "okay", "struggling", "crisis"}

// recoveryToolInfos recovery 人格的工具声明
var recoveryToolInfos = []*schema.ToolInfo{
	{
		Name: ToolGetUpcomingEvents,
		Desc: "Get upcoming events for the resident across all their enrolled organizations",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"days": {
				Type: schema.Number,
				Desc: "Number of days to look ahead (default 7)",
			},
		}),
	},
	{
		Name:        ToolGetChoreStatus,
		Desc:        "Get current chores assigned to the resident",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name:        ToolGetSobrietyStats,
		Desc:        "Get sobriety stats for the resident based on their sobriety date",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name: ToolLogMood,
		Desc: "Log a mood entry for the resident",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"mood": {
				Type:     schema.String,
				Desc:     "How the resident is feeling",
				Enum:     moodValues,
				Required: true,
			},
			"note": {
				Type:     schema.String,
				Desc:     "Brief note about how they are feeling",
				Required: true,
			},
		}),
	},
}

// operatorToolInfos operator 人格的工具声明
var operatorToolInfos = []*schema.ToolInfo{
	{
		Name: ToolGetUpcomingEvents,
		Desc: "Get upcoming events for the tenant",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"days": {
				Type: schema.Number,
				Desc: "Number of days to look ahead (default 7)",
			},
		}),
	},
	{
		Name:        ToolGetPendingChores,
		Desc:        "Get all pending or in-progress chores across all residents in the house",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name:        ToolGetRideRequests,
		Desc:        "Get all pending or scheduled ride requests for the tenant",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name:        ToolGetJoinRequests,
		Desc:        "Get pending resident join/application requests awaiting approval",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name: ToolCreateEvent,
		Desc: "Create a new event in the tenant calendar",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"title": {
				Type:     schema.String,
				Desc:     "Event title",
				Required: true,
			},
			"scheduledAt": {
				Type:     schema.String,
				Desc:     "ISO 8601 date-time string",
				Required: true,
			},
			"location": {
				Type: schema.String,
				Desc: "Event location (optional)",
			},
			"description": {
				Type: schema.String,
				Desc: "Event description (optional)",
			},
		}),
	},
	{
		Name: ToolAssignChore,
		Desc: "Assign a chore to one or more residents; omit residentIds for a house-wide chore",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"title": {
				Type:     schema.String,
				Desc:     "Chore title / description",
				Required: true,
			},
			"residentIds": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "Resident user IDs to assign the chore to; empty or absent means house-wide",
			},
			"priority": {
				Type: schema.String,
				Enum: []string{"low", "medium", "high"},
				Desc: "Chore priority (default: medium)",
			},
			"dueDate": {
				Type: schema.String,
				Desc: "ISO 8601 due date (optional)",
			},
		}),
	},
	{
		Name: ToolBuildLMSCourse,
		Desc: "Draft, structure, and save a new LMS course module directly to the courses collection",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"title": {
				Type:     schema.String,
				Desc:     "Course title",
				Required: true,
			},
			"description": {
				Type:     schema.String,
				Desc:     "Course description",
				Required: true,
			},
			"modules": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "List of module titles to be created within the course",
				Required: true,
			},
		}),
	},
	{
		Name:        ToolOptimizeTransportRoutes,
		Desc:        "Fetch pending ride requests and group them by proximity/time to optimize daily itineraries",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	},
	{
		Name: ToolDraftIncidentReport,
		Desc: "Generate a formal, structured incident report from conversational shorthand inputs",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"summary": {
				Type:     schema.String,
				Desc:     "Detailed formal summary expanding on the shorthand inputs",
				Required: true,
			},
			"incidentDate": {
				Type:     schema.String,
				Desc:     "ISO 8601 date of the incident",
				Required: true,
			},
			"involvedResidents": {
				Type:     schema.Array,
				ElemInfo: &schema.ParameterInfo{Type: schema.String},
				Desc:     "List of resident IDs or names involved",
				Required: true,
			},
		}),
	},
}

// ToolInfos 返回指定人格可用的工具声明
// 声明原样传给模型，由模型决定一轮调用零个、一个或多个工具
func ToolInfos(p Persona) []*schema.ToolInfo {
	if p == PersonaOperator {
		return operatorToolInfos
	}
	return recoveryToolInfos
}
