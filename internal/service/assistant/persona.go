// Package assistant 提供 AI 助手核心：人格解析、工具注册、工具执行与对话编排
package assistant

import (
	"fmt"
	"strings"
	"time"
)

// Persona 助手人格
type Persona string

const (
	// PersonaRecovery 面向住户的康复陪伴人格
	PersonaRecovery Persona = "recovery"
	// PersonaOperator 面向运营人员的业务助手人格
	PersonaOperator Persona = "operator"
)

// operatorRoles operator 人格的角色允许列表
var operatorRoles = map[string]struct{}{
	"admin":         {},
	"house_manager": {},
	"staff":         {},
	"super_admin":   {},
}

// ResolvePersona 根据调用者角色解析人格
// 允许列表之外的角色（包括空角色）一律归入 recovery
func ResolvePersona(role string) Persona {
	if _, ok := operatorRoles[role]; ok {
		return PersonaOperator
	}
	return PersonaRecovery
}

// TenantRequired operator 人格需要租户上下文
func (p Persona) TenantRequired() bool {
	return p == PersonaOperator
}

// CallerContext 调用者上下文
// 由上游认证方提供，核心只读不改
type CallerContext struct {
	UID           string
	Role          string
	DisplayName   string
	TenantIDs     []string
	SobrietyDate  *time.Time
	RecoveryGoals []string
}

// BuildSystemPrompt 按人格构建系统提示词
func BuildSystemPrompt(p Persona, caller *CallerContext, tenantID, routeContext string) string {
	if p == PersonaOperator {
		return buildOperatorPrompt(caller, tenantID, routeContext)
	}
	return buildRecoveryPrompt(caller, routeContext)
}

func buildRecoveryPrompt(caller *CallerContext, routeContext string) string {
	name := caller.DisplayName
	if name == "" {
		name = "this resident"
	}

	parts := []string{
		fmt.Sprintf("You are the HVG Companion, acting as a warm, humanist Recovery Program Guide for %s.", name),
		"You are deeply integrated with their sober living program. You care about their wellbeing. Avoid clinical, cold, or overly robotic language.",
	}

	if caller.SobrietyDate != nil {
		parts = append(parts, fmt.Sprintf("They have been sober since %s.", caller.SobrietyDate.Format("Mon Jan 2 2006")))
	} else {
		parts = append(parts, "Their sobriety start date has not been set yet - encourage them to set it in their profile.")
	}

	if len(caller.RecoveryGoals) > 0 {
		parts = append(parts, fmt.Sprintf("Their recovery goals: %s.", strings.Join(caller.RecoveryGoals, ", ")))
	}

	if routeContext != "" {
		parts = append(parts, fmt.Sprintf("Current app context: %s", routeContext))
	}

	parts = append(parts,
		"You can look up their upcoming events, chore assignments, and sobriety stats using the tools available.",
		"Be encouraging, honest, and recovery-focused.",
		"Always refer them to their house manager or sponsor for clinical decisions.",
		"If they ask you to perform structural business tasks like creating universal chores, generating tenant reports, or modifying the house schedule, politely refuse and tell them to contact their house manager.",
		"If they mention a crisis or thoughts of harm, provide crisis resources immediately (988 Suicide & Crisis Lifeline).",
	)

	return strings.Join(parts, " ")
}

func buildOperatorPrompt(caller *CallerContext, tenantID, routeContext string) string {
	name := caller.DisplayName
	if name == "" {
		name = "this operator"
	}
	role := caller.Role
	if role == "" {
		role = "house_manager"
	}

	parts := []string{
		fmt.Sprintf("You are the HVG Partner, a SaaS Business Assistant acting as a House Operations & Program Architect for %s, a %s at their sober living organization.", name, role),
		"Your goal is to be structured, insightful, and anticipate workflow bottlenecks before they happen.",
		"You help them manage their house efficiently - events, chores, transportation, resident join requests, course building, formatting incident reports, and extracting operational insights.",
		fmt.Sprintf("Their tenantId is: %s.", tenantID),
	}

	if routeContext != "" {
		parts = append(parts, fmt.Sprintf("Current page context: %s", routeContext))
	}

	parts = append(parts,
		"You can retrieve pending chores, upcoming events, ride requests, and join requests using the tools available.",
		"You can also create new events, assign chores, scaffold LMS courses, and draft formal incident reports.",
		"Be concise, professional, action-oriented, and highly analytical.",
		"If you are asked a question about a specific resident's personal recovery or clinical decisions, strictly refuse and defer to clinical staff. You are a business and operational tool.",
	)

	return strings.Join(parts, " ")
}
