package assistant

import (
	"testing"
)

func TestToolInfosRecovery(t *testing.T) {
	infos := ToolInfos(PersonaRecovery)

	want := []string{ToolGetUpcomingEvents, ToolGetChoreStatus, ToolGetSobrietyStats, ToolLogMood}
	if len(infos) != len(want) {
		t.Fatalf("expected %d recovery tools, got %d", len(want), len(infos))
	}
	for i, name := range want {
		if infos[i].Name != name {
			t.Errorf("recovery tool %d = %s, want %s", i, infos[i].Name, name)
		}
	}
}

func TestToolInfosOperator(t *testing.T) {
	infos := ToolInfos(PersonaOperator)

	want := map[string]bool{
		ToolGetUpcomingEvents:       false,
		ToolGetPendingChores:        false,
		ToolGetRideRequests:         false,
		ToolGetJoinRequests:         false,
		ToolCreateEvent:             false,
		ToolAssignChore:             false,
		ToolBuildLMSCourse:          false,
		ToolOptimizeTransportRoutes: false,
		ToolDraftIncidentReport:     false,
	}
	if len(infos) != len(want) {
		t.Fatalf("expected %d operator tools, got %d", len(want), len(infos))
	}
	for _, info := range infos {
		if _, ok := want[info.Name]; !ok {
			t.Errorf("unexpected operator tool: %s", info.Name)
		}
		want[info.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("operator tool %s missing", name)
		}
	}
}

func TestPersonaToolsDoNotOverlapWriteSurfaces(t *testing.T) {
	// recovery 人格不能拿到任何运营侧写操作工具
	operatorOnly := map[string]bool{
		ToolCreateEvent:             true,
		ToolAssignChore:             true,
		ToolBuildLMSCourse:          true,
		ToolDraftIncidentReport:     true,
		ToolOptimizeTransportRoutes: true,
		ToolGetJoinRequests:         true,
	}
	for _, info := range ToolInfos(PersonaRecovery) {
		if operatorOnly[info.Name] {
			t.Errorf("recovery persona must not expose %s", info.Name)
		}
	}
	// operator 人格同样不能读个人恢复数据
	for _, info := range ToolInfos(PersonaOperator) {
		if info.Name == ToolGetSobrietyStats || info.Name == ToolLogMood || info.Name == ToolGetChoreStatus {
			t.Errorf("operator persona must not expose %s", info.Name)
		}
	}
}
