package onsetsvc

import (
	"testing"

	onsetmodels "onset_studio/internal/api/onset/models"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func liveControl(toolGroups map[string][]string) *onsetmodels.ControlDocument {
	return &onsetmodels.ControlDocument{IsLive: boolPtr(true), ToolGroups: toolGroups}
}

func crewWith(members ...onsetmodels.CrewMember) *onsetmodels.CrewListDocument {
	return &onsetmodels.CrewListDocument{Crew: members}
}

func TestComputeAvailableToolsKillSwitch(t *testing.T) {
	groups := map[string][]string{onsetmodels.ToolCallSheet: {onsetmodels.GroupA}}
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	// Không có control document
	assert.Empty(t, ComputeAvailableTools(nil, crew, "dit@set.film", false))

	// isLive tắt tường minh
	off := &onsetmodels.ControlDocument{IsLive: boolPtr(false), ToolGroups: groups}
	assert.Empty(t, ComputeAvailableTools(off, crew, "dit@set.film", false))

	// Owner cũng không qua được kill switch
	assert.Empty(t, ComputeAvailableTools(off, crew, "owner@set.film", true))
}

func TestComputeAvailableToolsIsLiveAbsentStillDistributes(t *testing.T) {
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	// isLive vắng mặt (document cũ) không phải kill switch — toolGroups vẫn chạy
	absent := &onsetmodels.ControlDocument{
		ToolGroups: map[string][]string{onsetmodels.ToolCallSheet: {onsetmodels.GroupA}},
	}
	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(absent, crew, "dit@set.film", false))

	// ... và selectedTools legacy cũng vậy
	legacy := &onsetmodels.ControlDocument{SelectedTools: []string{onsetmodels.ToolCallSheet}}
	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(legacy, crew, "dit@set.film", false))

	// isLive vắng mặt VÀ không có cấu hình phân phối nào → rỗng
	bare := &onsetmodels.ControlDocument{}
	assert.Empty(t, ComputeAvailableTools(bare, crew, "dit@set.film", false))
}

func TestComputeAvailableToolsByGroupIntersection(t *testing.T) {
	control := liveControl(map[string][]string{
		onsetmodels.ToolCallSheet:    {onsetmodels.GroupA, onsetmodels.GroupB},
		onsetmodels.ToolDitLog:       {onsetmodels.GroupB},
		onsetmodels.ToolCameraReport: {onsetmodels.GroupC},
	})
	crew := crewWith(
		onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupB}},
		onsetmodels.CrewMember{Email: "pa@set.film", OnSetGroups: []string{onsetmodels.GroupA}},
	)

	assert.Equal(t, []string{onsetmodels.ToolCallSheet, onsetmodels.ToolDitLog},
		ComputeAvailableTools(control, crew, "dit@set.film", false))
	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(control, crew, "pa@set.film", false))
}

func TestComputeAvailableToolsEmailCaseInsensitive(t *testing.T) {
	control := liveControl(map[string][]string{onsetmodels.ToolCallSheet: {onsetmodels.GroupA}})
	crew := crewWith(onsetmodels.CrewMember{Email: "DIT@Set.Film", OnSetGroups: []string{onsetmodels.GroupA}})

	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(control, crew, "dit@set.film", false))
}

func TestComputeAvailableToolsViewerNotInCrewList(t *testing.T) {
	control := liveControl(map[string][]string{onsetmodels.ToolCallSheet: {onsetmodels.GroupA}})
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	assert.Empty(t, ComputeAvailableTools(control, crew, "stranger@set.film", false))
	// Crew list vắng mặt hoàn toàn
	assert.Empty(t, ComputeAvailableTools(control, nil, "dit@set.film", false))
}

func TestComputeAvailableToolsEmptyGroupHiddenFromEveryone(t *testing.T) {
	control := liveControl(map[string][]string{
		onsetmodels.ToolCallSheet: {onsetmodels.GroupA},
		onsetmodels.ToolBudget:    {}, // đã thu hồi
	})
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	// Ẩn với crew
	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(control, crew, "dit@set.film", false))
	// Ẩn với cả Owner
	assert.Equal(t, []string{onsetmodels.ToolCallSheet},
		ComputeAvailableTools(control, crew, "owner@set.film", true))
}

func TestComputeAvailableToolsOwnerSeesAllDistributedTools(t *testing.T) {
	control := liveControl(map[string][]string{
		onsetmodels.ToolCallSheet: {onsetmodels.GroupA},
		onsetmodels.ToolDitLog:    {onsetmodels.GroupB},
	})

	// Owner không cần có trong crew list
	got := ComputeAvailableTools(control, nil, "owner@set.film", true)
	assert.Equal(t, []string{onsetmodels.ToolCallSheet, onsetmodels.ToolDitLog}, got)
}

func TestComputeAvailableToolsShotLogRenamedAndDeduped(t *testing.T) {
	control := liveControl(map[string][]string{
		onsetmodels.ToolShotLog:      {onsetmodels.GroupA},
		onsetmodels.ToolCameraReport: {onsetmodels.GroupA},
	})
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	got := ComputeAvailableTools(control, crew, "dit@set.film", false)
	assert.Equal(t, []string{onsetmodels.ToolCameraReport}, got)
}

func TestComputeAvailableToolsLegacySelectedTools(t *testing.T) {
	control := &onsetmodels.ControlDocument{
		IsLive:        boolPtr(true),
		SelectedTools: []string{onsetmodels.ToolShotLog, onsetmodels.ToolCallSheet, onsetmodels.ToolCameraReport},
	}

	// Chế độ legacy không lọc theo group — mọi viewer thấy nguyên danh sách
	got := ComputeAvailableTools(control, nil, "anyone@set.film", false)
	assert.Equal(t, []string{onsetmodels.ToolCameraReport, onsetmodels.ToolCallSheet}, got)
}

func TestComputeAvailableToolsNoDistributionConfigured(t *testing.T) {
	control := &onsetmodels.ControlDocument{IsLive: boolPtr(true)}
	assert.Empty(t, ComputeAvailableTools(control, nil, "owner@set.film", true))
}

func TestComputeAvailableToolsUnknownKeysSortedAfterKnown(t *testing.T) {
	control := liveControl(map[string][]string{
		"zz-custom-tool":          {onsetmodels.GroupA},
		"aa-custom-tool":          {onsetmodels.GroupA},
		onsetmodels.ToolCallSheet: {onsetmodels.GroupA},
	})
	crew := crewWith(onsetmodels.CrewMember{Email: "dit@set.film", OnSetGroups: []string{onsetmodels.GroupA}})

	got := ComputeAvailableTools(control, crew, "dit@set.film", false)
	assert.Equal(t, []string{onsetmodels.ToolCallSheet, "aa-custom-tool", "zz-custom-tool"}, got)
}

func TestPickActiveTool(t *testing.T) {
	assert.Equal(t, onsetmodels.ToolCallSheet,
		PickActiveTool([]string{onsetmodels.ToolAvScript, onsetmodels.ToolCallSheet, onsetmodels.ToolShotSceneBook}, ""))
	assert.Equal(t, onsetmodels.ToolShotSceneBook,
		PickActiveTool([]string{onsetmodels.ToolAvScript, onsetmodels.ToolShotSceneBook}, ""))
	assert.Equal(t, onsetmodels.ToolAvScript,
		PickActiveTool([]string{onsetmodels.ToolDitLog, onsetmodels.ToolAvScript}, ""))
	assert.Equal(t, onsetmodels.ToolDitLog,
		PickActiveTool([]string{onsetmodels.ToolDitLog, onsetmodels.ToolBudget}, ""))
	assert.Equal(t, onsetmodels.NoActiveTool, PickActiveTool(nil, ""))
}

func TestPickActiveToolKeepsCurrentTab(t *testing.T) {
	available := []string{onsetmodels.ToolCallSheet, onsetmodels.ToolDitLog}

	// Tab đang mở còn khả dụng → giữ nguyên, không nhảy về tab ưu tiên
	assert.Equal(t, onsetmodels.ToolDitLog, PickActiveTool(available, onsetmodels.ToolDitLog))

	// Tab đang mở đã mất quyền → tính lại theo thứ tự ưu tiên
	assert.Equal(t, onsetmodels.ToolCallSheet, PickActiveTool(available, onsetmodels.ToolBudget))
	assert.Equal(t, onsetmodels.NoActiveTool, PickActiveTool(nil, onsetmodels.ToolDitLog))
}
