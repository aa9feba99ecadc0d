package models

// Bộ tool key chuẩn của studio. Tool key đồng thời là draft key trong
// phase.drafts — mobile client chỉ thấy các tool mà viewer được cấp.
const (
	ToolAvScript      = "av-script"
	ToolShotSceneBook = "shot-scene-book"
	ToolCallSheet     = "call-sheet"
	ToolSchedule      = "schedule"
	ToolDitLog        = "dit-log"
	ToolBudget        = "budget"
	ToolCasting       = "casting"
	ToolLocations     = "locations"
	ToolWardrobe      = "wardrobe"
	ToolStoryboard    = "storyboard"
	ToolCrewList      = "crew-list"
	ToolCameraReport  = "camera-report"
	ToolOnSetNotes    = "on-set-notes"
	ToolReleases      = "releases"
	ToolMobileControl = "onset-mobile-control"

	// ToolShotLog là tên cũ của camera-report, vẫn còn trong dữ liệu legacy.
	ToolShotLog = "shot-log"
)

// Các on-set group gán cho crew. Tool được phân phối theo group
// qua control document (toolGroups: toolKey → [group...]).
const (
	GroupA = "A"
	GroupB = "B"
	GroupC = "C"
)

// ToolKeyOrder là thứ tự chuẩn khi sinh danh sách tool — map Go duyệt
// ngẫu nhiên nên cần thứ tự cố định để chọn default tab ổn định.
var ToolKeyOrder = []string{
	ToolAvScript,
	ToolShotSceneBook,
	ToolCallSheet,
	ToolSchedule,
	ToolDitLog,
	ToolBudget,
	ToolCasting,
	ToolLocations,
	ToolWardrobe,
	ToolStoryboard,
	ToolCrewList,
	ToolCameraReport,
	ToolOnSetNotes,
	ToolReleases,
	ToolMobileControl,
}

// DefaultToolPriority là thứ tự ưu tiên khi chọn tab mở mặc định trên mobile.
// Không tool nào trong danh sách khả dụng → lấy tool đầu tiên; rỗng → "none".
var DefaultToolPriority = []string{
	ToolCallSheet,
	ToolShotSceneBook,
	ToolAvScript,
}

// NoActiveTool là giá trị trả về khi viewer không có tool nào khả dụng.
const NoActiveTool = "none"

// ShotStatusComplete là status ghi vào shot trong shot-scene-book khi quay xong.
const ShotStatusComplete = "COMPLETE"

// NormalizeToolKey đổi tên legacy về tên hiện hành (shot-log → camera-report).
func NormalizeToolKey(key string) string {
	if key == ToolShotLog {
		return ToolCameraReport
	}
	return key
}
