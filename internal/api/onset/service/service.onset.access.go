// Package onsetsvc - Service cho trải nghiệm on-set mobile.
//
// File này chứa logic phân phối tool: từ control document + crew list
// tính ra danh sách tool mà một viewer được thấy trên mobile.
// Toàn bộ là hàm thuần túy trên dữ liệu đã parse — fail-closed ở mọi nhánh:
// thiếu dữ liệu, dữ liệu hỏng, viewer không có trong crew → danh sách rỗng.
package onsetsvc

import (
	"sort"

	onsetmodels "onset_studio/internal/api/onset/models"
	"onset_studio/internal/utility"
)

// ComputeAvailableTools tính danh sách tool khả dụng cho viewer.
//
// Quy tắc:
//   - Không có control document, hoặc isLive tắt tường minh → rỗng (kill switch);
//     isLive vắng mặt không chặn — document cũ chưa có field này
//   - toolGroups hiện diện → chế độ phân phối theo group:
//     tool có group rỗng/không hợp lệ bị ẩn với TẤT CẢ, kể cả Owner;
//     Owner thấy mọi tool còn lại; crew thấy tool có giao giữa group của
//     mình và group của tool; viewer không có trong crew list → rỗng
//   - toolGroups vắng mặt nhưng selectedTools hiện diện → chế độ legacy:
//     mọi viewer được xác thực thấy nguyên danh sách (chỉ đổi tên + dedupe)
//   - Cả hai đều vắng mặt → rỗng
//
// Tên legacy shot-log luôn được đổi thành camera-report và dedupe sau đổi tên.
// Kết quả có thứ tự ổn định (thứ tự tool chuẩn trước, key lạ xếp sau theo alphabet).
func ComputeAvailableTools(control *onsetmodels.ControlDocument, crewList *onsetmodels.CrewListDocument, viewerEmail string, isOwner bool) []string {
	if control.Killed() {
		return []string{}
	}

	if control.ToolGroups != nil {
		return computeFromToolGroups(control.ToolGroups, crewList, viewerEmail, isOwner)
	}

	if len(control.SelectedTools) > 0 {
		return normalizeToolKeys(control.SelectedTools)
	}

	return []string{}
}

func computeFromToolGroups(toolGroups map[string][]string, crewList *onsetmodels.CrewListDocument, viewerEmail string, isOwner bool) []string {
	var viewerGroups []string
	if !isOwner {
		member := crewList.FindByEmail(viewerEmail)
		if member == nil {
			return []string{}
		}
		viewerGroups = member.OnSetGroups
	}

	tools := make([]string, 0, len(toolGroups))
	for _, key := range orderedToolKeys(toolGroups) {
		allowedGroups := toolGroups[key]
		// Group rỗng → tool đang bị thu hồi, ẩn với tất cả kể cả Owner
		if len(allowedGroups) == 0 {
			continue
		}
		if isOwner || len(utility.Intersect(viewerGroups, allowedGroups)) > 0 {
			tools = append(tools, key)
		}
	}

	return normalizeToolKeys(tools)
}

// orderedToolKeys trả về các key của toolGroups theo thứ tự ổn định:
// thứ tự tool chuẩn trước, key không nằm trong bộ chuẩn xếp sau theo alphabet.
func orderedToolKeys(toolGroups map[string][]string) []string {
	keys := make([]string, 0, len(toolGroups))
	seen := map[string]bool{}

	known := append([]string{}, onsetmodels.ToolKeyOrder...)
	known = append(known, onsetmodels.ToolShotLog)
	for _, key := range known {
		if _, ok := toolGroups[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var unknown []string
	for key := range toolGroups {
		if !seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	return append(keys, unknown...)
}

// normalizeToolKeys đổi tên legacy và loại trùng lặp, giữ nguyên thứ tự lần
// xuất hiện đầu tiên.
func normalizeToolKeys(tools []string) []string {
	normalized := make([]string, 0, len(tools))
	for _, key := range tools {
		normalized = append(normalized, onsetmodels.NormalizeToolKey(key))
	}
	deduped := utility.Dedupe(normalized)
	if deduped == nil {
		return []string{}
	}
	return deduped
}

// PickActiveTool chọn tab mở trên mobile. Tab hiện tại của viewer còn khả
// dụng thì giữ nguyên — re-fetch không đá viewer về tab mặc định. Không có
// tab hiện tại (hoặc đã mất quyền) → chọn theo thứ tự ưu tiên; không có tool
// ưu tiên nào → tool đầu tiên; danh sách rỗng → "none".
func PickActiveTool(available []string, current string) string {
	if current != "" && utility.Contains(available, current) {
		return current
	}
	for _, key := range onsetmodels.DefaultToolPriority {
		if utility.Contains(available, key) {
			return key
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return onsetmodels.NoActiveTool
}
