package models

// Các phase chuẩn của một dự án sản xuất phim.
// Phase key là định danh ổn định, không phải tên hiển thị.
const (
	PhaseDevelopment   = "DEVELOPMENT"
	PhasePreProduction = "PRE_PRODUCTION"
	PhaseOnSet         = "ON_SET"
	PhasePost          = "POST"
)

// PhaseKeyOrder là thứ tự chuẩn khi duyệt các phase.
// ON_SET đứng trước vì là nguồn draft chính của mobile sync.
var PhaseKeyOrder = []string{
	PhaseOnSet,
	PhasePreProduction,
	PhaseDevelopment,
	PhasePost,
}

// PhaseDisplayNames map phase key sang tên hiển thị mặc định.
var PhaseDisplayNames = map[string]string{
	PhaseDevelopment:   "Development",
	PhasePreProduction: "Pre-Production",
	PhaseOnSet:         "On Set",
	PhasePost:          "Post-Production",
}

// IsValidPhaseKey kiểm tra phase key có thuộc bộ chuẩn không.
func IsValidPhaseKey(key string) bool {
	_, ok := PhaseDisplayNames[key]
	return ok
}
