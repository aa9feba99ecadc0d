// Package draft chuẩn hóa các draft document được lưu dưới dạng chuỗi JSON
// trong project.phases[].drafts[]. Một draft có thể là một object đơn hoặc một
// mảng mà phần tử 0 là bản hiện hành ("head") và phần còn lại là lịch sử.
// Decode đưa mọi shape về dạng Versioned{Head, History} để logic phía trong
// không phải phân nhánh theo shape nữa.
package draft

import (
	"encoding/json"
	"strings"
)

// Versioned là dạng chuẩn hóa của một draft sau khi decode.
// Head là bản hiện hành (index 0 nếu dữ liệu gốc là mảng), History là phần
// đuôi được giữ nguyên — append-only, core không bao giờ cắt bớt.
type Versioned struct {
	Head    map[string]interface{}
	History []json.RawMessage
}

// emptyHead trả về shape rỗng mặc định cho draft dạng danh sách.
func emptyHead() map[string]interface{} {
	return map[string]interface{}{"items": []interface{}{}}
}

// Decode parse chuỗi draft về dạng Versioned. Không bao giờ trả lỗi:
// - mảng   → head = phần tử 0, history = phần còn lại
// - object → head = object, history rỗng
// - chuỗi rỗng / JSON hỏng / phần tử 0 không phải object → shape rỗng {items: []}
// Parse hỏng được coi như "document chưa tồn tại" thay vì lan truyền lỗi.
func Decode(raw string) *Versioned {
	v := &Versioned{Head: emptyHead()}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return v
	}

	switch trimmed[0] {
	case '[':
		var parts []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &parts); err != nil || len(parts) == 0 {
			return v
		}
		var head map[string]interface{}
		if err := json.Unmarshal(parts[0], &head); err != nil || head == nil {
			return v
		}
		v.Head = head
		v.History = parts[1:]
	case '{':
		var head map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &head); err != nil || head == nil {
			return v
		}
		v.Head = head
	}

	return v
}

// MigrateEntries đổi tên field legacy "entries" thành "items" ngay trên head.
// Chỉ chuyển giá trị khi head chưa có "items"; key "entries" luôn bị xóa
// để dữ liệu ghi xuống không còn shape cũ.
func (v *Versioned) MigrateEntries() {
	entries, ok := v.Head["entries"]
	if !ok {
		return
	}
	if _, hasItems := v.Head["items"]; !hasItems {
		v.Head["items"] = entries
	}
	delete(v.Head, "entries")
}

// Encode serialize lại draft:
// - withHistory=true  → `[head, ...history]` (document giữ lịch sử: dit-log, on-set-notes)
// - withHistory=false → head đơn lẻ (document không lịch sử: camera-report, shot-scene-book)
// Phần đuôi history được giữ nguyên byte-for-byte.
func (v *Versioned) Encode(withHistory bool) (string, error) {
	headBytes, err := json.Marshal(v.Head)
	if err != nil {
		return "", err
	}
	if !withHistory {
		return string(headBytes), nil
	}

	parts := make([]json.RawMessage, 0, 1+len(v.History))
	parts = append(parts, headBytes)
	parts = append(parts, v.History...)
	encoded, err := json.Marshal(parts)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Items trả về mảng items của head (tạo mảng rỗng nếu chưa có hoặc sai kiểu).
func (v *Versioned) Items() []interface{} {
	if items, ok := v.Head["items"].([]interface{}); ok {
		return items
	}
	return []interface{}{}
}

// SetItems gán lại mảng items của head.
func (v *Versioned) SetItems(items []interface{}) {
	v.Head["items"] = items
}

// PrependItem chèn một item vào đầu mảng items (bản ghi mới nhất đứng trước).
func (v *Versioned) PrependItem(item interface{}) {
	v.SetItems(append([]interface{}{item}, v.Items()...))
}

// AppendItem thêm một item vào cuối mảng items.
func (v *Versioned) AppendItem(item interface{}) {
	v.SetItems(append(v.Items(), item))
}
