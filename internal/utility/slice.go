package utility

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Intersect trả về các phần tử xuất hiện trong cả hai slice, giữ thứ tự của slice thứ nhất.
// Kết quả không chứa phần tử trùng lặp.
func Intersect[T comparable](a, b []T) []T {
	inB := make(map[T]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}

	var result []T
	seen := make(map[T]bool, len(a))
	for _, v := range a {
		if inB[v] && !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}
	return result
}

// Dedupe loại bỏ các phần tử trùng lặp, giữ lần xuất hiện đầu tiên.
func Dedupe[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	var result []T
	for _, v := range slice {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}
	return result
}
