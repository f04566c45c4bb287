package convert

// Bool2Int converts a boolean to an integer
// Bool2Int 将布尔值转换为整数
// return: 1 if true, 0 if false // 返回值: true 返回 1，false 返回 0
func Bool2Int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Int2Bool converts an integer to a boolean
// Int2Bool 将整数转换为布尔值
func Int2Bool(i int64) bool {
	return i != 0
}
