package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// gin.Context 中保存 JWT claims 的键
const ContextUserKey = "user"
