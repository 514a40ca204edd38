package consts

const (
	// FallbackThemeName 所有主题都匹配不上时的兜底主题
	FallbackThemeName = "Free Exploration"

	// DateLayout 日报表的自然日格式
	DateLayout = "2006-01-02"
)
