package sentiment

import "strings"

// 垃圾评论特征词, 全部小写
var spamKeywords = []string{
	"investigator", "hack", "whatsapp", "kasino", "slot", "777",
	"putar", "kaya", "crypto", "wallet", "recovery", "swindled",
}

// 博彩类垃圾评论惯用 emoji
var spamEmojis = []string{"🎡", "🎰", "💰"}

// DetectSpam 启发式垃圾评论判定, 输入为清洗后的纯文本
func DetectSpam(text string) bool {
	lower := strings.ToLower(text)

	for _, kw := range spamKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, e := range spamEmojis {
		if strings.Contains(text, e) {
			return true
		}
	}

	// 留邮箱引流: @ + .com + 常见邮箱服务商同时出现
	if strings.Contains(lower, "@") && strings.Contains(lower, ".com") && strings.Contains(lower, "gmail") {
		return true
	}

	return false
}
