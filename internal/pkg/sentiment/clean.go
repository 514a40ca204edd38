package sentiment

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanCommentHTML 把评论的 HTML 正文还原为纯文本
// 代码块里的符号会干扰打分, 整体剔除
func CleanCommentHTML(bodyHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return strings.TrimSpace(bodyHTML)
	}

	doc.Find("code, pre").Remove()

	// Fields 顺带把换行和连续空白压成单个空格
	return strings.Join(strings.Fields(doc.Text()), " ")
}
