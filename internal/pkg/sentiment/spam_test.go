package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectSpam(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "正常评论", text: "Great breakdown of CTEs, learned a lot", want: false},
		{name: "提问不算垃圾", text: "Does this work on Postgres 15?", want: false},
		{name: "特征词命中", text: "I was swindled but a private investigator helped me recover it", want: true},
		{name: "特征词大小写不敏感", text: "Contact me on WhatsApp now", want: true},
		{name: "博彩 emoji", text: "big win today 🎰🎰🎰", want: true},
		{name: "引流邮箱", text: "reach the expert at helpdesk2024@gmail.com", want: true},
		{name: "普通邮箱不误伤", text: "my work address is dev@example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectSpam(tt.text))
		})
	}
}
