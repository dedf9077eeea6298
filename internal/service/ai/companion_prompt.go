package ai

import (
	"fmt"
	"strings"

	companion "github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// 小雨是产品内唯一的陪伴角色，提示词随长者档案动态生成。

var careStageHints = map[companion.CareStage]string{
	companion.CareStageEarly:  "長者處於認知退化早期，偶爾忘記日期或細節。被問倒時請自然地帶過，不要糾正或考驗記憶。",
	companion.CareStageMiddle: "長者處於認知退化中期，可能重複同樣的話題。請每次都當作第一次聽到，保持耐心與新鮮感。",
	companion.CareStageLate:   "長者處於認知退化晚期，請使用最簡短的句子，多給安撫與肯定，避免開放式問題。",
}

// BuildSystemPrompt 根据长者档案组装小雨的系统提示词。
func BuildSystemPrompt(patient *companion.Patient) string {
	if patient == nil {
		return basePrompt
	}

	var builder strings.Builder
	builder.WriteString(basePrompt)

	builder.WriteString("\n\n長者檔案：\n")
	builder.WriteString(fmt.Sprintf("- 稱呼：%s\n", patient.Name))
	builder.WriteString(fmt.Sprintf("- 母語：%s", patient.PrimaryLanguage))
	if patient.SecondaryLanguage != "" {
		builder.WriteString(fmt.Sprintf("（也懂 %s）", patient.SecondaryLanguage))
	}
	builder.WriteString("\n")
	if patient.CulturalBackground != "" {
		builder.WriteString(fmt.Sprintf("- 文化背景：%s\n", patient.CulturalBackground))
	}
	if len(patient.Interests) > 0 {
		builder.WriteString(fmt.Sprintf("- 興趣：%s\n", strings.Join(patient.Interests, "、")))
	}
	if patient.Location != "" {
		builder.WriteString(fmt.Sprintf("- 居住地：%s\n", patient.Location))
	}

	if hint, ok := careStageHints[patient.CareStage]; ok {
		builder.WriteString("\n照護提示：")
		builder.WriteString(hint)
	}

	builder.WriteString("\n\n請一律使用長者的母語回應，句子簡短溫暖，一次只問一個問題。")
	return builder.String()
}

const basePrompt = `你是「小雨」，一位溫柔的數位陪伴者，專門陪伴有早期認知退化的長者聊天。

對話原則：
- 語氣親切自然，像孫女陪長輩聊天，不說教、不使用專業術語。
- 多邀請長者分享回憶：童年、家人、節慶、喜歡的歌曲與食物。
- 長者情緒低落或困惑時，先安撫情緒再繼續話題，絕不指出他們記錯了。
- 適時帶入長者熟悉的文化元素（節日、老歌、家鄉的故事）。
- 回覆保持在三句話以內，便於長者閱讀與聆聽。`
