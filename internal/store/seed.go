package store

import (
	"time"

	"github.com/xiaoyuteam/companion/backend/internal/model/companion"
)

// LoadSeed fills the store with the demo session data used until a real
// account system exists. Timestamps are taken relative to now so the
// dashboard's "today" numbers stay meaningful.
func LoadSeed(s *Store, now time.Time) {
	s.SetPatient(seedPatient(now))
	s.SetFamilyMembers(seedFamily(now))
	s.SetMemories(seedMemories(now))
	s.SetConversations(seedConversations(now))
	s.SetCulturalContent(seedCulturalContent())
	s.SetReminders(seedReminders())
	s.SetEmotionTrends(seedEmotionTrends())
}

func seedPatient(now time.Time) *companion.Patient {
	return &companion.Patient{
		ID:                 "1",
		Name:               "王爺爺",
		PrimaryLanguage:    "zh-TW",
		SecondaryLanguage:  "min-nan",
		CulturalBackground: "taiwanese",
		Location:           "台北市",
		CareStage:          companion.CareStageEarly,
		Interests:          []string{"音樂", "園藝", "歷史", "烹飪"},
		MedicalNotes:       "輕度認知障礙，每日服用記憶相關藥物",
		EmergencyContacts: []companion.EmergencyContact{
			{
				Name:         "David Wang",
				Relationship: "兒子",
				Phone:        "+1-604-123-4567",
				Email:        "david.wang@email.com",
				Language:     "en-US",
				Timezone:     "America/Vancouver",
			},
		},
		Timezone:    "Asia/Taipei",
		CreatedDate: now.AddDate(0, -3, 0),
		UpdatedDate: now,
	}
}

func seedFamily(now time.Time) []companion.FamilyMember {
	created := now.AddDate(0, -3, 0)
	return []companion.FamilyMember{
		{
			ID:                "1",
			PatientID:         "1",
			Name:              "David Wang",
			Relationship:      companion.RelationSon,
			PreferredLanguage: "en-US",
			Timezone:          "America/Vancouver",
			NotificationPreferences: &companion.NotificationPreferences{
				DailySummary:    true,
				EmergencyAlerts: true,
				MemoryShared:    true,
				MoodChanges:     true,
				PreferredTime:   "09:00",
			},
			ContactInfo: &companion.ContactInfo{
				Email:        "david.wang@email.com",
				Phone:        "+1-604-123-4567",
				MessagingApp: "whatsapp",
				MessagingID:  "+16041234567",
			},
			CreatedDate: created,
			UpdatedDate: created,
		},
		{
			ID:                "2",
			PatientID:         "1",
			Name:              "王美玲",
			Relationship:      companion.RelationDaughter,
			PreferredLanguage: "zh-TW",
			Timezone:          "Asia/Taipei",
			NotificationPreferences: &companion.NotificationPreferences{
				DailySummary:    true,
				EmergencyAlerts: true,
				MemoryShared:    false,
				MoodChanges:     true,
				PreferredTime:   "20:00",
			},
			ContactInfo: &companion.ContactInfo{
				Email:        "meiling@email.com",
				Phone:        "+886-912-345-678",
				MessagingApp: "line",
				MessagingID:  "meiling_wang",
			},
			CreatedDate: created,
			UpdatedDate: created,
		},
	}
}

func seedMemories(now time.Time) []companion.MemoryEntry {
	yesterday := now.Add(-24 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)
	return []companion.MemoryEntry{
		{
			ID:                   "1",
			PatientID:            "1",
			Title:                "中秋節家族聚餐",
			Content:              "昨天是中秋節，全家人聚在一起吃月餅、賞月。孫子們很開心，我們一起唱歌、聊天到很晚。",
			MemoryType:           companion.MemoryFestival,
			EmotionalTone:        companion.ToneHappy,
			Location:             "台北市大安區",
			PeopleInvolved:       []string{"David", "美玲", "小明", "小華"},
			CulturalSignificance: "中秋節是家人團圓的重要節日",
			SharedWithFamily:     true,
			Tags:                 []string{"中秋節", "家庭", "團圓"},
			CreatedDate:          yesterday,
			UpdatedDate:          yesterday,
		},
		{
			ID:               "2",
			PatientID:        "1",
			Title:            "公園散步",
			Content:          "今天天氣很好，去公園散步，看到很多小朋友在玩耍，想起了自己的童年。",
			MemoryType:       companion.MemoryDailyLife,
			EmotionalTone:    companion.ToneNostalgic,
			Location:         "大安森林公園",
			SharedWithFamily: false,
			Tags:             []string{"散步", "公園", "童年"},
			CreatedDate:      twoDaysAgo,
			UpdatedDate:      twoDaysAgo,
		},
	}
}

func seedConversations(now time.Time) []companion.Conversation {
	return []companion.Conversation{
		{
			ID:               "1",
			PatientID:        "1",
			Transcript:       "小雨啊，今天天氣真好，讓我想起小時候和爺爺一起在公園玩耍的日子。",
			DetectedLanguage: "zh-TW",
			AIResponse:       "哇！聽起來是很美好的回憶呢！您的爺爺一定很疼愛您。您還記得在公園裡最喜歡玩什麼嗎？",
			ConversationType: companion.ConversationMemorySharing,
			EmotionAnalysis: companion.EmotionAnalysis{
				PrimaryEmotion:    "nostalgic",
				Confidence:        0.85,
				Sentiment:         companion.SentimentPositive,
				EmotionalKeywords: []string{"想起", "小時候", "爺爺"},
			},
			Duration:    45,
			CreatedDate: now.Add(-1 * time.Hour),
			UpdatedDate: now.Add(-1 * time.Hour),
		},
		{
			ID:               "2",
			PatientID:        "1",
			Transcript:       "我有點記不清楚今天是星期幾了...",
			DetectedLanguage: "zh-TW",
			AIResponse:       "沒關係的！今天是個美好的日子呢。有什麼特別想做的事情嗎？我們可以一起聊聊天，或者聽聽您喜歡的音樂。",
			ConversationType: companion.ConversationEmotionalSupport,
			EmotionAnalysis: companion.EmotionAnalysis{
				PrimaryEmotion:    "confused",
				Confidence:        0.75,
				Sentiment:         companion.SentimentNeutral,
				EmotionalKeywords: []string{"記不清楚"},
			},
			Duration:    30,
			CreatedDate: now.Add(-2 * time.Hour),
			UpdatedDate: now.Add(-2 * time.Hour),
		},
	}
}

func seedCulturalContent() []companion.CulturalContent {
	return []companion.CulturalContent{
		{
			ID:          "1",
			Category:    companion.CulturalFestival,
			Title:       "春節",
			Description: "農曆新年，是華人最重要的傳統節日，象徵著新的開始和家人團聚。",
			ImageURL:    "/images/spring-festival.jpg",
			ContentDetails: map[string]any{
				"traditions": []string{"貼春聯", "包餃子", "發紅包", "守歲"},
				"foods":      []string{"年糕", "餃子", "魚", "湯圓"},
				"activities": []string{"拜年", "舞龍舞獅", "放鞭炮"},
			},
			CulturalOrigin:     "chinese",
			LanguagesAvailable: []string{"zh-TW", "zh-CN", "en-US"},
			Tags:               []string{"節慶", "團圓", "傳統"},
		},
		{
			ID:          "2",
			Category:    companion.CulturalMusic,
			Title:       "台語老歌",
			Description: "經典的台語歌曲，承載著許多人的青春回憶。",
			ContentDetails: map[string]any{
				"songs":   []string{"望春風", "雨夜花", "月夜愁", "四季紅"},
				"artists": []string{"鄧麗君", "江蕙", "陳雷"},
			},
			CulturalOrigin:     "taiwanese",
			LanguagesAvailable: []string{"min-nan"},
			Tags:               []string{"音樂", "懷舊", "台灣"},
		},
		{
			ID:          "3",
			Category:    companion.CulturalStory,
			Title:       "台灣民間故事",
			Description: "流傳在台灣的傳統民間故事，富含文化智慧。",
			ContentDetails: map[string]any{
				"stories": []string{"虎姑婆", "白蛇傳", "廖添丁傳奇"},
				"themes":  []string{"勇氣", "智慧", "正義"},
			},
			CulturalOrigin:     "taiwanese",
			LanguagesAvailable: []string{"zh-TW", "min-nan"},
			Tags:               []string{"故事", "傳統", "文化"},
		},
	}
}

func seedReminders() []companion.Reminder {
	return []companion.Reminder{
		{ID: "1", Type: companion.ReminderMedication, Title: "記得吃藥", Time: "09:00"},
		{ID: "2", Type: companion.ReminderActivity, Title: "下午散步", Time: "15:00"},
	}
}

func seedEmotionTrends() []companion.EmotionTrend {
	return []companion.EmotionTrend{
		{Date: "週一", Mood: "開心", Score: 4},
		{Date: "週二", Mood: "平靜", Score: 3},
		{Date: "週三", Mood: "懷舊", Score: 3},
		{Date: "週四", Mood: "開心", Score: 4},
		{Date: "週五", Mood: "興奮", Score: 5},
		{Date: "週六", Mood: "平靜", Score: 3},
		{Date: "週日", Mood: "開心", Score: 4},
	}
}
