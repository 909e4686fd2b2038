// services/templates.go
package services

import "github.com/salon-lingo/admin_api/dto"

// Topic templates are static curated content. The generator only ever reads
// them; unknown topics fall back to the default template so generation always
// succeeds.

type templatePhrase struct {
	English  string
	Japanese string
	Phonetic string
}

type wordPair struct {
	Word    string
	Meaning string
}

type exercisePattern struct {
	Prompt string
	Task   string
	Hints  []string
}

type topicTemplate struct {
	Phrases          []templatePhrase
	CommonWords      []wordPair
	ExercisePatterns []exercisePattern
}

// topicAliases maps Japanese topic names onto the canonical template keys.
var topicAliases = map[string]string{
	"趣味":   "hobbies",
	"家族":   "family",
	"仕事":   "work",
	"食べ物": "food",
}

var topicTemplates = map[string]topicTemplate{
	"hobbies": {
		Phrases: []templatePhrase{
			{English: "What do you like to do in your free time?", Japanese: "暇な時間に何をするのが好きですか？", Phonetic: "wʌt duː juː laɪk tuː duː ɪn jɔːr friː taɪm"},
			{English: "I really enjoy taking photos on weekends.", Japanese: "週末に写真を撮るのがとても好きです。", Phonetic: "aɪ ˈrɪəli ɪnˈdʒɔɪ ˈteɪkɪŋ ˈfoʊtoʊz ɑːn ˈwiːkendz"},
			{English: "Have you tried it before?", Japanese: "前に試したことはありますか？", Phonetic: "hæv juː traɪd ɪt bɪˈfɔːr"},
		},
		CommonWords: []wordPair{
			{Word: "hobby", Meaning: "趣味"},
			{Word: "weekend", Meaning: "週末"},
			{Word: "photography", Meaning: "写真撮影"},
			{Word: "relax", Meaning: "リラックスする"},
			{Word: "enjoy", Meaning: "楽しむ"},
		},
		ExercisePatterns: []exercisePattern{
			{
				Prompt: "A regular customer asks what you do outside of work. Talk about {topic}.",
				Task:   "Describe one of your hobbies in two or three sentences.",
				Hints:  []string{"Start with what you enjoy", "Say when you usually do it"},
			},
			{
				Prompt: "Ask a customer about their {topic} to keep the conversation going.",
				Task:   "Ask a natural follow-up question.",
				Hints:  []string{"Use a question word", "Show interest in the answer"},
			},
		},
	},
	"family": {
		Phrases: []templatePhrase{
			{English: "Do you have any brothers or sisters?", Japanese: "兄弟や姉妹はいますか？", Phonetic: "duː juː hæv ˈeni ˈbrʌðərz ɔːr ˈsɪstərz"},
			{English: "I live with my parents and my younger sister.", Japanese: "両親と妹と一緒に住んでいます。", Phonetic: "aɪ lɪv wɪð maɪ ˈperənts ænd maɪ ˈjʌŋɡər ˈsɪstər"},
			{English: "My family often eats dinner together.", Japanese: "私の家族はよく一緒に夕食を食べます。", Phonetic: "maɪ ˈfæməli ˈɔːfən iːts ˈdɪnər təˈɡeðər"},
		},
		CommonWords: []wordPair{
			{Word: "family", Meaning: "家族"},
			{Word: "parents", Meaning: "両親"},
			{Word: "sister", Meaning: "姉妹"},
			{Word: "brother", Meaning: "兄弟"},
			{Word: "together", Meaning: "一緒に"},
		},
		ExercisePatterns: []exercisePattern{
			{
				Prompt: "A customer shows you a photo of their {topic}. Respond warmly.",
				Task:   "React to the photo and ask one question.",
				Hints:  []string{"Compliment first", "Ask about one person in the photo"},
			},
			{
				Prompt: "Introduce your {topic} to a customer who asked about them.",
				Task:   "Describe two family members briefly.",
				Hints:  []string{"Say who they are", "Add one detail about each"},
			},
		},
	},
	"work": {
		Phrases: []templatePhrase{
			{English: "How long have you been working here?", Japanese: "ここでどのくらい働いていますか？", Phonetic: "haʊ lɔːŋ hæv juː biːn ˈwɜːrkɪŋ hɪr"},
			{English: "I have been a stylist for five years.", Japanese: "スタイリストになって5年です。", Phonetic: "aɪ hæv biːn ə ˈstaɪlɪst fɔːr faɪv jɪrz"},
			{English: "The busiest time is usually the weekend.", Japanese: "一番忙しいのはたいてい週末です。", Phonetic: "ðə ˈbɪziəst taɪm ɪz ˈjuːʒuəli ðə ˈwiːkend"},
		},
		CommonWords: []wordPair{
			{Word: "stylist", Meaning: "スタイリスト"},
			{Word: "customer", Meaning: "お客様"},
			{Word: "appointment", Meaning: "予約"},
			{Word: "experience", Meaning: "経験"},
			{Word: "schedule", Meaning: "スケジュール"},
		},
		ExercisePatterns: []exercisePattern{
			{
				Prompt: "A new customer asks about your {topic} experience.",
				Task:   "Explain your role and how long you have done it.",
				Hints:  []string{"State your job title", "Mention years of experience"},
			},
			{
				Prompt: "Small talk about {topic} while shampooing a customer.",
				Task:   "Ask the customer about their job politely.",
				Hints:  []string{"Keep questions light", "Avoid anything too personal"},
			},
		},
	},
	"food": {
		Phrases: []templatePhrase{
			{English: "What kind of food do you like?", Japanese: "どんな食べ物が好きですか？", Phonetic: "wʌt kaɪnd ʌv fuːd duː juː laɪk"},
			{English: "There is a good ramen shop near the salon.", Japanese: "サロンの近くに美味しいラーメン屋があります。", Phonetic: "ðer ɪz ə ɡʊd ˈrɑːmən ʃɑːp nɪr ðə səˈlɑːn"},
			{English: "I usually skip breakfast on busy mornings.", Japanese: "忙しい朝はたいてい朝食を抜きます。", Phonetic: "aɪ ˈjuːʒuəli skɪp ˈbrekfəst ɑːn ˈbɪzi ˈmɔːrnɪŋz"},
		},
		CommonWords: []wordPair{
			{Word: "delicious", Meaning: "美味しい"},
			{Word: "restaurant", Meaning: "レストラン"},
			{Word: "breakfast", Meaning: "朝食"},
			{Word: "favorite", Meaning: "お気に入り"},
			{Word: "recommend", Meaning: "おすすめする"},
		},
		ExercisePatterns: []exercisePattern{
			{
				Prompt: "A customer from overseas asks you to recommend local {topic}.",
				Task:   "Recommend one dish and one place to try it.",
				Hints:  []string{"Name the dish", "Say why you like it"},
			},
			{
				Prompt: "Chat about {topic} during a coloring treatment wait.",
				Task:   "Ask what the customer likes to eat.",
				Hints:  []string{"Open with a general question", "Share your own favorite"},
			},
		},
	},
	"default": {
		Phrases: []templatePhrase{
			{English: "Could you tell me more about that?", Japanese: "それについてもっと教えてもらえますか？", Phonetic: "kʊd juː tel miː mɔːr əˈbaʊt ðæt"},
			{English: "That sounds really interesting.", Japanese: "それはとても面白そうですね。", Phonetic: "ðæt saʊndz ˈrɪəli ˈɪntrəstɪŋ"},
			{English: "I would like to learn more about it.", Japanese: "それについてもっと学びたいです。", Phonetic: "aɪ wʊd laɪk tuː lɜːrn mɔːr əˈbaʊt ɪt"},
		},
		CommonWords: []wordPair{
			{Word: "interesting", Meaning: "面白い"},
			{Word: "question", Meaning: "質問"},
			{Word: "learn", Meaning: "学ぶ"},
			{Word: "practice", Meaning: "練習"},
			{Word: "conversation", Meaning: "会話"},
		},
		ExercisePatterns: []exercisePattern{
			{
				Prompt: "A customer brings up {topic}. Keep the conversation going.",
				Task:   "Respond and ask one follow-up question.",
				Hints:  []string{"Show interest", "Use a question word"},
			},
			{
				Prompt: "You want to learn about {topic} from a customer.",
				Task:   "Ask two polite questions about it.",
				Hints:  []string{"Start simple", "Listen and react"},
			},
		},
	},
}

// distractorPool supplies wrong answers for generated vocabulary questions.
var distractorPool = []string{
	"ありがとう",
	"こんにちは",
	"さようなら",
	"すみません",
	"はじめまして",
	"お疲れ様です",
	"いらっしゃいませ",
}

// generatorPresets prefill the generator's input form. Keys mirror the
// dashboard's quick-start buttons.
var generatorPresets = map[string]dto.GenerateLessonRequest{
	"self_introduction": {
		Title:           "自己紹介のレッスン",
		Description:     "初対面のお客様に自己紹介をする練習",
		Topic:           "self introduction",
		DifficultyLevel: "beginner",
		KeyWords:        []string{"name", "from", "nice to meet you"},
		JapaneseContext: "初めて担当するお客様への挨拶",
	},
	"hobbies": {
		Title:           "趣味について話す",
		Description:     "お客様と趣味の話題で会話を続ける練習",
		Topic:           "hobbies",
		DifficultyLevel: "beginner",
		KeyWords:        []string{"free time", "enjoy", "weekend"},
		JapaneseContext: "施術中のスモールトーク",
	},
	"family": {
		Title:           "家族について話す",
		Description:     "家族の話題で自然な会話をする練習",
		Topic:           "family",
		DifficultyLevel: "elementary",
		KeyWords:        []string{"family", "parents", "sister"},
		JapaneseContext: "常連のお客様との会話",
	},
	"work": {
		Title:           "仕事について話す",
		Description:     "自分の仕事や経験について説明する練習",
		Topic:           "work",
		DifficultyLevel: "elementary",
		KeyWords:        []string{"stylist", "experience", "busy"},
		JapaneseContext: "新規のお客様への経歴紹介",
	},
}

// resolveTopicTemplate returns the template for a topic, following Japanese
// aliases and falling back to the default template for unknown topics.
func resolveTopicTemplate(topic string) topicTemplate {
	if canonical, ok := topicAliases[topic]; ok {
		topic = canonical
	}
	if tmpl, ok := topicTemplates[topic]; ok {
		return tmpl
	}
	return topicTemplates["default"]
}

// PresetRequest returns a prefilled generator input for a named preset.
// Unknown names fall back to the self-introduction preset.
func PresetRequest(name string) dto.GenerateLessonRequest {
	if preset, ok := generatorPresets[name]; ok {
		return preset
	}
	return generatorPresets["self_introduction"]
}

func PresetNames() []string {
	return []string{"self_introduction", "hobbies", "family", "work"}
}
