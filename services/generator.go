// services/generator.go
package services

import (
	"fmt"
	"strings"

	appContext "github.com/alphabatem/common/context"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

// GeneratorService builds complete lesson payloads from the static topic
// templates. Generation is deterministic: the same input always yields the
// same lesson, which keeps previews reproducible.
type GeneratorService struct {
	appContext.DefaultService
}

const GENERATOR_SVC = "generator_svc"

const minVocabularyQuestions = 5

// stopWords are functional words skipped when scanning phrases for a content
// word to quiz on.
var stopWords = map[string]bool{
	"the":  true,
	"and":  true,
	"with": true,
	"that": true,
}

func (svc GeneratorService) Id() string {
	return GENERATOR_SVC
}

func (svc *GeneratorService) Start() error {
	return nil
}

func (svc *GeneratorService) Generate(req *dto.GenerateLessonRequest) (*dto.GeneratedLesson, error) {
	return GenerateLesson(req)
}

func (svc *GeneratorService) Preset(name string) dto.GenerateLessonRequest {
	return PresetRequest(name)
}

// GenerateLesson assembles a full lesson from the topic template. Only the
// topic is required; missing fields get topic-derived defaults.
func GenerateLesson(req *dto.GenerateLessonRequest) (*dto.GeneratedLesson, error) {
	if req == nil || strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}

	topic := strings.TrimSpace(req.Topic)
	tmpl := resolveTopicTemplate(strings.ToLower(topic))

	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = shared.DifficultyBeginner
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s のレッスン", topic)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s をテーマにした会話練習レッスン", topic)
	}

	phrases := buildKeyPhrases(tmpl)
	questions := buildVocabularyQuestions(tmpl, phrases)
	dialogues := buildDialogues(topic, phrases)
	exercises := buildApplicationExercises(topic, tmpl, phrases)
	objectives := buildObjectives(topic)
	systemPrompt := buildSystemPrompt(topic, req.JapaneseContext, phrases, req.KeyWords)

	return &dto.GeneratedLesson{
		Title:                      title,
		Description:                description,
		Type:                       shared.LessonTypeConversation,
		Difficulty:                 difficulty,
		EstimatedMinutes:           15,
		KeyPhrases:                 phrases,
		VocabularyQuestions:        questions,
		Dialogues:                  dialogues,
		ApplicationPractice:        exercises,
		Objectives:                 objectives,
		AIConversationSystemPrompt: systemPrompt,
	}, nil
}

func buildKeyPhrases(tmpl topicTemplate) []model.KeyPhrase {
	phrases := make([]model.KeyPhrase, 0, len(tmpl.Phrases))
	for _, p := range tmpl.Phrases {
		phrases = append(phrases, model.KeyPhrase{
			Phrase:   p.English,
			Meaning:  p.Japanese,
			Phonetic: p.Phonetic,
		})
	}
	return phrases
}

// contentWord picks the first word in a phrase worth quizzing: longer than
// three letters and not a functional word.
func contentWord(phrase string) string {
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		word = strings.Trim(word, ".,!?'\"")
		if len(word) > 3 && !stopWords[word] {
			return word
		}
	}
	return ""
}

// buildVocabularyQuestions derives questions from the generated phrases and
// tops up with the template's common-word pairs until the minimum count is
// reached. The correct option's slot cycles with the question ordinal so
// answers do not cluster.
func buildVocabularyQuestions(tmpl topicTemplate, phrases []model.KeyPhrase) []model.VocabularyQuestion {
	questions := make([]model.VocabularyQuestion, 0, minVocabularyQuestions)

	for _, phrase := range phrases {
		word := contentWord(phrase.Phrase)
		if word == "" {
			continue
		}
		questions = append(questions, buildQuestion(word, phrase.Meaning, len(questions)))
	}

	pools := [][]wordPair{tmpl.CommonWords, topicTemplates["default"].CommonWords}
	for _, pool := range pools {
		for _, pair := range pool {
			if len(questions) >= minVocabularyQuestions {
				return questions
			}
			if hasQuestionFor(questions, pair.Word) {
				continue
			}
			questions = append(questions, buildQuestion(pair.Word, pair.Meaning, len(questions)))
		}
	}

	return questions
}

func hasQuestionFor(questions []model.VocabularyQuestion, word string) bool {
	target := fmt.Sprintf("「%s」の意味は？", word)
	for _, q := range questions {
		if q.Question == target {
			return true
		}
	}
	return false
}

func buildQuestion(word, correct string, ordinal int) model.VocabularyQuestion {
	distractors := make([]string, 0, 3)
	for _, candidate := range distractorPool {
		if candidate == correct {
			continue
		}
		distractors = append(distractors, candidate)
		if len(distractors) == 3 {
			break
		}
	}

	correctIndex := ordinal % 4
	options := make([]string, 0, 4)
	for slot, d := 0, 0; slot < 4; slot++ {
		if slot == correctIndex {
			options = append(options, correct)
			continue
		}
		options = append(options, distractors[d])
		d++
	}

	return model.VocabularyQuestion{
		Question:      fmt.Sprintf("「%s」の意味は？", word),
		Options:       options,
		CorrectAnswer: correctIndex,
		Explanation:   fmt.Sprintf("%s は「%s」という意味です。", word, correct),
	}
}

// buildDialogues produces the fixed four-turn scaffold: the AI opens on the
// topic, the learner answers with generated phrases.
func buildDialogues(topic string, phrases []model.KeyPhrase) []model.DialogueLine {
	first, second := phrases[0], phrases[0]
	if len(phrases) > 1 {
		second = phrases[1]
	}

	return []model.DialogueLine{
		{
			Speaker:  "AI",
			Text:     fmt.Sprintf("Let's talk about %s today. What do you think?", topic),
			Japanese: fmt.Sprintf("今日は%sについて話しましょう。どう思いますか？", topic),
		},
		{
			Speaker:  "User",
			Text:     first.Phrase,
			Japanese: first.Meaning,
		},
		{
			Speaker:  "AI",
			Text:     "That sounds great! Please tell me more.",
			Japanese: "いいですね！もっと教えてください。",
		},
		{
			Speaker:  "User",
			Text:     second.Phrase,
			Japanese: second.Meaning,
		},
	}
}

// buildApplicationExercises substitutes the topic into each template pattern
// and cycles the generated phrases as sample answers.
func buildApplicationExercises(topic string, tmpl topicTemplate, phrases []model.KeyPhrase) []model.ApplicationExercise {
	exercises := make([]model.ApplicationExercise, 0, len(tmpl.ExercisePatterns))
	for i, pattern := range tmpl.ExercisePatterns {
		sample := phrases[i%len(phrases)]
		exercises = append(exercises, model.ApplicationExercise{
			Prompt:          strings.ReplaceAll(pattern.Prompt, "{topic}", topic),
			Task:            pattern.Task,
			Hints:           append([]string{}, pattern.Hints...),
			SampleResponses: []string{sample.Phrase},
			EvaluationCriteria: []string{
				"学んだフレーズを使えている",
				"文法的に自然な英語になっている",
				"会話として成立している",
			},
		})
	}
	return exercises
}

func buildObjectives(topic string) []string {
	return []string{
		fmt.Sprintf("%sに関する基本フレーズを使える", topic),
		fmt.Sprintf("%sについて簡単な会話を続けられる", topic),
		fmt.Sprintf("%sに関連する語彙を理解できる", topic),
		"学んだフレーズを接客の場面で応用できる",
	}
}

func buildSystemPrompt(topic, japaneseContext string, phrases []model.KeyPhrase, keyWords []string) string {
	var b strings.Builder

	b.WriteString("You are a friendly English conversation tutor for Japanese beauty professionals.\n")
	fmt.Fprintf(&b, "Today's topic is %s.\n", topic)
	if japaneseContext != "" {
		fmt.Fprintf(&b, "Situation: %s\n", japaneseContext)
	}
	b.WriteString("Guidelines:\n")
	b.WriteString("- Keep sentences short and simple.\n")
	b.WriteString("- Gently correct mistakes and suggest natural phrasing.\n")

	phraseTexts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		phraseTexts = append(phraseTexts, fmt.Sprintf("%q", p.Phrase))
	}
	fmt.Fprintf(&b, "- Encourage the learner to use today's key phrases: %s.\n", strings.Join(phraseTexts, ", "))

	if len(keyWords) > 0 {
		fmt.Fprintf(&b, "- Work these words into the conversation: %s.\n", strings.Join(keyWords, ", "))
	}

	b.WriteString("Respond in English, adding short Japanese hints when the learner struggles.")
	return b.String()
}
