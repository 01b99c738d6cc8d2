// Package quiz generates and grades the daily self-assessment quiz.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Label is the section heading shown before each difficulty tier.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Level 1: Foundations (Easy)"
	case DifficultyMedium:
		return "Level 2: Application (Medium)"
	case DifficultyHard:
		return "Level 3: Theory & Edge Cases (Hard)"
	}
	return string(d)
}

const (
	OptionsPerQuestion     = 4
	QuestionsPerDifficulty = 5
	TotalQuestions         = 3 * QuestionsPerDifficulty
)

// DefaultTopic is used when no roadmap week can be resolved.
const DefaultTopic = "Machine Learning"

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var ErrAnswerCount = errors.New("number of answers does not match the number of questions")

type Question struct {
	Difficulty Difficulty
	Prompt     string
	Options    []string
	Answer     string
}

// Result is a graded quiz.
type Result struct {
	Score int
	Total int
}

// Generate builds the quiz for a topic: QuestionsPerDifficulty questions of
// each difficulty in template order. The same topic always yields the same quiz.
func Generate(topic string) []Question {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultTopic
	}
	replacer := strings.NewReplacer(topicPlaceholder, topic)

	questions := make([]Question, 0, TotalQuestions)
	for _, difficulty := range Difficulties {
		count := 0
		for _, tmpl := range questionTemplates {
			if tmpl.difficulty != difficulty || count == QuestionsPerDifficulty {
				continue
			}
			options := make([]string, len(tmpl.options))
			for i, option := range tmpl.options {
				options[i] = replacer.Replace(option)
			}
			questions = append(questions, Question{
				Difficulty: difficulty,
				Prompt:     replacer.Replace(tmpl.prompt),
				Options:    options,
				Answer:     options[tmpl.answer],
			})
			count++
		}
	}
	return questions
}

// Score counts selections that exactly match each question's answer.
// selections must be aligned with questions.
func Score(questions []Question, selections []string) (Result, error) {
	if len(selections) != len(questions) {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(selections), len(questions))
	}

	result := Result{Total: len(questions)}
	for i, question := range questions {
		if selections[i] == question.Answer {
			result.Score++
		}
	}
	return result, nil
}

// Answers returns the canonical answers of questions in order.
func Answers(questions []Question) []string {
	answers := make([]string, len(questions))
	for i, question := range questions {
		answers[i] = question.Answer
	}
	return answers
}
