package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studytrack/internal/tracker"
)

// QuizSubmitter stores a graded quiz.
type QuizSubmitter interface {
	SubmitQuiz(ctx context.Context, session *tracker.QuizSession, selections []string) (*tracker.SubmitResult, error)
}

// DailyQuizCLI asks the questions of one day's quiz one by one and submits
// the answers once every question has been answered.
type DailyQuizCLI struct {
	*InteractiveQuizCLI
	quiz       *tracker.QuizSession
	submitter  QuizSubmitter
	selections []string
	result     *tracker.SubmitResult
}

func NewDailyQuizCLI(session *tracker.QuizSession, submitter QuizSubmitter, stdin io.Reader, stdout io.Writer) *DailyQuizCLI {
	return &DailyQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		quiz:               session,
		submitter:          submitter,
		selections:         make([]string, 0, len(session.Questions)),
	}
}

// Result returns the stored result once the quiz was submitted.
func (r *DailyQuizCLI) Result() *tracker.SubmitResult {
	return r.result
}

func (r *DailyQuizCLI) Start(ctx context.Context) error {
	_, _ = fmt.Fprintf(r.stdoutWriter, "Today's topic: %s\n", r.bold.Sprint(r.quiz.Topic))
	if r.quiz.Existing != nil {
		_, _ = color.New(color.FgGreen).Fprintln(r.stdoutWriter, "You have already completed today's quiz!")
		_, _ = fmt.Fprintf(r.stdoutWriter, "Your score: %d / %d\n", r.quiz.Existing.Score, r.quiz.Existing.Total)
		return nil
	}
	_, _ = fmt.Fprintln(r.stdoutWriter, "Answer with the option number. Leave it empty to skip a question.")
	return r.Run(ctx, r)
}

func (r *DailyQuizCLI) Session(ctx context.Context) error {
	index := len(r.selections)
	if index == len(r.quiz.Questions) {
		return r.submit(ctx)
	}

	question := r.quiz.Questions[index]
	if index == 0 || r.quiz.Questions[index-1].Difficulty != question.Difficulty {
		_, _ = fmt.Fprintln(r.stdoutWriter)
		_, _ = r.bold.Fprintln(r.stdoutWriter, question.Difficulty.Label())
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "\n%d. %s\n", index+1, question.Prompt)
	for i, option := range question.Options {
		_, _ = fmt.Fprintf(r.stdoutWriter, "   %d) %s\n", i+1, option)
	}
	_, _ = fmt.Fprint(r.stdoutWriter, "> ")

	input, err := r.readLine()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	selection, ok := parseSelection(input, question.Options)
	if !ok {
		_, _ = color.New(color.FgYellow).Fprintf(r.stdoutWriter, "Choose a number between 1 and %d\n", len(question.Options))
		return nil
	}
	r.selections = append(r.selections, selection)
	return nil
}

// parseSelection maps a 1-based option number to the option text. Empty input skips the question.
func parseSelection(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(options) {
		return "", false
	}
	return options[n-1], true
}

func (r *DailyQuizCLI) submit(ctx context.Context) error {
	result, err := r.submitter.SubmitQuiz(ctx, r.quiz, r.selections)
	if err != nil {
		return fmt.Errorf("submitter.SubmitQuiz() > %w", err)
	}
	r.result = result

	_, _ = fmt.Fprintln(r.stdoutWriter)
	for i, question := range r.quiz.Questions {
		if r.selections[i] == question.Answer {
			_, _ = fmt.Fprintf(r.stdoutWriter, "✅ %d. %s\n", i+1, question.Answer)
			continue
		}
		_, _ = fmt.Fprintf(r.stdoutWriter, "❌ %d. %s\n", i+1, r.italic.Sprint(question.Answer))
	}

	if !result.Created {
		_, _ = color.New(color.FgYellow).Fprintln(r.stdoutWriter, "A result was already stored for today; it was kept.")
	}
	_, _ = fmt.Fprintf(r.stdoutWriter, "Your score: %s\n",
		scoreColor(result.Result.Score, result.Result.Total).Sprintf("%d / %d", result.Result.Score, result.Result.Total))
	return errEnd
}

func scoreColor(score, total int) *color.Color {
	if total == 0 {
		return color.New(color.Reset)
	}
	switch ratio := float64(score) / float64(total); {
	case ratio >= 0.8:
		return color.New(color.FgGreen)
	case ratio >= 0.5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
