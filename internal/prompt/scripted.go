package prompt

import (
	"fmt"
)

// Scripted is a Prompter that replays a fixed list of answers. It records
// every question it was asked. Running out of answers yields ErrAborted.
type Scripted struct {
	Answers []string
	Asked   []string
}

// NewScripted creates a Scripted prompter with the given answers
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) next(question string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Answers) == 0 {
		return "", ErrAborted
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Text implements Prompter
func (s *Scripted) Text(question string) (string, error) {
	return s.next(question)
}

// Confirm implements Prompter
func (s *Scripted) Confirm(question string, _ Style) (bool, error) {
	answer, err := s.next(question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// Select implements Prompter. Unlike Terminal it does not re-ask: an answer
// that matches no choice is an error.
func (s *Scripted) Select(question string, choices []string) (string, error) {
	answer, err := s.next(question)
	if err != nil {
		return "", err
	}
	choice, ok := MatchChoice(answer, choices)
	if !ok {
		return "", fmt.Errorf("scripted answer %q is not one of %v", answer, choices)
	}
	return choice, nil
}

// Remaining returns the number of unused answers
func (s *Scripted) Remaining() int {
	return len(s.Answers)
}
