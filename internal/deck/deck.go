// Package deck drives the onboarding questionnaire: a stack of two-option
// cards answered by swiping, ending with a home-airport card answered from a
// picker. The deck is pure state; rendering and input mapping live in the UI.
package deck

import (
	"github.com/pkg/errors"

	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// SwipeThreshold is the horizontal displacement beyond which releasing the
// card commits an answer instead of springing back.
const SwipeThreshold = 50

// Direction of a swipe in progress.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// Question is one card. Left and Right are the two answers; an Airport card
// has no swipe answers and is resolved through AnswerAirport instead.
type Question struct {
	Prompt  string
	Left    string
	Right   string
	Airport bool
}

// DefaultQuestions returns the standard onboarding deck.
func DefaultQuestions() []Question {
	return []Question{
		{Prompt: "I prefer my trips to be...", Left: "Carefully planned", Right: "Spontaneous and flexible"},
		{Prompt: "I'd rather spend money on...", Left: "Nice accommodations", Right: "Experiences and activities"},
		{Prompt: "My ideal vacation includes...", Left: "Relaxation", Right: "Adventure"},
		{Prompt: "When traveling, I prefer to eat...", Left: "Familiar food", Right: "Local cuisine"},
		{Prompt: "What is your home airport?", Airport: true},
	}
}

// Deck holds the questionnaire state.
type Deck struct {
	questions []Question
	index     int
	offset    int
	dragging  bool
	answers   []trip.QuestionAnswer
}

// New deck over the given questions.
func New(questions []Question) *Deck {
	return &Deck{questions: questions}
}

// Current returns the card on top, or false once every card is answered.
func (d *Deck) Current() (Question, bool) {
	if d.Done() {
		return Question{}, false
	}
	return d.questions[d.index], true
}

// Progress reports how many cards are answered out of the total.
func (d *Deck) Progress() (answered, total int) {
	return d.index, len(d.questions)
}

// Done reports whether every card has been answered.
func (d *Deck) Done() bool {
	return d.index >= len(d.questions)
}

// Answers returns the committed answers in card order.
func (d *Deck) Answers() []trip.QuestionAnswer {
	return d.answers
}

// Offset is the card's current horizontal displacement.
func (d *Deck) Offset() int {
	return d.offset
}

// Direction the card would commit to if released now.
func (d *Deck) Direction() Direction {
	switch {
	case d.offset > SwipeThreshold:
		return DirectionRight
	case d.offset < -SwipeThreshold:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

// Drag moves the card horizontally. Airport cards do not drag.
func (d *Deck) Drag(delta int) {
	current, ok := d.Current()
	if !ok || current.Airport {
		return
	}
	d.dragging = true
	d.offset += delta
}

// Release drops the card. Past the threshold the matching answer commits
// and the next card comes up; otherwise the card springs back to center.
// It returns the direction that committed, if any.
func (d *Deck) Release() Direction {
	if !d.dragging {
		return DirectionNone
	}
	d.dragging = false
	direction := d.Direction()
	d.offset = 0

	current, ok := d.Current()
	if !ok || current.Airport {
		return DirectionNone
	}
	switch direction {
	case DirectionLeft:
		d.commit(current.Prompt, current.Left)
	case DirectionRight:
		d.commit(current.Prompt, current.Right)
	}
	return direction
}

// Choose commits an answer directly, bypassing the drag. It mirrors the
// arrow buttons under the card.
func (d *Deck) Choose(direction Direction) error {
	current, ok := d.Current()
	if !ok {
		return errors.New("no card left to answer")
	}
	if current.Airport {
		return errors.New("airport card is answered from the picker")
	}
	switch direction {
	case DirectionLeft:
		d.commit(current.Prompt, current.Left)
	case DirectionRight:
		d.commit(current.Prompt, current.Right)
	default:
		return errors.New("no direction chosen")
	}
	d.offset = 0
	d.dragging = false
	return nil
}

// AnswerAirport resolves an airport card with the picked code.
func (d *Deck) AnswerAirport(code string) error {
	current, ok := d.Current()
	if !ok {
		return errors.New("no card left to answer")
	}
	if !current.Airport {
		return errors.New("current card is not the airport card")
	}
	if code == "" {
		return errors.New("no airport selected")
	}
	d.commit(current.Prompt, code)
	return nil
}

func (d *Deck) commit(question, answer string) {
	d.answers = append(d.answers, trip.QuestionAnswer{Question: question, Answer: answer})
	d.index++
}
