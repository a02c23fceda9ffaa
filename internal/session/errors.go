package session

import (
	"errors"

	"github.com/abhisek/examiz/internal/navigation"
)

var (
	// ErrInvalidTarget is returned by GoTo for an unknown question or part.
	ErrInvalidTarget = navigation.ErrInvalidTarget

	// ErrInvalidOption is returned when a selected option index is out of range.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownQuestion is returned when an answer or flag names a question
	// that is not in the exam.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrNotStarted is returned by Submit before Start.
	ErrNotStarted = errors.New("session not started")
)
