package services

import "errors"

// Domain failures surfaced to the handlers, which translate them into HTTP
// statuses. The services themselves know nothing about transport.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrSkillNotFound = errors.New("skill not found")
	ErrOrderNotFound = errors.New("order not found")

	ErrNotOrderParticipant = errors.New("user is not a participant in this order")
	ErrNotOrderRequester   = errors.New("only the requesting user can review this order")

	ErrOrderNotCompleted = errors.New("order not completed")
	ErrInvalidTransition = errors.New("status transition not allowed")

	ErrAlreadyReviewed = errors.New("already reviewed")
)
