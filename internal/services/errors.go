package services

import "errors"

// Kind classifies a service error for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindPermission
	KindNotFound
	KindConflict
	KindUnauthorized
)

// Error is a client-facing failure. Message is safe to return verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrSelfBlock          = newError(KindValidation, "Cannot block yourself")
	ErrSelfFollow         = newError(KindValidation, "Cannot follow yourself")
	ErrAlreadyFollowing   = newError(KindValidation, "Already following this user")
	ErrNotFollowing       = newError(KindValidation, "Not following this user")
	ErrBlockedInteraction = newError(KindPermission, "You cannot interact with this user.")

	ErrUserNotFound     = newError(KindNotFound, "User not found")
	ErrUsernameTaken    = newError(KindValidation, "A user with that username already exists.")
	ErrPhoneTaken       = newError(KindValidation, "A user with that phone already exists.")
	ErrReservedUsername = newError(KindValidation, "This username is reserved.")

	ErrInvalidCredentials = newError(KindUnauthorized, "No active account found with the given credentials")
	ErrInvalidToken       = newError(KindUnauthorized, "Token is invalid or expired")

	ErrPostNotFound     = newError(KindNotFound, "Post not found")
	ErrNotPostOwner     = newError(KindPermission, "You do not have permission to perform this action.")
	ErrCategoryNotFound = newError(KindNotFound, "Category not found")
	ErrUnknownCategory  = newError(KindValidation, "Unknown category")
	ErrInvalidReaction  = newError(KindValidation, "Invalid value")

	ErrCommentNotFound = newError(KindNotFound, "Comment not found")
	ErrInvalidParent   = newError(KindValidation, "Invalid parent comment")
	ErrCommentTooDeep  = newError(KindValidation, "Replies cannot be nested more than 5 levels deep")
	ErrEmptyReason     = newError(KindValidation, "Reason is required")
)

// KindOf returns the kind of a service error, or 0 for infrastructure failures.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}
