package messages

import "errors"

var (
	// ErrConversationNotFound is returned when a conversation ID does not exist.
	ErrConversationNotFound = errors.New("messages: conversation not found")

	// ErrMessageNotFound is returned when no message matches a lookup.
	ErrMessageNotFound = errors.New("messages: message not found")

	// ErrMissingConversation is returned when a request omits the conversation ID.
	ErrMissingConversation = errors.New("messages: conversation_id is required")

	// ErrMissingSender is returned when a request omits the sender ID.
	ErrMissingSender = errors.New("messages: sender_id is required")

	// ErrInvalidSenderType is returned for sender types other than patient or professional.
	ErrInvalidSenderType = errors.New("messages: sender_type must be patient or professional")

	// ErrEmptyContent is returned when a message body is blank.
	ErrEmptyContent = errors.New("messages: content is required")

	// ErrUnknownReferent is returned when an attachment points at a catalog
	// entry that does not exist; the attach action is rejected before send.
	ErrUnknownReferent = errors.New("messages: referenced catalog entry not found")
)
