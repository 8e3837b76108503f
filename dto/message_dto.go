package dto

import "minitwit/models"

// MessageDTO is a Data Transfer Object for the message response
type MessageDTO struct {
	Text     string `json:"content"`
	PubDate  int64  `json:"pub_date"`
	Username string `json:"user"`
}

// FromMessages converts timeline rows; the result is never nil so an empty
// timeline encodes as [].
func FromMessages(messages []models.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageDTO{Text: m.Text, PubDate: m.PubDate, Username: m.Author.Username})
	}
	return out
}

// StatusResponse carries a confirmation message.
type StatusResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id,omitempty"`
}

// ErrorResponse carries a user-facing error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AddMessageRequest is the JSON body of POST /api/add_message. Text is a
// pointer so a missing key can be told apart from an empty string.
type AddMessageRequest struct {
	Text *string `json:"text"`
}
