package chat

import "TravelGolang/pkg/response"

var (
	ErrConversationNotFound      = response.NewError(404, "conversation not found")
	ErrConversationNotOwned      = response.NewError(403, "conversation does not belong to user")
	ErrEmptyMessage              = response.NewError(400, "message text cannot be empty")
	ErrInvalidAttachment         = response.NewError(400, "invalid attachment file type")
	ErrFailedToUploadAttachment  = response.NewError(500, "failed to upload attachment")
	ErrSearchProviderUnavailable = response.NewError(502, "search provider unavailable")
	ErrCreateConversation        = response.NewError(500, "failed to create conversation")
	ErrCreateMessage             = response.NewError(500, "failed to store message")
)
