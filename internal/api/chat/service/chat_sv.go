package chatService

import (
	"TravelGolang/internal/api/chat"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"TravelGolang/pkg/nlp"
	"TravelGolang/pkg/redis"
	"mime/multipart"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const contextCacheTTL = 30 * time.Minute

func (s *chatService) CreateConversation(ctx context.Context, userID string, req chat.CreateConversationRequest) (entity.Conversation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Conversation{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Conversation{}, err
	}

	conversation := entity.Conversation{
		ID:        ULID,
		UserID:    userID,
		Title:     req.Title,
		State:     string(nlp.StateGreeting),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Conversation.CreateConversation(ctx, conversation); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create conversation")
		return entity.Conversation{}, chat.ErrCreateConversation
	}

	return conversation, nil
}

func (s *chatService) GetConversation(ctx context.Context, userID string, conversationID string) (chat.ConversationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return chat.ConversationResponse{}, err
	}

	conversation, err := repo.Conversation.GetConversationByID(ctx, conversationID)
	if err != nil {
		return chat.ConversationResponse{}, err
	}

	if conversation.UserID != userID {
		return chat.ConversationResponse{}, chat.ErrConversationNotOwned
	}

	stored, err := repo.Message.GetMessagesByConversationID(ctx, conversationID)
	if err != nil {
		return chat.ConversationResponse{}, err
	}

	convContext := s.loadOrComputeContext(ctx, conversationID, stored)

	response := chat.ConversationResponse{
		ID:        conversation.ID,
		Title:     conversation.Title,
		State:     conversation.State,
		Context:   &convContext,
		CreatedAt: conversation.CreatedAt.Format(time.RFC3339),
		UpdatedAt: conversation.UpdatedAt.Format(time.RFC3339),
	}

	for _, message := range stored {
		response.Messages = append(response.Messages, s.makeMessageResponse(ctx, message, true))
	}

	return response, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID string) ([]chat.ConversationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	conversations, err := repo.Conversation.GetConversationsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]chat.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, chat.ConversationResponse{
			ID:        conversation.ID,
			Title:     conversation.Title,
			State:     conversation.State,
			CreatedAt: conversation.CreatedAt.Format(time.RFC3339),
			UpdatedAt: conversation.UpdatedAt.Format(time.RFC3339),
		})
	}

	return result, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID string, conversationID string, req chat.SendMessageRequest, attachment *multipart.FileHeader) (chat.TurnResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return chat.TurnResponse{}, chat.ErrEmptyMessage
	}

	repo, err := s.chatRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return chat.TurnResponse{}, err
	}

	conversation, err := repo.Conversation.GetConversationByID(ctx, conversationID)
	if err != nil {
		return chat.TurnResponse{}, err
	}

	if conversation.UserID != userID {
		return chat.TurnResponse{}, chat.ErrConversationNotOwned
	}

	stored, err := repo.Message.GetMessagesByConversationID(ctx, conversationID)
	if err != nil {
		return chat.TurnResponse{}, err
	}
	history := s.historyFromStored(stored)

	entities := s.extractor.Extract(text)
	intent := s.classifier.Classify(text)
	userMeta := nlp.MessageMetadata{
		Intent:   &intent,
		Entities: entities,
	}

	var attachmentURL string
	if attachment != nil {
		if err := s.utils.ValidateAttachmentFile(attachment); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"filename":   attachment.Filename,
			}).Warn("Invalid attachment file")
			return chat.TurnResponse{}, chat.ErrInvalidAttachment
		}

		uploadedURL, err := s.s3.UploadAttachment(attachment)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload attachment")
			return chat.TurnResponse{}, chat.ErrFailedToUploadAttachment
		}
		attachmentURL = uploadedURL
	}

	userMessage, err := s.storeMessage(ctx, repo.Message.CreateMessage, conversationID, nlp.RoleUser, text, userMeta, attachmentURL)
	if err != nil {
		return chat.TurnResponse{}, err
	}

	// The state the user was replying from, before their new message lands.
	priorState := nlp.NewDialogueStateMachine().Derive(history)

	history = append(history, nlp.Message{Role: nlp.RoleUser, Text: text, Metadata: userMeta})

	// Context is recomputed from the full history every turn, never patched.
	machine := nlp.NewDialogueStateMachine()
	tracker := nlp.NewContextTracker(machine)
	convContext := tracker.ComputeContext(history)

	var (
		agentText     string
		agentMeta     nlp.MessageMetadata
		clarification *nlp.ClarificationRequest
		results       []nlp.SearchResult
	)

	switch {
	case s.isRefinementTurn(ctx, repo, conversationID, priorState, text):
		results, agentText, err = s.refineTurn(ctx, repo, conversationID, text)
		if err != nil {
			return chat.TurnResponse{}, err
		}
		machine.Override(nlp.StateRefiningSearch)
		convContext.State = machine.Derive(history)
		agentMeta = searchResultsMetadata(results)

	case convContext.ClarificationNeeded:
		request := s.clarifier.Clarify(convContext)
		clarification = &request
		agentText = request.Question

	case intent.Type == nlp.IntentSearchFlight || intent.Type == nlp.IntentSearchHotel:
		results, agentText, err = s.searchTurn(ctx, repo, conversationID, intent.Type, convContext)
		if err != nil {
			return chat.TurnResponse{}, err
		}
		agentMeta = searchResultsMetadata(results)

	default:
		agentText = s.acknowledgement(convContext)
	}

	agentMessage, err := s.storeMessage(ctx, repo.Message.CreateMessage, conversationID, nlp.RoleAgent, agentText, agentMeta, "")
	if err != nil {
		return chat.TurnResponse{}, err
	}

	if err := repo.Conversation.UpdateConversationState(ctx, conversationID, string(convContext.State)); err != nil {
		return chat.TurnResponse{}, err
	}

	s.cacheContext(ctx, conversationID, convContext)

	return chat.TurnResponse{
		UserMessage:   s.makeMessageResponse(ctx, userMessage, false),
		AgentMessage:  s.makeMessageResponse(ctx, agentMessage, false),
		State:         string(convContext.State),
		Context:       convContext,
		Clarification: clarification,
		Results:       results,
	}, nil
}

func (s *chatService) ResetConversation(ctx context.Context, userID string, conversationID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	conversation, err := repo.Conversation.GetConversationByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if conversation.UserID != userID {
		return chat.ErrConversationNotOwned
	}

	stored, err := repo.Message.GetMessagesByConversationID(ctx, conversationID)
	if err != nil {
		return err
	}

	// Stored attachments have no owner once the messages are gone; cleanup
	// failures are logged but never block the reset.
	for _, message := range stored {
		if message.AttachmentURL == "" {
			continue
		}
		if err := s.s3.DeleteFile(message.AttachmentURL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"message_id": message.ID,
				"error":      err.Error(),
			}).Warn("Failed to delete message attachment")
		}
	}

	if err := repo.Message.DeleteMessagesByConversationID(ctx, conversationID); err != nil {
		return err
	}

	if err := repo.Search.DeleteSnapshotsByConversationID(ctx, conversationID); err != nil {
		return err
	}

	if err := repo.Conversation.UpdateConversationState(ctx, conversationID, string(nlp.StateGreeting)); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit conversation reset")
		return err
	}

	if err := s.redisServer.DeleteConversationContext(ctx, redis.ConversationContextKey(conversationID)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to evict cached conversation context")
	}

	return nil
}

func (s *chatService) storeMessage(
	ctx context.Context,
	create func(c context.Context, message entity.ChatMessage) error,
	conversationID string,
	role nlp.Role,
	text string,
	meta nlp.MessageMetadata,
	attachmentURL string,
) (entity.ChatMessage, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.ChatMessage{}, err
	}

	metaJSON, err := jsoniter.MarshalToString(meta)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode message metadata")
		return entity.ChatMessage{}, err
	}

	message := entity.ChatMessage{
		ID:             ULID,
		ConversationID: conversationID,
		Role:           string(role),
		Text:           text,
		Metadata:       metaJSON,
		AttachmentURL:  attachmentURL,
		CreatedAt:      time.Now(),
	}

	if err := create(ctx, message); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store chat message")
		return entity.ChatMessage{}, chat.ErrCreateMessage
	}

	return message, nil
}

func (s *chatService) historyFromStored(stored []entity.ChatMessage) []nlp.Message {
	history := make([]nlp.Message, 0, len(stored))
	for _, message := range stored {
		var meta nlp.MessageMetadata
		if message.Metadata != "" {
			if err := jsoniter.UnmarshalFromString(message.Metadata, &meta); err != nil {
				s.log.WithFields(logrus.Fields{
					"message_id": message.ID,
					"error":      err.Error(),
				}).Warn("Failed to decode message metadata, treating as empty")
				meta = nlp.MessageMetadata{}
			}
		}
		history = append(history, message.ToNLPMessage(meta))
	}
	return history
}

func (s *chatService) makeMessageResponse(ctx context.Context, message entity.ChatMessage, presign bool) chat.MessageResponse {
	var meta nlp.MessageMetadata
	if message.Metadata != "" {
		_ = jsoniter.UnmarshalFromString(message.Metadata, &meta)
	}

	attachmentURL := message.AttachmentURL
	if presign && attachmentURL != "" {
		presigned, err := s.s3.PresignUrl(attachmentURL)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to presign attachment URL")
		} else {
			attachmentURL = presigned
		}
	}

	return chat.MessageResponse{
		ID:            message.ID,
		Role:          message.Role,
		Text:          message.Text,
		AttachmentURL: attachmentURL,
		Metadata:      meta,
		CreatedAt:     message.CreatedAt.Format(time.RFC3339),
	}
}

func (s *chatService) loadOrComputeContext(ctx context.Context, conversationID string, stored []entity.ChatMessage) nlp.ConversationContext {
	cached, err := s.redisServer.GetConversationContext(ctx, redis.ConversationContextKey(conversationID))
	if err == nil && cached != "" {
		var convContext nlp.ConversationContext
		if err := jsoniter.UnmarshalFromString(cached, &convContext); err == nil {
			return convContext
		}
	}

	tracker := nlp.NewContextTracker(nlp.NewDialogueStateMachine())
	convContext := tracker.ComputeContext(s.historyFromStored(stored))
	s.cacheContext(ctx, conversationID, convContext)
	return convContext
}

func (s *chatService) cacheContext(ctx context.Context, conversationID string, convContext nlp.ConversationContext) {
	payload, err := jsoniter.MarshalToString(convContext)
	if err != nil {
		return
	}

	if err := s.redisServer.SetConversationContext(ctx, redis.ConversationContextKey(conversationID), payload, contextCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      contextPkg.GetRequestID(ctx),
			"conversation_id": conversationID,
			"error":           err.Error(),
		}).Warn("Failed to cache conversation context")
	}
}

func (s *chatService) acknowledgement(convContext nlp.ConversationContext) string {
	switch convContext.State {
	case nlp.StateGreeting:
		return "Hi! Where would you like to go?"
	case nlp.StateReviewingPlan:
		return "Here is your plan so far. Want to change anything?"
	case nlp.StateAddingToPlan:
		return "Got it, I'll add that to your plan."
	case nlp.StateBooking:
		return "Let's get that booked."
	default:
		return "Noted. Tell me more about your trip."
	}
}

func searchResultsMetadata(results []nlp.SearchResult) nlp.MessageMetadata {
	payload := make(map[string]interface{}, 1)
	payload["count"] = len(results)

	return nlp.MessageMetadata{
		Attachments: []nlp.Attachment{
			{Type: nlp.AttachmentSearchResults, Payload: payload},
		},
	}
}
