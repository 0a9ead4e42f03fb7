package chatService

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"TravelGolang/internal/api/chat"
	chatRepository "TravelGolang/internal/api/chat/repository"
	"TravelGolang/internal/entity"
	"TravelGolang/pkg/nlp"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type stubConversationStore struct {
	conversation entity.Conversation
	created      []entity.Conversation
	updatedState string
}

func (s *stubConversationStore) CreateConversation(c context.Context, conversation entity.Conversation) error {
	s.created = append(s.created, conversation)
	return nil
}

func (s *stubConversationStore) GetConversationByID(c context.Context, id string) (entity.Conversation, error) {
	return s.conversation, nil
}

func (s *stubConversationStore) GetConversationsByUserID(c context.Context, userID string) ([]entity.Conversation, error) {
	return []entity.Conversation{s.conversation}, nil
}

func (s *stubConversationStore) UpdateConversationState(c context.Context, id string, state string) error {
	s.updatedState = state
	return nil
}

type stubMessageStore struct {
	stored  []entity.ChatMessage
	created []entity.ChatMessage
	deleted bool
}

func (s *stubMessageStore) CreateMessage(c context.Context, message entity.ChatMessage) error {
	s.created = append(s.created, message)
	return nil
}

func (s *stubMessageStore) GetMessagesByConversationID(c context.Context, conversationID string) ([]entity.ChatMessage, error) {
	return s.stored, nil
}

func (s *stubMessageStore) DeleteMessagesByConversationID(c context.Context, conversationID string) error {
	s.deleted = true
	return nil
}

type stubSearchStore struct {
	snapshot    entity.SearchSnapshot
	snapshotErr error
	created     []entity.SearchSnapshot
	deleted     bool
}

func (s *stubSearchStore) CreateSnapshot(c context.Context, snapshot entity.SearchSnapshot) error {
	s.created = append(s.created, snapshot)
	return nil
}

func (s *stubSearchStore) GetLatestSnapshot(c context.Context, conversationID string) (entity.SearchSnapshot, error) {
	if s.snapshotErr != nil {
		return entity.SearchSnapshot{}, s.snapshotErr
	}
	return s.snapshot, nil
}

func (s *stubSearchStore) DeleteSnapshotsByConversationID(c context.Context, conversationID string) error {
	s.deleted = true
	return nil
}

type stubContextCache struct {
	setKeys    []string
	deletedKey string
}

func (s *stubContextCache) SetConversationContext(ctx context.Context, key string, payload string, expiration time.Duration) error {
	s.setKeys = append(s.setKeys, key)
	return nil
}

func (s *stubContextCache) GetConversationContext(ctx context.Context, key string) (string, error) {
	return "", errors.New("cache miss")
}

func (s *stubContextCache) DeleteConversationContext(ctx context.Context, key string) error {
	s.deletedKey = key
	return nil
}

type stubTravelProvider struct {
	flightQueries []nlp.SearchQuery
	hotelQueries  []nlp.SearchQuery
	results       []nlp.SearchResult
	err           error
}

func (s *stubTravelProvider) SearchFlights(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	s.flightQueries = append(s.flightQueries, query)
	return s.results, s.err
}

func (s *stubTravelProvider) SearchHotels(ctx context.Context, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	s.hotelQueries = append(s.hotelQueries, query)
	return s.results, s.err
}

type stubObjectStore struct {
	deletedFiles []string
}

func (s *stubObjectStore) UploadAttachment(file *multipart.FileHeader) (string, error) {
	return "https://bucket.s3.amazonaws.com/attachments/test", nil
}

func (s *stubObjectStore) PresignUrl(fileName string) (string, error) {
	return fileName, nil
}

func (s *stubObjectStore) DeleteFile(fileName string) error {
	s.deletedFiles = append(s.deletedFiles, fileName)
	return nil
}

type stubIDSource struct {
	n int
}

func (s *stubIDSource) NewULIDFromTimestamp(t time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("01TESTULID%04d", s.n), nil
}

func (s *stubIDSource) ValidateAttachmentFile(file *multipart.FileHeader) error {
	return nil
}

type stubRepository struct {
	client chatRepository.Client
}

func (r *stubRepository) NewClient(tx bool) (chatRepository.Client, error) {
	return r.client, nil
}

type chatServiceFixture struct {
	service      IChatService
	conversation *stubConversationStore
	messages     *stubMessageStore
	search       *stubSearchStore
	cache        *stubContextCache
	provider     *stubTravelProvider
	objects      *stubObjectStore
	committed    bool
}

func newChatServiceFixture() *chatServiceFixture {
	fixture := &chatServiceFixture{
		conversation: &stubConversationStore{
			conversation: entity.Conversation{
				ID:     "conv-1",
				UserID: "user-1",
				Title:  "Trip to Portugal",
				State:  string(nlp.StateGreeting),
			},
		},
		messages: &stubMessageStore{},
		search:   &stubSearchStore{snapshotErr: sql.ErrNoRows},
		cache:    &stubContextCache{},
		provider: &stubTravelProvider{
			results: []nlp.SearchResult{
				{ID: "r-1", Name: "Hotel Aurora", Price: 180, Rating: 4.4},
				{ID: "r-2", Name: "Hotel Miradouro", Price: 240, Rating: 4.7},
			},
		},
		objects: &stubObjectStore{},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := chatRepository.Client{
		Conversation: fixture.conversation,
		Message:      fixture.messages,
		Search:       fixture.search,
		Commit: func() error {
			fixture.committed = true
			return nil
		},
		Rollback: func() error { return nil },
	}

	fixture.service = NewChatService(
		logger,
		&stubRepository{client: client},
		fixture.cache,
		fixture.provider,
		fixture.objects,
		&stubIDSource{},
	)

	return fixture
}

func metadataJSON(t *testing.T, meta nlp.MessageMetadata) string {
	t.Helper()
	payload, err := jsoniter.MarshalToString(meta)
	require.NoError(t, err)
	return payload
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	fixture := newChatServiceFixture()

	_, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1", chat.SendMessageRequest{Text: "   "}, nil)

	require.ErrorIs(t, err, chat.ErrEmptyMessage)
	assert.Empty(t, fixture.messages.created)
}

func TestSendMessageRejectsForeignConversation(t *testing.T) {
	fixture := newChatServiceFixture()
	fixture.conversation.conversation.UserID = "someone-else"

	_, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1", chat.SendMessageRequest{Text: "hello"}, nil)

	require.ErrorIs(t, err, chat.ErrConversationNotOwned)
	assert.Empty(t, fixture.messages.created)
}

func TestSendMessageAsksClarifyingQuestionWhenFieldsMissing(t *testing.T) {
	fixture := newChatServiceFixture()

	turn, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1", chat.SendMessageRequest{Text: "I need a hotel"}, nil)

	require.NoError(t, err)
	require.NotNil(t, turn.Clarification)
	assert.Equal(t, "Where would you like to travel to?", turn.Clarification.Question)
	assert.Equal(t, nlp.ClarificationOpenEnded, turn.Clarification.Type)
	assert.Contains(t, turn.Context.MissingFields, "destination")

	assert.Empty(t, fixture.provider.hotelQueries)
	assert.Empty(t, fixture.provider.flightQueries)
	assert.Empty(t, fixture.search.created)

	require.Len(t, fixture.messages.created, 2)
	assert.Equal(t, string(nlp.RoleUser), fixture.messages.created[0].Role)
	assert.Equal(t, turn.Clarification.Question, fixture.messages.created[1].Text)
}

func TestSendMessageRunsSearchWhenRequestComplete(t *testing.T) {
	fixture := newChatServiceFixture()

	turn, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1",
		chat.SendMessageRequest{Text: "I need a hotel in Lisbon for 2 people on June 5"}, nil)

	require.NoError(t, err)
	assert.Nil(t, turn.Clarification)
	assert.Len(t, turn.Results, 2)
	assert.Equal(t, string(nlp.StateSearching), turn.State)
	assert.Equal(t, string(nlp.StateSearching), fixture.conversation.updatedState)

	require.Len(t, fixture.provider.hotelQueries, 1)
	query := fixture.provider.hotelQueries[0]
	assert.Equal(t, "hotels in Lisbon", query.Query)
	assert.Equal(t, "June 5", query.Filters["departureDate"])
	assert.Equal(t, 2, query.Filters["travelers"])

	require.Len(t, fixture.search.created, 1)
	assert.Equal(t, "hotel", fixture.search.created[0].Kind)
	assert.Equal(t, "hotels in Lisbon", fixture.search.created[0].Query)

	require.Len(t, fixture.messages.created, 2)
	assert.Equal(t, "I found 2 options for you.", fixture.messages.created[1].Text)
	assert.Contains(t, fixture.cache.setKeys, "conversation:conv-1:context")
}

func TestSendMessageRefinesPreviousSearch(t *testing.T) {
	fixture := newChatServiceFixture()

	searchIntent := nlp.Intent{Type: nlp.IntentSearchHotel, Confidence: 0.75}
	fixture.messages.stored = []entity.ChatMessage{
		{
			ID:             "msg-1",
			ConversationID: "conv-1",
			Role:           string(nlp.RoleUser),
			Text:           "I need a hotel in Lisbon for 2 people on June 5",
			Metadata: metadataJSON(t, nlp.MessageMetadata{
				Intent: &searchIntent,
				Entities: []nlp.Entity{
					{Type: nlp.EntityDestination, Value: "Lisbon", Confidence: 0.85},
					{Type: nlp.EntityDate, Value: "June 5", Confidence: 0.9},
					{Type: nlp.EntityTravelers, Value: 2, Confidence: 0.9},
				},
			}),
		},
		{
			ID:             "msg-2",
			ConversationID: "conv-1",
			Role:           string(nlp.RoleAgent),
			Text:           "I found 2 options for you.",
			Metadata: metadataJSON(t, nlp.MessageMetadata{
				Attachments: []nlp.Attachment{
					{Type: nlp.AttachmentSearchResults, Payload: map[string]interface{}{"count": 2}},
				},
			}),
		},
	}
	fixture.search.snapshotErr = nil
	fixture.search.snapshot = entity.SearchSnapshot{
		ID:             "snap-1",
		ConversationID: "conv-1",
		Kind:           "hotel",
		Query:          "hotels in Lisbon",
		Filters:        `{"maxPrice":1000}`,
		Results:        `[]`,
	}

	turn, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1", chat.SendMessageRequest{Text: "something cheaper"}, nil)

	require.NoError(t, err)
	assert.Equal(t, string(nlp.StateRefiningSearch), turn.State)
	assert.Equal(t, string(nlp.StateRefiningSearch), fixture.conversation.updatedState)

	require.Len(t, fixture.provider.hotelQueries, 1)
	maxPrice, ok := fixture.provider.hotelQueries[0].Filters["maxPrice"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 700.0, maxPrice, 0.01)

	require.Len(t, fixture.search.created, 1)
	assert.Equal(t, "hotel", fixture.search.created[0].Kind)

	require.Len(t, fixture.messages.created, 2)
	assert.Equal(t, "I refined the search, here are 2 updated options.", fixture.messages.created[1].Text)
}

func TestSendMessageSearchProviderFailure(t *testing.T) {
	fixture := newChatServiceFixture()
	fixture.provider.results = nil
	fixture.provider.err = errors.New("upstream down")

	_, err := fixture.service.SendMessage(context.Background(), "user-1", "conv-1",
		chat.SendMessageRequest{Text: "I need a hotel in Lisbon for 2 people on June 5"}, nil)

	require.ErrorIs(t, err, chat.ErrSearchProviderUnavailable)
	assert.Empty(t, fixture.search.created)
}

func TestCreateConversationStartsAtGreeting(t *testing.T) {
	fixture := newChatServiceFixture()

	conversation, err := fixture.service.CreateConversation(context.Background(), "user-1", chat.CreateConversationRequest{Title: "Summer trip"})

	require.NoError(t, err)
	assert.Equal(t, "Summer trip", conversation.Title)
	assert.Equal(t, string(nlp.StateGreeting), conversation.State)
	assert.NotEmpty(t, conversation.ID)
	require.Len(t, fixture.conversation.created, 1)
}

func TestResetConversationClearsHistory(t *testing.T) {
	fixture := newChatServiceFixture()
	fixture.messages.stored = []entity.ChatMessage{
		{
			ID:             "msg-1",
			ConversationID: "conv-1",
			Role:           string(nlp.RoleUser),
			Text:           "here is our itinerary sketch",
			AttachmentURL:  "https://bucket.s3.amazonaws.com/attachments/sketch.png",
		},
		{
			ID:             "msg-2",
			ConversationID: "conv-1",
			Role:           string(nlp.RoleAgent),
			Text:           "Noted. Tell me more about your trip.",
		},
	}

	err := fixture.service.ResetConversation(context.Background(), "user-1", "conv-1")

	require.NoError(t, err)
	assert.True(t, fixture.messages.deleted)
	assert.True(t, fixture.search.deleted)
	assert.Equal(t, string(nlp.StateGreeting), fixture.conversation.updatedState)
	assert.True(t, fixture.committed)
	assert.Equal(t, "conversation:conv-1:context", fixture.cache.deletedKey)
	assert.Equal(t, []string{"https://bucket.s3.amazonaws.com/attachments/sketch.png"}, fixture.objects.deletedFiles)
}
