package chatService

import (
	"TravelGolang/internal/api/chat"
	chatRepository "TravelGolang/internal/api/chat/repository"
	"TravelGolang/internal/entity"
	"TravelGolang/pkg/nlp"
	"TravelGolang/pkg/redis"
	"TravelGolang/pkg/s3"
	"TravelGolang/pkg/travelapi"
	"TravelGolang/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"mime/multipart"
)

type IChatService interface {
	CreateConversation(ctx context.Context, userID string, req chat.CreateConversationRequest) (entity.Conversation, error)
	GetConversation(ctx context.Context, userID string, conversationID string) (chat.ConversationResponse, error)
	ListConversations(ctx context.Context, userID string) ([]chat.ConversationResponse, error)
	SendMessage(ctx context.Context, userID string, conversationID string, req chat.SendMessageRequest, attachment *multipart.FileHeader) (chat.TurnResponse, error)
	ResetConversation(ctx context.Context, userID string, conversationID string) error
}

type chatService struct {
	log            *logrus.Logger
	chatRepository chatRepository.Repository
	redisServer    redis.IRedis
	travelAPI      travelapi.ItfTravelAPI
	s3             s3.ItfS3
	utils          utils.IUtils

	extractor  *nlp.EntityExtractor
	classifier *nlp.IntentClassifier
	clarifier  *nlp.ClarificationGenerator
	refiner    *nlp.SearchQueryRefiner
}

func NewChatService(
	log *logrus.Logger,
	cr chatRepository.Repository,
	redisServer redis.IRedis,
	travelAPI travelapi.ItfTravelAPI,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IChatService {
	return &chatService{
		log:            log,
		chatRepository: cr,
		redisServer:    redisServer,
		travelAPI:      travelAPI,
		s3:             s3Client,
		utils:          utils,
		extractor:      nlp.NewEntityExtractor(),
		classifier:     nlp.NewIntentClassifier(),
		clarifier:      nlp.NewClarificationGenerator(),
		refiner:        nlp.NewSearchQueryRefiner(),
	}
}
