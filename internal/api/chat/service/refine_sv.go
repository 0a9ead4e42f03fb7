package chatService

import (
	"TravelGolang/internal/api/chat"
	chatRepository "TravelGolang/internal/api/chat/repository"
	"TravelGolang/internal/entity"
	contextPkg "TravelGolang/pkg/context"
	"TravelGolang/pkg/nlp"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	searchKindFlight = "flight"
	searchKindHotel  = "hotel"
)

// A turn is a refinement when the user is reacting to options they have
// already seen, the text reads like refinement feedback, and there is a
// previous search to refine against. The state gate uses the state the user
// was replying from, not the one that includes their new message: the
// classifier always assigns a fallback intent, which would mask
// PRESENTING_OPTIONS on the appended history.
func (s *chatService) isRefinementTurn(ctx context.Context, repo chatRepository.Client, conversationID string, priorState nlp.DialogueState, text string) bool {
	if priorState != nlp.StatePresentingOptions && priorState != nlp.StateRefiningSearch {
		return false
	}

	if !nlp.IsRefinementFeedback(text) {
		return false
	}

	if _, err := repo.Search.GetLatestSnapshot(ctx, conversationID); err != nil {
		return false
	}

	return true
}

func (s *chatService) refineTurn(ctx context.Context, repo chatRepository.Client, conversationID string, text string) ([]nlp.SearchResult, string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	snapshot, err := repo.Search.GetLatestSnapshot(ctx, conversationID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load search snapshot for refinement")
		return nil, "", err
	}

	searchCtx := s.makeSearchContext(snapshot)
	searchCtx.UserFeedback = append(searchCtx.UserFeedback, text)

	query := s.refiner.ParseRelativeQuery(text, searchCtx)
	if query.Query == "" {
		query.Query = snapshot.Query
	}

	results, err := s.runSearch(ctx, snapshot.Kind, query)
	if err != nil {
		return nil, "", err
	}

	if err := s.snapshotSearch(ctx, repo, conversationID, snapshot.Kind, query, results); err != nil {
		return nil, "", err
	}

	agentText := fmt.Sprintf("I refined the search, here are %d updated options.", len(results))
	return results, agentText, nil
}

func (s *chatService) searchTurn(ctx context.Context, repo chatRepository.Client, conversationID string, intentType nlp.IntentType, convContext nlp.ConversationContext) ([]nlp.SearchResult, string, error) {
	kind := searchKindFlight
	if intentType == nlp.IntentSearchHotel {
		kind = searchKindHotel
	}

	query := buildSearchQuery(kind, convContext.Entities)

	results, err := s.runSearch(ctx, kind, query)
	if err != nil {
		return nil, "", err
	}

	if err := s.snapshotSearch(ctx, repo, conversationID, kind, query, results); err != nil {
		return nil, "", err
	}

	agentText := fmt.Sprintf("I found %d options for you.", len(results))
	return results, agentText, nil
}

func (s *chatService) runSearch(ctx context.Context, kind string, query nlp.SearchQuery) ([]nlp.SearchResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var (
		results []nlp.SearchResult
		err     error
	)

	if kind == searchKindFlight {
		results, err = s.travelAPI.SearchFlights(ctx, query)
	} else {
		results, err = s.travelAPI.SearchHotels(ctx, query)
	}

	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"kind":       kind,
			"error":      err.Error(),
		}).Error("Search provider call failed")
		return nil, chat.ErrSearchProviderUnavailable
	}

	return results, nil
}

func (s *chatService) snapshotSearch(ctx context.Context, repo chatRepository.Client, conversationID string, kind string, query nlp.SearchQuery, results []nlp.SearchResult) error {
	requestID := contextPkg.GetRequestID(ctx)

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	filtersJSON, err := jsoniter.MarshalToString(query.Filters)
	if err != nil {
		return err
	}

	resultsJSON, err := jsoniter.MarshalToString(results)
	if err != nil {
		return err
	}

	snapshot := entity.SearchSnapshot{
		ID:             ULID,
		ConversationID: conversationID,
		Kind:           kind,
		Query:          query.Query,
		Filters:        filtersJSON,
		Results:        resultsJSON,
		CreatedAt:      time.Now(),
	}

	if err := repo.Search.CreateSnapshot(ctx, snapshot); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store search snapshot")
		return err
	}

	return nil
}

func (s *chatService) makeSearchContext(snapshot entity.SearchSnapshot) nlp.SearchContext {
	searchCtx := nlp.SearchContext{
		AppliedFilters: map[string]interface{}{},
	}

	if snapshot.Filters != "" {
		if err := jsoniter.UnmarshalFromString(snapshot.Filters, &searchCtx.AppliedFilters); err != nil {
			s.log.WithFields(logrus.Fields{
				"snapshot_id": snapshot.ID,
				"error":       err.Error(),
			}).Warn("Failed to decode snapshot filters")
			searchCtx.AppliedFilters = map[string]interface{}{}
		}
	}

	if snapshot.Results != "" {
		if err := jsoniter.UnmarshalFromString(snapshot.Results, &searchCtx.PreviousResults); err != nil {
			s.log.WithFields(logrus.Fields{
				"snapshot_id": snapshot.ID,
				"error":       err.Error(),
			}).Warn("Failed to decode snapshot results")
			searchCtx.PreviousResults = nil
		}
	}

	return searchCtx
}

func buildSearchQuery(kind string, entities []nlp.Entity) nlp.SearchQuery {
	query := nlp.SearchQuery{
		Filters: map[string]interface{}{},
		Page:    1,
	}

	var destination string
	for _, ent := range entities {
		switch ent.Type {
		case nlp.EntityDestination:
			if destination == "" {
				if value, ok := ent.Value.(string); ok {
					destination = value
				}
			}
		case nlp.EntityBudget:
			if value, ok := ent.Value.(float64); ok {
				query.Filters["maxPrice"] = value
			}
		case nlp.EntityTravelers:
			if value, ok := ent.Value.(int); ok {
				query.Filters["travelers"] = value
			}
		case nlp.EntityDate:
			if value, ok := ent.Value.(string); ok {
				if _, exists := query.Filters["departureDate"]; !exists {
					query.Filters["departureDate"] = value
				} else if _, exists := query.Filters["returnDate"]; !exists {
					query.Filters["returnDate"] = value
				}
			}
		case nlp.EntityPreference:
			if value, ok := ent.Value.(string); ok {
				query.Filters["preference"] = value
			}
		}
	}

	if kind == searchKindFlight {
		query.Query = fmt.Sprintf("flights to %s", destination)
	} else {
		query.Query = fmt.Sprintf("hotels in %s", destination)
	}

	return query
}
