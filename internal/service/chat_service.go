package service

import (
	"context"
	"errors"
	"fmt"

	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/pkg/ai/orchestrator"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/portfolio"
)

const chatLogModule = "CHAT"

// IChatService defines the chat service interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetSelectionOptions(ctx context.Context, request *dto.SelectionOptionsRequest) (*dto.SelectionOptionsResponse, error)
}

// chatService is the request boundary around the turn orchestrator. It holds no
// conversation state; everything it needs arrives in the request.
type chatService struct {
	orchestrator *orchestrator.Orchestrator
	store        *portfolio.Store
	logger       logger.ILogger
}

func NewChatService(orchestrator *orchestrator.Orchestrator, store *portfolio.Store, logger logger.ILogger) IChatService {
	return &chatService{
		orchestrator: orchestrator,
		store:        store,
		logger:       logger,
	}
}

func (s *chatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	result, err := s.orchestrator.HandleTurn(ctx, request.Turns(), request.State)
	if err != nil {
		details := map[string]interface{}{
			"error":    err.Error(),
			"messages": len(request.Messages),
		}
		if errors.Is(err, llm.ErrProviderFailed) {
			s.logger.Error(chatLogModule, "LLM provider failed, turn aborted", details)
		} else {
			s.logger.Error(chatLogModule, "Turn failed", details)
		}
		// surfaced to the client as a generic 500 by the error middleware
		return nil, err
	}

	return &dto.ChatResponse{
		Response:       result.Response,
		State:          result.State,
		NeedsSelection: result.NeedsSelection(),
	}, nil
}

func (s *chatService) GetSelectionOptions(ctx context.Context, request *dto.SelectionOptionsRequest) (*dto.SelectionOptionsResponse, error) {
	var options []portfolio.SelectionOption
	switch request.Type {
	case "":
		options = s.store.AllOptions()
	case portfolio.OptionTypeProject, portfolio.OptionTypeExperience:
		options = s.store.Options(request.Type)
	default:
		return nil, fmt.Errorf("unknown selection type %q", request.Type)
	}

	return &dto.SelectionOptionsResponse{Options: options}, nil
}
