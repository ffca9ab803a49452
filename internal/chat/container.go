package chat

import (
	"github.com/saulo-duarte/coach-lambda/internal/ai"
	"github.com/saulo-duarte/coach-lambda/internal/extract"
)

type ChatContainer struct {
	Handler *Handler
	Service ChatService
}

func NewChatContainer(provider ai.Provider, extractor extract.StructuredTextExtractor) *ChatContainer {
	service := NewService(provider, extractor)
	return &ChatContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
