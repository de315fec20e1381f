package handler

import (
	"civicserve/internal/usecase"
)

var (
	requestHandler    *RequestHandler
	addressHandler    *AddressHandler
	chatHandler       *ChatHandler
	adminHandler      *AdminHandler
	submissionHandler *SubmissionHandler
	catalogHandler    *CatalogHandler
)

func Setup(
	requestUseCase *usecase.RequestUseCase,
	addressUseCase *usecase.AddressUseCase,
	chatUseCase *usecase.ChatUseCase,
	adminUseCase *usecase.AdminUseCase,
	submissionUseCase *usecase.SubmissionUseCase,
) {
	requestHandler = NewRequestHandler(requestUseCase)
	addressHandler = NewAddressHandler(addressUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
	submissionHandler = NewSubmissionHandler(submissionUseCase)
	catalogHandler = NewCatalogHandler()
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetAddressHandler() *AddressHandler {
	return addressHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetSubmissionHandler() *SubmissionHandler {
	return submissionHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}
