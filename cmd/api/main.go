package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"civicserve/internal/adapter/api"
	"civicserve/internal/adapter/api/handler"
	apimiddleware "civicserve/internal/adapter/api/middleware"
	"civicserve/internal/adapter/api/router"
	"civicserve/internal/adapter/repository"
	"civicserve/internal/domain/service"
	"civicserve/internal/infrastructure/firebase"
	"civicserve/internal/infrastructure/realtime"
	"civicserve/internal/infrastructure/storage"
	"civicserve/internal/usecase"
	"civicserve/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		serviceAccountPath = ""
	} else if serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	requestRepo := repository.NewFirestoreServiceRequestRepository(firestoreClient)
	addressRepo := repository.NewFirestoreAddressRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	orphanRepo := repository.NewFirestoreOrphanedPaymentRepository(firestoreClient)

	hub := realtime.NewHub()
	hub.Start(ctx)

	paymentService := service.NewStripePaymentService(cfg.StripeSecretKey)
	visitorTokens := firebase.NewVisitorTokenIssuer(cfg.VisitorSecret, cfg.VisitorExpiry)

	requestUseCase := usecase.NewRequestUseCase(requestRepo, userRepo)
	addressUseCase := usecase.NewAddressUseCase(addressRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, hub)
	adminUseCase := usecase.NewAdminUseCase(requestUseCase, chatUseCase, orphanRepo)
	submissionUseCase := usecase.NewSubmissionUseCase(requestUseCase, paymentService, orphanRepo, addressRepo)
	submissionUseCase.StartCleanupRoutine(ctx)

	handler.Setup(requestUseCase, addressUseCase, chatUseCase, adminUseCase, submissionUseCase)
	handler.SetupUploadHandler(storageClient)
	handler.SetupVisitorTokenHandler(visitorTokens)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	visitorMiddleware := apimiddleware.NewVisitorMiddleware(visitorTokens)

	paymentHandler := handler.NewPaymentHandler(paymentService, requestUseCase)
	wsHandler := handler.NewWebSocketHandler(hub, chatUseCase, authMiddleware, visitorTokens)

	router.Setup(e, authMiddleware, adminMiddleware, visitorMiddleware, paymentHandler, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
