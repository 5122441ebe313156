package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"complidesk/internal/adapter/api"
	"complidesk/internal/adapter/api/handler"
	apimiddleware "complidesk/internal/adapter/api/middleware"
	"complidesk/internal/adapter/api/router"
	"complidesk/internal/adapter/repository"
	"complidesk/internal/domain/entity"
	"complidesk/internal/infrastructure/email"
	"complidesk/internal/infrastructure/firebase"
	"complidesk/internal/infrastructure/ratelimit"
	"complidesk/internal/infrastructure/storage"
	"complidesk/internal/infrastructure/websocket"
	"complidesk/internal/notify"
	"complidesk/internal/usecase"
	"complidesk/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		serviceAccountPath = ""
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	leadRepo := repository.NewFirestoreLeadRepository(firestoreClient)
	sellerRepo := repository.NewFirestoreSellerRepository(firestoreClient)
	templateRepo := repository.NewFirestoreTemplateRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	emailSender := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)

	emailLimiter := ratelimit.NewRateLimiter()
	emailLimiter.StartCleanupRoutine()

	// Notification pipeline: one aggregator for the back-office dashboard,
	// fed by the unread poll and by the message change feed.
	resolver := usecase.NewDirectoryResolver(leadRepo, sellerRepo)
	alerter := notify.NewWebsocketAlerter(wsManager)
	cache := notify.NewCache(cfg.NotifyCacheSize)
	aggregator := notify.NewAggregator(
		messageRepo,
		resolver,
		alerter,
		cache,
		clock.New(),
		cfg.UnreadPollInterval,
		cfg.ClearSettleDelay,
		nil,
	)
	go aggregator.Run(ctx)

	go func() {
		if err := messageRepo.WatchInserts(ctx, func(_ *entity.Message) {
			aggregator.Notify()
		}); err != nil {
			log.Printf("Message change feed stopped: %v", err)
		}
	}()

	chatUseCase := usecase.NewChatUseCase(messageRepo, storageClient, wsManager, aggregator)
	conversationStreams := usecase.NewConversationStreams(ctx, messageRepo, wsManager, clock.New(), cfg.MessageSyncInterval)
	leadUseCase := usecase.NewLeadUseCase(leadRepo, sellerRepo)
	sellerUseCase := usecase.NewSellerUseCase(sellerRepo, firebaseAuthClient)
	templateUseCase := usecase.NewTemplateUseCase(templateRepo, leadRepo, storageClient, emailSender, emailLimiter)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(sellerRepo)

	handlers := router.Handlers{
		Lead:         handler.NewLeadHandler(leadUseCase),
		Seller:       handler.NewSellerHandler(sellerUseCase),
		Template:     handler.NewTemplateHandler(templateUseCase),
		Chat:         handler.NewChatHandler(chatUseCase, conversationStreams),
		Notification: handler.NewNotificationHandler(aggregator),
		WebSocket:    handler.NewWebSocketHandler(wsManager, authMiddleware),
		Health:       handler.NewHealthHandler(),
	}

	router.Setup(e, handlers, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
