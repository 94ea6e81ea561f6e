package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"studioBack/internal/config"
	"studioBack/internal/handlers"
	"studioBack/internal/lifecycle"
	"studioBack/internal/notify"
	"studioBack/internal/pay"
	"studioBack/internal/repositories"
	"studioBack/internal/services"
	"studioBack/utils"
)

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	db         *sql.DB
	signingKey string

	tokenManager *utils.Manager
	wsManager    *WebSocketManager

	userRepo *repositories.UserRepository

	userHandler    *handlers.UserHandler
	contactHandler *handlers.ContactHandler
	requestHandler *handlers.RequestHandler
	projectHandler *handlers.ProjectHandler
	invoiceHandler *handlers.InvoiceHandler
	paymentHandler *handlers.PaymentHandler
}

func initializeApp(cfg *config.Config, db *sql.DB, rdb *redis.Client, gateway *pay.Client, fcm *messaging.Client, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	contactRepo := repositories.ContactRepository{DB: db}
	requestRepo := repositories.RequestRepository{DB: db}
	projectRepo := repositories.ProjectRepository{DB: db}
	invoiceRepo := repositories.InvoiceRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	flow := lifecycle.NewService()

	// Services
	userService := &services.UserService{
		UserRepo:     &userRepo,
		TokenManager: tokenManager,
		SigningKey:   cfg.Auth.SigningKey,
	}
	contactService := &services.ContactService{ContactRepo: &contactRepo}
	requestService := &services.RequestService{
		RequestRepo: &requestRepo,
		ProjectRepo: &projectRepo,
		Lifecycle:   flow,
		Redis:       rdb,
	}
	projectService := &services.ProjectService{
		ProjectRepo: &projectRepo,
		RequestRepo: &requestRepo,
		UserRepo:    &userRepo,
		Notifier:    notify.NewSender(fcm),
	}
	invoiceService := &services.InvoiceService{InvoiceRepo: &invoiceRepo}
	paymentService := &services.PaymentService{
		ProjectRepo: &projectRepo,
		InvoiceRepo: &invoiceRepo,
		Lifecycle:   flow,
		Gateway:     gateway,
		Redis:       rdb,
		BaseURL:     cfg.Server.BaseURL,
	}

	wsManager := NewWebSocketManager()

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	contactHandler := &handlers.ContactHandler{Service: contactService, Notify: wsManager.Notify}
	requestHandler := &handlers.RequestHandler{Service: requestService, Notify: wsManager.Notify}
	projectHandler := &handlers.ProjectHandler{Service: projectService}
	invoiceHandler := &handlers.InvoiceHandler{Service: invoiceService}
	paymentHandler := &handlers.PaymentHandler{Service: paymentService, WebhookSecret: cfg.Stripe.WebhookSecret}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		db:             db,
		signingKey:     cfg.Auth.SigningKey,
		tokenManager:   tokenManager,
		wsManager:      wsManager,
		userRepo:       &userRepo,
		userHandler:    userHandler,
		contactHandler: contactHandler,
		requestHandler: requestHandler,
		projectHandler: projectHandler,
		invoiceHandler: invoiceHandler,
		paymentHandler: paymentHandler,
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
