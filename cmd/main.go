package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/hfpartners/case-api/internal/activity"
	"github.com/hfpartners/case-api/internal/auth"
	"github.com/hfpartners/case-api/internal/cases"
	"github.com/hfpartners/case-api/internal/clients"
	"github.com/hfpartners/case-api/internal/logger"
	"github.com/hfpartners/case-api/internal/models"
	"github.com/hfpartners/case-api/internal/store"
	"github.com/hfpartners/case-api/internal/users"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := store.Connect()
	if err != nil {
		log.Fatal("database connection failed", "err", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Invitation{},
		&models.Client{},
		&models.Case{},
		&models.Activity{},
	); err != nil {
		log.Fatal("auto migration failed", "err", err)
	}

	allowAnonymous := os.Getenv("ALLOW_ANONYMOUS_FALLBACK") == "true"
	stages := cases.StagesFromEnv()

	usersRepo := users.NewRepository()
	engine := cases.NewEngine(cases.NewRepository(), stages, log)

	caseHandler := cases.NewHandler(db, engine, usersRepo, log)
	activityHandler := activity.NewHandler(db, usersRepo, log)
	clientHandler := clients.NewHandler(db, log)
	userHandler := users.NewHandler(db, log)

	r := mux.NewRouter()

	// Open routes
	r.HandleFunc("/login", auth.LoginHandler(db)).Methods("POST")
	r.HandleFunc("/register", userHandler.Register).Methods("POST")

	// Everything else carries an optional (or required) identity.
	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware(allowAnonymous))

	// Cases
	api.HandleFunc("/cases", caseHandler.CreateCase).Methods("POST")
	api.HandleFunc("/cases", caseHandler.ListCases).Methods("GET")
	api.HandleFunc("/cases/{id}", caseHandler.GetCase).Methods("GET")
	api.HandleFunc("/cases/{id}", caseHandler.UpdateCase).Methods("PATCH")
	api.HandleFunc("/cases/{id}", caseHandler.DeleteCase).Methods("DELETE")
	api.HandleFunc("/cases/{id}/comments", activityHandler.CreateComment).Methods("POST")
	api.HandleFunc("/board", caseHandler.Board).Methods("GET")

	// Clients
	api.HandleFunc("/clients", clientHandler.CreateClient).Methods("POST")
	api.HandleFunc("/clients", clientHandler.ListClients).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.UpdateClient).Methods("PATCH")
	api.HandleFunc("/clients/{id}", clientHandler.DeleteClient).Methods("DELETE")

	// Users and invitations
	api.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	api.HandleFunc("/users/invite", userHandler.Invite).Methods("POST")
	api.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PATCH")
	api.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("server listening", "port", port, "stages", len(stages), "anonymousFallback", allowAnonymous)
	log.Fatal("server stopped", "err", http.ListenAndServe(":"+port, handler))
}
