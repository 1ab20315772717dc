package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/careerforge/backend/internal/config"
	"github.com/careerforge/backend/internal/generation"
	"github.com/careerforge/backend/internal/handlers"
	appMiddleware "github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/services"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := services.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelSetup()

	userService, err := services.NewMongoUserService(setupCtx, db)
	if err != nil {
		log.Fatalf("User service init failed: %v", err)
	}
	profileService, err := services.NewMongoProfileService(setupCtx, db)
	if err != nil {
		log.Fatalf("Profile service init failed: %v", err)
	}
	resumeService, err := services.NewMongoResumeService(setupCtx, db)
	if err != nil {
		log.Fatalf("Resume service init failed: %v", err)
	}
	portfolioService, err := services.NewMongoPortfolioService(setupCtx, db)
	if err != nil {
		log.Fatalf("Portfolio service init failed: %v", err)
	}
	communityService, err := services.NewMongoCommunityService(setupCtx, db)
	if err != nil {
		log.Fatalf("Community service init failed: %v", err)
	}

	generator, err := generation.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GenAIModel)
	if err != nil {
		log.Fatalf("Generation client init failed: %v", err)
	}

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.SessionCookieName, cfg.CookieDomain)
	profileHandler := handlers.NewProfileHandler(profileService)
	resumeHandler := handlers.NewResumeHandler(resumeService, userService, generator, cfg.GenerationTimeout())
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, userService, generator, cfg.GenerationTimeout())
	communityHandler := handlers.NewCommunityHandler(communityService, userService)
	chatHandler := handlers.NewChatHandler(generator, cfg.GenerationTimeout())

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	sessionAuth := appMiddleware.SessionAuth(cfg.JWTSecret, cfg.SessionCookieName)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(sessionAuth)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(sessionAuth)

			r.Get("/", profileHandler.GetProfile)
			r.Patch("/", profileHandler.PatchProfile)

			r.Post("/education", profileHandler.AddEducation)
			r.Put("/education/{entryId}", profileHandler.UpdateEducation)
			r.Delete("/education/{entryId}", profileHandler.RemoveEducation)

			r.Post("/experience", profileHandler.AddExperience)
			r.Put("/experience/{entryId}", profileHandler.UpdateExperience)
			r.Delete("/experience/{entryId}", profileHandler.RemoveExperience)

			r.Post("/certificate", profileHandler.AddCertificate)
			r.Put("/certificate/{entryId}", profileHandler.UpdateCertificate)
			r.Delete("/certificate/{entryId}", profileHandler.RemoveCertificate)

			r.Post("/project", profileHandler.AddProject)
			r.Put("/project/{entryId}", profileHandler.UpdateProject)
			r.Delete("/project/{entryId}", profileHandler.RemoveProject)

			r.Post("/skills", profileHandler.AddSkills)
			r.Delete("/skills", profileHandler.RemoveSkills)
			r.Put("/skills", profileHandler.ReplaceSkills)

			r.Post("/tools", profileHandler.AddTools)
			r.Delete("/tools", profileHandler.RemoveTools)
			r.Put("/tools", profileHandler.ReplaceTools)
		})

		r.Route("/resume", func(r chi.Router) {
			r.Use(sessionAuth)

			r.Post("/generate", resumeHandler.Generate)
			r.Get("/my-resumes", resumeHandler.ListMine)

			r.Route("/{resumeId}", func(r chi.Router) {
				r.Get("/", resumeHandler.Get)
				r.Put("/", resumeHandler.Update)
				r.Delete("/", resumeHandler.Delete)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Use(sessionAuth)

			r.Post("/generate", portfolioHandler.Generate)
			r.Get("/my-portfolios", portfolioHandler.ListMine)

			r.Route("/{portfolioId}", func(r chi.Router) {
				r.Get("/", portfolioHandler.Get)
				r.Put("/", portfolioHandler.Update)
				r.Delete("/", portfolioHandler.Delete)
			})
		})

		r.Route("/community", func(r chi.Router) {
			// Public reads
			r.Get("/posts", communityHandler.ListPosts)
			r.Get("/posts/{postId}", communityHandler.GetPost)
			r.Get("/posts/{postId}/comments", communityHandler.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(sessionAuth)

				r.Post("/posts", communityHandler.CreatePost)
				r.Put("/posts/{postId}", communityHandler.UpdatePost)
				r.Delete("/posts/{postId}", communityHandler.DeletePost)

				r.Post("/posts/{postId}/comments", communityHandler.CreateComment)
				r.Put("/comments/{commentId}", communityHandler.UpdateComment)
				r.Delete("/comments/{commentId}", communityHandler.DeleteComment)

				r.Post("/posts/{postId}/like", communityHandler.ToggleLike)
				r.Post("/posts/{postId}/bookmark", communityHandler.ToggleBookmark)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Post("/chat", chatHandler.Send)
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Printf("CareerForge API server starting on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}
