package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	resend "github.com/campusarena/tournament-api/repos/resend"
	tournamentsrepo "github.com/campusarena/tournament-api/repos/tournaments"
	usersrepo "github.com/campusarena/tournament-api/repos/users"

	pkgauth "github.com/campusarena/tournament-api/pkg/auth"
	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"

	admin "github.com/campusarena/tournament-api/services/admin"
	authsvc "github.com/campusarena/tournament-api/services/auth"
	tournaments "github.com/campusarena/tournament-api/services/tournaments"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v\n", err)
	}

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	credentialsJSON := os.Getenv("GOOGLE_CREDENTIALS_JSON")
	jwtSecret := os.Getenv("JWT_SECRET")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	hostURL := os.Getenv("HOST_URL")

	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if port == "" {
		port = "8080"
	}

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	tokens := token.NewService(jwtSecret)

	usersRepo := usersrepo.NewService(firestoreClient)
	tournamentsRepo := tournamentsrepo.NewService(firestoreClient)
	resendService := resend.NewService(hostURL)

	authService := authsvc.NewAuthService(usersRepo, tokens)
	adminService := admin.NewAdminService(usersRepo)
	tournamentsService := tournaments.NewTournamentsService(tournamentsRepo, usersRepo, resendService)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	router := gin.Default()
	if allowOrigins != "" {
		router.Use(cors.New(config))
	}

	authPublicRouter := router.Group("/api/auth")
	authPrivateRouter := router.Group("/api/auth")
	authPrivateRouter.Use(pkgauth.AuthMiddleware(tokens))

	tournamentsPublicRouter := router.Group("/api/tournaments")
	tournamentsAuthRouter := router.Group("/api/tournaments")
	tournamentsAuthRouter.Use(pkgauth.AuthMiddleware(tokens))

	adminRouter := router.Group("/api/admin")
	adminRouter.Use(pkgauth.AuthMiddleware(tokens), pkgauth.RequireCapability(roles.AdministerUsers))

	authsvc.NewHTTPHandler(authsvc.HTTPOptions{
		Service:      authService,
		PublicRouter: authPublicRouter,
		AuthRouter:   authPrivateRouter,
	})

	tournaments.NewHTTPHandler(tournaments.HTTPOptions{
		Service:      tournamentsService,
		PublicRouter: tournamentsPublicRouter,
		AuthRouter:   tournamentsAuthRouter,
	})

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	log.Fatal(router.Run(":" + port))
}
