package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Pogryziony/OmNomNom/internal/auth"
	"github.com/Pogryziony/OmNomNom/internal/db"
	"github.com/Pogryziony/OmNomNom/internal/recipe"
	"github.com/Pogryziony/OmNomNom/internal/router"
	"github.com/Pogryziony/OmNomNom/internal/shoppinglist"
	"github.com/Pogryziony/OmNomNom/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	listRepo := shoppinglist.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo)
	recipeService := recipe.NewService(recipeRepo, r2Client)
	listService := shoppinglist.NewService(listRepo, recipeRepo)

	// ───────────────────────── HANDLERS + ROUTES ─────────────────────────
	r := router.New(router.Handlers{
		Auth:         auth.NewHandler(authService),
		Recipes:      recipe.NewHandler(recipeService),
		ShoppingList: shoppinglist.NewHandler(listService),
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
