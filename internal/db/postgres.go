package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// INGREDIENT CATALOG
	// -------------------------------
	ingredientTableSQL := `
		CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			display_name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NULL
		)
	`
	if _, err := db.Exec(ctx, ingredientTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPES
	// -------------------------------
	recipeTableSQL := `
		CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			title VARCHAR(255) NOT NULL,
			description TEXT,
			servings INT NOT NULL CHECK (servings > 0),
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			image_url VARCHAR(500) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, recipeTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// RECIPE INGREDIENT LINES
	// -------------------------------
	lineTableSQL := `
		CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id SERIAL PRIMARY KEY,
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			quantity NUMERIC(10,2) NULL,
			quantity_display VARCHAR(100) NULL,
			unit VARCHAR(50) NOT NULL,
			order_index INT NOT NULL,
			notes TEXT NULL,
			UNIQUE (recipe_id, order_index)
		)
	`
	if _, err := db.Exec(ctx, lineTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// SHOPPING LISTS (ONE PER USER)
	// -------------------------------
	listTableSQL := `
		CREATE TABLE IF NOT EXISTS shopping_lists (
			id UUID PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL REFERENCES users(id),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, listTableSQL); err != nil {
		return err
	}

	itemTableSQL := `
		CREATE TABLE IF NOT EXISTS shopping_list_items (
			id SERIAL PRIMARY KEY,
			list_id UUID NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			quantity NUMERIC(10,2) NULL,
			quantity_display VARCHAR(100) NULL,
			unit VARCHAR(50) NOT NULL,
			category VARCHAR(100) NULL,
			is_checked BOOLEAN NOT NULL DEFAULT FALSE,
			source_recipe_id UUID NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, itemTableSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
