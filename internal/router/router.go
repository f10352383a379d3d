package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Pogryziony/OmNomNom/internal/auth"
	"github.com/Pogryziony/OmNomNom/internal/middleware"
	"github.com/Pogryziony/OmNomNom/internal/recipe"
	"github.com/Pogryziony/OmNomNom/internal/shoppinglist"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Recipes      *recipe.Handler
	ShoppingList *shoppinglist.Handler
}

func New(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/feed", h.Recipes.Feed)
	r.GET("/ingredients", h.Recipes.ListIngredients)

	// ───────────────────────── RECIPE ROUTES ─────────────────────────
	recipes := r.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware())
	{
		recipes.POST("", h.Recipes.Create)
		recipes.GET("", h.Recipes.ListMine)
		recipes.GET("/:id", h.Recipes.Get)
		recipes.PUT("/:id", h.Recipes.Update)
		recipes.DELETE("/:id", h.Recipes.Delete)

		recipes.POST("/:id/publish", h.Recipes.Publish)
		recipes.POST("/:id/unpublish", h.Recipes.Unpublish)
		recipes.POST("/:id/scale", h.Recipes.Scale)
		recipes.POST("/:id/image", h.Recipes.UploadImage)
	}

	// ───────────────────────── SHOPPING LIST ROUTES ─────────────────────────
	list := r.Group("/shopping-list")
	list.Use(middleware.AuthMiddleware())
	{
		list.GET("", h.ShoppingList.List)
		list.POST("/generate", h.ShoppingList.Generate)
		list.POST("/items", h.ShoppingList.AddItem)
		list.PATCH("/items/:id", h.ShoppingList.UpdateItem)
		list.DELETE("/items/:id", h.ShoppingList.DeleteItem)
		list.DELETE("/checked", h.ShoppingList.ClearChecked)
	}

	return r
}
