package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KonradClos/FoodtruckPricing/internal/config"
	"github.com/KonradClos/FoodtruckPricing/internal/db"
	"github.com/KonradClos/FoodtruckPricing/internal/migrations"
	"github.com/KonradClos/FoodtruckPricing/internal/seed"
	"github.com/KonradClos/FoodtruckPricing/internal/store"
)

type server struct {
	auth  *authService
	store *store.Store
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seeded %d rows", stats.Inserts)
	}

	srv := &server{
		auth:  newAuthService(database, cfg.SessionSecret),
		store: store.New(database),
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.router()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.authMiddleware)
	r.Get("/healthz", handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ingredients", s.handleIngredientsList)
		r.Post("/ingredients", s.handleIngredientCreate)
		r.Put("/ingredients/{id}", s.handleIngredientUpdate)
		r.Delete("/ingredients/{id}", s.handleIngredientDelete)

		r.Get("/packaging/items", s.handlePackagingItemsList)
		r.Post("/packaging/items", s.handlePackagingItemCreate)
		r.Put("/packaging/items/{id}", s.handlePackagingItemUpdate)
		r.Delete("/packaging/items/{id}", s.handlePackagingItemDelete)

		r.Get("/packaging/sets", s.handlePackagingSetsList)
		r.Post("/packaging/sets", s.handlePackagingSetCreate)
		r.Put("/packaging/sets/{id}", s.handlePackagingSetUpdate)
		r.Delete("/packaging/sets/{id}", s.handlePackagingSetDelete)

		r.Get("/recipes", s.handleRecipesList)
		r.Post("/recipes", s.handleRecipeCreate)
		r.Put("/recipes/{id}", s.handleRecipeUpdate)
		r.Delete("/recipes/{id}", s.handleRecipeDelete)
		r.Get("/recipes/{id}/cost", s.handleRecipeCost)
		r.Get("/recipes/{id}/price", s.handleRecipePrice)

		r.Get("/settings", s.handleSettingsGet)
		r.Put("/settings", s.handleSettingsUpdate)
		r.Get("/costmodel", s.handleCostModelGet)
		r.Put("/costmodel", s.handleCostModelUpdate)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Get("/export/ingredients.csv", s.handleExportIngredientsCSV)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
