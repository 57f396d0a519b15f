package main

import (
	"context"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name        string
	Description string
	Price       string
	Category    string
	Brand       string
	Stock       int64
	Images      []string
}

// 初期投入する商品一覧
var products = []seedProduct{
	{
		Name:        "Ballon de football Pro",
		Description: "Ballon de football professionnel, idéal pour les matchs officiels",
		Price:       "29.99",
		Category:    "Football",
		Brand:       "Nike",
		Stock:       100,
		Images:      []string{"ballon-football-pro.jpg"},
	},
	{
		Name:        "Chaussures de football Predator",
		Description: "Chaussures de football haut de gamme pour une meilleure précision",
		Price:       "89.99",
		Category:    "Football",
		Brand:       "Adidas",
		Stock:       50,
		Images:      []string{"chaussures-predator.jpg"},
	},
	{
		Name:        "Protège-tibias Football",
		Description: "Protège-tibias légers et résistants pour une protection optimale",
		Price:       "14.99",
		Category:    "Football",
		Brand:       "Puma",
		Stock:       150,
		Images:      []string{"protege-tibias.jpg"},
	},
	{
		Name:        "Ballon de basketball NBA",
		Description: "Ballon de basketball officiel de la NBA",
		Price:       "39.99",
		Category:    "Basketball",
		Brand:       "Nike",
		Stock:       80,
		Images:      []string{"ballon-nba.jpg"},
	},
	{
		Name:        "Chaussures de basketball Air Jordan",
		Description: "Chaussures de basketball iconiques pour des performances exceptionnelles",
		Price:       "129.99",
		Category:    "Basketball",
		Brand:       "Nike",
		Stock:       30,
		Images:      []string{"air-jordan.jpg"},
	},
	{
		Name:        "Maillot de l'équipe de France",
		Description: "Maillot officiel de l'équipe de France de football",
		Price:       "79.99",
		Category:    "Football",
		Brand:       "Nike",
		Stock:       60,
		Images:      []string{"maillot-france.jpg"},
	},
	{
		Name:        "Raquette de tennis Pro",
		Description: "Raquette de tennis professionnelle pour un contrôle optimal",
		Price:       "149.99",
		Category:    "Tennis",
		Brand:       "Wilson",
		Stock:       40,
		Images:      []string{"raquette-tennis.jpg"},
	},
	{
		Name:        "Chaussures de running Performance",
		Description: "Chaussures de course légères et confortables pour les longues distances",
		Price:       "99.99",
		Category:    "Running",
		Brand:       "Asics",
		Stock:       70,
		Images:      []string{"chaussures-running.jpg"},
	},
	{
		Name:        "Tapis de yoga Premium",
		Description: "Tapis de yoga antidérapant pour une pratique confortable",
		Price:       "49.99",
		Category:    "Fitness",
		Brand:       "Lululemon",
		Stock:       90,
		Images:      []string{"tapis-yoga.jpg"},
	},
	{
		Name:        "Gants de boxe Professionnels",
		Description: "Gants de boxe en cuir véritable pour un entraînement intensif",
		Price:       "69.99",
		Category:    "Boxe",
		Brand:       "Everlast",
		Stock:       45,
		Images:      []string{"gants-boxe.jpg"},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := config.NewLogger(cfg)

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal().Err(err).Msg("migrate failed")
	}

	ctx := context.Background()
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	//既に商品が入っていれば何もしない（再実行しても安全）
	existing, _, err := productRepo.ListPublic(ctx, repo.ProductListQuery{Page: 1, Limit: 1})
	if err != nil {
		logger.Fatal().Err(err).Msg("product check failed")
	}
	if len(existing) > 0 {
		logger.Info().Msg("products already seeded, skipping")
	} else {
		for _, sp := range products {
			price, err := decimal.NewFromString(sp.Price)
			if err != nil {
				logger.Fatal().Err(err).Str("name", sp.Name).Msg("invalid seed price")
			}

			if _, err := productRepo.Create(ctx, model.Product{
				Name:        sp.Name,
				Description: sp.Description,
				Price:       price,
				Category:    sp.Category,
				Brand:       sp.Brand,
				Stock:       sp.Stock,
				Images:      sp.Images,
				IsActive:    true,
			}); err != nil {
				logger.Fatal().Err(err).Str("name", sp.Name).Msg("seed product failed")
			}
			logger.Info().Str("name", sp.Name).Msg("product seeded")
		}
	}

	//管理者アカウント
	adminEmail := "admin@breizhsport.fr"
	admin, err := userRepo.FindByEmail(ctx, adminEmail)
	if err != nil {
		logger.Fatal().Err(err).Msg("admin check failed")
	}
	if admin != nil {
		logger.Info().Msg("admin already exists, skipping")
		return
	}

	hasher := usecase.NewBcryptPasswordHasher(12)
	hash, err := hasher.Hash("Admin123!")
	if err != nil {
		logger.Fatal().Err(err).Msg("hash failed")
	}

	if err := userRepo.Create(ctx, &model.User{
		FirstName:    "Admin",
		LastName:     "System",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}); err != nil {
		logger.Fatal().Err(err).Msg("create admin failed")
	}

	logger.Info().Str("email", adminEmail).Msg("admin created")
}
