package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/myutami16/camp-store/internal/auth"
	"github.com/myutami16/camp-store/internal/config"
	"github.com/myutami16/camp-store/internal/database"
	"github.com/myutami16/camp-store/internal/media"
	"github.com/myutami16/camp-store/internal/models"
	"github.com/myutami16/camp-store/internal/ratelimit"
	"github.com/myutami16/camp-store/internal/router"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// provision the first super-admin on an empty install
	if err := seedSuperAdmin(db, cfg.Seed); err != nil {
		log.Fatalf("seed super-admin: %v", err)
	}

	ctx := context.Background()

	mediaStore, err := media.New(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("init media store: %v", err)
	}

	codec := auth.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	revocation := auth.NewRevocationStore(db, codec.Lifetime)
	revocation.StartSweeper(ctx, time.Hour)

	gate := auth.NewGate(db, codec, revocation)

	limiter := ratelimit.New(ratelimit.DefaultWindow)
	limiter.StartSweeper(ctx)

	r := router.Setup(cfg, router.Deps{
		DB:      db,
		Codec:   codec,
		Gate:    gate,
		Store:   revocation,
		Limiter: limiter,
		Media:   mediaStore,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

// seedSuperAdmin creates the configured super-admin when no account exists.
// Skipped when the seed section is unset or an admin is already present.
func seedSuperAdmin(db *gorm.DB, seed config.SeedConfig) error {
	if seed.Username == "" || seed.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = seed.Username
	}

	admin := models.Admin{
		Username:     seed.Username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}

	log.Printf("seeded super-admin %q", seed.Username)
	return nil
}
