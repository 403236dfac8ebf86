package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"apptbook/internal/database"
	"apptbook/internal/domain"
	"apptbook/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "apptbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db, repository.AllModels()...); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data (appointments first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM schedules")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	services := repository.NewServiceRepository(db)
	schedules := repository.NewScheduleRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Name:         "Administrator",
		Email:        "admin@apptbook.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}
	log.Println("Admin created: admin@apptbook.local / admin123")

	clientEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range clientEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Name:         fmt.Sprintf("Client %d", i+1),
			Email:        email,
			Phone:        fmt.Sprintf("+1 555 010 00%02d", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
		}
		if err := users.Create(ctx, &client); err != nil {
			log.Fatal("Failed to create client:", err)
		}
	}

	// ================== SERVICES ==================
	log.Println("Creating services...")
	for _, s := range []domain.Service{
		{Name: "Consultation", Price: 50, DurationMinutes: 30},
		{Name: "Standard Session", Price: 90, DurationMinutes: 60},
		{Name: "Extended Session", Price: 160, DurationMinutes: 90},
	} {
		svc := s
		if err := services.Create(ctx, &svc); err != nil {
			log.Fatal("Failed to create service:", err)
		}
	}

	// ================== SCHEDULES ==================
	log.Println("Creating schedules...")
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		sch := domain.Schedule{
			DayOfWeek:   day,
			StartTime:   "09:00",
			EndTime:     "18:00",
			IsAvailable: true,
		}
		if err := schedules.Create(ctx, &sch); err != nil {
			log.Fatal("Failed to create schedule:", err)
		}
	}

	log.Println("Seed complete.")
}
