package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"apptbook/internal/database"
	"apptbook/internal/middleware"
	"apptbook/internal/modules/appointment"
	"apptbook/internal/modules/auth"
	"apptbook/internal/modules/catalog"
	"apptbook/internal/modules/payment"
	"apptbook/internal/modules/schedule"
	jwtsvc "apptbook/internal/pkg/jwt"
	"apptbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, repository.AllModels()...); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	scheduleService := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	appointmentService := appointment.NewService(appointmentRepo, scheduleRepo, serviceRepo, userRepo)
	appointmentHandler := appointment.NewHandler(appointmentService)

	paymentService := payment.NewService(
		appointmentRepo,
		appointmentService,
		serviceRepo,
		payment.NewStripeCheckoutClient(stripeKey),
		payment.Config{
			SuccessURL: envOr("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payment/success"),
			CancelURL:  envOr("CHECKOUT_CANCEL_URL", "http://localhost:3000/payment/cancel"),
		},
	)
	paymentHandler := payment.NewHandler(paymentService, webhookSecret, 5*time.Minute)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		appointmentHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			appointmentHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
		}

		// admin
		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			scheduleHandler.RegisterAdminRoutes(admin)
			appointmentHandler.RegisterAdminRoutes(admin)
		}
	}

	addr := ":" + envOr("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
