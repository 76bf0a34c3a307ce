package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/warin29/library-store-backend/internal/book"
	"github.com/warin29/library-store-backend/internal/cart"
	"github.com/warin29/library-store-backend/internal/checkout"
	"github.com/warin29/library-store-backend/internal/config"
	"github.com/warin29/library-store-backend/internal/section"
	"github.com/warin29/library-store-backend/internal/session"
	"github.com/warin29/library-store-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)

	sessions := session.NewManager(mustOpenSessions(cfg.RedisAddr))

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	if err := userService.EnsureAdmin(); err != nil {
		panic(err)
	}

	sectionService := section.NewService(section.NewPostgresRepository(db))
	bookService := book.NewService(book.NewPostgresRepository(db), sectionService)
	cartService := cart.NewService(cart.NewPostgresRepository(db), bookService)
	checkoutService := checkout.NewService(checkout.NewPostgresRepository(db))

	// home page; login/admin guards redirect here
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"flash": sessions.PopFlash(c)})
	})

	user.NewHandler(userService, sessions).RegisterRoutes(app)
	section.NewHandler(sectionService, sessions).RegisterRoutes(app)
	book.NewHandler(bookService, sessions, cfg.UploadDir).RegisterRoutes(app)
	cart.NewHandler(cartService, sessions).RegisterRoutes(app)
	checkout.NewHandler(checkoutService, sessions).RegisterRoutes(app)

	// uploaded pdfs are served back directly
	app.Static("/uploads", cfg.UploadDir)

	if err := app.Listen(cfg.ListenAddr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func mustOpenSessions(addr string) *session.RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	store, err := session.NewRedisStore(rdb, context.Background())
	if err != nil {
		panic("redis is not working: " + err.Error())
	}
	return store
}

// bootstrapSchema creates the tables on first startup. Foreign keys are
// declared without ON DELETE actions: the cascade deletes are explicit in
// the repositories so their scope stays visible.
func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            passhash TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            is_admin BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS sections (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            date_created TEXT NOT NULL,
            description TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS books (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            content TEXT NOT NULL,
            author TEXT NOT NULL,
            price NUMERIC NOT NULL CHECK (price > 0),
            section_id INT NOT NULL REFERENCES sections (id)
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users (id),
            book_id INT NOT NULL REFERENCES books (id),
            quantity INT NOT NULL CHECK (quantity BETWEEN 1 AND 5)
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users (id),
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            transaction_id INT NOT NULL REFERENCES transactions (id),
            book_id INT NOT NULL REFERENCES books (id),
            quantity INT NOT NULL,
            price NUMERIC NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users (id),
            transaction_id INT NOT NULL REFERENCES transactions (id),
            amount_payable NUMERIC NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
