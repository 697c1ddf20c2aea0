// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev admin (admin@example.com) already exists.
//
// The fixtures cover each access path: a team-owned booking, a booking whose
// event type inherits its team from a parent, a personal booking, and a
// booking without an owner.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	auditdomain "booking-audit/backend/internal/auditlog/domain"
	auditrepo "booking-audit/backend/internal/auditlog/repository"
	"booking-audit/backend/internal/config"
	"booking-audit/backend/internal/db"
	"booking-audit/backend/internal/security"
	userdomain "booking-audit/backend/internal/user/domain"
	userrepo "booking-audit/backend/internal/user/repository"
)

const (
	adminEmail    = "admin@example.com"
	ownerEmail    = "owner@example.com"
	memberEmail   = "member@example.com"
	outsiderEmail = "outsider@example.com"
	devPassword   = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgresRepository(pool)

	existing, err := users.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()

	createUser := func(email, name string) int64 {
		id, err := users.Create(ctx, &userdomain.User{
			Email:        email,
			Name:         name,
			PasswordHash: passwordHash,
			CreatedAt:    now,
		})
		if err != nil {
			log.Fatalf("create user %s: %v", email, err)
		}
		return id
	}

	adminID := createUser(adminEmail, "Org Admin")
	ownerID := createUser(ownerEmail, "Booking Owner")
	memberID := createUser(memberEmail, "Org Member")
	outsiderID := createUser(outsiderEmail, "Outside Owner")

	orgID := createTeam(ctx, pool, "Acme Org", true)
	teamID := createTeam(ctx, pool, "Sales Team", false)

	createMembership(ctx, pool, adminID, orgID, "ADMIN")
	createMembership(ctx, pool, ownerID, orgID, "MEMBER")
	createMembership(ctx, pool, memberID, orgID, "MEMBER")
	createMembership(ctx, pool, adminID, teamID, "OWNER")
	createMembership(ctx, pool, memberID, teamID, "MEMBER")

	teamEventType := createEventType(ctx, pool, "Sales Call", &teamID, nil)
	childEventType := createEventType(ctx, pool, "Sales Call (Managed)", nil, &teamEventType)
	personalEventType := createEventType(ctx, pool, "1:1 Meeting", nil, nil)

	createBooking(ctx, pool, "team-booking-001", &ownerID, &teamEventType)
	createBooking(ctx, pool, "inherited-booking-001", &ownerID, &childEventType)
	createBooking(ctx, pool, "personal-booking-001", &ownerID, &personalEventType)
	createBooking(ctx, pool, "outsider-booking-001", &outsiderID, &personalEventType)
	createBooking(ctx, pool, "orphan-booking-001", nil, &personalEventType)

	entries := auditrepo.NewPostgresRepository(pool)
	for _, seed := range []struct {
		bookingUID string
		action     string
	}{
		{"team-booking-001", "BOOKING_CREATED"},
		{"team-booking-001", "BOOKING_RESCHEDULED"},
		{"inherited-booking-001", "BOOKING_CREATED"},
		{"personal-booking-001", "BOOKING_CREATED"},
		{"personal-booking-001", "BOOKING_CANCELLED"},
		{"outsider-booking-001", "BOOKING_CREATED"},
		{"orphan-booking-001", "BOOKING_CREATED"},
	} {
		if err := entries.Create(ctx, &auditdomain.Entry{
			ID:          uuid.New().String(),
			BookingUID:  seed.bookingUID,
			ActorUserID: ownerID,
			Action:      seed.action,
			Resource:    "booking",
			IP:          "127.0.0.1",
			CreatedAt:   now,
		}); err != nil {
			log.Fatalf("create audit entry for %s: %v", seed.bookingUID, err)
		}
	}

	log.Println("Seed applied.")
}

func createTeam(ctx context.Context, pool *pgxpool.Pool, name string, isOrganization bool) int64 {
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO teams (name, is_organization) VALUES ($1, $2) RETURNING id`,
		name, isOrganization,
	).Scan(&id)
	if err != nil {
		log.Fatalf("create team %s: %v", name, err)
	}
	return id
}

func createMembership(ctx context.Context, pool *pgxpool.Pool, userID, teamID int64, role string) {
	_, err := pool.Exec(ctx,
		`INSERT INTO memberships (user_id, team_id, role) VALUES ($1, $2, $3)`,
		userID, teamID, role,
	)
	if err != nil {
		log.Fatalf("create membership %d/%d: %v", userID, teamID, err)
	}
}

func createEventType(ctx context.Context, pool *pgxpool.Pool, title string, teamID, parentID *int64) int64 {
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO event_types (title, team_id, parent_id) VALUES ($1, $2, $3) RETURNING id`,
		title, teamID, parentID,
	).Scan(&id)
	if err != nil {
		log.Fatalf("create event type %s: %v", title, err)
	}
	return id
}

func createBooking(ctx context.Context, pool *pgxpool.Pool, uid string, userID, eventTypeID *int64) {
	_, err := pool.Exec(ctx,
		`INSERT INTO bookings (uid, user_id, event_type_id) VALUES ($1, $2, $3)`,
		uid, userID, eventTypeID,
	)
	if err != nil {
		log.Fatalf("create booking %s: %v", uid, err)
	}
}
