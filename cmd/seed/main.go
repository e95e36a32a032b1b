package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gatherly/internal/config"
	"gatherly/internal/db"
	"gatherly/internal/model"
	"gatherly/internal/repository"
)

const seedPassword = "password123"

type seedEvent struct {
	title       string
	description string
	daysAhead   int
	startTime   string
	endTime     string
	location    string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}, &model.RSVP{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	rsvpRepo := repository.NewRsvpRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []model.User{
		{Email: "admin@gatherly.local", Name: "Admin", Role: model.RoleAdmin, PasswordHash: string(hash)},
		{Email: "alice@example.com", Name: "Alice Jordan", Role: model.RoleUser, PasswordHash: string(hash)},
		{Email: "bob@example.com", Name: "Bob Tanaka", Role: model.RoleUser, PasswordHash: string(hash)},
	}
	seededUsers := make([]*model.User, 0, len(users))
	for i := range users {
		user, err := seedUser(ctx, userRepo, &users[i])
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", users[i].Email, err)
		}
		seededUsers = append(seededUsers, user)
	}
	log.Printf("Seeded %d users (password: %s)", len(seededUsers), seedPassword)

	admin := seededUsers[0]
	events := []seedEvent{
		{"Team Offsite", "Quarterly planning and board games.", 7, "10:00", "17:00", "Harbor View Loft"},
		{"Go Meetup", "Lightning talks and pizza.", 14, "18:30", "21:00", "Downtown Hub, Room 2"},
		{"Morning Run", "Easy 5k along the river.", 3, "07:00", "08:00", "Riverside Park entrance"},
	}

	created := 0
	for _, se := range events {
		date := time.Now().AddDate(0, 0, se.daysAhead)
		event := &model.Event{
			Title:       se.title,
			Description: se.description,
			Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local),
			StartTime:   se.startTime,
			EndTime:     se.endTime,
			Location:    se.location,
			CreatedBy:   &admin.ID,
		}
		if err := eventRepo.Create(ctx, event); err != nil {
			log.Fatalf("Failed to seed event %q: %v", se.title, err)
		}
		created++

		// Everyone but the organizer responds to the first event.
		if created == 1 {
			statuses := []model.RSVPStatus{model.RSVPStatusGoing, model.RSVPStatusMaybe}
			for i, user := range seededUsers[1:] {
				rsvp := &model.RSVP{UserID: user.ID, EventID: event.ID, Status: statuses[i%len(statuses)]}
				if err := rsvpRepo.Create(ctx, rsvp); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
					log.Fatalf("Failed to seed rsvp for %s: %v", user.Email, err)
				}
			}
		}
	}

	log.Printf("Seed completed successfully: %d events created", created)
}

// seedUser creates the user unless the email is already registered.
func seedUser(ctx context.Context, repo repository.UserRepository, user *model.User) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
