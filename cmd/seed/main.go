// Package main resets the journal database and fills it with sample data.
//
// Usage:
//
//	DATABASE_URI=sqlite://./data/journal.db go run ./cmd/seed
//
// Every table is dropped and recreated before seeding, and the entry search
// index under the data path is rebuilt to match. Configuration is read
// the same way the server reads it (flags, environment, .env).
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/traveljournal/journal-server/internal/auth"
	"github.com/traveljournal/journal-server/internal/config"
	"github.com/traveljournal/journal-server/internal/domain"
	"github.com/traveljournal/journal-server/internal/logger"
	"github.com/traveljournal/journal-server/internal/search"
	"github.com/traveljournal/journal-server/internal/service"
	"github.com/traveljournal/journal-server/internal/store"
	"github.com/traveljournal/journal-server/internal/store/sqlstore"
	"github.com/traveljournal/journal-server/internal/validation"
)

type seedUser struct {
	username string
	email    string
	password string
}

type seedEntry struct {
	location    string
	date        string
	description string
	photoURL    string
	tag         string
}

var users = []seedUser{
	{username: "john_doe", email: "john@example.com", password: "password123"},
	{username: "jane_doe", email: "jane@example.com", password: "password456"},
}

// entries[i] belongs to users[i].
var entries = []seedEntry{
	{
		location:    "New York, NY",
		date:        "2024-10-15",
		description: "Visited Central Park.",
		photoURL:    "https://example.com/photo1.jpg",
		tag:         "Travel",
	},
	{
		location:    "San Francisco, CA",
		date:        "2024-09-20",
		description: "Saw the Golden Gate Bridge.",
		photoURL:    "https://example.com/photo2.jpg",
		tag:         "Nature",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	target, err := sqlstore.ParseURI(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Invalid database URI: %v", err)
	}

	fmt.Printf("Resetting database: %s\n", cfg.Database.URI)
	if err := sqlstore.Reset(target); err != nil {
		log.Fatalf("Failed to reset database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := sqlstore.Open(ctx, cfg.Database.URI, logger.Discard().Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	if err := seed(ctx, s); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	if err := reindex(ctx, cfg, s); err != nil {
		log.Fatalf("Failed to rebuild search index: %v", err)
	}

	fmt.Println("Database seeded successfully!")
}

func seed(ctx context.Context, s store.Store) error {
	tags := make(map[string]*domain.Tag)

	for i, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}

		user := &domain.User{Username: u.username, Email: u.email, PasswordHash: hash}
		if err := s.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.username, err)
		}
		fmt.Printf("  user %s (id %d)\n", user.Username, user.ID)

		e := entries[i]
		date, err := domain.ParseEntryDate(e.date)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", e.date, err)
		}

		entry := &domain.Entry{
			Location:    e.location,
			Date:        date,
			Description: e.description,
			UserID:      user.ID,
		}
		if err := s.CreateEntry(ctx, entry); err != nil {
			return fmt.Errorf("create entry %s: %w", e.location, err)
		}

		if err := s.CreatePhoto(ctx, &domain.Photo{URL: e.photoURL, EntryID: entry.ID}); err != nil {
			return fmt.Errorf("create photo %s: %w", e.photoURL, err)
		}

		tag, ok := tags[e.tag]
		if !ok {
			tag = &domain.Tag{Name: e.tag}
			if err := s.CreateTag(ctx, tag); err != nil {
				return fmt.Errorf("create tag %s: %w", e.tag, err)
			}
			tags[e.tag] = tag
		}

		if _, err := s.AddTagToEntry(ctx, entry.ID, tag.ID); err != nil {
			return fmt.Errorf("tag entry %d: %w", entry.ID, err)
		}
		fmt.Printf("  entry %q tagged %s\n", entry.Location, tag.Name)
	}

	return nil
}

// reindex rebuilds the entry search index from the freshly seeded rows.
func reindex(ctx context.Context, cfg *config.Config, s store.Store) error {
	index, _, err := search.NewSearchIndex(search.Options{DataPath: cfg.Data.BasePath})
	if err != nil {
		return err
	}
	defer index.Close()

	svc := service.NewSearchService(index, s, validation.New(), logger.Discard().Logger)
	return svc.RebuildIndex(ctx)
}
