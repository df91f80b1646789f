// Package seed populates the database with development data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"forkful/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RootEmail identifies the administrative account that never authors
// seeded comments.
const RootEmail = "root@example.com"

// commentTextLimit caps generated comment text at list-view length.
const commentTextLimit = 50

// Seeder writes generated records through an open GORM connection.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func New(db *gorm.DB) *Seeder {
	return &Seeder{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Comments inserts n generated comments, each attributed to a random
// non-root user and a random restaurant. It fails before writing anything
// when either pool is empty.
func (s *Seeder) Comments(ctx context.Context, n int) error {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("email <> ?", RootEmail).Find(&users).Error; err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if len(users) == 0 {
		return errors.New("no non-root users to attribute comments to; seed users first")
	}

	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Find(&restaurants).Error; err != nil {
		return fmt.Errorf("loading restaurants: %w", err)
	}
	if len(restaurants) == 0 {
		return errors.New("no restaurants to comment on; seed restaurants first")
	}

	comments := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		text := gofakeit.Sentence(12)
		if runes := []rune(text); len(runes) > commentTextLimit {
			text = string(runes[:commentTextLimit])
		}
		comments = append(comments, models.Comment{
			Text:         text,
			UserID:       users[s.rand.Intn(len(users))].ID,
			RestaurantID: restaurants[s.rand.Intn(len(restaurants))].ID,
		})
	}

	return s.db.WithContext(ctx).Create(&comments).Error
}

// Revert removes every comment. Users, restaurants and relations stay.
func (s *Seeder) Revert(ctx context.Context) error {
	return s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Comment{}).Error
}

// Fixtures inserts the baseline accounts, categories and restaurants the
// comment seeder builds on. It is idempotent by email and name.
func (s *Seeder) Fixtures(ctx context.Context) error {
	if err := s.users(ctx); err != nil {
		return err
	}
	categories, err := s.categories(ctx)
	if err != nil {
		return err
	}
	return s.restaurants(ctx, categories)
}

func (s *Seeder) users(ctx context.Context) error {
	accounts := []struct {
		name  string
		email string
	}{
		{"root", RootEmail},
		{"user1", "user1@example.com"},
		{"user2", "user2@example.com"},
	}
	for _, a := range accounts {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("email = ?", a.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Name: a.name, Email: a.email, Password: string(hash)}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("creating user %s: %w", a.email, err)
		}
	}
	return nil
}

func (s *Seeder) categories(ctx context.Context) ([]models.Category, error) {
	names := []string{"Chinese cuisine", "Japanese cuisine", "Italian cuisine", "Mexican cuisine", "Vegetarian cuisine", "American cuisine"}
	for _, name := range names {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Category{}).
			Where("name = ?", name).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		if err := s.db.WithContext(ctx).Create(&models.Category{Name: name}).Error; err != nil {
			return nil, fmt.Errorf("creating category %s: %w", name, err)
		}
	}
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Seeder) restaurants(ctx context.Context, categories []models.Category) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	restaurants := make([]models.Restaurant, 0, 50)
	for i := 0; i < 50; i++ {
		restaurants = append(restaurants, models.Restaurant{
			Name:        gofakeit.Company(),
			Phone:       gofakeit.Phone(),
			Address:     gofakeit.Address().Address,
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Image:       fmt.Sprintf("https://loremflickr.com/320/240/restaurant,food?lock=%d", i),
			CategoryID:  categories[s.rand.Intn(len(categories))].ID,
		})
	}
	return s.db.WithContext(ctx).Create(&restaurants).Error
}
