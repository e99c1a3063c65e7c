// Seed a fresh database with a super admin, a demo teacher and course,
// per-country pricing and a welcome discount. Intended for first-time
// local setup only.
//
// Usage: go run scripts/seed.go
package main

import (
	"guruschool_backend/internal/config"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/repository"
	"guruschool_backend/pkg/database"
	"guruschool_backend/pkg/logger"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	profiles := repository.NewProfileRepository(db)
	courses := repository.NewCourseRepository(db)
	pricing := repository.NewPricingRepository(db)
	discounts := repository.NewDiscountRepository(db)

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt failed: %v", err)
		}
		return string(h)
	}

	admin := &model.Profile{
		Email:     "admin@guruschool.io",
		Password:  hash("Admin@12345"),
		Role:      model.SuperAdmin,
		FirstName: "Admin",
	}
	if _, err := profiles.FindByEmail(admin.Email); err != nil {
		if err := profiles.Create(admin); err != nil {
			log.Fatalf("failed to create super admin: %v", err)
		}
		log.Printf("created super admin %s", admin.Email)
	}

	teacher := &model.Profile{
		Email:     "demo.teacher@guruschool.io",
		Password:  hash("Teacher@12345"),
		Role:      model.Teacher,
		FirstName: "Demo",
		LastName:  "Teacher",
	}
	if found, err := profiles.FindByEmail(teacher.Email); err != nil {
		if err := profiles.Create(teacher); err != nil {
			log.Fatalf("failed to create demo teacher: %v", err)
		}
		log.Printf("created demo teacher %s", teacher.Email)
	} else {
		// reuse the existing row so the course below keys off the right owner
		teacher = found
	}

	existing, _ := courses.FindByTeacher(teacher.ID)
	if len(existing) == 0 {
		course := &model.Course{
			Title:          "Hindi for Beginners",
			Description:    "Six months of conversational Hindi.",
			Category:       "language",
			CreatedBy:      teacher.ID,
			Price:          120,
			CurrencySymbol: "USD",
			DurationMonths: 6,
		}
		if err := courses.Create(course); err != nil {
			log.Fatalf("failed to create demo course: %v", err)
		}

		rows := []model.CoursePricing{
			{CourseID: course.ID, Country: "IN", Price: 4999, CurrencySymbol: "INR"},
			{CourseID: course.ID, Country: "US", Price: 120, CurrencySymbol: "USD"},
		}
		for i := range rows {
			if err := pricing.Upsert(&rows[i]); err != nil {
				log.Fatalf("failed to seed pricing: %v", err)
			}
		}
		log.Printf("created demo course %s with %d pricing rows", course.Title, len(rows))
	}

	if _, err := discounts.FindByCode("WELCOME10"); err != nil {
		welcome := &model.Discount{
			Code:         "WELCOME10",
			DiscountType: model.Percentage,
			Value:        10,
			AppliesTo:    model.ScopeGlobal,
			ValidFrom:    time.Now(),
		}
		if err := discounts.Create(welcome); err != nil {
			log.Fatalf("failed to seed discount: %v", err)
		}
		log.Println("created discount WELCOME10")
	}

	log.Println("seed complete")
}
