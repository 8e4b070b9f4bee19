package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"varanbook/internal/database"
	"varanbook/internal/domain"
)

func main() {
	db, err := database.Connect("varanbook.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM shortlists")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM password_reset_tokens")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM tenants")

	// ================== PLATFORM OPERATOR ==================
	log.Println("Creating platform operator...")
	operatorHash, _ := bcrypt.GenerateFromPassword([]byte("Operator#123"), bcrypt.DefaultCost)
	operator := domain.User{
		Email:        "operator@varanbook.in",
		PasswordHash: string(operatorHash),
		FullName:     "Platform Operator",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	db.Create(&operator)
	log.Println("Operator created: operator@varanbook.in / Operator#123")

	// ================== DEMO TENANT ==================
	log.Println("Creating demo tenant...")
	tenant := domain.Tenant{
		Name:          "Shubh Vivah Kendra",
		Slug:          "shubhvivah",
		ContactPerson: "Ramesh Kulkarni",
		ContactEmail:  "ramesh@shubhvivah.in",
		ContactNumber: "+91 98220 12345",
		Address:       "FC Road, Pune",
		Pin:           "411004",
		Plan:          domain.PlanStarter,
		MaxUsers:      500,
		MaxAdmins:     5,
		IsActive:      true,
	}
	db.Create(&tenant)

	// Tenant admin
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("Admin#1234"), bcrypt.DefaultCost)
	admin := domain.User{
		TenantID:     &tenant.ID,
		Email:        "admin@shubhvivah.in",
		PasswordHash: string(adminHash),
		FullName:     "Ramesh Kulkarni",
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	db.Create(&admin)
	log.Println("Tenant admin created: admin@shubhvivah.in / Admin#1234")

	// ================== MEMBERS + PROFILES ==================
	log.Println("Creating members...")
	names := []string{"Anita Deshmukh", "Vikram Joshi", "Sneha Patil", "Rahul Kale"}
	genders := []domain.Gender{domain.GenderFemale, domain.GenderMale, domain.GenderFemale, domain.GenderMale}
	for i, name := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("Member#123"), bcrypt.DefaultCost)
		member := domain.User{
			TenantID:     &tenant.ID,
			Email:        fmt.Sprintf("member%d@shubhvivah.in", i+1),
			PasswordHash: string(hash),
			FullName:     name,
			Phone:        fmt.Sprintf("+91 98220 543%02d", i+10),
			Role:         domain.RoleMember,
			IsActive:     true,
			IsVerified:   true,
		}
		db.Create(&member)

		dob := time.Date(1992+i, time.March, 10+i, 0, 0, 0, 0, time.UTC)
		profile := domain.Profile{
			TenantID:      tenant.ID,
			UserID:        member.ID,
			Gender:        genders[i],
			DateOfBirth:   &dob,
			MaritalStatus: domain.NeverMarried,
			HeightCM:      158 + i*5,
			City:          "Pune",
			State:         "Maharashtra",
			Education:     "B.E.",
			Occupation:    "Software Engineer",
			Status:        domain.ProfileActive,
		}
		db.Create(&profile)
	}

	log.Println("Seed finished.")
}
