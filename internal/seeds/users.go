package seeds

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"github.com/skillforge-app/skillforge-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(username, email, name string, role models.Role, xp int) {
	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("SkillForge2025!"), bcrypt.DefaultCost)
	info := services.ComputeLevel(xp)

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Name:      name,
		Password:  string(hash),
		Role:      role,
		XPPoints:  xp,
		Level:     info.Level,
		LevelName: info.LevelName,
		League:    services.LeagueOf(xp),
		Image:     "https://api.dicebear.com/7.x/identicon/svg?seed=" + username,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("   ⚠️ Failed to create user %s: %v", username, err)
		return
	}
	log.Printf("   ✅ Created user %s (%s)", username, role)
}

func SeedUsers() {
	log.Println("👤 Seeding Demo Users...")

	seedUser("skillforge", "official@skillforge.dev", "SkillForge Team", models.RoleAdmin, 0)
	seedUser("talent_scout", "scout@skillforge.dev", "Talent Scout", models.RoleRecruiter, 0)
	seedUser("demo_learner", "learner@skillforge.dev", "Demo Learner", models.RoleUser, 950)
	seedUser("demo_veteran", "veteran@skillforge.dev", "Demo Veteran", models.RoleUser, 7200)
}
