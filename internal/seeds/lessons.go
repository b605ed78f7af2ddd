package seeds

import (
	"errors"
	"log"

	"github.com/skillforge-app/skillforge-backend/internal/database"
	"github.com/skillforge-app/skillforge-backend/internal/models"
	"gorm.io/gorm"
)

func SeedLessons() {
	log.Println("📚 Seeding Lesson Catalog...")

	lessons := []models.Lesson{
		{ID: "lesson_go_basics", Title: "Go Basics: Variables and Types", Difficulty: models.DifficultyBeginner, Category: "Programming", SkillName: "Go"},
		{ID: "lesson_go_functions", Title: "Go Functions and Methods", Difficulty: models.DifficultyBeginner, Category: "Programming", SkillName: "Go"},
		{ID: "lesson_go_concurrency", Title: "Goroutines and Channels", Difficulty: models.DifficultyAdvanced, Category: "Programming", SkillName: "Go"},
		{ID: "lesson_js_intro", Title: "JavaScript Fundamentals", Difficulty: models.DifficultyBeginner, Category: "Programming", SkillName: "JavaScript"},
		{ID: "lesson_js_async", Title: "Promises and Async/Await", Difficulty: models.DifficultyIntermediate, Category: "Programming", SkillName: "JavaScript"},
		{ID: "lesson_sorting", Title: "Sorting Algorithms", Difficulty: models.DifficultyIntermediate, Category: "Algorithms", SkillName: "Data Structures"},
		{ID: "lesson_graphs", Title: "Graph Traversal", Difficulty: models.DifficultyAdvanced, Category: "Algorithms", SkillName: "Data Structures"},
		{ID: "lesson_big_o", Title: "Big-O Analysis", Difficulty: models.DifficultyBeginner, Category: "Algorithms", SkillName: "Data Structures"},
		{ID: "lesson_sql_select", Title: "SQL SELECT Queries", Difficulty: models.DifficultyBeginner, Category: "Databases", SkillName: "SQL"},
		{ID: "lesson_sql_joins", Title: "SQL Joins In Depth", Difficulty: models.DifficultyIntermediate, Category: "Databases", SkillName: "SQL"},
		{ID: "lesson_indexing", Title: "Database Indexing", Difficulty: models.DifficultyAdvanced, Category: "Databases", SkillName: "SQL"},
		{ID: "lesson_http", Title: "HTTP Fundamentals", Difficulty: models.DifficultyBeginner, Category: "Web", SkillName: "Networking"},
		{ID: "lesson_rest", Title: "Designing REST APIs", Difficulty: models.DifficultyIntermediate, Category: "Web", SkillName: "API Design"},
		{ID: "lesson_auth", Title: "Authentication Patterns", Difficulty: models.DifficultyAdvanced, Category: "Web", SkillName: "Security"},
		{ID: "lesson_git_basics", Title: "Git Essentials", Difficulty: models.DifficultyBeginner, Category: "Tools", SkillName: "Git"},
		{ID: "lesson_docker", Title: "Containerizing with Docker", Difficulty: models.DifficultyIntermediate, Category: "Tools", SkillName: "DevOps"},
		{ID: "lesson_ci_cd", Title: "CI/CD Pipelines", Difficulty: models.DifficultyAdvanced, Category: "Tools", SkillName: "DevOps"},
		{ID: "lesson_testing", Title: "Unit Testing Fundamentals", Difficulty: models.DifficultyBeginner, Category: "Quality", SkillName: "Testing"},
		{ID: "lesson_tdd", Title: "Test-Driven Development", Difficulty: models.DifficultyIntermediate, Category: "Quality", SkillName: "Testing"},
		{ID: "lesson_code_review", Title: "Effective Code Review", Difficulty: models.DifficultyIntermediate, Category: "Quality", SkillName: "Collaboration"},
	}

	created := 0
	for _, lesson := range lessons {
		var existing models.Lesson
		err := database.DB.First(&existing, "id = ?", lesson.ID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("   ⚠️ Failed to check lesson %s: %v", lesson.ID, err)
			continue
		}
		if err := database.DB.Create(&lesson).Error; err != nil {
			log.Printf("   ⚠️ Failed to create lesson %s: %v", lesson.ID, err)
			continue
		}
		created++
	}

	log.Printf("   ✅ Lesson catalog ready (%d created, %d total)", created, len(lessons))
}
