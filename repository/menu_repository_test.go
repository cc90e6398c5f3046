package repository

import (
	"testing"

	"github.com/Ludvin7x/lemon-api/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMenuRepo(t *testing.T) *MenuRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entity.Category{}, &entity.MenuItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewMenuRepository(db)
}

func TestCategorySlugReusableAfterDelete(t *testing.T) {
	repo := newMenuRepo(t)

	cat := entity.Category{Slug: "pizzas", Title: "Pizzas"}
	if err := repo.CreateCategory(&cat); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// the unique slug/title must be free again once the category is gone
	again := entity.Category{Slug: "pizzas", Title: "Pizzas"}
	if err := repo.CreateCategory(&again); err != nil {
		t.Fatalf("recreate: %v", err)
	}

	cats, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != again.ID {
		t.Fatalf("categories = %+v, want just the recreated one", cats)
	}
}
