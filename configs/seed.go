package configs

import (
	"log"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seed is an explicit operator command (go run . -seed). It never runs as a
// startup side effect and is safe to re-run: everything below is an upsert.
func Seed() error {
	if err := seedGroups(); err != nil {
		return err
	}
	if err := seedAdmin(); err != nil {
		return err
	}
	if err := seedDemoUsers(); err != nil {
		return err
	}
	if err := seedMenu(); err != nil {
		return err
	}
	log.Println("seed complete")
	return nil
}

func seedGroups() error {
	for _, name := range []string{entity.GroupManager, entity.GroupDeliveryCrew, entity.GroupCustomer} {
		if err := db.FirstOrCreate(&entity.Group{}, entity.Group{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username:  "manager",
		Email:     email,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		IsAdmin:   true,
	}
	return db.Create(&admin).Error
}

func seedDemoUsers() error {
	users := []struct {
		username string
		email    string
		group    string
	}{
		{"customer", "customer@lemon.test", entity.GroupCustomer},
		{"delivery", "delivery@lemon.test", entity.GroupDeliveryCrew},
	}
	for _, u := range users {
		var count int64
		db.Model(&entity.User{}).Where("username = ?", u.username).Count(&count)
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("test1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := entity.User{Username: u.username, Email: u.email, Password: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		var group entity.Group
		if err := db.Where("name = ?", u.group).First(&group).Error; err != nil {
			return err
		}
		if err := db.Model(&user).Association("Groups").Append(&group); err != nil {
			return err
		}
	}
	return nil
}

type seedItem struct {
	title    string
	price    string
	featured bool
}

func seedMenu() error {
	categories := []struct {
		title string
		slug  string
		items []seedItem
	}{
		{"Pizzas", "pizzas", []seedItem{
			{"Margherita", "10.99", true},
			{"Pepperoni", "12.50", false},
			{"Vegetarian", "11.25", false},
			{"Hawaiian", "13.00", false},
			{"BBQ Chicken", "14.25", true},
		}},
		{"Burgers", "burgers", []seedItem{
			{"Classic Burger", "8.99", true},
			{"Cheeseburger", "9.50", false},
			{"Bacon Burger", "10.75", false},
			{"Veggie Burger", "9.25", false},
			{"Chicken Burger", "9.99", true},
		}},
		{"Pasta", "pasta", []seedItem{
			{"Spaghetti Carbonara", "13.99", true},
			{"Lasagna", "14.50", false},
			{"Penne Arrabbiata", "12.25", false},
			{"Fettuccine Alfredo", "13.50", true},
		}},
		{"Salads", "salads", []seedItem{
			{"Caesar Salad", "7.99", true},
			{"Greek Salad", "8.25", false},
			{"Caprese Salad", "8.50", false},
		}},
		{"Drinks", "drinks", []seedItem{
			{"Coke", "1.99", true},
			{"Sprite", "1.99", false},
			{"Lemonade", "2.50", false},
			{"Iced Tea", "2.00", false},
			{"Water", "1.50", true},
		}},
	}

	for _, c := range categories {
		var cat entity.Category
		if err := db.Where(entity.Category{Slug: c.slug}).
			Attrs(entity.Category{Title: c.title}).
			FirstOrCreate(&cat).Error; err != nil {
			return err
		}
		for _, it := range c.items {
			price, err := decimal.NewFromString(it.price)
			if err != nil {
				return err
			}
			if err := db.Where(entity.MenuItem{Title: it.title, CategoryID: cat.ID}).
				Attrs(entity.MenuItem{Price: price, Featured: it.featured}).
				FirstOrCreate(&entity.MenuItem{}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
