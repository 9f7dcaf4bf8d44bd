package db

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTest mirrors internal/testdb, which cannot be imported here
// without a cycle.
func openTest(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func seed(t *testing.T, conn *gorm.DB, value any) {
	t.Helper()
	if err := conn.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

func TestUserLookupsReturnNilWhenMissing(t *testing.T) {
	conn := openTest(t)
	users := NewUserRepo(conn)

	seed(t, conn, &User{Username: "ada", Email: "ada@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"})

	byName, err := users.ByUsername("ada")
	if err != nil || byName == nil {
		t.Fatalf("ByUsername(ada) = %v, %v", byName, err)
	}
	missing, err := users.ByUsername("nobody")
	if err != nil || missing != nil {
		t.Fatalf("ByUsername(nobody) = %v, %v, want nil, nil", missing, err)
	}
	missing, err = users.ByID(99)
	if err != nil || missing != nil {
		t.Fatalf("ByID(99) = %v, %v, want nil, nil", missing, err)
	}
}

func TestAdminByUsername(t *testing.T) {
	conn := openTest(t)
	admins := NewAdminRepo(conn)
	seed(t, conn, &Admin{Username: "owner", Email: "owner@example.com", Password: "x", FirstName: "Poll", LastName: "Owner"})

	admin, err := admins.ByUsername("owner")
	if err != nil || admin == nil {
		t.Fatalf("ByUsername(owner) = %v, %v", admin, err)
	}
	missing, err := admins.ByUsername("nobody")
	if err != nil || missing != nil {
		t.Fatalf("ByUsername(nobody) = %v, %v, want nil, nil", missing, err)
	}
}

func TestPollExists(t *testing.T) {
	conn := openTest(t)
	polls := NewPollRepo(conn)
	seed(t, conn, &Admin{Username: "owner", Email: "owner@example.com", Password: "x", FirstName: "Poll", LastName: "Owner"})
	seed(t, conn, &Poll{Title: "Favorite color", IsActive: true, AdminID: 1})

	exists, err := polls.Exists(1)
	if err != nil || !exists {
		t.Fatalf("Exists(1) = %v, %v", exists, err)
	}
	exists, err = polls.Exists(99)
	if err != nil || exists {
		t.Fatalf("Exists(99) = %v, %v", exists, err)
	}
}

func TestResponseLookups(t *testing.T) {
	conn := openTest(t)
	responses := NewResponseRepo(conn)
	seed(t, conn, &Admin{Username: "owner", Email: "owner@example.com", Password: "x", FirstName: "Poll", LastName: "Owner"})
	seed(t, conn, &User{Username: "ada", Email: "ada@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"})
	seed(t, conn, &Poll{Title: "Favorite color", IsActive: true, AdminID: 1})
	seed(t, conn, &PollOption{PollID: 1, OptionText: "Red"})
	seed(t, conn, &PollResponse{UserID: 1, PollID: 1, PollOptionID: 1, ResponseDate: time.Now().UTC()})

	recorded, err := responses.ByUserAndPoll(1, 1)
	if err != nil || recorded == nil {
		t.Fatalf("ByUserAndPoll(1, 1) = %v, %v", recorded, err)
	}
	if recorded.PollOptionID != 1 {
		t.Fatalf("PollOptionID = %d, want 1", recorded.PollOptionID)
	}
	missing, err := responses.ByUserAndPoll(1, 99)
	if err != nil || missing != nil {
		t.Fatalf("ByUserAndPoll(1, 99) = %v, %v, want nil, nil", missing, err)
	}

	byPoll, err := responses.ByPoll(1)
	if err != nil || len(byPoll) != 1 {
		t.Fatalf("ByPoll(1) = %v, %v, want one row", byPoll, err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := openTest(t)
	users := NewUserRepo(conn)
	seed(t, conn, &User{Username: "ada", Email: "ada@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"})

	err := users.Create(&User{Username: "ada", Email: "other@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"})
	if err == nil {
		t.Fatal("duplicate username accepted")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("IsUniqueViolation(%v) = false", err)
	}
	if IsUniqueViolation(nil) {
		t.Fatal("IsUniqueViolation(nil) = true")
	}
}
