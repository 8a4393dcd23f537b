package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"share-platform/pkg/config"
	"share-platform/pkg/database"
	"share-platform/pkg/idgen"
	"share-platform/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Rows are written straight to the tables so seeding does not depend on the
// services being up.
type account struct {
	ID        int64
	Phone     string
	Password  string
	Nickname  string
	AvatarURL string
	Bonus     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (account) TableName() string { return "accounts" }

type share struct {
	ID          int64
	UserID      int64
	Title       string
	IsOriginal  bool
	Author      string
	Cover       string
	Summary     string
	Price       int
	DownloadURL string
	ShowFlag    bool
	AuditStatus string
	Reason      string
	BuyCount    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (share) TableName() string { return "shares" }

type notice struct {
	ID        int64
	Content   string
	ShowFlag  bool
	CreatedAt time.Time
}

func (notice) TableName() string { return "notices" }

func main() {
	password := flag.String("password", "password123", "password for every demo account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	ids, err := idgen.NewGenerator(cfg.SnowflakeNode)
	if err != nil {
		log.Error("Failed to create id generator: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, ids, *password, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, ids *idgen.Generator, password string, log *logger.Logger) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	testUsers := []struct {
		phone    string
		nickname string
	}{
		{"13800000001", "alice"},
		{"13800000002", "bob"},
		{"13800000003", "carol"},
	}

	userIDs := make([]int64, 0, len(testUsers))
	for _, u := range testUsers {
		var existing account
		err := db.Where("phone = ?", u.phone).First(&existing).Error
		if err == nil {
			log.Info("Account %s already exists, skipping", u.phone)
			userIDs = append(userIDs, existing.ID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("look up account %s: %w", u.phone, err)
		}

		acc := &account{
			ID:        ids.NextID(),
			Phone:     u.phone,
			Password:  string(hashedPassword),
			Nickname:  u.nickname,
			AvatarURL: "https://niit-soft.oss-cn-hangzhou.aliyuncs.com/avatar/8.jpg",
			Bonus:     100,
		}
		if err := db.Create(acc).Error; err != nil {
			return fmt.Errorf("create account %s: %w", u.phone, err)
		}

		log.Info("Created account: %s (%d)", acc.Nickname, acc.ID)
		userIDs = append(userIDs, acc.ID)
	}

	var count int64
	if err := db.Model(&share{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count shares: %w", err)
	}
	if count > 0 {
		log.Info("Shares already present (%d), skipping", count)
		return nil
	}

	shares := []*share{
		{Title: "Go 并发编程实战", Author: "alice", Price: 30, IsOriginal: true, AuditStatus: "PASS", ShowFlag: true, Reason: "通过"},
		{Title: "Redis 设计与实现", Author: "bob", Price: 20, AuditStatus: "PASS", ShowFlag: true, Reason: "通过"},
		{Title: "PostgreSQL 笔记", Author: "carol", Price: 0, IsOriginal: true, AuditStatus: "PASS", ShowFlag: true, Reason: "通过"},
		{Title: "分布式系统导论", Author: "alice", Price: 150, AuditStatus: "PASS", ShowFlag: true, Reason: "通过"},
		{Title: "待审核的资源", Author: "bob", Price: 10, AuditStatus: "NOT_YET", Reason: "未审核"},
	}
	for i, s := range shares {
		s.UserID = userIDs[i%len(userIDs)]
		s.Summary = fmt.Sprintf("%s 的演示资源", s.Author)
		s.Cover = fmt.Sprintf("https://covers.example.com/%d.png", i+1)
		s.DownloadURL = fmt.Sprintf("https://pan.example.com/s/demo-%d", i+1)
		if err := db.Create(s).Error; err != nil {
			return fmt.Errorf("create share %q: %w", s.Title, err)
		}
		log.Info("Created share: %s (price %d, %s)", s.Title, s.Price, s.AuditStatus)
	}

	if err := db.Create(&notice{Content: "欢迎来到资源分享平台", ShowFlag: true}).Error; err != nil {
		return fmt.Errorf("create notice: %w", err)
	}

	return nil
}
