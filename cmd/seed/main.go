package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/bestfoody-backend/config"
	"github.com/ikkim/bestfoody-backend/internal/app/model"
	"github.com/ikkim/bestfoody-backend/internal/app/repository"
	"github.com/ikkim/bestfoody-backend/internal/app/service"
	"github.com/ikkim/bestfoody-backend/internal/db"
	"github.com/ikkim/bestfoody-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

const seedUserCount = 10

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repository 생성
	userRepo := repository.NewUserRepository(db.GetDB())
	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	ratingService := service.NewRatingService(ratingRepo, reviewRepo)

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	restaurants, err := readRestaurantsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total restaurants to import: %d\n", len(restaurants))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 데모 사용자 생성 (레스토랑 소유자 및 리뷰 작성자)
	users, err := seedUsers(userRepo)
	if err != nil {
		log.Fatal("Failed to seed users:", err)
	}
	fmt.Printf("Seeded %d demo users\n", len(users))

	// 소유자 배정 후 배치로 저장
	for i := range restaurants {
		restaurants[i].UserID = users[i%len(users)].ID
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := restaurantRepo.BulkCreate(restaurants, batchSize); err != nil {
		log.Fatal("Failed to bulk create restaurants:", err)
	}

	// 랜덤 리뷰 생성 후 집계 계산
	fmt.Println("Seeding random reviews...")
	reviewCount := 0
	for _, restaurant := range restaurants {
		n := util.GenerateRandomNumber(0, len(users)-1)
		for j := 0; j < n; j++ {
			reviewer := users[j]
			if reviewer.ID == restaurant.UserID {
				continue
			}
			text := fmt.Sprintf("%s에 대한 데모 리뷰입니다", restaurant.Name)
			review := &model.Review{
				RestaurantID: restaurant.ID,
				UserID:       reviewer.ID,
				Rating:       util.GenerateRandomNumber(1, 5),
				ReviewText:   &text,
			}
			if err := reviewRepo.CreateReview(review); err != nil {
				log.Fatal("Failed to create review:", err)
			}
			reviewCount++
		}

		if _, err := ratingService.Recompute(restaurant.ID); err != nil {
			log.Fatal("Failed to recompute rating:", err)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total restaurants imported: %d\n", len(restaurants))
	fmt.Printf("Total reviews seeded: %d\n", reviewCount)
}

// seedUsers 데모 사용자 생성 (이미 있으면 재사용)
func seedUsers(userRepo repository.UserRepository) ([]model.User, error) {
	passwordHash, err := util.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	var users []model.User
	for i := 1; i <= seedUserCount; i++ {
		email := fmt.Sprintf("seed-user-%d@bestfoody.dev", i)

		existing, err := userRepo.FindByEmail(email)
		if err == nil {
			users = append(users, *existing)
			continue
		}

		user := model.User{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         fmt.Sprintf("Seed User %d", i),
			Role:         model.RoleUser,
		}
		if err := userRepo.Create(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// readRestaurantsFromXLSX XLSX에서 레스토랑 목록 읽기.
// 컬럼: 이름(A), 카테고리(B). 첫 행은 헤더
func readRestaurantsFromXLSX(filePath string) ([]model.Restaurant, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var restaurants []model.Restaurant
	seen := make(map[string]bool) // 중복 제거용
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		category := model.RestaurantCategory(strings.ToUpper(strings.TrimSpace(row[1])))

		if name == "" || !category.Valid() {
			skippedCount++
			continue
		}

		// 중복 체크 (이름+카테고리 기준)
		key := fmt.Sprintf("%s|%s", name, category)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		restaurants = append(restaurants, model.Restaurant{
			Name:     name,
			Category: category,
		})

		if len(restaurants)%1000 == 0 {
			fmt.Printf("Processed %d restaurants...\n", len(restaurants))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid restaurants: %d\n", len(restaurants))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return restaurants, nil
}
