package database

import (
	"fmt"
	"log"

	"probank/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

const demoAccountCount = 8

var demoAccountTypes = []string{"Savings", "Current", "Fixed Deposit"}

// SeedDemoAccounts fills an empty development database with a handful of
// plausible accounts so the dashboard has something to show. A non-empty
// table is left untouched.
func (db *DB) SeedDemoAccounts() error {
	var count int64
	if err := db.DB.Model(&models.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count accounts before seeding: %w", err)
	}
	if count > 0 {
		log.Printf("Demo seeding skipped: %d accounts already exist", count)
		return nil
	}

	for i := 0; i < demoAccountCount; i++ {
		account := &models.Account{
			Name:        gofakeit.Name(),
			Email:       gofakeit.Email(),
			AccountType: demoAccountTypes[gofakeit.Number(0, len(demoAccountTypes)-1)],
			Balance:     decimal.NewFromFloat(gofakeit.Price(0, 25000)).Round(2),
		}

		if err := db.DB.Create(account).Error; err != nil {
			return fmt.Errorf("failed to seed demo account: %w", err)
		}
	}

	log.Printf("Seeded %d demo accounts", demoAccountCount)
	return nil
}
