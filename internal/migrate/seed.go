package migrate

import (
	"context"
	"encoding/json"
	"os"

	"school-store/internal/models"
	"school-store/internal/money"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedFile struct {
	Products []seedProduct `json:"products"`
}

type seedProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

// SeedProducts загружает демо-товары из JSON-файла, только если таблица пуста.
func SeedProducts(ctx context.Context, db *gorm.DB, log *zap.Logger, path string) error {
	var cnt int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		log.Info("Таблица products не пуста, сид пропущен", zap.Int64("count", cnt))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("Не удалось прочитать файл сида", zap.String("path", path), zap.Error(err))
		return err
	}

	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Error("Не удалось распарсить файл сида", zap.String("path", path), zap.Error(err))
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sp := range f.Products {
			cents, err := money.ParseCents(sp.Price)
			if err != nil {
				log.Error("Некорректная цена в сиде", zap.String("name", sp.Name), zap.String("price", sp.Price))
				return err
			}
			p := models.Product{
				Name:        sp.Name,
				Description: sp.Description,
				PriceCents:  cents,
				ImageURL:    sp.ImageURL,
				IsActive:    true,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		log.Info("Демо-товары загружены", zap.Int("count", len(f.Products)))
		return nil
	})
}
