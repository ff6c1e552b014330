package cmd

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/oknkahraman/appustabul/internal/configs"
	model "github.com/oknkahraman/appustabul/internal/models"
	repository "github.com/oknkahraman/appustabul/internal/repositories"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default skill category taxonomy",
	Long:  "Inserts the built-in main/sub/detail skill categories; a no-op if categories already exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN)
		skills := repository.NewSkillRepository(db)

		ctx := context.Background()

		count, err := skills.CountCategories(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			log.Printf("skill categories already present (%d), nothing to seed", count)
			return nil
		}

		inserted, err := seedSkillCategories(ctx, skills)
		if err != nil {
			return err
		}

		log.Printf("seeded %d skill categories", inserted)
		return nil
	},
}

// seedSkillCategories writes the trade taxonomy the original platform
// ships with: one main branch per craft, sub-categories per discipline,
// detail leaves per technique.
func seedSkillCategories(ctx context.Context, skills *repository.SkillRepository) (int, error) {
	type branch struct {
		name    string
		details []string
	}

	taxonomy := []struct {
		name     string
		branches []branch
	}{
		{
			name: "Metal İşleri",
			branches: []branch{
				{"Kaynakçılık", []string{
					"Gazaltı Kaynağı (MIG/MAG)",
					"Argon Kaynağı (TIG)",
					"Elektrot Kaynağı",
					"Oxy-Fuel Kaynağı",
					"Paslanmaz Kaynak",
					"Alüminyum Kaynak",
					"Döküm Kaynak",
				}},
				{"CNC Torna", []string{
					"2 Eksen CNC Torna",
					"Çok Eksenli CNC Torna",
					"Swiss Type Torna",
					"CNC Otomat Torna",
				}},
				{"CNC Dik İşlem Merkezi", []string{
					"3 Eksen İşlem Merkezi",
					"4 Eksen İşlem Merkezi",
					"5 Eksen İşlem Merkezi",
					"Yüksek Hızlı İşlem (HSM)",
				}},
				{"Üniversal Torna", nil},
				{"Sac İşleme", []string{
					"Lazer Kesim",
					"Abkant Büküm",
					"Punta Kaynak",
				}},
			},
		},
		{
			name: "Ahşap İşleri",
			branches: []branch{
				{"Mobilya İmalatı", nil},
				{"Ahşap Doğrama", nil},
			},
		},
	}

	inserted := 0
	for mainOrder, craft := range taxonomy {
		main := &model.SkillCategory{
			CategoryName:  craft.name,
			CategoryLevel: model.SkillLevelMain,
			DisplayOrder:  mainOrder + 1,
		}
		if err := skills.CreateCategory(ctx, main); err != nil {
			return inserted, err
		}
		inserted++

		for subOrder, sub := range craft.branches {
			subCategory := &model.SkillCategory{
				ParentID:      &main.ID,
				CategoryName:  sub.name,
				CategoryLevel: model.SkillLevelSub,
				DisplayOrder:  subOrder + 1,
			}
			if err := skills.CreateCategory(ctx, subCategory); err != nil {
				return inserted, err
			}
			inserted++

			for detailOrder, detail := range sub.details {
				if err := skills.CreateCategory(ctx, &model.SkillCategory{
					ParentID:      &subCategory.ID,
					CategoryName:  detail,
					CategoryLevel: model.SkillLevelDetail,
					DisplayOrder:  detailOrder + 1,
				}); err != nil {
					return inserted, err
				}
				inserted++
			}
		}
	}

	return inserted, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
