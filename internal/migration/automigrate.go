package migration

import (
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema through gorm for the sqlite and mysql
// dev setups where the SQL migrations are not maintained.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ingredientdomain.Ingredient{},
		&ingredientdomain.PriceUpdateEvent{},
		&recipedomain.Recipe{},
		&recipedomain.RecipeIngredientLine{},
		&costingdomain.RecipeCostImpact{},
		&yielddomain.YieldTest{},
		&productiondomain.PrepTask{},
		&orderingdomain.ShortfallSnapshot{},
	)
}
