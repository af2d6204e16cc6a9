package pantry

import (
	"testing"

	"pantry-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestReconcilePartition(t *testing.T) {
	recipeIngredients := []string{"2 cups flour", "salt", "3 eggs"}
	inventory := []common.InventoryItem{{Name: "Eggs"}}
	requested := []string{"flour"}

	result := ReconcileIngredients(recipeIngredients, inventory, requested)

	assert.Equal(t, []string{"3 eggs"}, result.HaveIngredients)
	assert.Equal(t, []string{"salt"}, result.MissingIngredients)
}

func TestReconcileCaseFoldedBidirectional(t *testing.T) {
	// 雙向子字串：長名稱配短庫存名、短名稱配長庫存名都要命中
	result := ReconcileIngredients(
		[]string{"chicken breast", "蛋"},
		[]common.InventoryItem{{Name: "Chicken"}, {Name: "雞蛋"}},
		nil,
	)

	assert.ElementsMatch(t, []string{"chicken breast", "蛋"}, result.HaveIngredients)
	assert.Empty(t, result.MissingIngredients)
}

func TestReconcileRequestedExcludedFromMissing(t *testing.T) {
	// 使用者指定過的食材不算缺少，也不算庫存既有
	result := ReconcileIngredients(
		[]string{"牛肉 200g", "洋蔥", "油"},
		nil,
		[]string{"牛肉", "洋蔥"},
	)

	assert.Empty(t, result.HaveIngredients)
	assert.Equal(t, []string{"油"}, result.MissingIngredients)
}

func TestReconcileEverythingMissing(t *testing.T) {
	result := ReconcileIngredients([]string{"鹽", "糖"}, nil, nil)

	assert.Empty(t, result.HaveIngredients)
	assert.Equal(t, []string{"鹽", "糖"}, result.MissingIngredients)
}

func TestReconcileEmptyRecipe(t *testing.T) {
	result := ReconcileIngredients(nil, []common.InventoryItem{{Name: "蛋"}}, []string{"麵粉"})

	assert.NotNil(t, result.HaveIngredients)
	assert.NotNil(t, result.MissingIngredients)
	assert.Empty(t, result.HaveIngredients)
	assert.Empty(t, result.MissingIngredients)
}

func TestReconcileCoversEveryIngredientOnce(t *testing.T) {
	recipeIngredients := []string{"flour", "salt", "eggs", "milk", "butter"}
	inventory := []common.InventoryItem{{Name: "milk"}, {Name: "eggs"}}
	requested := []string{"flour"}

	result := ReconcileIngredients(recipeIngredients, inventory, requested)

	// have 與 missing 不重疊，聯集等於未被請求清單吸收的食材
	seen := map[string]int{}
	for _, ing := range result.HaveIngredients {
		seen[ing]++
	}
	for _, ing := range result.MissingIngredients {
		seen[ing]++
	}
	for ing, count := range seen {
		assert.Equal(t, 1, count, "ingredient %q appears more than once", ing)
	}
	assert.ElementsMatch(t, []string{"eggs", "milk"}, result.HaveIngredients)
	assert.ElementsMatch(t, []string{"salt", "butter"}, result.MissingIngredients)
}
