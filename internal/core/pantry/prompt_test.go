package pantry

import (
	"testing"

	"pantry-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func recipeRequest() common.GenerationRequest {
	days := 2
	return common.GenerationRequest{
		Intent:      common.IntentRecipe,
		Ingredients: []string{"雞胸肉", "洋蔥"},
		Constraints: common.RecipeConstraints{
			ServingSize:         "2人份",
			DietaryRestrictions: []string{"無麩質"},
			Complexity:          common.ComplexityQuick,
		},
		Inventory: []common.InventoryItem{
			{Name: "雞胸肉", Quantity: "300g", DaysUntilExpiry: &days},
		},
		VariantCount: 1,
		VariantIndex: 1,
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	// 相同輸入必須產生逐位元組相同的提示詞
	requests := []common.GenerationRequest{
		{Intent: common.IntentSuggestion, ItemName: "牛奶"},
		{Intent: common.IntentDetection},
		{Intent: common.IntentShopping, Line: "牛奶 2瓶"},
		{Intent: common.IntentQuickDefaults, ItemName: "雞蛋"},
		recipeRequest(),
	}

	for _, req := range requests {
		first := BuildPrompt(req)
		second := BuildPrompt(req)
		assert.NotEmpty(t, first, "intent: %s", req.Intent)
		assert.Equal(t, first, second, "intent: %s", req.Intent)
	}
}

func TestBuildPromptUnknownIntentEmpty(t *testing.T) {
	assert.Empty(t, BuildPrompt(common.GenerationRequest{Intent: "unknown"}))
}

func TestRecipePromptInventoryBlock(t *testing.T) {
	withInventory := BuildPrompt(recipeRequest())
	assert.Contains(t, withInventory, "庫存")
	assert.Contains(t, withInventory, "雞胸肉")
	assert.Contains(t, withInventory, "剩餘 2 天")

	req := recipeRequest()
	req.Inventory = nil
	withoutInventory := BuildPrompt(req)
	assert.NotContains(t, withoutInventory, "庫存")
}

func TestRecipePromptComplexityBlocks(t *testing.T) {
	quick := BuildPrompt(recipeRequest())
	assert.Contains(t, quick, "15 到 30 分鐘")

	req := recipeRequest()
	req.Constraints.Complexity = common.ComplexitySophisticated
	sophisticated := BuildPrompt(req)
	assert.Contains(t, sophisticated, "45 分鐘以上")
	assert.NotContains(t, sophisticated, "15 到 30 分鐘")
}

func TestRecipePromptVariationBlock(t *testing.T) {
	req := recipeRequest()
	req.VariantIndex = 1
	first := BuildPrompt(req)
	assert.NotContains(t, first, "明顯不同")

	req.VariantIndex = 3
	third := BuildPrompt(req)
	assert.Contains(t, third, "第 3 道方案")
	assert.Contains(t, third, "明顯不同")
}

func TestRecipePromptConstraints(t *testing.T) {
	prompt := BuildPrompt(recipeRequest())
	assert.Contains(t, prompt, "份量：2人份")
	assert.Contains(t, prompt, "無麩質")
}

func TestSuggestionPromptEmbedsItemName(t *testing.T) {
	prompt := BuildPrompt(common.GenerationRequest{
		Intent:   common.IntentSuggestion,
		ItemName: "帕瑪森起司",
	})
	assert.Contains(t, prompt, "帕瑪森起司")
	// 輸出格式範例與封閉枚舉要寫在提示詞裡
	assert.Contains(t, prompt, "accept")
	assert.Contains(t, prompt, "choose")
	assert.Contains(t, prompt, "specify")
	assert.Contains(t, prompt, "pantry")
	assert.Contains(t, prompt, "fridge")
	assert.Contains(t, prompt, "freezer")
}
