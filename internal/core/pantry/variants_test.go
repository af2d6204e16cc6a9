package pantry

import (
	"fmt"
	"testing"

	"pantry-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestRecipe(title string) *common.Recipe {
	return &common.Recipe{
		Title:        title,
		Description:  "測試用",
		Ingredients:  []string{"食材"},
		Instructions: []string{"步驟"},
		CookingTime:  "30分鐘",
		Servings:     "2人份",
		Difficulty:   "簡單",
	}
}

func TestCollectVariantsPartialFailure(t *testing.T) {
	// 3 個變體中第 2 個失敗，批次仍成功，位置保留 1 與 3
	batch, err := collectVariants(3, func(variantIndex int) (*common.Recipe, error) {
		if variantIndex == 2 {
			return nil, fmt.Errorf("model call failed")
		}
		return validTestRecipe(fmt.Sprintf("食譜%d", variantIndex)), nil
	})
	require.NoError(t, err)

	require.Len(t, batch.Results, 2)
	assert.NotEmpty(t, batch.FamilyID)

	assert.Equal(t, 1, batch.Results[0].VariantIndex)
	assert.Equal(t, "食譜1", batch.Results[0].Title)
	assert.Equal(t, 3, batch.Results[1].VariantIndex)
	assert.Equal(t, "食譜3", batch.Results[1].Title)

	// 全部結果共享同一個關聯識別碼
	for _, r := range batch.Results {
		assert.Equal(t, batch.FamilyID, r.FamilyID)
	}
}

func TestCollectVariantsAllFailed(t *testing.T) {
	_, err := collectVariants(3, func(variantIndex int) (*common.Recipe, error) {
		return nil, fmt.Errorf("boom")
	})
	assert.ErrorIs(t, err, common.ErrBatchExhausted)
}

func TestCollectVariantsInvalidRecipesFiltered(t *testing.T) {
	// 解析成功但欄位不完整的變體視同失敗
	_, err := collectVariants(2, func(variantIndex int) (*common.Recipe, error) {
		r := validTestRecipe("空殼")
		r.Instructions = nil
		return r, nil
	})
	assert.ErrorIs(t, err, common.ErrBatchExhausted)
}

func TestCollectVariantsOrderIndependentOfCompletion(t *testing.T) {
	// 完成順序與變體序號無關，結果仍按序號排列
	release := make(chan struct{})
	batch, err := collectVariants(3, func(variantIndex int) (*common.Recipe, error) {
		if variantIndex == 1 {
			// 讓第 1 個最晚完成
			<-release
		} else if variantIndex == 3 {
			close(release)
		}
		return validTestRecipe(fmt.Sprintf("食譜%d", variantIndex)), nil
	})
	require.NoError(t, err)

	require.Len(t, batch.Results, 3)
	for i, r := range batch.Results {
		assert.Equal(t, i+1, r.VariantIndex)
	}
}

func TestValidRecipe(t *testing.T) {
	assert.True(t, validRecipe(validTestRecipe("ok")))
	assert.False(t, validRecipe(nil))

	noTitle := validTestRecipe("")
	assert.False(t, validRecipe(noTitle))

	noIngredients := validTestRecipe("ok")
	noIngredients.Ingredients = nil
	assert.False(t, validRecipe(noIngredients))

	noInstructions := validTestRecipe("ok")
	noInstructions.Instructions = nil
	assert.False(t, validRecipe(noInstructions))
}
