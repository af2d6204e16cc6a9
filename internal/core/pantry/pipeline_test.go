package pantry

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInvoker 以固定函數取代模型呼叫
type stubInvoker struct {
	fn    func(prompt, imageData string) (string, error)
	calls int64
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt string, imageData string) (string, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.fn(prompt, imageData)
}

func newTestService(fn func(prompt, imageData string) (string, error)) (*Service, *stubInvoker) {
	invoker := &stubInvoker{fn: fn}
	cfg := &config.Config{
		Variants: config.VariantsConfig{MaxCount: 5},
	}
	return NewService(cfg, invoker), invoker
}

func TestSuggestItemHappyPath(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return `當然！結果如下：
{"confidence": 0.92, "action": "accept", "suggestions": [
	{"name": "牛奶", "category": "乳製品", "location": "fridge", "days_until_expiry": 7, "quantity": "1瓶"}
]}`, nil
	})

	result, err := svc.SuggestItem(context.Background(), "牛奶")
	require.NoError(t, err)

	assert.Equal(t, common.ActionAccept, result.Action)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "牛奶", result.Suggestions[0].Name)
	assert.Equal(t, common.LocationFridge, result.Suggestions[0].Location)
}

func TestSuggestItemExtractionFailureIsFatal(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "抱歉，我不太確定你指的是什麼。", nil
	})

	_, err := svc.SuggestItem(context.Background(), "謎")
	assert.ErrorIs(t, err, common.ErrExtractionFailed)
}

func TestSuggestItemUpstreamFailurePropagated(t *testing.T) {
	upstream := fmt.Errorf("quota exceeded")
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "", upstream
	})

	_, err := svc.SuggestItem(context.Background(), "牛奶")
	assert.ErrorIs(t, err, upstream)
}

func TestDetectItemsHappyPath(t *testing.T) {
	svc, invoker := newTestService(func(prompt, imageData string) (string, error) {
		return `辨識結果：[{"name": "蘋果", "category": "水果", "quantity": "3顆", "location": "fridge", "days_until_expiry": 10, "confidence": 0.9}]`, nil
	})

	items, err := svc.DetectItems(context.Background(), "data:image/jpeg;base64,xxxx")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "蘋果", items[0].Name)
	assert.EqualValues(t, 1, invoker.calls)
}

func TestDetectItemsExtractionFailureIsFatal(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "這張圖片看不清楚。", nil
	})

	_, err := svc.DetectItems(context.Background(), "data:image/png;base64,xxxx")
	assert.ErrorIs(t, err, common.ErrExtractionFailed)
}

func TestQuickDefaultsFromModel(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return `{"location": "freezer", "days_until_expiry": 60}`, nil
	})

	defaults := svc.QuickDefaults(context.Background(), "冷凍蝦仁")
	assert.Equal(t, common.LocationFreezer, defaults.Location)
	assert.Equal(t, 60, defaults.DaysUntilExpiry)
}

func TestQuickDefaultsFallbackOnModelFailure(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "", fmt.Errorf("network down")
	})

	defaults := svc.QuickDefaults(context.Background(), "milk")
	assert.Equal(t, common.LocationFridge, defaults.Location)
	assert.Equal(t, fridgeExpiryDays, defaults.DaysUntilExpiry)
}

func TestQuickDefaultsRepairsUnquotedKeys(t *testing.T) {
	// 鍵沒加雙引號的回應要修復後採用，不能落到保底規則
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return `{location: "freezer", days_until_expiry: 60}`, nil
	})

	defaults := svc.QuickDefaults(context.Background(), "冷凍蝦仁")
	assert.Equal(t, common.LocationFreezer, defaults.Location)
	assert.Equal(t, 60, defaults.DaysUntilExpiry)
}

func TestQuickDefaultsFallbackOnGarbageResponse(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "我不知道。", nil
	})

	defaults := svc.QuickDefaults(context.Background(), "義大利麵")
	assert.Equal(t, common.LocationPantry, defaults.Location)
	assert.Equal(t, pantryExpiryDays, defaults.DaysUntilExpiry)
}

func TestParseShoppingLineFromModel(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return `{"name": "牛奶", "quantity": "2瓶", "category": "乳製品"}`, nil
	})

	entry := svc.ParseShoppingLine(context.Background(), "牛奶 2瓶")
	assert.Equal(t, "牛奶", entry.Name)
	assert.Equal(t, "2瓶", entry.Quantity)
	assert.Equal(t, "乳製品", entry.Category)
}

func TestParseShoppingLineFallback(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "", fmt.Errorf("timeout")
	})

	entry := svc.ParseShoppingLine(context.Background(), "牛奶 2瓶")
	assert.Equal(t, "牛奶 2瓶", entry.Name)
	assert.Equal(t, "1", entry.Quantity)
}

func recipeJSON(title string) string {
	return fmt.Sprintf(`{
		"title": "%s",
		"description": "家常菜",
		"ingredients": ["雞胸肉 300g", "洋蔥 1顆", "鹽 少許"],
		"instructions": ["切塊", "下鍋炒熟"],
		"cooking_time": "20分鐘",
		"servings": "2人份",
		"difficulty": "簡單"
	}`, title)
}

func TestGenerateRecipeSingleBypassesBatch(t *testing.T) {
	svc, invoker := newTestService(func(prompt, imageData string) (string, error) {
		return recipeJSON("蔥爆雞丁"), nil
	})

	result, err := svc.GenerateRecipe(context.Background(), common.GenerationRequest{
		Ingredients:  []string{"雞胸肉"},
		Inventory:    []common.InventoryItem{{Name: "洋蔥"}},
		VariantCount: 1,
	})
	require.NoError(t, err)

	// 單發回傳食譜本體，不包批次
	require.NotNil(t, result.Recipe)
	assert.Nil(t, result.Batch)
	assert.Equal(t, "蔥爆雞丁", result.Recipe.Title)
	assert.EqualValues(t, 1, invoker.calls)

	// 庫存比對：洋蔥在庫存、雞胸肉是指定食材、鹽兩邊都不是
	require.NotNil(t, result.Reconciliation)
	assert.Equal(t, []string{"洋蔥 1顆"}, result.Reconciliation.HaveIngredients)
	assert.Equal(t, []string{"鹽 少許"}, result.Reconciliation.MissingIngredients)
}

func TestGenerateRecipeMultiVariant(t *testing.T) {
	svc, invoker := newTestService(func(prompt, imageData string) (string, error) {
		// 從提示詞中的變化區塊推回變體序號
		if strings.Contains(prompt, "第 2 道方案") {
			return "", fmt.Errorf("model call failed")
		}
		title := "食譜A"
		if strings.Contains(prompt, "第 3 道方案") {
			title = "食譜C"
		}
		return recipeJSON(title), nil
	})

	result, err := svc.GenerateRecipe(context.Background(), common.GenerationRequest{
		Ingredients:  []string{"雞胸肉"},
		VariantCount: 3,
	})
	require.NoError(t, err)

	assert.Nil(t, result.Recipe)
	require.NotNil(t, result.Batch)
	assert.EqualValues(t, 3, invoker.calls)

	require.Len(t, result.Batch.Results, 2)
	assert.Equal(t, 1, result.Batch.Results[0].VariantIndex)
	assert.Equal(t, 3, result.Batch.Results[1].VariantIndex)
	assert.Len(t, result.Reconciliations, 2)
}

func TestGenerateRecipeAllVariantsFail(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return "", fmt.Errorf("boom")
	})

	_, err := svc.GenerateRecipe(context.Background(), common.GenerationRequest{
		Ingredients:  []string{"雞胸肉"},
		VariantCount: 3,
	})
	assert.ErrorIs(t, err, common.ErrBatchExhausted)
}

func TestGenerateRecipeVariantCountClamped(t *testing.T) {
	svc, invoker := newTestService(func(prompt, imageData string) (string, error) {
		return recipeJSON("食譜"), nil
	})

	_, err := svc.GenerateRecipe(context.Background(), common.GenerationRequest{
		Ingredients:  []string{"雞胸肉"},
		VariantCount: 99,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, invoker.calls)
}

func TestGenerateRecipeSingleIncompleteFails(t *testing.T) {
	svc, _ := newTestService(func(prompt, imageData string) (string, error) {
		return `{"title": "只有標題"}`, nil
	})

	_, err := svc.GenerateRecipe(context.Background(), common.GenerationRequest{
		Ingredients:  []string{"雞胸肉"},
		VariantCount: 1,
	})
	assert.ErrorIs(t, err, common.ErrExtractionFailed)
}
