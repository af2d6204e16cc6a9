package pantry

import (
	"context"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeResult 食譜生成結果
// 單發請求填 Recipe 與 Reconciliation；多變體請求填 Batch 與
// Reconciliations（與 Batch.Results 逐一對齊），兩組恰好擇一非空
type RecipeResult struct {
	Recipe          *common.Recipe                `json:"recipe,omitempty"`
	Reconciliation  *common.ReconciliationResult  `json:"reconciliation,omitempty"`
	Batch           *common.VariantBatch          `json:"batch,omitempty"`
	Reconciliations []common.ReconciliationResult `json:"reconciliations,omitempty"`
}

// GenerateRecipe 依食材與限制條件生成食譜
// 變體數為 1 時直接跑一次管線，回傳單一食譜而非批次；
// 大於 1 時併發扇出，等全部完成後收攏，至少一個有效才算成功
func (s *Service) GenerateRecipe(ctx context.Context, req common.GenerationRequest) (*RecipeResult, error) {
	count := req.VariantCount
	if count < 1 {
		count = 1
	}
	if count > s.config.Variants.MaxCount {
		count = s.config.Variants.MaxCount
	}

	if count == 1 {
		recipe, err := s.generateSingleRecipe(ctx, req, 1)
		if err != nil {
			return nil, err
		}
		if !validRecipe(recipe) {
			return nil, common.ErrExtractionFailed
		}

		rec := ReconcileIngredients(recipe.Ingredients, req.Inventory, req.Ingredients)
		return &RecipeResult{
			Recipe:         recipe,
			Reconciliation: &rec,
		}, nil
	}

	batch, err := collectVariants(count, func(variantIndex int) (*common.Recipe, error) {
		return s.generateSingleRecipe(ctx, req, variantIndex)
	})
	if err != nil {
		return nil, err
	}

	reconciliations := make([]common.ReconciliationResult, 0, len(batch.Results))
	for _, recipe := range batch.Results {
		reconciliations = append(reconciliations, ReconcileIngredients(recipe.Ingredients, req.Inventory, req.Ingredients))
	}

	common.LogInfo("多變體食譜生成完成",
		zap.String("family_id", batch.FamilyID),
		zap.Int("requested", count),
		zap.Int("valid", len(batch.Results)),
	)

	return &RecipeResult{
		Batch:           batch,
		Reconciliations: reconciliations,
	}, nil
}

// generateSingleRecipe 跑一次完整的生成管線：提示詞 → 模型 → 萃取 → 補齊
func (s *Service) generateSingleRecipe(ctx context.Context, req common.GenerationRequest, variantIndex int) (*common.Recipe, error) {
	variantReq := req
	variantReq.Intent = common.IntentRecipe
	variantReq.VariantIndex = variantIndex

	raw, err := s.invoker.Invoke(ctx, BuildPrompt(variantReq), "")
	if err != nil {
		return nil, err
	}

	obj, err := ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	return NormalizeRecipe(obj), nil
}
