package pantry

import (
	"sync"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// collectVariants 對 N 份請求做扇出、等待全部完成後過濾收攏
// 每個變體各自獨立執行整條管線，彼此沒有共享可變狀態；
// 結果位置對應產生它的變體序號，而非完成順序
// 部分失敗是正常結果，全部無效才算批次失敗
func collectVariants(count int, generate func(variantIndex int) (*common.Recipe, error)) (*common.VariantBatch, error) {
	recipes := make([]*common.Recipe, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			recipes[idx], errs[idx] = generate(idx + 1)
		}(i)
	}
	wg.Wait()

	familyID := common.GenerateUUID()
	batch := &common.VariantBatch{
		FamilyID: familyID,
		Results:  []common.Recipe{},
	}

	for i, recipe := range recipes {
		if errs[i] != nil {
			common.LogWarn("變體生成失敗",
				zap.Int("variant_index", i+1),
				zap.Error(errs[i]),
			)
			continue
		}
		if !validRecipe(recipe) {
			common.LogWarn("變體不完整，已捨棄", zap.Int("variant_index", i+1))
			continue
		}

		recipe.FamilyID = familyID
		recipe.VariantIndex = i + 1
		batch.Results = append(batch.Results, *recipe)
	}

	if len(batch.Results) == 0 {
		return nil, common.ErrBatchExhausted
	}

	return batch, nil
}

// validRecipe 最低限度的有效性檢查：標題、食材、步驟缺一不可
func validRecipe(r *common.Recipe) bool {
	return r != nil && r.Title != "" && len(r.Ingredients) > 0 && len(r.Instructions) > 0
}
