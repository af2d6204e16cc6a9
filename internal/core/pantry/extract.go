package pantry

import (
	"pantry-assistant/internal/pkg/common"
)

// PayloadShape 期望的結構化片段形狀
type PayloadShape int

const (
	ShapeObject PayloadShape = iota // {...}
	ShapeArray                      // [...]
)

// ExtractPayload 從模型的自由文字回應中找出第一個括號平衡的片段
// 模型常在JSON前後夾雜說明文字，所以不能整串直接解析；
// 逐字元掃描並追蹤字串與跳脫狀態，避免字串內的括號干擾配對
// 找不到片段或解析失敗時回傳 ErrExtractionFailed，由呼叫端決定是否致命
func ExtractPayload(raw string, shape PayloadShape) (string, error) {
	opener, closer := byte('{'), byte('}')
	if shape == ShapeArray {
		opener, closer = '[', ']'
	}

	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case opener:
			if start < 0 {
				start = i
			}
			depth++
		case closer:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				span, ok := repairSpan(raw[start:i+1], shape)
				if !ok {
					return "", common.ErrExtractionFailed
				}
				return span, nil
			}
		}
	}

	return "", common.ErrExtractionFailed
}

// repairSpan 驗證片段可解析成期望的形狀
// 模型偶爾輸出沒加雙引號的鍵，解析失敗時先補上引號再試一次
func repairSpan(span string, shape PayloadShape) (string, bool) {
	if parsable(span, shape) {
		return span, true
	}
	repaired := common.QuoteJSONKeys(span)
	if repaired != span && parsable(repaired, shape) {
		return repaired, true
	}
	return "", false
}

// parsable 確認片段確實可以解析成期望的形狀
func parsable(span string, shape PayloadShape) bool {
	if shape == ShapeArray {
		var arr []map[string]interface{}
		return common.ParseJSON(span, &arr) == nil
	}
	var obj map[string]interface{}
	return common.ParseJSON(span, &obj) == nil
}

// ExtractObject 取出第一個物件片段並解析
func ExtractObject(raw string) (map[string]interface{}, error) {
	span, err := ExtractPayload(raw, ShapeObject)
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := common.ParseJSON(span, &obj); err != nil {
		return nil, common.ErrExtractionFailed
	}
	return obj, nil
}

// ExtractArray 取出第一個陣列片段並解析
func ExtractArray(raw string) ([]map[string]interface{}, error) {
	span, err := ExtractPayload(raw, ShapeArray)
	if err != nil {
		return nil, err
	}

	var arr []map[string]interface{}
	if err := common.ParseJSON(span, &arr); err != nil {
		return nil, common.ErrExtractionFailed
	}
	return arr, nil
}
