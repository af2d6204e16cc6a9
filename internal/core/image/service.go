package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pantry-assistant/internal/pkg/common"
)

// Service 圖片處理服務
// 偵測請求只接受 JPEG、PNG、HEIF/HEIC；格式以魔術位元組判斷，
// 不做解碼（HEIF 無對應解碼器，且模型端只需要原始位元組）
type Service struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewService 創建新的圖片處理服務
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProcessImage 處理圖片：下載或解碼、驗證大小與格式，回傳標準化 data URI
func (s *Service) ProcessImage(imageData string) (string, error) {
	raw, err := s.loadBytes(imageData)
	if err != nil {
		return "", err
	}

	// 檢查文件大小
	if int64(len(raw)) > s.maxSizeBytes {
		return "", common.NewError("INVALID_IMAGE_SIZE",
			fmt.Sprintf("圖片大小超出 %d bytes 上限", s.maxSizeBytes),
			http.StatusBadRequest, common.ErrInvalidImageSize)
	}

	// 檢查圖片格式
	mime, ok := sniffMime(raw)
	if !ok {
		return "", common.NewError("INVALID_IMAGE_TYPE",
			"僅支援 JPEG、PNG、HEIF/HEIC",
			http.StatusBadRequest, common.ErrInvalidImageType)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	return fmt.Sprintf("data:%s;base64,%s", mime, encoded), nil
}

// ValidateImage 驗證圖片，不回傳內容
func (s *Service) ValidateImage(imageData string) error {
	_, err := s.ProcessImage(imageData)
	return err
}

// loadBytes 取得圖片原始位元組，支援 URL、data URI 與裸 base64
func (s *Service) loadBytes(imageData string) ([]byte, error) {
	if imageData == "" {
		return nil, fmt.Errorf("image data is empty")
	}

	// URL 形式：下載
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		resp, err := s.httpClient.Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSizeBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return raw, nil
	}

	// data URI 形式：去掉前綴
	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.SplitN(imageData, ";base64,", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		payload = parts[1]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	return raw, nil
}

// heif ftyp 品牌白名單
var heifBrands = map[string]struct{}{
	"heic": {}, "heix": {}, "hevc": {}, "hevx": {},
	"heif": {}, "mif1": {}, "msf1": {},
}

// sniffMime 以魔術位元組判斷圖片格式，回傳 MIME 類型
func sniffMime(raw []byte) (string, bool) {
	if len(raw) < 12 {
		return "", false
	}

	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg", true
	case bytes.HasPrefix(raw, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png", true
	case string(raw[4:8]) == "ftyp":
		brand := string(raw[8:12])
		if _, ok := heifBrands[brand]; ok {
			return "image/heic", true
		}
	}
	return "", false
}
