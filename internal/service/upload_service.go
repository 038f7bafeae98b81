package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/commerce-next/internal/config"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	"review":  {},
	"product": {},
	"common":  {},
}

// UploadService 文件上传服务（本地磁盘存储）
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveFile 保存上传的文件，返回可访问的 URL 路径
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w（最大 %d MB）", ErrUploadFileTooLarge, s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: %s", ErrUploadTypeDenied, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读文件头识别真实 MIME 类型，不信任扩展名
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}
	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: %s", ErrUploadTypeDenied, contentType)
		}
	}

	normalizedScene := normalizeUploadScene(scene)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	now := time.Now()
	relPath := filepath.Join(normalizedScene, now.Format("2006"), now.Format("01"), filename)
	savePath := filepath.Join(s.cfg.Upload.Dir, relPath)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(savePath)
		return "", err
	}

	return path.Join(s.cfg.Upload.BaseURL, filepath.ToSlash(relPath)), nil
}

// Remove 按 URL 删除已保存的文件
func (s *UploadService) Remove(url string) error {
	rel := strings.TrimPrefix(url, s.cfg.Upload.BaseURL)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("无效的文件路径: %s", url)
	}
	target := filepath.Join(s.cfg.Upload.Dir, filepath.FromSlash(rel))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

func normalizeUploadScene(scene string) string {
	normalized := strings.ToLower(strings.TrimSpace(scene))
	if _, ok := allowedUploadScenes[normalized]; ok {
		return normalized
	}
	return "common"
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, item := range allowed {
		if strings.EqualFold(ext, item) {
			return true
		}
	}
	return false
}
