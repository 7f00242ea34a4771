package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

// 允许上传的扩展名及其 Content-Type，图片会额外解析宽高。
var uploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".zip":  "application/zip",
}

type uploadResult struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	StoredName  string `json:"storedName"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// UploadFile 处理后台文件上传，表单字段为 file。
func (a *API) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的文件")
		return
	}
	if file.Size > a.uploadMaxBytes {
		respondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("文件大小不能超过 %d MB", a.uploadMaxBytes>>20))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := uploadTypes[ext]
	if !ok {
		respondError(c, http.StatusBadRequest, "不支持的文件类型")
		return
	}

	result := uploadResult{
		FileName:    filepath.Base(file.Filename),
		Size:        file.Size,
		ContentType: contentType,
	}
	if strings.HasPrefix(contentType, "image/") {
		width, height, err := imageSize(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无法识别的图片文件")
			return
		}
		result.Width, result.Height = width, height
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondServerError(c, err, "创建上传目录失败")
		return
	}

	result.StoredName = fmt.Sprintf("%s-%s%s", a.now().Format("20060102"), uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, result.StoredName)); err != nil {
		respondServerError(c, err, "保存文件失败")
		return
	}
	result.URL = strings.TrimRight(a.uploadURL, "/") + "/" + result.StoredName

	a.logger.Info("file uploaded",
		zap.String("name", result.StoredName),
		zap.Int64("size", result.Size),
		zap.String("contentType", contentType),
	)
	respondCreated(c, result)
}

func imageSize(file *multipart.FileHeader) (int, int, error) {
	src, err := file.Open()
	if err != nil {
		return 0, 0, err
	}
	defer src.Close()

	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
