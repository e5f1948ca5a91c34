package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	queueport "conversations/internal/infrastructure/queue/port"
	"conversations/internal/pkg/identity/application/task"
	"conversations/internal/pkg/identity/persistence/repository/adapter"
	repository "conversations/internal/pkg/identity/persistence/repository/port"
	"conversations/internal/pkg/identity/presentation/middleware"
)

// allowed upload extensions, matching the original uploader whitelist
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".png":  {},
}

// AvatarController handles avatar upload: the file lands in the uploads
// directory synchronously, thumbnailing runs as a background task.
type AvatarController struct {
	Repo       repository.UserRepository
	Q          queueport.Client
	UploadsDir string
}

func NewAvatarController(pool *pgxpool.Pool, client queueport.Client, uploadsDir string) *AvatarController {
	return &AvatarController{
		Repo:       adapter.NewPgUserRepository(pool),
		Q:          client,
		UploadsDir: uploadsDir,
	}
}

func (h *AvatarController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if _, ok := allowedExtensions[ext]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("extension %q is not allowed", ext)})
			return
		}

		path := filepath.Join(h.UploadsDir, uuid.NewString()+ext)
		if err := c.SaveUploadedFile(file, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.Repo.UpdateAvatar(ctx, userID, path, ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record avatar"})
			return
		}

		payload, err := json.Marshal(task.ProcessAvatarTaskPayload{UserID: userID, Path: path})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		opts := queueport.EnqueueOption{Queue: "identity", MaxRetry: 5}
		if _, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.ProcessAvatarTaskType, Payload: payload}, opts); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue avatar processing"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status": "processing",
			"avatar": path,
		})
	}
}
