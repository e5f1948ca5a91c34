package task

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "conversations/internal/infrastructure/queue/port"
	repoAdapter "conversations/internal/pkg/identity/persistence/repository/adapter"
)

// ProcessAvatarTaskType is the queue task name for post-processing an
// uploaded avatar image.
const ProcessAvatarTaskType = "identity:process_avatar"

// thumbBound is the box the thumbnail must fit in, matching the list
// view's avatar size.
const thumbBound = 35

// ProcessAvatarTaskPayload is the JSON payload transported via the queue.
type ProcessAvatarTaskPayload struct {
	UserID int64  `json:"userId"`
	Path   string `json:"path"`
}

// RegisterProcessAvatarTask binds the task handler to the provided server.
// The handler decodes the uploaded image, writes a thumbnail variant next
// to it and records both paths on the user row.
func RegisterProcessAvatarTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(ProcessAvatarTaskType, func(ctx context.Context, t qport.Task) error {
		var p ProcessAvatarTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		thumbPath, err := writeThumbnail(p.Path)
		if err != nil {
			return fmt.Errorf("process avatar for user %d: %w", p.UserID, err)
		}

		repo := repoAdapter.NewPgUserRepository(pool)
		return repo.UpdateAvatar(ctx, p.UserID, p.Path, thumbPath)
	})
}

func writeThumbnail(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}

	thumb := Thumbnail(src, thumbBound)

	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	thumbPath := filepath.Join(dir, "thumb_"+base[:len(base)-len(ext)]+".png")

	out, err := os.Create(thumbPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := png.Encode(out, thumb); err != nil {
		return "", err
	}
	return thumbPath, nil
}

// Thumbnail downscales src to fit inside a bound x bound box, keeping
// aspect ratio. Images already inside the box are returned resampled at
// their own size. Nearest-neighbour is enough at avatar sizes.
func Thumbnail(src image.Image, bound int) *image.RGBA {
	srcBounds := src.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()

	w, h := srcW, srcH
	if w > bound || h > bound {
		if w >= h {
			h = h * bound / w
			w = bound
		} else {
			w = w * bound / h
			h = bound
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := srcBounds.Min.X + x*srcW/w
			sy := srcBounds.Min.Y + y*srcH/h
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
