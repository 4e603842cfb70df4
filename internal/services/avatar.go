package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/localmedia"
	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

type AvatarService interface {
	GenerateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
	SetUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
}

type avatarService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	media    localmedia.Store

	bgColors []color.NRGBA
	fontFace font.Face
}

// Default palette, used when AVATAR_COLORS is not set. Muted tones that
// keep white initials readable.
var defaultAvatarColors = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0xF5, A: 0xFF},
	{R: 0x0C, G: 0xA6, B: 0x78, A: 0xFF},
	{R: 0xD9, G: 0x6C, B: 0x2F, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0xDB, G: 0x44, B: 0x6B, A: 0xFF},
	{R: 0x0E, G: 0x74, B: 0x90, A: 0xFF},
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, media localmedia.Store) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	bgColors := defaultAvatarColors
	if raw := strings.TrimSpace(os.Getenv("AVATAR_COLORS")); raw != "" {
		parsed, err := parseColorList(raw)
		if err != nil {
			return nil, fmt.Errorf("parse AVATAR_COLORS: %w", err)
		}
		bgColors = parsed
	}

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	return &avatarService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		media:    media,
		bgColors: bgColors,
		fontFace: face,
	}, nil
}

// GenerateUserAvatar renders an initials avatar, points the user row at it
// and saves the row. The row must already exist.
func (as *avatarService) GenerateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	const size = 512
	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base := as.bgColors[rand.Intn(len(as.bgColors))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.Username)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode avatar png: %w", err)
	}

	if err := as.storeAvatar(user, &buf); err != nil {
		return err
	}
	return as.userRepo.Save(ctx, tx, user)
}

func (as *avatarService) SetUserAvatarFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}

	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return err
	}
	if err := as.storeAvatar(user, &processed); err != nil {
		return err
	}
	return as.userRepo.Save(ctx, tx, user)
}

// storeAvatar writes under a versioned key so clients never see a stale
// cached object, then best-effort deletes the old one.
func (as *avatarService) storeAvatar(user *types.User, buf *bytes.Buffer) error {
	oldURL := user.Avatar

	key := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())
	if err := as.media.Save(key, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("store user avatar: %w", err)
	}
	user.Avatar = as.media.PublicURL(key)

	if oldKey := mediaKeyFromURL(oldURL); oldKey != "" {
		if err := as.media.Delete(oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "key", oldKey, "error", err)
		}
	}
	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square
	b := img.Bounds()
	w := b.Dx()
	h := b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

func computeInitials(username string) string {
	fields := strings.Fields(username)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(fields[0][:1])
	default:
		return strings.ToUpper(fields[0][:1]) + strings.ToUpper(fields[len(fields)-1][:1])
	}
}

func mediaKeyFromURL(url string) string {
	idx := strings.Index(url, "/media/")
	if idx < 0 {
		return ""
	}
	return url[idx+len("/media/"):]
}

func parseColorList(raw string) ([]color.NRGBA, error) {
	parts := strings.Split(raw, ",")
	out := make([]color.NRGBA, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "#"))
		if len(p) != 6 {
			return nil, fmt.Errorf("expected 6 hex chars, got %q", p)
		}
		rawBytes, err := hex.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid hex %q", p)
		}
		out = append(out, color.NRGBA{R: rawBytes[0], G: rawBytes[1], B: rawBytes[2], A: 0xFF})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("color list is empty")
	}
	return out, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
