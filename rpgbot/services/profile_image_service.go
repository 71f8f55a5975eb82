package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
)

//go:embed templates/profile.html
var profileTemplate string

var profileTmpl = template.Must(template.New("profile").Parse(profileTemplate))

// accents per class, used for the card gradient and bars
var classAccents = map[characters.Class]template.CSS{
	characters.ClassWarrior: "#c0392b",
	characters.ClassArcher:  "#27ae60",
	characters.ClassMage:    "#8e44ad",
}

type ProfileImageService struct {
	logger  *slog.Logger
	timeout time.Duration
}

type ProfileCardData struct {
	Username    string
	Emoji       string
	ClassName   string
	Accent      template.CSS
	Level       int
	HP          int
	MaxHP       int
	HPPercent   int
	Exp         int
	ExpCap      int
	ExpPercent  int
	Attack      int
	Defense     int
	Gold        int
	MemberSince string
}

func NewProfileImageService(timeout time.Duration) *ProfileImageService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ProfileImageService{
		logger:  slog.With(slog.String("service", "profile_image")),
		timeout: timeout,
	}
}

// NewProfileCardData maps a character onto the card template.
func NewProfileCardData(c *characters.Character) ProfileCardData {
	info := c.Class.Info()
	accent, ok := classAccents[c.Class]
	if !ok {
		accent = "#2b2d31"
	}
	return ProfileCardData{
		Username:    c.Username,
		Emoji:       info.Emoji,
		ClassName:   info.Name,
		Accent:      accent,
		Level:       c.Level,
		HP:          c.HP,
		MaxHP:       c.MaxHP,
		HPPercent:   percent(c.HP, c.MaxHP),
		Exp:         c.Exp,
		ExpCap:      characters.ExpPerLevel,
		ExpPercent:  percent(c.Exp, characters.ExpPerLevel),
		Attack:      c.Attack,
		Defense:     c.Defense,
		Gold:        c.Gold,
		MemberSince: fmt.Sprintf("Adventuring since %s", c.CreatedAt.Format("Jan 2006")),
	}
}

func percent(v, max int) int {
	if max <= 0 || v <= 0 {
		return 0
	}
	if v >= max {
		return 100
	}
	return v * 100 / max
}

// GenerateProfileImage renders the character card in a headless browser and returns it as PNG.
func (s *ProfileImageService) GenerateProfileImage(ctx context.Context, c *characters.Character) ([]byte, error) {
	start := time.Now()

	htmlContent, err := RenderProfileHTML(NewProfileCardData(c))
	if err != nil {
		return nil, err
	}

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, s.timeout)
	defer cancel()

	var imageBytes []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("data:text/html,"+escapeDataURL(htmlContent)),
		chromedp.WaitVisible("#profile-container", chromedp.ByID),
		chromedp.Screenshot("#profile-container", &imageBytes, chromedp.ByID),
	)
	if err != nil {
		s.logger.Error("Failed to generate profile card",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	s.logger.Debug("Profile card generated",
		slog.String("username", c.Username),
		slog.Int("image_size", len(imageBytes)),
		slog.Duration("elapsed", time.Since(start)))
	return imageBytes, nil
}

// RenderProfileHTML executes the card template.
func RenderProfileHTML(data ProfileCardData) (string, error) {
	var buf bytes.Buffer
	if err := profileTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

var dataURLReplacer = strings.NewReplacer("%", "%25", "#", "%23", "\n", "")

func escapeDataURL(html string) string {
	return dataURLReplacer.Replace(html)
}
