package parser

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/go-telegram/bot/models"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var rawMessages []byte

type Button struct {
	Text         string `yaml:"text"`
	CallbackData string `yaml:"callback_data,omitempty"`
	URL          string `yaml:"url,omitempty"`
	WebApp       string `yaml:"web_app,omitempty"`
}

type Message struct {
	Text    string     `yaml:"text"`
	Buttons [][]Button `yaml:"buttons,omitempty"`
}

var (
	messages map[string]Message
	loadErr  error
	once     sync.Once
)

func load() {
	once.Do(func() {
		messages = make(map[string]Message)
		if err := yaml.Unmarshal(rawMessages, &messages); err != nil {
			loadErr = fmt.Errorf("failed to parse messages.yaml: %w", err)
		}
	})
}

// Parse decodes a message catalogue, used to validate overrides.
func Parse(data []byte) (map[string]Message, error) {
	out := make(map[string]Message)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMessage renders the message named key, replacing {{name}} placeholders
// with vars. Buttons whose target renders empty are left out.
func GetMessage(key string, vars map[string]string) (string, *models.InlineKeyboardMarkup) {
	load()
	if loadErr != nil {
		return loadErr.Error(), nil
	}

	msg, ok := messages[key]
	if !ok {
		return fmt.Sprintf("message %q not found", key), nil
	}

	text := render(msg.Text, vars)
	if len(msg.Buttons) == 0 {
		return strings.TrimSpace(text), nil
	}

	return strings.TrimSpace(text), BuildKeyboard(msg.Buttons, vars)
}

func BuildKeyboard(rows [][]Button, vars map[string]string) *models.InlineKeyboardMarkup {
	keyboard := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		var line []models.InlineKeyboardButton
		for _, b := range row {
			btn := models.InlineKeyboardButton{Text: render(b.Text, vars)}
			switch {
			case b.WebApp != "":
				target := render(b.WebApp, vars)
				if target == "" {
					continue
				}
				btn.WebApp = &models.WebAppInfo{URL: target}
			case b.URL != "":
				target := render(b.URL, vars)
				if target == "" {
					continue
				}
				btn.URL = target
			default:
				btn.CallbackData = render(b.CallbackData, vars)
			}
			line = append(line, btn)
		}
		if len(line) > 0 {
			keyboard = append(keyboard, line)
		}
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func render(s string, vars map[string]string) string {
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}
