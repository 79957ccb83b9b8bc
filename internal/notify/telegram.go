// Package notify announces tournament results to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/knockout-cup/cup-api/internal/models"
)

// Sender is the part of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts champion announcements to one chat.
type Telegram struct {
	bot    Sender
	chatID int64
	logger *zap.SugaredLogger
}

// NewTelegram connects to the bot API with token.
func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	logger.Sugar().Infow("Telegram notifier ready", "bot", bot.Self.UserName, "chat", chatID)
	return NewTelegramWithSender(bot, chatID, logger), nil
}

// NewTelegramWithSender builds a notifier over an existing sender.
func NewTelegramWithSender(bot Sender, chatID int64, logger *zap.Logger) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, logger: logger.Sugar()}
}

// AnnounceChampion sends the final score and goal list.
func (t *Telegram) AnnounceChampion(ctx context.Context, result models.TournamentResult, final models.MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatChampion(result, final))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send champion announcement: %w", err)
	}
	t.logger.Infow("Champion announced", "champion", result.Champion, "chat", t.chatID)
	return nil
}

// FormatChampion renders the announcement text.
func FormatChampion(result models.TournamentResult, final models.MatchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 %s win the %d Knockout Cup!\n", result.Champion, result.Year)
	fmt.Fprintf(&sb, "Final: %s %d-%d %s", final.TeamA, final.ScoreA, final.ScoreB, final.TeamB)
	if final.TieBreak {
		sb.WriteString(" (decided by a late winner)")
	}
	sb.WriteString("\n")
	for _, ev := range final.Scorers {
		fmt.Fprintf(&sb, "⚽ %d' %s (%s)\n", ev.Minute, ev.Player, ev.Team)
	}
	fmt.Fprintf(&sb, "Runner-up: %s", result.RunnerUp)
	return sb.String()
}
