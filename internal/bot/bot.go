package bot

import (
	"context"
	"log/slog"

	"github.com/Spok95/campus-bot/internal/dialog"
	"github.com/Spok95/campus-bot/internal/domain/users"
	"github.com/Spok95/campus-bot/internal/tracker"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	log     *slog.Logger
	users   *users.Repo
	states  *dialog.Repo
	tracker *tracker.Service
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, statesRepo *dialog.Repo,
	trackerSvc *tracker.Service) *Bot {

	return &Bot{
		api: api, log: log, users: usersRepo, states: statesRepo,
		tracker: trackerSvc,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.From == nil {
		return
	}
	u, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		b.log.Error("ensure user failed", "tg_id", msg.From.ID, "err", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Ошибка: не удалось загрузить профиль"))
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg, u)
	case msg.Document != nil:
		b.handleDocument(ctx, msg, u)
	default:
		b.handleStateMessage(ctx, msg, u)
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	if cb.From == nil || cb.Message == nil {
		return
	}
	u, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		b.log.Error("ensure user failed", "tg_id", cb.From.ID, "err", err)
		_ = b.answerCallback(cb, "Ошибка профиля", true)
		return
	}
	b.handleCallback(ctx, cb, u)
}

// ensureUser профиль по Telegram-id; при первом обращении создаётся.
func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*users.User, error) {
	u, err := b.users.GetByTelegramID(ctx, from.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	return b.users.UpsertFromTelegram(ctx, users.Telegram{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	})
}
