package app

import (
	"context"
	"io"

	"github.com/heartmarshall/todolist-backend/internal/adapter/commentapi"
	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	"github.com/heartmarshall/todolist-backend/internal/bot"
	"github.com/heartmarshall/todolist-backend/internal/config"
)

// RunBot runs the chat client over a console session on in and out.
func RunBot(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, logger, err := setup("bot",
		config.SectionServiceAccount,
		config.SectionTasksURL,
		config.SectionCommentsURL,
	)
	if err != nil {
		return err
	}

	catalog, err := bot.LoadCatalog()
	if err != nil {
		return err
	}

	b := bot.New(
		logger,
		taskapi.New(cfg.Services.TasksURL, cfg.Services.RequestTimeout, logger),
		commentapi.New(cfg.Services.CommentsURL, cfg.Services.RequestTimeout, logger),
		catalog,
		bot.Credentials{Username: cfg.Services.Username, Password: cfg.Services.Password},
		cfg.Bot.PasswordPrefix,
	)
	b.PresetLocale(cfg.Bot.Locale)

	return b.Run(ctx, bot.NewConsole(in, out, cfg.Bot.ChatID, ""))
}
