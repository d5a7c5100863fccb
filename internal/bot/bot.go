// Package bot is a line-oriented chat client of the task and comment
// services. It provisions one account per chat and walks the user through
// numbered menus.
package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type taskAPI interface {
	Login(ctx context.Context, username, password string) (*todoapi.Tokens, error)
	Refresh(ctx context.Context, refresh string) (*todoapi.Tokens, error)

	ListTasks(ctx context.Context, token string, q taskapi.TaskQuery) ([]todoapi.Task, error)
	GetTask(ctx context.Context, token, id string) (*todoapi.Task, error)
	CreateTask(ctx context.Context, token string, in todoapi.CreateTask) (*todoapi.Task, error)
	UpdateTask(ctx context.Context, token, id string, in todoapi.UpdateTask) (*todoapi.Task, error)
	DeleteTask(ctx context.Context, token, id string) error

	ListCategories(ctx context.Context, token string) ([]todoapi.Category, error)
	CreateCategory(ctx context.Context, token, name string) (*todoapi.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error

	CreateUser(ctx context.Context, staffToken string, in todoapi.CreateUser) (*todoapi.User, error)
	PublicInfo(ctx context.Context, staffToken string, telegramID int64) (*todoapi.PublicInfo, error)
	GetLocale(ctx context.Context, staffToken string, telegramID int64) (string, error)
	SetLocale(ctx context.Context, staffToken string, telegramID int64, locale string) error
}

type commentAPI interface {
	ListByTask(ctx context.Context, token, taskID string) ([]todoapi.Comment, error)
	Create(ctx context.Context, token string, in todoapi.CreateComment) (*todoapi.Comment, error)
	Delete(ctx context.Context, token string, id int64) error
}

// Message is one line of user input.
type Message struct {
	ChatID   int64
	Username string
	Text     string
}

// Transport delivers chat messages to the bot and carries replies back.
// Receive returns io.EOF once the conversation source is closed.
type Transport interface {
	Receive(ctx context.Context) (Message, error)
	Send(ctx context.Context, chatID int64, text string) error
}

// Credentials identify the staff account used for user provisioning.
type Credentials struct {
	Username string
	Password string
}

// Bot drives one dialog per chat.
type Bot struct {
	tasks          taskAPI
	comments       commentAPI
	catalog        *Catalog
	log            *slog.Logger
	sessions       *sessionStore
	staff          Credentials
	passwordPrefix string
	preset         string

	staffMu     sync.Mutex
	staffAccess string
}

// New creates a Bot. Chat accounts get the password passwordPrefix+chatID.
func New(
	logger *slog.Logger,
	tasks taskAPI,
	comments commentAPI,
	catalog *Catalog,
	staff Credentials,
	passwordPrefix string,
) *Bot {
	return &Bot{
		tasks:          tasks,
		comments:       comments,
		catalog:        catalog,
		log:            logger.With("service", "bot"),
		sessions:       newSessionStore(),
		staff:          staff,
		passwordPrefix: passwordPrefix,
	}
}

// PresetLocale makes chats without a stored language start in locale
// instead of being asked. Unsupported values are ignored.
func (b *Bot) PresetLocale(locale string) {
	if b.catalog.Supported(locale) {
		b.preset = locale
	}
}

// Run reads messages from t until it is exhausted or ctx is cancelled.
func (b *Bot) Run(ctx context.Context, t Transport) error {
	for {
		msg, err := t.Receive(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		reply := b.Handle(ctx, msg)
		if err := t.Send(ctx, msg.ChatID, reply); err != nil {
			return err
		}
	}
}

// Handle advances the chat's dialog by one message and returns the reply.
func (b *Bot) Handle(ctx context.Context, msg Message) string {
	s := b.sessions.get(msg.ChatID)
	s.mu.Lock()
	defer s.mu.Unlock()

	text := strings.TrimSpace(msg.Text)

	var (
		reply string
		err   error
	)
	switch s.State {
	case StateStart:
		reply, err = b.start(ctx, s, msg.Username)
	case StateLanguage:
		reply, err = b.onLanguage(ctx, s, text)
	case StateMain:
		reply, err = b.onMain(ctx, s, text)
	case StateTasks:
		reply, err = b.onTasks(ctx, s, text)
	case StateTaskDetails:
		reply, err = b.onTaskDetails(ctx, s, text)
	case StateCreateTitle, StateCreateDescription, StateCreateDueDate, StateCreateCategories:
		reply, err = b.onCreateTask(ctx, s, text)
	case StateUpdateTitle, StateUpdateDescription:
		reply, err = b.onUpdateTask(ctx, s, text)
	case StateComments:
		reply, err = b.onComments(ctx, s, text)
	case StateCreateComment:
		reply, err = b.onCreateComment(ctx, s, text)
	case StateDeleteComment:
		reply, err = b.onDeleteComment(ctx, s, text)
	case StateCategories:
		reply, err = b.onCategories(ctx, s, text)
	case StateCreateCategory:
		reply, err = b.onCreateCategory(ctx, s, text)
	case StateDeleteCategory:
		reply, err = b.onDeleteCategory(ctx, s, text)
	default:
		reply = b.toMain(s)
	}

	if err != nil {
		return b.fail(ctx, s, err)
	}
	return reply
}

func (b *Bot) start(ctx context.Context, s *Session, username string) (string, error) {
	if err := b.provision(ctx, s, username); err != nil {
		b.log.ErrorContext(ctx, "provision chat",
			slog.Int64("chat_id", s.ChatID),
			slog.String("error", err.Error()))
		// Stay in StateStart so the next message retries.
		return b.catalog.Text(DefaultLocale, "error_user_creation"), nil
	}

	if s.Locale == "" && b.preset != "" {
		if err := b.saveLocale(ctx, s, b.preset); err != nil {
			return "", err
		}
		s.Locale = b.preset
	}
	if s.Locale == "" {
		s.State = StateLanguage
		return b.catalog.Text(DefaultLocale, "choose_language"), nil
	}
	return b.toMain(s), nil
}

func (b *Bot) onLanguage(ctx context.Context, s *Session, text string) (string, error) {
	locale := strings.ToLower(text)
	if n, ok := choice(text, len(Locales)); ok {
		locale = Locales[n-1]
	}
	if !b.catalog.Supported(locale) {
		return b.catalog.Text(DefaultLocale, "choose_language"), nil
	}

	if err := b.saveLocale(ctx, s, locale); err != nil {
		return "", err
	}
	s.Locale = locale
	return join(b.t(s, "language_saved"), b.toMain(s)), nil
}

func (b *Bot) onMain(ctx context.Context, s *Session, text string) (string, error) {
	switch text {
	case "1":
		return b.showTasks(ctx, s)
	case "2":
		s.resetDraft()
		s.State = StateCreateTitle
		return b.t(s, "enter_task_name"), nil
	case "3":
		return b.showCategories(ctx, s)
	case "4":
		s.State = StateLanguage
		return b.t(s, "choose_language"), nil
	}
	return join(b.t(s, "unknown_choice"), b.toMain(s)), nil
}

// fail logs err and returns the chat to the main menu.
func (b *Bot) fail(ctx context.Context, s *Session, err error) string {
	b.log.ErrorContext(ctx, "handle message",
		slog.Int64("chat_id", s.ChatID),
		slog.Int("state", int(s.State)),
		slog.String("error", err.Error()))

	if s.Locale == "" {
		s.State = StateStart
		return b.catalog.Text(DefaultLocale, "error_generic")
	}
	return join(b.t(s, "error_generic"), b.toMain(s))
}

func (b *Bot) toMain(s *Session) string {
	s.State = StateMain
	return b.t(s, "main_menu")
}

func (b *Bot) t(s *Session, key string, args ...any) string {
	return b.catalog.Text(s.Locale, key, args...)
}

// choice parses a 1-based menu position in [1, n].
func choice(text string, n int) (int, bool) {
	v, err := strconv.Atoi(text)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v, true
}

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
