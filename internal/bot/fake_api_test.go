package bot

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

// fakeAPI is an in-memory stand-in for both services. Tokens are the
// username prefixed with "tok-", the staff account is "admin".
type fakeAPI struct {
	mu sync.Mutex

	passwords  map[string]string
	users      map[int64]todoapi.User
	locales    map[int64]string
	tasks      map[string]*todoapi.Task
	order      []string
	categories map[string]todoapi.Category
	comments   map[int64]todoapi.Comment
	nextID     int

	logins         []string
	rejectOnce     map[string]bool
	failCommentDel bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		passwords:  map[string]string{"admin": "admin-pass"},
		users:      map[int64]todoapi.User{},
		locales:    map[int64]string{},
		tasks:      map[string]*todoapi.Task{},
		categories: map[string]todoapi.Category{},
		comments:   map[int64]todoapi.Comment{},
		rejectOnce: map[string]bool{},
	}
}

func (f *fakeAPI) id() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

func (f *fakeAPI) auth(token string) error {
	if f.rejectOnce[token] {
		delete(f.rejectOnce, token)
		return fmt.Errorf("fake: %w", domain.ErrUnauthorized)
	}
	if len(token) < 4 || token[:4] != "tok-" {
		return fmt.Errorf("fake: %w", domain.ErrUnauthorized)
	}
	return nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*todoapi.Tokens, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logins = append(f.logins, username)
	if p, ok := f.passwords[username]; !ok || p != password {
		return nil, fmt.Errorf("fake: %w", domain.ErrUnauthorized)
	}
	return &todoapi.Tokens{Access: "tok-" + username, Refresh: "ref-" + username}, nil
}

func (f *fakeAPI) Refresh(_ context.Context, refresh string) (*todoapi.Tokens, error) {
	return &todoapi.Tokens{Access: "tok-" + refresh[4:], Refresh: refresh}, nil
}

func (f *fakeAPI) ListTasks(_ context.Context, token string, _ taskapi.TaskQuery) ([]todoapi.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	var out []todoapi.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeAPI) GetTask(_ context.Context, token, id string) (*todoapi.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeAPI) CreateTask(_ context.Context, token string, in todoapi.CreateTask) (*todoapi.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	t := &todoapi.Task{ID: "t" + f.id(), Title: in.Title, Description: in.Description, DueDate: in.DueDate, Stage: "ACTIVE"}
	for _, ref := range in.Categories {
		t.Categories = append(t.Categories, todoapi.Category{ID: "c" + f.id(), Name: ref.Name})
	}
	f.tasks[t.ID] = t
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, token, id string, in todoapi.UpdateTask) (*todoapi.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
		if t.Completed {
			t.Stage = "COMPLETED"
		}
	}
	cp := *t
	return &cp, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return err
	}
	if _, ok := f.tasks[id]; !ok {
		return fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeAPI) ListCategories(_ context.Context, token string) ([]todoapi.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	var out []todoapi.Category
	for i := 1; i <= f.nextID; i++ {
		if c, ok := f.categories["c"+strconv.Itoa(i)]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, token, name string) (*todoapi.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	for _, c := range f.categories {
		if c.Name == name {
			return nil, fmt.Errorf("fake: %w", domain.ErrAlreadyExists)
		}
	}
	c := todoapi.Category{ID: "c" + f.id(), Name: name}
	f.categories[c.ID] = c
	return &c, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return err
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeAPI) CreateUser(_ context.Context, staffToken string, in todoapi.CreateUser) (*todoapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if staffToken != "tok-admin" {
		return nil, fmt.Errorf("fake: %w", domain.ErrForbidden)
	}
	u := todoapi.User{ID: uuid.New(), Username: in.Username, TelegramID: in.TelegramID}
	f.users[*in.TelegramID] = u
	f.passwords[in.Username] = in.Password
	return &u, nil
}

func (f *fakeAPI) PublicInfo(_ context.Context, staffToken string, telegramID int64) (*todoapi.PublicInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(staffToken); err != nil {
		return nil, err
	}
	u, ok := f.users[telegramID]
	if !ok {
		return nil, nil
	}
	return &todoapi.PublicInfo{ID: u.ID, Username: u.Username}, nil
}

func (f *fakeAPI) GetLocale(_ context.Context, staffToken string, telegramID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(staffToken); err != nil {
		return "", err
	}
	return f.locales[telegramID], nil
}

func (f *fakeAPI) SetLocale(_ context.Context, staffToken string, telegramID int64, locale string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(staffToken); err != nil {
		return err
	}
	f.locales[telegramID] = locale
	return nil
}

func (f *fakeAPI) ListByTask(_ context.Context, token, taskID string) ([]todoapi.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	if _, ok := f.tasks[taskID]; !ok {
		return nil, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	var out []todoapi.Comment
	for i := 1; i <= f.nextID; i++ {
		if c, ok := f.comments[int64(i)]; ok && c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, token string, in todoapi.CreateComment) (*todoapi.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return nil, err
	}
	if _, ok := f.tasks[in.TaskID]; !ok {
		return nil, fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	id, _ := strconv.ParseInt(f.id(), 10, 64)
	c := todoapi.Comment{ID: id, Content: in.Content, TaskID: in.TaskID}
	f.comments[id] = c
	return &c, nil
}

func (f *fakeAPI) Delete(_ context.Context, token string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.auth(token); err != nil {
		return err
	}
	if f.failCommentDel {
		return fmt.Errorf("fake: %w", domain.ErrUnavailable)
	}
	if _, ok := f.comments[id]; !ok {
		return fmt.Errorf("fake: %w", domain.ErrNotFound)
	}
	delete(f.comments, id)
	return nil
}
