// Package googletasks implements service.Remote using the Google Tasks API.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements service.Remote using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

var _ service.Remote = (*Client)(nil)

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// Extra options (such as option.WithEndpoint) are passed to the API service.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}

	return service.TaskList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	// The default list is addressed as @default; fetch it to learn its real ID
	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var result []service.TaskList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			isDefault := list.Id == defaultList.Id
			id := list.Id
			if isDefault {
				id = DefaultListID
			}
			result = append(result, service.TaskList{
				ID:        id,
				Title:     list.Title,
				IsDefault: isDefault,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return result, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return MatchList(lists, name)
}

// MatchList picks the single list whose title equals name, ignoring case and
// surrounding space.
func MatchList(lists []service.TaskList, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)

	var matches []service.TaskList
	for _, list := range lists {
		if strings.EqualFold(strings.TrimSpace(list.Title), name) {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// CreateList creates a new task list.
func (c *Client) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}
	return service.TaskList{ID: list.Id, Title: list.Title}, nil
}

// CreateTask copies a local task into the specified list.
func (c *Client) CreateTask(ctx context.Context, listID string, task service.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, toAPITask(task)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// toAPITask maps a local task onto the API representation.
// The API stores only the date portion of due.
func toAPITask(task service.Task) *tasks.Task {
	y, m, d := task.DueDate.Date()
	status := statusNeedsAction
	if task.Completed {
		status = statusCompleted
	}
	return &tasks.Task{
		Title:  task.Description,
		Due:    time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Status: status,
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: todo login)")
	}

	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
