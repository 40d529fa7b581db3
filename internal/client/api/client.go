package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	syncengine "github.com/iudanet/fieldsync/internal/client/sync"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

// Ensure Client satisfies the engine's remote contract
var _ syncengine.RemoteService = (*Client)(nil)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент.
// token отправляется как Bearer токен, пустой токен не отправляется.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

func entityPath(t models.EntityType) string {
	return "/api/v1/entities/" + string(t)
}

func entityIDPath(t models.EntityType, id int64) string {
	return entityPath(t) + "/" + strconv.FormatInt(id, 10)
}

// Create отправляет новую сущность и возвращает ее постоянный id
func (c *Client) Create(ctx context.Context, t models.EntityType, clientRef string, e models.Entity) (int64, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s: %w", t, err)
	}

	var resp api.CreateEntityResponse
	req := api.CreateEntityRequest{ClientRef: clientRef, Data: data}
	if err := c.doRequest(ctx, http.MethodPost, entityPath(t), req, &resp); err != nil {
		return 0, fmt.Errorf("create request failed: %w", err)
	}

	return resp.ID, nil
}

// Update заменяет сущность на сервере
func (c *Client) Update(ctx context.Context, t models.EntityType, id int64, e models.Entity) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", t, err)
	}

	req := api.UpdateEntityRequest{Data: data}
	if err := c.doRequest(ctx, http.MethodPut, entityIDPath(t, id), req, nil); err != nil {
		return fmt.Errorf("update request failed: %w", err)
	}
	return nil
}

// Delete удаляет сущность на сервере.
// Отсутствие сущности возвращается как ErrRemoteNotFound.
func (c *Client) Delete(ctx context.Context, t models.EntityType, id int64) error {
	err := c.doRequest(ctx, http.MethodDelete, entityIDPath(t, id), nil, nil)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %d", syncengine.ErrRemoteNotFound, t, id)
	}
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Message = errResp.Message
			if statusErr.Message == "" {
				statusErr.Message = errResp.Error
			}
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
