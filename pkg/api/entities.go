// Package api holds the JSON payloads exchanged between client and server.
package api

import "encoding/json"

// CreateEntityRequest представляет запрос на создание сущности
type CreateEntityRequest struct {
	ClientRef string          `json:"client_ref"` // ключ идемпотентности, назначенный клиентом
	Data      json.RawMessage `json:"data"`       // сущность в JSON
}

// CreateEntityResponse представляет ответ с постоянным id сущности
type CreateEntityResponse struct {
	ID int64 `json:"id"`
}

// UpdateEntityRequest представляет запрос на замену сущности
type UpdateEntityRequest struct {
	Data json.RawMessage `json:"data"`
}

// EntityResponse представляет сущность, хранящуюся на сервере
type EntityResponse struct {
	Type      string          `json:"type"`
	ClientRef string          `json:"client_ref,omitempty"`
	Data      json.RawMessage `json:"data"`
	ID        int64           `json:"id"`
}

// HealthResponse представляет ответ проверки работоспособности
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
