package ws

import (
	"context"
	"sync"

	"jobboard_front/internal/logger"
	"jobboard_front/internal/notify"
)

// WebSocketManager keeps the open notification sockets of every user.
// A user may have several tabs open, each with its own Client.
type WebSocketManager struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов до вызова Stop.
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			tabs, ok := manager.clients[client.UserID]
			if !ok {
				tabs = make(map[*Client]struct{})
				manager.clients[client.UserID] = tabs
			}
			tabs[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "tabs", len(tabs))

		case client := <-manager.unregister:
			manager.remove(client)

		case <-manager.done:
			manager.mu.Lock()
			for _, tabs := range manager.clients {
				for client := range tabs {
					close(client.Send)
				}
			}
			manager.clients = make(map[int64]map[*Client]struct{})
			manager.mu.Unlock()
			return
		}
	}
}

func (manager *WebSocketManager) Stop() {
	close(manager.done)
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	tabs, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := tabs[client]; !ok {
		return
	}
	close(client.Send)
	delete(tabs, client)
	if len(tabs) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

// Notify pushes n to every open tab of userID. It never blocks: a tab whose
// send buffer is full is disconnected.
func (manager *WebSocketManager) Notify(ctx context.Context, userID int64, n notify.Notification) {
	if userID <= 0 {
		return
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.clients[userID] {
		select {
		case client.Send <- n:
		default:
			logger.CtxWarn(ctx, "ws send buffer full, dropping client", "user_id", userID)
			go func(c *Client) {
				select {
				case manager.unregister <- c:
				case <-manager.done:
				}
			}(client)
		}
	}
}

// GetClientCount возвращает количество открытых вкладок пользователя
func (manager *WebSocketManager) GetClientCount(userID int64) int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID])
}

func (manager *WebSocketManager) IsClientConnected(userID int64) bool {
	return manager.GetClientCount(userID) > 0
}
