package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error for player %s: %v", gameID, playerID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Warnf("game %s: parse error: %v", gameID, err)
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Warnf("game %s: handle error: %v", gameID, err)
			reply = errorMessage(err.Error())
		}
		if err := wsc.gameService.Send(gameID, playerID, reply); err != nil {
			log.Warnf("game %s: write error: %v", gameID, err)
		}
	}
}

// handleMessage dispatches one client message. Engine panics are turned into
// errors so one broken request does not take down the connection.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (reply ws.Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("game %s: panic handling %s: %v", gameID, msg.Type, r)
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	switch msg.Type {
	case ws.MessageTypeSelect:
		var req SelectRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return ws.Message{}, err
		}
		changes, err := wsc.gameService.HandleSelect(gameID, playerID, req.X, req.Y)
		if err != nil {
			return ws.Message{}, err
		}
		payload, err := json.Marshal(changes)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.Message{Type: ws.MessageTypeChanges, Payload: payload}, nil

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func errorMessage(errorMsg string) ws.Message {
	payload, _ := json.Marshal(errorMsg)
	return ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}
}
