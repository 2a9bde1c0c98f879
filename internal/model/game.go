package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*observer // playerID -> connection
	mu          sync.RWMutex
}

// observer serializes writes to one websocket; the connection does not allow
// concurrent writers.
type observer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (o *observer) writeJSON(v interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(v)
}

// Game wraps one engine instance with the seats and observers of a game.
// The engine is single threaded; mu serializes every request touching it.
type Game struct {
	ID          string
	mu          sync.Mutex
	turn        *TurnController
	players     Players
	connections *GameConnections
}

type GameState struct {
	Board          BoardView   `json:"boardState"`
	ToMove         Color       `json:"toMove"`
	Status         Status      `json:"status"`
	IsCheck        bool        `json:"isCheck"`
	SelectedSquare *Position   `json:"selectedSquare"`
	LastMove       *SimpleMove `json:"lastMove"`
	MoveHistory    []Ply       `json:"moveHistory"`
	Players        Players     `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		turn:        NewTurnController(NewBoard(), White),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*observer),
	}
}

// AddPlayer seats playerID on the first free color. A player who joins twice
// holds both seats, which is how a single client plays both sides.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range []Color{White, Black} {
		seat := g.players.seat(c)
		if seat.ID == "" {
			*seat = ClientPlayer{ID: playerID, Color: c}
			log.Infof("game %s: player %s seated as %s", g.ID, playerID, c)
			return c, nil
		}
	}
	return NoColor, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (g.players.White.ID == playerID || g.players.Black.ID == playerID)
}

// SelectSquare forwards a click from playerID to the engine. Only the player
// seated on the side to move may click.
func (g *Game) SelectSquare(playerID string, p Position) ([]UIChange, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return nil, ErrNotSeated
	}
	if g.players.seat(g.turn.ToMove()).ID != playerID {
		return nil, ErrNotYourTurn
	}

	before := g.turn.Board().Ply()
	changes, err := g.turn.OnSquareSelected(p)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}
	if g.turn.Board().Ply() != before {
		log.Infof("game %s: %s moved %s-%s, status %s", g.ID, g.turn.ToMove().Opponent(),
			g.turn.LastMove().From, g.turn.LastMove().To, g.turn.Status())
		go g.broadcastState(g.state())
	}
	return changes, nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	status := g.turn.Status()
	return GameState{
		Board:          g.turn.Board().Snapshot(),
		ToMove:         g.turn.ToMove(),
		Status:         status,
		IsCheck:        status == StatusCheck || status == StatusCheckmate,
		SelectedSquare: g.turn.Selected(),
		LastMove:       g.turn.LastMove(),
		MoveHistory:    g.turn.History(),
		Players:        g.players,
	}
}

// RegisterConnection attaches an observer. Anyone may watch a game; only
// seated players may click.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debugf("game %s: registering connection %s for player %s", g.ID, connID, playerID)

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil // Not really an error, just rejecting duplicate connection
	}
	g.connections.connections[playerID] = &observer{conn: conn}
	g.connections.mu.Unlock()

	go g.broadcastState(g.GetState())
	return nil
}

// UnregisterConnection drops the observer only if conn is still the one on
// record for playerID.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current.conn == conn {
		log.Debugf("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes msg to the connection registered for playerID.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	obs, exists := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !exists {
		return fmt.Errorf("game %s: no connection for player %s", g.ID, playerID)
	}
	return obs.writeJSON(msg)
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	// Snapshot connections so writes happen without holding the lock.
	g.connections.mu.RLock()
	active := make(map[string]*observer, len(g.connections.connections))
	for playerID, obs := range g.connections.connections {
		active[playerID] = obs
	}
	g.connections.mu.RUnlock()

	for playerID, obs := range active {
		if err := obs.writeJSON(msg); err != nil {
			log.Warnf("game %s: dropping connection for player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, obs.conn)
		}
	}
}
