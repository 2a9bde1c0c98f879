// service/game_manager.go
package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager is the in-memory registry of running games. Each game guards
// its own engine, so the registry lock only covers the map.
type GameManager struct {
	games map[string]*model.Game
	queue *model.Queue
	// matches holds pairings not yet picked up by the player they seat.
	matches map[string]model.MatchFoundEvent
	mu      sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		queue:   model.NewQueue(),
		matches: make(map[string]model.MatchFoundEvent),
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}

	gm.games[gameID] = model.NewGame(gameID)
	log.Infof("created game %s", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return game, nil
}

func (gm *GameManager) GameExists(gameID string) bool {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	_, exists := gm.games[gameID]
	return exists
}

// JoinMatchmaking queues playerID and pairs the two longest-waiting players
// into a fresh game, the first of them playing white. It returns the caller's
// match when one is ready and nil while the caller keeps waiting.
func (gm *GameManager) JoinMatchmaking(playerID string) (*model.MatchFoundEvent, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if match, ok := gm.takeMatch(playerID); ok {
		return match, nil
	}
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return nil, fmt.Errorf("matchmaking %s: %w", playerID, err)
	}

	first, second, ok := gm.queue.NextPair()
	if !ok {
		log.Infof("player %s waiting for an opponent", playerID)
		return nil, nil
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID)
	for _, p := range []model.QueuedPlayer{first, second} {
		color, err := game.AddPlayer(p.ID)
		if err != nil {
			return nil, fmt.Errorf("matchmaking %s: %w", gameID, err)
		}
		gm.matches[p.ID] = model.MatchFoundEvent{GameID: gameID, Color: color}
	}
	gm.games[gameID] = game
	log.Infof("matched %s and %s in game %s", first.ID, second.ID, gameID)

	match, _ := gm.takeMatch(playerID)
	return match, nil
}

// MatchmakingStatus returns the caller's match once it is ready, or nil while
// the caller is still queued.
func (gm *GameManager) MatchmakingStatus(playerID string) (*model.MatchFoundEvent, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if match, ok := gm.takeMatch(playerID); ok {
		return match, nil
	}
	if !gm.queue.Contains(playerID) {
		return nil, fmt.Errorf("matchmaking %s: %w", playerID, ErrNotQueued)
	}
	return nil, nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if !gm.queue.RemovePlayer(playerID) {
		return fmt.Errorf("matchmaking %s: %w", playerID, ErrNotQueued)
	}
	return nil
}

// takeMatch hands out a pending match once; callers hold gm.mu.
func (gm *GameManager) takeMatch(playerID string) (*model.MatchFoundEvent, bool) {
	match, ok := gm.matches[playerID]
	if !ok {
		return nil, false
	}
	delete(gm.matches, playerID)
	return &match, true
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.NoColor, err
	}

	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) SelectSquare(gameID string, playerID string, pos model.Position) ([]model.UIChange, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.SelectSquare(playerID, pos)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.Send(playerID, msg)
}
