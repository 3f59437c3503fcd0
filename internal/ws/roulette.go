package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vaultory_backend/internal/config"
	"vaultory_backend/internal/model"
	"vaultory_backend/internal/roulette"
	"vaultory_backend/internal/service"
	"vaultory_backend/internal/service/caseopen"
	"vaultory_backend/pkg/token"
)

// Сколько ждем отправку одного сообщения, прежде чем считать клиента мертвым
const writeTimeout = 5 * time.Second

// clientMessage - входящее сообщение клиента рулетки
type clientMessage struct {
	Type   string `json:"type"`              // open или decide
	CaseID int    `json:"case_id,omitempty"` // для open
	Action string `json:"action,omitempty"`  // keep или sell, для decide
}

// serverMessage - исходящее сообщение сессии рулетки
type serverMessage struct {
	Type    string          `json:"type"`
	Error   string          `json:"error,omitempty"`
	Opening *openingMessage `json:"opening,omitempty"`
	Event   *roulette.Event `json:"event,omitempty"`
	Outcome *outcomeMessage `json:"outcome,omitempty"`
}

// openingMessage отправляется сразу после оплаты открытия:
// лента для отрисовки плюс баланс после списания
type openingMessage struct {
	OpeningID string       `json:"opening_id"`
	Strip     []stripEntry `json:"strip"`
	Balance   int          `json:"balance"`
}

type stripEntry struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
}

type outcomeMessage struct {
	OpeningID string `json:"opening_id"`
	Action    string `json:"action"`
	ItemName  string `json:"item_name"`
	Balance   int    `json:"balance"`
}

// RouletteHandler поднимает по одной сессии рулетки на websocket-соединение
type RouletteHandler struct {
	caseServ service.CaseService
	cfg      config.RouletteConfig
	jwtCfg   config.JWTConfig
}

func NewRouletteHandler(
	caseServ service.CaseService,
	cfg config.RouletteConfig,
	jwtCfg config.JWTConfig,
) *RouletteHandler {
	return &RouletteHandler{
		caseServ: caseServ,
		cfg:      cfg,
		jwtCfg:   jwtCfg,
	}
}

// rouletteConn - состояние одного соединения рулетки
type rouletteConn struct {
	handler *RouletteHandler
	conn    *websocket.Conn
	send    chan serverMessage
	userID  int

	session *roulette.Session
	// Открытие, по которому пользователь еще не выбрал keep/sell
	pendingOpeningID string
}

// Handle - websocket-эндпоинт рулетки. Токен передается
// query-параметром: из браузера нельзя выставить заголовок
func (h *RouletteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, err := token.VerifyToken(r.URL.Query().Get("token"), h.jwtCfg.AccessTokenSecretKey())
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	userID, err := strconv.Atoi(claims.ID)
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("roulette: websocket upgrade failed")
		return
	}

	rc := &rouletteConn{
		handler: h,
		conn:    conn,
		send:    make(chan serverMessage, clientSendBuffer),
		userID:  userID,
	}

	// События фаз приходят из горутин таймеров - пишем их
	// в канал, а не сразу в соединение
	rc.session = roulette.NewSession(h.cfg, func(ev roulette.Event) {
		rc.push(serverMessage{Type: "phase", Event: &ev})
	})

	go rc.writePump()
	rc.readPump()
}

func (rc *rouletteConn) readPump() {
	defer rc.teardown()

	for {
		_, payload, err := rc.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			rc.push(serverMessage{Type: "error", Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case "open":
			rc.handleOpen(msg.CaseID)
		case "decide":
			rc.handleDecide(msg.Action)
		default:
			rc.push(serverMessage{Type: "error", Error: "unknown message type"})
		}
	}
}

func (rc *rouletteConn) handleOpen(caseID int) {
	// Списание и выбор победителя - до запуска анимации.
	// Но сначала проверяем, что спин вообще можно начать,
	// иначе деньги спишутся без анимации
	if phase := rc.session.Phase(); phase == roulette.PhaseSpinning || phase == roulette.PhaseSettling {
		rc.push(serverMessage{Type: "error", Error: "spin already in progress"})
		return
	}

	// Прежний результат не забрали - финализируем как keep
	rc.finalizePending(model.OutcomeActionKeep)

	result, err := rc.handler.caseServ.Open(context.Background(), rc.userID, caseID)
	if err != nil {
		rc.push(serverMessage{Type: "error", Error: openErrorText(err)})
		return
	}

	rc.pendingOpeningID = result.OpeningID
	rc.push(serverMessage{Type: "opening", Opening: toOpeningMessage(result)})

	if err := rc.session.Start(result); err != nil {
		// Гонка со вторым open в этом же соединении. Открытие
		// уже оплачено - его доберет принудительный keep
		rc.push(serverMessage{Type: "error", Error: err.Error()})
	}
}

func (rc *rouletteConn) handleDecide(action string) {
	if rc.session.Phase() != roulette.PhaseResultShown {
		rc.push(serverMessage{Type: "error", Error: "no result to decide on"})
		return
	}
	if rc.pendingOpeningID == "" {
		rc.push(serverMessage{Type: "error", Error: "already decided"})
		return
	}

	outcome, err := rc.handler.caseServ.Finalize(context.Background(), rc.userID, rc.pendingOpeningID, action)
	if err != nil {
		if errors.Is(err, caseopen.ErrUnknownAction) {
			rc.push(serverMessage{Type: "error", Error: err.Error()})
			return
		}
		log.WithError(err).WithField("opening_id", rc.pendingOpeningID).Error("roulette: finalize failed")
		rc.push(serverMessage{Type: "error", Error: "finalize failed"})
		return
	}

	rc.pendingOpeningID = ""
	rc.push(serverMessage{Type: "outcome", Outcome: &outcomeMessage{
		OpeningID: outcome.OpeningID,
		Action:    outcome.Action,
		ItemName:  outcome.Item.Name,
		Balance:   outcome.Balance,
	}})
}

// teardown вызывается при разрыве соединения.
// Если результат уже показан, но выбор не сделан - применяем keep:
// пользователь видел дроп, предмет не должен потеряться.
// Если спин еще крутился, открытие остается pending - его доберет
// фоновая задача принудительного keep
func (rc *rouletteConn) teardown() {
	if rc.session.Phase() == roulette.PhaseResultShown {
		rc.finalizePending(model.OutcomeActionKeep)
	}

	rc.session.Close()
	close(rc.send)
	_ = rc.conn.Close()
}

// finalizePending применяет действие к незавершенному открытию, если оно есть
func (rc *rouletteConn) finalizePending(action string) {
	if rc.pendingOpeningID == "" {
		return
	}

	_, err := rc.handler.caseServ.Finalize(context.Background(), rc.userID, rc.pendingOpeningID, action)
	if err != nil && !errors.Is(err, caseopen.ErrAlreadyFinalized) {
		log.WithError(err).WithField("opening_id", rc.pendingOpeningID).Error("roulette: auto-finalize failed")
	}
	rc.pendingOpeningID = ""
}

// push кладет сообщение в очередь отправки. Если очередь забита,
// сообщение отбрасывается - соединение все равно уже не живое
func (rc *rouletteConn) push(msg serverMessage) {
	defer func() {
		// Отправка в закрытый канал после teardown
		_ = recover()
	}()

	select {
	case rc.send <- msg:
	default:
	}
}

func (rc *rouletteConn) writePump() {
	for msg := range rc.send {
		payload, err := json.Marshal(msg)
		if err != nil {
			log.WithError(err).Error("roulette: marshal failed")
			continue
		}

		_ = rc.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := rc.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func toOpeningMessage(result *model.OpeningResult) *openingMessage {
	msg := &openingMessage{
		OpeningID: result.OpeningID,
		Strip:     make([]stripEntry, len(result.Strip)),
		Balance:   result.Balance,
	}
	for i, entry := range result.Strip {
		msg.Strip[i] = stripEntry{
			Index:    entry.Index,
			Name:     entry.Item.Name,
			Rarity:   string(entry.Item.Rarity),
			Price:    entry.Item.Price,
			ImageURL: entry.Item.ImageURL,
		}
	}
	return msg
}

// openErrorText - текст ошибки открытия для клиента
func openErrorText(err error) string {
	switch {
	case errors.Is(err, caseopen.ErrCaseNotFound):
		return "case not found"
	case errors.Is(err, caseopen.ErrCaseInactive):
		return "case is not active"
	case errors.Is(err, caseopen.ErrNotEnoughBalance):
		return "not enough balance"
	case errors.Is(err, caseopen.ErrNoItems):
		return "no items configured"
	default:
		log.WithError(err).Error("roulette: open failed")
		return "internal error"
	}
}
