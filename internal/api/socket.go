package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"syntaxsheet/pkg/apisession"
	"syntaxsheet/pkg/controller"
	"syntaxsheet/pkg/model"
	"syntaxsheet/pkg/render"
)

const maxMessageSize = 64 << 10

// Message types exchanged over the UI websocket.
const (
	MsgLanguage  = "language"
	MsgSection   = "section"
	MsgCopy      = "copy"
	MsgLanguages = "languages"
	MsgSections  = "sections"
	MsgContent   = "content"
	MsgClear     = "clear"
	MsgCopied    = "copied"
	MsgError     = "error"
)

// ClientMessage is a selection event sent by the page.
type ClientMessage struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Key   string `json:"key,omitempty"`
	Index int    `json:"index,omitempty"`
}

// ServerMessage is a view update pushed to the page.
type ServerMessage struct {
	Type        string                   `json:"type"`
	Names       []string                 `json:"names,omitempty"`
	Language    string                   `json:"language,omitempty"`
	Items       []controller.SectionItem `json:"items,omitempty"`
	Section     string                   `json:"section,omitempty"`
	Description string                   `json:"description,omitempty"`
	HTML        string                   `json:"html,omitempty"`
	Index       int                      `json:"index,omitempty"`
	Copied      bool                     `json:"copied,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

// SocketHandler gives every websocket connection its own Controller.
type SocketHandler struct {
	catalog   *model.Catalog
	renderer  *render.Renderer
	clipboard controller.Clipboard
	resume    *apisession.Store
	upgrader  websocket.Upgrader
}

// NewSocketHandler creates a new SocketHandler. clipboard and resume may be nil.
func NewSocketHandler(cat *model.Catalog, r *render.Renderer, clipboard controller.Clipboard, resume *apisession.Store) *SocketHandler {
	return &SocketHandler{
		catalog:   cat,
		renderer:  r,
		clipboard: clipboard,
		resume:    resume,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16384,
		},
	}
}

// ServeHTTP upgrades the connection and runs the session until the page goes away.
func (h *SocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	id := uuid.NewString()
	s := &session{
		id:     id,
		conn:   conn,
		logger: slog.With("session", id),
	}
	s.logger.Info("UI session opened", "remote", r.RemoteAddr)

	// The page sends a stable client id so a reconnect resumes its selection.
	var client string
	if c, err := uuid.Parse(r.URL.Query().Get("client")); err == nil && h.resume != nil {
		client = c.String()
	}

	s.ctrl = controller.New(h.catalog, h.renderer, s, h.clipboard, s.logger)
	if client == "" {
		s.ctrl.Start()
	} else {
		st, ok := h.resume.Load(client)
		if ok {
			s.logger.Debug("Resuming selection", "language", st.Language, "section", st.Section)
		}
		s.ctrl.StartAt(st)

		s.onEvent = func(st controller.State) { h.resume.Save(client, st) }
		s.onEvent(s.ctrl.State())
	}
	s.run()

	s.logger.Info("UI session closed")
}

// session implements controller.View on top of a websocket connection.
// All reads and writes happen on the goroutine running ServeHTTP.
type session struct {
	id       string
	conn     *websocket.Conn
	logger   *slog.Logger
	ctrl     *controller.Controller
	onEvent  func(controller.State)
	writeErr error
}

func (s *session) run() {
	for s.writeErr == nil {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Websocket read failed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(ServerMessage{Type: MsgError, Error: "malformed message"})
			continue
		}

		switch msg.Type {
		case MsgLanguage:
			s.ctrl.OnLanguageChosen(msg.Name)
		case MsgSection:
			s.ctrl.OnSectionChosen(msg.Key)
		case MsgCopy:
			copied := s.ctrl.OnExampleCopy(msg.Index)
			s.send(ServerMessage{Type: MsgCopied, Index: msg.Index, Copied: copied})
		default:
			s.send(ServerMessage{Type: MsgError, Error: "unknown message type: " + msg.Type})
			continue
		}
		if s.onEvent != nil {
			s.onEvent(s.ctrl.State())
		}
	}
}

func (s *session) send(msg ServerMessage) {
	if s.writeErr != nil {
		return
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			s.logger.Warn("Websocket write failed", "type", msg.Type, "error", err)
		}
		s.writeErr = err
	}
}

func (s *session) SetLanguages(names []string) {
	s.send(ServerMessage{Type: MsgLanguages, Names: names})
}

func (s *session) SetSections(items []controller.SectionItem) {
	s.send(ServerMessage{Type: MsgSections, Language: s.ctrl.State().Language, Items: items})
}

func (s *session) ShowContent(doc *render.Document) {
	html, err := render.HTMLString(doc)
	if err != nil {
		s.logger.Error("Failed to render section", "language", doc.Language, "section", doc.Section, "error", err)
		s.send(ServerMessage{Type: MsgError, Error: "render failed"})
		return
	}
	s.send(ServerMessage{
		Type:        MsgContent,
		Language:    doc.Language,
		Section:     doc.Section,
		Description: doc.Description,
		HTML:        html,
	})
}

func (s *session) ClearContent() {
	s.send(ServerMessage{Type: MsgClear})
}
