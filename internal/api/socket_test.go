package api

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syntaxsheet/pkg/controller"
)

func dialSession(t *testing.T, env *testEnv) *websocket.Conn {
	return dialPath(t, env, "/ws")
}

func dialPath(t *testing.T, env *testEnv, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

// readStart consumes the messages of a fresh session: the language list,
// then the first language selected.
func readStart(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	msg := readMessage(t, conn)
	require.Equal(t, MsgLanguages, msg.Type)
	assert.Equal(t, []string{"Python", "Go"}, msg.Names)

	assert.Equal(t, MsgClear, readMessage(t, conn).Type)

	msg = readMessage(t, conn)
	require.Equal(t, MsgSections, msg.Type)
	assert.Equal(t, "Python", msg.Language)
	assert.Equal(t, []controller.SectionItem{
		{Key: "loops", Label: "Loops"},
		{Key: "functions", Label: "Functions"},
	}, msg.Items)
}

func TestSocket_StartSelectsFirstLanguage(t *testing.T) {
	env := newTestEnv(t)
	conn := dialSession(t, env)
	readStart(t, conn)
}

func TestSocket_SelectionFlow(t *testing.T) {
	env := newTestEnv(t)
	conn := dialSession(t, env)
	readStart(t, conn)

	sendMessage(t, conn, ClientMessage{Type: MsgSection, Key: "loops"})
	msg := readMessage(t, conn)
	require.Equal(t, MsgContent, msg.Type)
	assert.Equal(t, "Python", msg.Language)
	assert.Equal(t, "loops", msg.Section)
	assert.Equal(t, "Repeating work", msg.Description)
	assert.Equal(t, 2, strings.Count(msg.HTML, `class="title"`))
	assert.Equal(t, 1, strings.Count(msg.HTML, `class="explanation"`))
	assert.Equal(t, 2, strings.Count(msg.HTML, `class="code"`))

	sendMessage(t, conn, ClientMessage{Type: MsgLanguage, Name: "Go"})
	assert.Equal(t, MsgClear, readMessage(t, conn).Type)
	msg = readMessage(t, conn)
	require.Equal(t, MsgSections, msg.Type)
	assert.Equal(t, "Go", msg.Language)
	assert.Equal(t, []controller.SectionItem{{Key: "Control flow", Label: "Control flow"}}, msg.Items)
}

func TestSocket_IgnoredSelections(t *testing.T) {
	env := newTestEnv(t)
	conn := dialSession(t, env)
	readStart(t, conn)

	// None of these produce a view update.
	sendMessage(t, conn, ClientMessage{Type: MsgLanguage, Name: "Cobol"})
	sendMessage(t, conn, ClientMessage{Type: MsgSection, Key: ""})
	sendMessage(t, conn, ClientMessage{Type: MsgSection, Key: "classes"})

	// The next message is the answer to this copy with nothing displayed.
	sendMessage(t, conn, ClientMessage{Type: MsgCopy, Index: 0})
	msg := readMessage(t, conn)
	assert.Equal(t, MsgCopied, msg.Type)
	assert.False(t, msg.Copied)
}

func TestSocket_Copy(t *testing.T) {
	env := newTestEnv(t)
	conn := dialSession(t, env)
	readStart(t, conn)

	sendMessage(t, conn, ClientMessage{Type: MsgSection, Key: "loops"})
	require.Equal(t, MsgContent, readMessage(t, conn).Type)

	sendMessage(t, conn, ClientMessage{Type: MsgCopy, Index: 1})
	msg := readMessage(t, conn)
	require.Equal(t, MsgCopied, msg.Type)
	assert.True(t, msg.Copied)
	assert.Equal(t, 1, msg.Index)
	assert.Equal(t, "while x < 3:\n    x += 1", env.clipboard.Text())

	sendMessage(t, conn, ClientMessage{Type: MsgCopy, Index: 5})
	msg = readMessage(t, conn)
	assert.False(t, msg.Copied)
}

func TestSocket_BadMessages(t *testing.T) {
	env := newTestEnv(t)
	conn := dialSession(t, env)
	readStart(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.Equal(t, "malformed message", msg.Error)

	sendMessage(t, conn, ClientMessage{Type: "reload"})
	msg = readMessage(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "reload")

	// The session keeps going.
	sendMessage(t, conn, ClientMessage{Type: MsgSection, Key: "functions"})
	assert.Equal(t, MsgContent, readMessage(t, conn).Type)
}

func TestSocket_SessionsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	a := dialSession(t, env)
	readStart(t, a)
	b := dialSession(t, env)
	readStart(t, b)

	sendMessage(t, a, ClientMessage{Type: MsgLanguage, Name: "Go"})
	assert.Equal(t, MsgClear, readMessage(t, a).Type)
	assert.Equal(t, "Go", readMessage(t, a).Language)

	// b still has Python selected.
	sendMessage(t, b, ClientMessage{Type: MsgSection, Key: "loops"})
	msg := readMessage(t, b)
	require.Equal(t, MsgContent, msg.Type)
	assert.Equal(t, "Python", msg.Language)
}

func TestSocket_ResumeSelection(t *testing.T) {
	env := newTestEnv(t)
	client := uuid.NewString()

	first := dialPath(t, env, "/ws?client="+client)
	readStart(t, first)
	sendMessage(t, first, ClientMessage{Type: MsgLanguage, Name: "Go"})
	readMessage(t, first)
	readMessage(t, first)
	sendMessage(t, first, ClientMessage{Type: MsgSection, Key: "Control flow"})
	require.Equal(t, MsgContent, readMessage(t, first).Type)
	// The copy reply is written after the section event has been recorded.
	sendMessage(t, first, ClientMessage{Type: MsgCopy, Index: 9})
	require.Equal(t, MsgCopied, readMessage(t, first).Type)
	first.Close()

	second := dialPath(t, env, "/ws?client="+client)
	assert.Equal(t, MsgLanguages, readMessage(t, second).Type)
	assert.Equal(t, MsgClear, readMessage(t, second).Type)
	msg := readMessage(t, second)
	require.Equal(t, MsgSections, msg.Type)
	assert.Equal(t, "Go", msg.Language)
	msg = readMessage(t, second)
	require.Equal(t, MsgContent, msg.Type)
	assert.Equal(t, "Control flow", msg.Section)

	// Other clients and invalid ids start fresh.
	readStart(t, dialPath(t, env, "/ws?client="+uuid.NewString()))
	readStart(t, dialPath(t, env, "/ws?client=not-a-uuid"))
}
