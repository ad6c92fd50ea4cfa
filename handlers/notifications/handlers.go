package notifications

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"venturebridge/backend/handlers/auth"

	"github.com/gorilla/websocket"
)

// Notification is one row from the notifications table.
type Notification struct {
	ID        int        `json:"id"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

var notificationConnections = make(map[int]*websocket.Conn)
var notifLock sync.Mutex

// CreateNotification persists a notification and pushes it to the user's
// websocket if one is open.
func CreateNotification(db *sql.DB, userID int, notifType, content string) error {
	_, err := db.Exec(`
		INSERT INTO notifications (user_id, type, content, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
	`, userID, notifType, content)
	if err != nil {
		return err
	}

	SendNotification(userID, notifType)
	return nil
}

func GetNotificationsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}

		rows, err := db.Query(`
			SELECT id, type, content, created_at, read_at
			FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC
		`, userID)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Database error"})
			return
		}
		defer rows.Close()

		var notifications []Notification
		for rows.Next() {
			var n Notification
			err := rows.Scan(&n.ID, &n.Type, &n.Content, &n.CreatedAt, &n.ReadAt)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Error scanning notifications"})
				return
			}
			notifications = append(notifications, n)
		}

		json.NewEncoder(w).Encode(notifications)
	}
}

func MarkNotificationsAsReadHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID, err := auth.GetUserIDFromToken(r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}

		_, err = db.Exec(`
			UPDATE notifications
			SET read_at = CURRENT_TIMESTAMP
			WHERE user_id = $1 AND read_at IS NULL
		`, userID)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Database error"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{"message": "Notifications marked as read"})
	}
}

// HandleNotificationWebSocket keeps one live connection per user for
// pushing notification events. Browsers cannot set headers on websocket
// requests, so the token rides in the query string.
func HandleNotificationWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		mockReq := &http.Request{
			Header: http.Header{
				"Authorization": []string{"Bearer " + token},
			},
		}

		userID, err := auth.GetUserIDFromToken(mockReq)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		upgrader := websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		defer func() {
			notifLock.Lock()
			delete(notificationConnections, userID)
			notifLock.Unlock()
			conn.Close()
		}()

		notifLock.Lock()
		notificationConnections[userID] = conn
		notifLock.Unlock()

		data, _ := json.Marshal(map[string]string{"type": "connected"})
		err = conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			return
		}

		for {
			messageType, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("Notification socket closed unexpectedly for user %d: %v", userID, err)
				}
				break
			}

			if messageType == websocket.PingMessage {
				if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
					break
				}
			}
		}
	}
}

// SendNotification pushes a notification event to a specific user's
// open websocket, if any.
func SendNotification(userID int, messageType string) {
	notifLock.Lock()
	conn, exists := notificationConnections[userID]
	notifLock.Unlock()

	if exists {
		data, _ := json.Marshal(map[string]string{
			"type": messageType,
		})
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
