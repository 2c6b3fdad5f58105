package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/martinkasobkova-alt/zenyzenam/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	h, db := setupTestHandler(t)
	r := setupTestRouter(h)

	a := createTestUser(t, db, "Anna", "anna@example.com", "password123", "Brno")
	b := createTestUser(t, db, "Berta", "berta@example.com", "password123", "Brno")
	authA := bearerToken(t, h, a)
	authB := bearerToken(t, h, b)

	t.Run("Send Message", func(t *testing.T) {
		body := map[string]interface{}{"toUserId": b.ID, "message": "Ahoj, pomůžeš mi s překladem?"}
		w := doJSON(r, "POST", "/messages", authA, body)

		assert.Equal(t, http.StatusCreated, w.Code)

		var msg models.Message
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, a.ID, msg.FromUserID)
		assert.Equal(t, b.ID, msg.ToUserID)
		assert.False(t, msg.Read)
	})

	t.Run("Unknown Recipient", func(t *testing.T) {
		body := map[string]interface{}{"toUserId": 999, "message": "Ahoj"}
		w := doJSON(r, "POST", "/messages", authA, body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := doJSON(r, "POST", "/messages", authA, map[string]interface{}{"toUserId": b.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("List Newest First With Party Fields", func(t *testing.T) {
		older := models.Message{FromUserID: b.ID, ToUserID: a.ID, Body: "První", CreatedAt: time.Now().Add(-time.Hour)}
		db.Create(&older)

		w := doJSON(r, "GET", "/messages", authA, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var rows []MessageRow
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 2)
		assert.True(t, rows[0].CreatedAt.After(rows[1].CreatedAt))
		assert.Equal(t, "První", rows[1].Message)
		assert.Equal(t, "Berta", rows[1].FromName)
		assert.Equal(t, "anna@example.com", rows[1].ToEmail)
	})

	t.Run("Third Party Sees Nothing", func(t *testing.T) {
		cUser := createTestUser(t, db, "Cecílie", "cecilie@example.com", "password123", "Praha")
		w := doJSON(r, "GET", "/messages", bearerToken(t, h, cUser), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("Both Parties See The Conversation", func(t *testing.T) {
		w := doJSON(r, "GET", "/messages", authB, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var rows []MessageRow
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		assert.Len(t, rows, 2)
	})
}
