package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMailerService(t *testing.T) {
	logger := slog.Default()

	t.Run("Disabled Without API Key", func(t *testing.T) {
		m := NewMailerService("", "Test <test@example.com>", logger)
		assert.False(t, m.Enabled())

		err := m.Send(Email{To: "anna@example.com", Subject: "x", HTML: "y"})
		assert.ErrorIs(t, err, ErrMailerDisabled)
	})

	t.Run("Enabled With API Key", func(t *testing.T) {
		m := NewMailerService("re_test_key", "Test <test@example.com>", logger)
		assert.True(t, m.Enabled())
	})

	t.Run("SendAsync Never Blocks", func(t *testing.T) {
		m := NewMailerService("", "Test <test@example.com>", logger)
		for i := 0; i < 200; i++ {
			m.SendAsync(Email{To: "anna@example.com"})
		}
	})

	t.Run("Worker Drains Queue And Stops", func(t *testing.T) {
		m := NewMailerService("", "Test <test@example.com>", logger)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			m.Start(ctx)
			close(done)
		}()

		m.SendAsync(Email{To: "anna@example.com", Subject: "x"})
		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("mailer worker did not stop")
		}
	})
}

func TestEmailBuilders(t *testing.T) {
	t.Run("Welcome", func(t *testing.T) {
		email := NewWelcomeEmail("anna@example.com", "Anna", "Brno", 2, 3)
		assert.Equal(t, "anna@example.com", email.To)
		assert.Contains(t, email.HTML, "Anna")
		assert.Contains(t, email.HTML, "Brno")
	})

	t.Run("Reset", func(t *testing.T) {
		email := NewResetEmail("anna@example.com", "Anna", "123456")
		assert.Contains(t, email.HTML, "123456")
		assert.Contains(t, email.Subject, "Reset hesla")
	})

	t.Run("Message", func(t *testing.T) {
		email := NewMessageEmail("berta@example.com", "Berta", "Anna", "anna@example.com", "Ahoj!")
		assert.Contains(t, email.Subject, "Anna")
		assert.Contains(t, email.HTML, "Ahoj!")
		assert.Contains(t, email.HTML, "anna@example.com")
	})
}
