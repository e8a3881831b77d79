package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"adhesion/internal/platform/config"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func testMailConfig() config.Mail {
	return config.Mail{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "ong@example.com",
		Password: "secret",
	}
}

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	return path
}

func TestMissingCredentialsSkipsSend(t *testing.T) {
	n := NewSMTP(config.Mail{Host: "smtp.example.com", Port: 587}, silentLogger())

	assert.False(t, n.Configured())
	// No network touched: an unreachable host would otherwise fail here.
	err := n.Notify(context.Background(), "M-0001", "Koné Awa", "missing.pdf", "")
	assert.NoError(t, err)
}

func TestComposeWithoutPhoto(t *testing.T) {
	n := NewSMTP(testMailConfig(), silentLogger())
	pdf := writeTempFile(t, "M-0001.pdf")

	msg, err := n.compose("M-0001", "Koné Awa", pdf, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Nouvelle adhésion : M-0001"}, msg.GetGenHeader(mail.HeaderSubject))

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"ong@example.com"}, recipients)

	attachments := msg.GetAttachments()
	require.Len(t, attachments, 1, "photo must not be attached when absent")
	assert.Equal(t, "M-0001.pdf", attachments[0].Name)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "M-0001")
}

func TestComposeWithPhotoAttachesBoth(t *testing.T) {
	n := NewSMTP(testMailConfig(), silentLogger())
	pdf := writeTempFile(t, "M-0002.pdf")
	photo := writeTempFile(t, "staged-upload.jpg")

	msg, err := n.compose("M-0002", "Koné Awa", pdf, photo)
	require.NoError(t, err)

	attachments := msg.GetAttachments()
	require.Len(t, attachments, 2)
	assert.Equal(t, "M-0002.pdf", attachments[0].Name)
	assert.Equal(t, "photo.jpg", attachments[1].Name)
}

func TestComposeUsesConfiguredRecipient(t *testing.T) {
	cfg := testMailConfig()
	cfg.To = "secretariat@example.com"
	n := NewSMTP(cfg, silentLogger())
	pdf := writeTempFile(t, "M-0003.pdf")

	msg, err := n.compose("M-0003", "Koné Awa", pdf, "")
	require.NoError(t, err)

	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"secretariat@example.com"}, recipients)
}
