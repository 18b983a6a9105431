// Package notify entrega notificaciones de calidad por push (FCM) y chat (Slack).
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/jwt"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain/repository"
)

const (
	defaultFCMEndpoint = "https://fcm.googleapis.com"
	fcmScope           = "https://www.googleapis.com/auth/firebase.messaging"
	defaultTokenURI    = "https://oauth2.googleapis.com/token"
)

var _ quality.Notifier = (*FCMNotifier)(nil)

// serviceAccount campos usados del JSON de cuenta de servicio de Firebase.
type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

// FCMNotifier envía cada notificación a todos los dispositivos registrados (API HTTP v1).
type FCMNotifier struct {
	projectID string
	endpoint  string
	client    *http.Client
	tokens    repository.DeviceTokenRepository
	log       zerolog.Logger
}

// NewFCMNotifier lee la cuenta de servicio y arma el cliente OAuth2. endpoint vacío usa FCM real.
func NewFCMNotifier(credentialsPath, endpoint string, tokens repository.DeviceTokenRepository, log zerolog.Logger) (*FCMNotifier, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("leer credenciales FCM: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("parsear credenciales FCM: %w", err)
	}
	if sa.ProjectID == "" || sa.ClientEmail == "" {
		return nil, fmt.Errorf("credenciales FCM incompletas")
	}
	key := []byte(strings.ReplaceAll(sa.PrivateKey, `\n`, "\n"))
	if block, _ := pem.Decode(key); block == nil {
		return nil, fmt.Errorf("credenciales FCM: private_key no es PEM")
	}
	if sa.TokenURI == "" {
		sa.TokenURI = defaultTokenURI
	}
	cfg := &jwt.Config{
		Email:      sa.ClientEmail,
		PrivateKey: key,
		Scopes:     []string{fcmScope},
		TokenURL:   sa.TokenURI,
	}
	return NewFCMNotifierWithTokenSource(sa.ProjectID, endpoint, cfg.TokenSource(context.Background()), tokens, log), nil
}

// NewFCMNotifierWithTokenSource construye el notificador con una fuente de tokens ya resuelta.
func NewFCMNotifierWithTokenSource(projectID, endpoint string, ts oauth2.TokenSource, tokens repository.DeviceTokenRepository, log zerolog.Logger) *FCMNotifier {
	if endpoint == "" {
		endpoint = defaultFCMEndpoint
	}
	return &FCMNotifier{
		projectID: projectID,
		endpoint:  strings.TrimRight(endpoint, "/"),
		client:    oauth2.NewClient(context.Background(), oauth2.ReuseTokenSource(nil, ts)),
		tokens:    tokens,
		log:       log,
	}
}

type fcmMessage struct {
	Message fcmPayload `json:"message"`
}

type fcmPayload struct {
	Token        string            `json:"token"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *fcmAndroid       `json:"android,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroid struct {
	Priority string `json:"priority"`
}

// Notify envía a cada token. Los tokens que FCM da por no registrados se eliminan.
// Devuelve error solo si ningún envío tuvo éxito.
func (f *FCMNotifier) Notify(ctx context.Context, n quality.Notification) error {
	devices, err := f.tokens.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listar dispositivos: %w", err)
	}
	if len(devices) == 0 {
		return nil
	}
	sent, failed := 0, 0
	var lastErr error
	for _, d := range devices {
		err := f.send(ctx, d.Token, n)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, errUnregistered):
			if derr := f.tokens.Delete(ctx, d.Token); derr != nil {
				f.log.Warn().Err(derr).Msg("eliminar token FCM vencido")
			}
		default:
			failed++
			lastErr = err
		}
	}
	f.log.Debug().Int("sent", sent).Int("failed", failed).Str("title", n.Title).Msg("fcm enviado")
	if sent == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

var errUnregistered = errors.New("token FCM no registrado")

func (f *FCMNotifier) send(ctx context.Context, token string, n quality.Notification) error {
	msg := fcmMessage{Message: fcmPayload{
		Token:        token,
		Notification: fcmNotification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	}}
	if n.Level == quality.LevelAlert {
		msg.Message.Android = &fcmAndroid{Priority: "high"}
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("codificar mensaje FCM: %w", err)
	}
	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", f.endpoint, f.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar FCM: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusNotFound || bytes.Contains(raw, []byte("UNREGISTERED")) {
		return errUnregistered
	}
	return fmt.Errorf("FCM status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
