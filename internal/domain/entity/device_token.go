package entity

import "time"

// DeviceToken token de notificaciones push (FCM) registrado por un usuario.
type DeviceToken struct {
	Token     string
	UserID    string
	Platform  string // web, android, ios
	CreatedAt time.Time
}
