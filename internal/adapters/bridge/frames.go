package bridge

import (
	"time"

	"github.com/bnema/yzterm/internal/domain"
)

const (
	frameReady      = "ready"
	frameInput      = "input"
	frameResize     = "resize"
	frameConnect    = "connect"
	frameDisconnect = "disconnect"
	frameList       = "list"

	frameOutput = "output"
	frameClear  = "clear"
	frameAlert  = "alert"
	frameFiles  = "files"
)

// clientFrame is any message sent by the browser terminal.
type clientFrame struct {
	Type   string `json:"type"`
	Data   string `json:"data,omitempty"`
	Cols   uint16 `json:"cols,omitempty"`
	Rows   uint16 `json:"rows,omitempty"`
	HostID string `json:"hostId,omitempty"`
	Path   string `json:"path,omitempty"`
}

type outputFrame struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

type alertFrame struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type filesFrame struct {
	Type  string             `json:"type"`
	Path  string             `json:"path"`
	Files []domain.FileEntry `json:"files"`
}

type hostView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	HasPassword bool   `json:"hasPassword"`
}

func toHostView(host domain.Host) hostView {
	target := host.Target()

	return hostView{
		ID:          string(host.ID),
		Name:        host.DisplayName(),
		Address:     target.Address,
		Port:        target.Port,
		Username:    target.Username,
		HasPassword: host.SecretRef != "",
	}
}

type sessionView struct {
	ID          string    `json:"id"`
	Target      string    `json:"target"`
	CreatedAt   time.Time `json:"createdAt"`
	Exited      bool      `json:"exited"`
	IdleSeconds float64   `json:"idleSeconds"`
}
