package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/config"
	"sceneeditor/internal/transform"
)

// Session captures the per-user view state saved between runs.
func (a *App) Session() *config.Session {
	s := &config.Session{
		CameraPosition: [3]float32{a.camera.Position.X, a.camera.Position.Y, a.camera.Position.Z},
		CameraYaw:      a.camera.Yaw,
		CameraPitch:    a.camera.Pitch,
		MoveSpeed:      a.camera.MoveSpeed,
		Family:         a.transformer.Family().String(),
	}
	if obj := a.Selected(); obj != nil {
		s.SelectedID = obj.ID()
	}
	return s
}

// RestoreSession applies a saved session. Unknown gizmo families and ids
// that no longer exist are ignored.
func (a *App) RestoreSession(s *config.Session) {
	if s == nil {
		return
	}
	p := s.CameraPosition
	a.camera.Position = rl.Vector3{X: p[0], Y: p[1], Z: p[2]}
	a.camera.Yaw = s.CameraYaw
	a.camera.Pitch = s.CameraPitch
	if s.MoveSpeed > 0 {
		a.camera.MoveSpeed = s.MoveSpeed
	}
	if f, ok := transform.ParseFamily(s.Family); ok {
		a.transformer.SetFamily(f)
	}
	if s.SelectedID == "" {
		return
	}
	obj := a.Scene().Lookup(s.SelectedID)
	if obj == nil {
		a.logger.Debug("session selection no longer exists", zap.String("id", s.SelectedID))
		return
	}
	if err := a.Select(obj); err != nil {
		a.logger.Warn("restore selection", zap.Error(err))
	}
}
