package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const SessionFile = ".sceneeditor_session.yaml"

// Session is the editor state saved on exit and restored on the next start.
type Session struct {
	CameraPosition [3]float32 `yaml:"cameraPosition"`
	CameraYaw      float32    `yaml:"cameraYaw"`
	CameraPitch    float32    `yaml:"cameraPitch"`
	MoveSpeed      float32    `yaml:"moveSpeed"`
	Family         string     `yaml:"family"`
	SelectedID     string     `yaml:"selectedId,omitempty"`
}

// LoadSession returns nil when there is nothing to restore.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

func (s *Session) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
